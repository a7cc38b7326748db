package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/internal/domain/repositories"
	"contractflow.backend/pkg/logger"
	"contractflow.backend/pkg/utils"
)

// BlueprintUsecase handles blueprint management
type BlueprintUsecase struct {
	blueprintRepo repositories.BlueprintRepository
	now           func() time.Time
}

// NewBlueprintUsecase creates a new blueprint usecase
func NewBlueprintUsecase(blueprintRepo repositories.BlueprintRepository) *BlueprintUsecase {
	return &BlueprintUsecase{
		blueprintRepo: blueprintRepo,
		now:           time.Now,
	}
}

// CreateBlueprint validates and stores a new blueprint. An empty field list
// is accepted on create.
func (u *BlueprintUsecase) CreateBlueprint(ctx context.Context, input *entities.BlueprintInput) (*entities.Blueprint, error) {
	if err := validateBlueprintInput(input, false); err != nil {
		return nil, err
	}

	now := u.now()
	blueprint := &entities.Blueprint{
		ID:        utils.GenerateUUIDv7(),
		Name:      strings.TrimSpace(input.Name),
		Fields:    copyFields(input.Fields),
		Tags:      normalizeTags(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.blueprintRepo.Create(ctx, blueprint); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Blueprint created",
		zap.String("blueprint_id", blueprint.ID.String()),
		zap.String("name", blueprint.Name),
		zap.Int("fields", len(blueprint.Fields)),
	)
	return blueprint, nil
}

// ListBlueprints returns blueprints newest first
func (u *BlueprintUsecase) ListBlueprints(ctx context.Context) ([]*entities.Blueprint, error) {
	return u.blueprintRepo.List(ctx)
}

// GetBlueprint resolves a blueprint reference
func (u *BlueprintUsecase) GetBlueprint(ctx context.Context, ref string) (*entities.Blueprint, error) {
	id, err := parseBlueprintRef(ref)
	if err != nil {
		return nil, err
	}
	return u.getBlueprint(ctx, id)
}

// UpdateBlueprint fully replaces name and fields. Existing contracts keep
// the data they were created with.
func (u *BlueprintUsecase) UpdateBlueprint(ctx context.Context, ref string, input *entities.BlueprintInput) (*entities.Blueprint, error) {
	id, err := parseBlueprintRef(ref)
	if err != nil {
		return nil, err
	}
	if err := validateBlueprintInput(input, true); err != nil {
		return nil, err
	}

	existing, err := u.getBlueprint(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Fields = copyFields(input.Fields)
	existing.Tags = normalizeTags(input.Tags)
	existing.UpdatedAt = u.now()

	if err := u.blueprintRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("blueprint not found")
		}
		return nil, err
	}

	logger.Info(ctx, "Blueprint updated", zap.String("blueprint_id", existing.ID.String()))
	return existing, nil
}

// DeleteBlueprint removes a blueprint. Contracts referencing it are left as is.
func (u *BlueprintUsecase) DeleteBlueprint(ctx context.Context, ref string) error {
	id, err := parseBlueprintRef(ref)
	if err != nil {
		return err
	}
	if err := u.blueprintRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("blueprint not found")
		}
		return err
	}

	logger.Info(ctx, "Blueprint deleted", zap.String("blueprint_id", id.String()))
	return nil
}

func (u *BlueprintUsecase) getBlueprint(ctx context.Context, id uuid.UUID) (*entities.Blueprint, error) {
	blueprint, err := u.blueprintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("blueprint not found")
		}
		return nil, err
	}
	return blueprint, nil
}

func validateBlueprintInput(input *entities.BlueprintInput, requireFields bool) error {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return domainerrors.Validation("blueprint name is required")
	}
	if input.Fields == nil {
		return domainerrors.Validation("fields array is required")
	}
	if requireFields && len(input.Fields) == 0 {
		return domainerrors.Validation("fields array cannot be empty")
	}

	for i, field := range input.Fields {
		if strings.TrimSpace(field.Label) == "" {
			return domainerrors.Validation("each field must have a label").WithDetail("index", i)
		}
		if !field.FieldType.IsValid() {
			return domainerrors.Validation("each field must have a valid fieldType (text, date, signature, checkbox)").
				WithDetail("field", field.Label).
				WithDetail("fieldType", string(field.FieldType))
		}
	}
	return nil
}

func parseBlueprintRef(ref string) (uuid.UUID, error) {
	if strings.TrimSpace(ref) == "" {
		return uuid.Nil, domainerrors.Validation("blueprint ID is required")
	}
	id, err := uuid.Parse(strings.TrimSpace(ref))
	if err != nil {
		return uuid.Nil, domainerrors.InvalidReference("invalid blueprint ID format")
	}
	return id, nil
}

func copyFields(fields []entities.FieldDefinition) []entities.FieldDefinition {
	out := make([]entities.FieldDefinition, len(fields))
	copy(out, fields)
	return out
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
