package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/internal/infrastructure/models"
)

type BlueprintRepository struct {
	db *gorm.DB
}

func NewBlueprintRepository(db *gorm.DB) *BlueprintRepository {
	return &BlueprintRepository{db: db}
}

func (r *BlueprintRepository) Create(ctx context.Context, blueprint *entities.Blueprint) error {
	m, err := r.toModel(blueprint)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	blueprint.CreatedAt = m.CreatedAt
	blueprint.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BlueprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Blueprint, error) {
	var m models.Blueprint
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

func (r *BlueprintRepository) List(ctx context.Context) ([]*entities.Blueprint, error) {
	var ms []models.Blueprint
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Blueprint, 0, len(ms))
	for i := range ms {
		item, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *BlueprintRepository) Update(ctx context.Context, blueprint *entities.Blueprint) error {
	fields, err := json.Marshal(blueprint.Fields)
	if err != nil {
		return fmt.Errorf("encode blueprint fields: %w", err)
	}

	updatedAt := blueprint.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	result := GetDB(ctx, r.db).
		Model(&models.Blueprint{}).
		Where("id = ?", blueprint.ID).
		Updates(map[string]interface{}{
			"name":       blueprint.Name,
			"fields":     datatypes.JSON(fields),
			"tags":       pq.StringArray(blueprint.Tags),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes the blueprint; contracts keep their blueprint_id.
func (r *BlueprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Blueprint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BlueprintRepository) toEntity(m *models.Blueprint) (*entities.Blueprint, error) {
	fields := make([]entities.FieldDefinition, 0)
	if len(m.Fields) > 0 {
		if err := json.Unmarshal(m.Fields, &fields); err != nil {
			return nil, fmt.Errorf("decode blueprint %s fields: %w", m.ID, err)
		}
	}

	var tags []string
	if len(m.Tags) > 0 {
		tags = []string(m.Tags)
	}

	return &entities.Blueprint{
		ID:        m.ID,
		Name:      m.Name,
		Fields:    fields,
		Tags:      tags,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *BlueprintRepository) toModel(e *entities.Blueprint) (*models.Blueprint, error) {
	fields := e.Fields
	if fields == nil {
		fields = []entities.FieldDefinition{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode blueprint fields: %w", err)
	}

	tags := pq.StringArray{}
	if len(e.Tags) > 0 {
		tags = pq.StringArray(e.Tags)
	}

	return &models.Blueprint{
		ID:        e.ID,
		Name:      e.Name,
		Fields:    datatypes.JSON(raw),
		Tags:      tags,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}
