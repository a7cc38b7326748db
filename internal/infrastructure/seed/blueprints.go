package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"contractflow.backend/internal/domain/entities"
	"contractflow.backend/pkg/logger"
)

// BlueprintFile is the on-disk layout of a blueprint seed file
type BlueprintFile struct {
	Blueprints []entities.BlueprintInput `yaml:"blueprints"`
}

// BlueprintStore is the part of the blueprint usecase the loader needs
type BlueprintStore interface {
	CreateBlueprint(ctx context.Context, input *entities.BlueprintInput) (*entities.Blueprint, error)
	ListBlueprints(ctx context.Context) ([]*entities.Blueprint, error)
}

// ParseBlueprints decodes a seed document. Unknown keys are rejected.
func ParseBlueprints(r io.Reader) ([]entities.BlueprintInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file BlueprintFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode blueprint seed: %w", err)
	}

	for i := range file.Blueprints {
		if file.Blueprints[i].Fields == nil {
			file.Blueprints[i].Fields = []entities.FieldDefinition{}
		}
	}
	return file.Blueprints, nil
}

// LoadBlueprintFile reads and parses the seed file at path
func LoadBlueprintFile(path string) ([]entities.BlueprintInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blueprint seed: %w", err)
	}
	defer f.Close()
	return ParseBlueprints(f)
}

// ApplyBlueprints creates every seed blueprint whose name is not taken yet,
// so restarting with the same file is a no-op. It returns how many were
// created.
func ApplyBlueprints(ctx context.Context, store BlueprintStore, inputs []entities.BlueprintInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	existing, err := store.ListBlueprints(ctx)
	if err != nil {
		return 0, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, bp := range existing {
		taken[strings.TrimSpace(bp.Name)] = struct{}{}
	}

	created := 0
	for i := range inputs {
		name := strings.TrimSpace(inputs[i].Name)
		if _, ok := taken[name]; ok {
			logger.Debug(ctx, "Seed blueprint already present", zap.String("name", name))
			continue
		}
		bp, err := store.CreateBlueprint(ctx, &inputs[i])
		if err != nil {
			return created, fmt.Errorf("seed blueprint %q: %w", name, err)
		}
		taken[name] = struct{}{}
		created++
		logger.Info(ctx, "Seed blueprint created",
			zap.String("blueprint_id", bp.ID.String()),
			zap.String("name", bp.Name),
		)
	}
	return created, nil
}
