package repositories

import (
	"context"

	"github.com/google/uuid"

	"contractflow.backend/internal/domain/entities"
)

type BlueprintRepository interface {
	Create(ctx context.Context, blueprint *entities.Blueprint) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Blueprint, error)
	List(ctx context.Context) ([]*entities.Blueprint, error)
	Update(ctx context.Context, blueprint *entities.Blueprint) error
	Delete(ctx context.Context, id uuid.UUID) error
}
