package repositories

import (
	"context"

	"github.com/google/uuid"

	"contractflow.backend/internal/domain/entities"
)

// ContractRepository persists contracts together with their history
type ContractRepository interface {
	Create(ctx context.Context, contract *entities.Contract) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error)
	// GetByIDForUpdate loads the contract and locks its row for the
	// surrounding unit of work where the driver supports it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Contract, error)
	List(ctx context.Context, filter entities.ContractFilter) ([]*entities.Contract, int64, error)
	// SaveStatus writes target only if the stored status still equals
	// expected, and appends entry to the history when it is non-nil.
	// Returns domainerrors.ErrConflict when the stored status moved on.
	SaveStatus(ctx context.Context, id uuid.UUID, expected, target entities.ContractStatus, entry *entities.HistoryEntry) error
}
