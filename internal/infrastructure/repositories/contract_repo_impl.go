package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/internal/infrastructure/models"
	"contractflow.backend/pkg/utils"
)

// ContractRepository stores contracts in one table and their audit history
// in an append-only sibling table ordered by sequence.
type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, contract *entities.Contract) error {
	m, err := r.toModel(contract)
	if err != nil {
		return err
	}

	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		if len(m.History) > 0 {
			if err := tx.Create(&m.History).Error; err != nil {
				return err
			}
		}
		contract.CreatedAt = m.CreatedAt
		contract.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	return r.getByID(ctx, GetDB(ctx, r.db), id)
}

func (r *ContractRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	return r.getByID(ctx, withRowLock(ctx, GetDB(ctx, r.db)), id)
}

func (r *ContractRepository) getByID(_ context.Context, db *gorm.DB, id uuid.UUID) (*entities.Contract, error) {
	var m models.Contract
	if err := r.withRelations(db).Where("contracts.id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

func (r *ContractRepository) List(ctx context.Context, filter entities.ContractFilter) ([]*entities.Contract, int64, error) {
	var total int64
	if err := r.applyFilter(GetDB(ctx, r.db).Model(&models.Contract{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Contract
	query := r.withRelations(r.applyFilter(GetDB(ctx, r.db), filter)).
		Order("created_at DESC").
		Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Contract, 0, len(ms))
	for i := range ms {
		item, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (r *ContractRepository) applyFilter(db *gorm.DB, filter entities.ContractFilter) *gorm.DB {
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		db = db.Where("status IN ?", statuses)
	}
	if filter.BlueprintID != nil {
		db = db.Where("blueprint_id = ?", *filter.BlueprintID)
	}
	return db
}

// SaveStatus performs a conditional update keyed on the expected status so
// two writers starting from the same status cannot both succeed.
func (r *ContractRepository) SaveStatus(ctx context.Context, id uuid.UUID, expected, target entities.ContractStatus, entry *entities.HistoryEntry) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": string(target)}
		if entry != nil {
			updates["updated_at"] = entry.Timestamp
		}

		result := tx.Model(&models.Contract{}).
			Where("id = ? AND status = ?", id, string(expected)).
			UpdateColumns(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Contract{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerrors.ErrNotFound
			}
			return domainerrors.ErrConflict
		}

		if entry == nil {
			return nil
		}

		var last struct{ Max int }
		if err := tx.Model(&models.ContractHistory{}).
			Select("COALESCE(MAX(sequence), 0) AS max").
			Where("contract_id = ?", id).
			Scan(&last).Error; err != nil {
			return err
		}

		h := r.historyToModel(id, last.Max+1, *entry)
		return tx.Create(&h).Error
	})
}

func (r *ContractRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Blueprint", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		})
}

func (r *ContractRepository) toEntity(m *models.Contract) (*entities.Contract, error) {
	data := make(map[string]any)
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return nil, fmt.Errorf("decode contract %s data: %w", m.ID, err)
		}
	}

	history := make([]entities.HistoryEntry, 0, len(m.History))
	for _, h := range m.History {
		history = append(history, entities.HistoryEntry{
			Status:    entities.ContractStatus(h.Status),
			Timestamp: h.ChangedAt,
			ChangedBy: entities.ActorSnapshot{ID: h.ChangedByID, Name: h.ChangedByName},
			Note:      h.Note,
		})
	}

	var summary *entities.BlueprintSummary
	if m.Blueprint != nil {
		summary = &entities.BlueprintSummary{ID: m.Blueprint.ID, Name: m.Blueprint.Name}
	}

	return &entities.Contract{
		ID:          m.ID,
		BlueprintID: m.BlueprintID,
		Blueprint:   summary,
		Status:      entities.ContractStatus(m.Status),
		Data:        data,
		History:     history,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (r *ContractRepository) toModel(e *entities.Contract) (*models.Contract, error) {
	data := e.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode contract data: %w", err)
	}

	history := make([]models.ContractHistory, 0, len(e.History))
	for i, h := range e.History {
		history = append(history, r.historyToModel(e.ID, i+1, h))
	}

	return &models.Contract{
		ID:          e.ID,
		BlueprintID: e.BlueprintID,
		Status:      string(e.Status),
		Data:        datatypes.JSON(raw),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		History:     history,
	}, nil
}

func (r *ContractRepository) historyToModel(contractID uuid.UUID, seq int, h entities.HistoryEntry) models.ContractHistory {
	return models.ContractHistory{
		ID:            utils.GenerateUUIDv7(),
		ContractID:    contractID,
		Sequence:      seq,
		Status:        string(h.Status),
		ChangedByID:   h.ChangedBy.ID,
		ChangedByName: h.ChangedBy.Name,
		Note:          h.Note,
		ChangedAt:     h.Timestamp,
	}
}
