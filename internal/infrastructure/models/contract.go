package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Contract struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BlueprintID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status      string         `gorm:"type:varchar(20);not null;default:'Created';index"`
	Data        datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time      `gorm:"index"`
	UpdatedAt   time.Time

	Blueprint *Blueprint        `gorm:"foreignKey:BlueprintID"`
	History   []ContractHistory `gorm:"foreignKey:ContractID"`
}

// ContractHistory is append-only; rows are never updated or deleted.
type ContractHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contract_history_seq,priority:1"`
	Sequence      int       `gorm:"not null;uniqueIndex:idx_contract_history_seq,priority:2"`
	Status        string    `gorm:"type:varchar(20);not null"`
	ChangedByID   string    `gorm:"type:varchar(120);not null"`
	ChangedByName string    `gorm:"type:varchar(200);not null"`
	Note          string    `gorm:"type:text;not null;default:''"`
	ChangedAt     time.Time `gorm:"not null"`
}

func (ContractHistory) TableName() string {
	return "contract_history"
}
