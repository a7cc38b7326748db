package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Blueprint struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(200);not null"`
	Fields    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // []entities.FieldDefinition
	Tags      pq.StringArray `gorm:"type:text[];default:'{}'"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
