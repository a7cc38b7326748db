package entities

import (
	"time"

	"github.com/google/uuid"
)

// FieldType is the closed set of field kinds a blueprint may declare
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeDate      FieldType = "date"
	FieldTypeSignature FieldType = "signature"
	FieldTypeCheckbox  FieldType = "checkbox"
)

// FieldTypes lists every supported field type in display order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeDate,
	FieldTypeSignature,
	FieldTypeCheckbox,
}

// IsValid reports whether t is one of the supported field types
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeDate, FieldTypeSignature, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// FieldPosition is where a field is rendered on the document
type FieldPosition struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// FieldDefinition describes one field of a blueprint.
// Label doubles as the key under which contract data is stored.
type FieldDefinition struct {
	Label     string        `json:"label" yaml:"label"`
	FieldType FieldType     `json:"fieldType" yaml:"fieldType"`
	Required  bool          `json:"required" yaml:"required"`
	Position  FieldPosition `json:"position" yaml:"position"`
}

// Blueprint is a reusable contract template
type Blueprint struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Fields    []FieldDefinition `json:"fields"`
	Tags      []string          `json:"tags,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Summary returns the reduced view embedded in contract responses
func (b *Blueprint) Summary() *BlueprintSummary {
	return &BlueprintSummary{ID: b.ID, Name: b.Name}
}

// BlueprintSummary is the resolved blueprint reference shown on contracts
type BlueprintSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BlueprintInput is the payload for creating or replacing a blueprint
type BlueprintInput struct {
	Name   string            `json:"name" yaml:"name"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
	Tags   []string          `json:"tags,omitempty" yaml:"tags"`
}
