package usecases

import (
	"fmt"
	"strings"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
)

// ValidateFieldData checks incoming contract data against the blueprint
// fields and returns only the keys the blueprint describes. The first
// missing required field fails the whole payload.
func ValidateFieldData(schema *entities.Blueprint, incoming map[string]any) (map[string]any, error) {
	sanitized := make(map[string]any)
	if schema == nil {
		return sanitized, nil
	}

	for _, field := range schema.Fields {
		if field.Label == "" {
			continue
		}

		value, present := incoming[field.Label]
		if field.Required && isMissing(field.FieldType, value, present) {
			return nil, domainerrors.MissingRequiredField(field.Label)
		}
		if present {
			sanitized[field.Label] = value
		}
	}

	return sanitized, nil
}

func isMissing(fieldType entities.FieldType, value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	if fieldType == entities.FieldTypeCheckbox {
		checked, ok := value.(bool)
		return !ok || !checked
	}
	return strings.TrimSpace(fmt.Sprint(value)) == ""
}
