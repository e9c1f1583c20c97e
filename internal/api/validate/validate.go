package validate

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ionwell/formulation-service/internal/model"
)

// maxBatchItems bounds a single conversion request.
const maxBatchItems = 100

// SurveyID validates that a path parameter is a well-formed UUID before it
// reaches the store layer.
func SurveyID(v string) error {
	if v == "" {
		return fmt.Errorf("surveyId is required")
	}
	if _, err := uuid.Parse(v); err != nil {
		return fmt.Errorf("surveyId must be a UUID")
	}
	return nil
}

// BatchItems checks the structural shape of a batch conversion request.
// Per-item electrolyte validity is the engine's concern and surfaces in the
// per-item result, not here.
func BatchItems(items []model.BatchConvertItem) error {
	if len(items) == 0 {
		return fmt.Errorf("items is required")
	}
	if len(items) > maxBatchItems {
		return fmt.Errorf("items exceeds %d entries", maxBatchItems)
	}
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("items[%d].id is required", i)
		}
		if it.Electrolyte == "" {
			return fmt.Errorf("items[%d].electrolyte is required", i)
		}
	}
	return nil
}
