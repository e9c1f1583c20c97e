package validate

import (
	"testing"

	"github.com/ionwell/formulation-service/internal/model"
)

func TestSurveyID(t *testing.T) {
	if err := SurveyID(""); err == nil {
		t.Fatalf("expected error for empty surveyId")
	}
	if err := SurveyID("not-a-uuid"); err == nil {
		t.Fatalf("expected error for malformed surveyId")
	}
	if err := SurveyID("5a0b0e1e-9c2e-4f0a-8d9b-2f6c1a9e4d3b"); err != nil {
		t.Fatalf("valid uuid rejected: %v", err)
	}
}

func TestBatchItems_Structural(t *testing.T) {
	if err := BatchItems(nil); err == nil {
		t.Fatalf("expected error for empty batch")
	}
	missing := []model.BatchConvertItem{{Value: "7", Electrolyte: "sodium"}}
	if err := BatchItems(missing); err == nil {
		t.Fatalf("expected error for missing id")
	}
	ok := []model.BatchConvertItem{{ID: "a", Value: "7", Electrolyte: "sodium"}}
	if err := BatchItems(ok); err != nil {
		t.Fatalf("well-formed batch rejected: %v", err)
	}
}

func TestBatchItems_TooLarge(t *testing.T) {
	items := make([]model.BatchConvertItem, maxBatchItems+1)
	for i := range items {
		items[i] = model.BatchConvertItem{ID: "x", Value: "1", Electrolyte: "sodium"}
	}
	if err := BatchItems(items); err == nil {
		t.Fatalf("expected error for oversized batch")
	}
}
