package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ionwell/formulation-service/internal/model"
	"github.com/ionwell/formulation-service/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. Implementations should provide a clean, isolated store
// and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	record, _ := json.Marshal(map[string]any{
		"age": 32, "biologicalSex": "female", "weight": 145.5,
		"sodiumIntake": "8-10", "potassiumIntake": "3.5",
	})
	survey := &model.Survey{
		Record:        record,
		Age:           32,
		BiologicalSex: "female",
		Weight:        145.5,
		ActivityLevel: "moderately-active",
		SweatLevel:    "moderate",
		UseCase:       model.UseCaseDaily,
		Result: &model.FormulationResult{
			FormulationPerServing: model.ElectrolyteAmounts{Sodium: 500, Potassium: 400, Magnesium: 150, Calcium: 150},
			UseCase:               model.UseCaseDaily,
		},
	}

	created, err := s.Surveys().Create(ctx, survey)
	if err != nil {
		t.Fatalf("CreateSurvey: %v", err)
	}
	if created.SurveyID == "" {
		t.Fatal("CreateSurvey: empty survey id")
	}
	if created.CreationTime.IsZero() {
		t.Fatal("CreateSurvey: creation time not set")
	}

	got, err := s.Surveys().Get(ctx, created.SurveyID)
	if err != nil {
		t.Fatalf("GetSurvey: %v", err)
	}
	if got.UseCase != model.UseCaseDaily || got.Age != 32 || got.BiologicalSex != "female" {
		t.Fatalf("GetSurvey: derived fields mismatch: %+v", got)
	}
	if got.Result == nil || got.Result.FormulationPerServing.Sodium != 500 {
		t.Fatalf("GetSurvey: result snapshot mismatch: %+v", got.Result)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(got.Record, &roundTrip); err != nil {
		t.Fatalf("GetSurvey: record blob not valid JSON: %v", err)
	}
	if roundTrip["sodiumIntake"] != "8-10" {
		t.Fatalf("GetSurvey: record blob mutated: %v", roundTrip)
	}

	// Conversion audit trail
	rows := []model.IntakeConversion{
		{Electrolyte: model.Sodium, OriginalValue: "8-10", Format: model.FormatLegacy, Mg: 2142.857142857143, Source: model.SourceLegacyEstimates},
		{Electrolyte: model.Potassium, OriginalValue: "3.5", Format: model.FormatNumeric, Mg: 3400, Source: model.SourceDirectNumeric},
	}
	if err := s.Conversions().CreateBatch(ctx, created.SurveyID, rows); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	listed, err := s.Conversions().ListBySurvey(ctx, created.SurveyID)
	if err != nil {
		t.Fatalf("ListBySurvey: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("ListBySurvey: n=%d, want 2", len(listed))
	}
	if listed[0].Electrolyte != model.Sodium || listed[0].Source != model.SourceLegacyEstimates {
		t.Fatalf("ListBySurvey: row 0 mismatch: %+v", listed[0])
	}
	if listed[1].Format != model.FormatNumeric || listed[1].Mg != 3400 {
		t.Fatalf("ListBySurvey: row 1 mismatch: %+v", listed[1])
	}

	// Missing id
	if _, err := s.Surveys().Get(ctx, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing survey: err=%v, want ErrNotFound", err)
	}

	// Delete
	if err := s.Surveys().Delete(ctx, created.SurveyID); err != nil {
		t.Fatalf("DeleteSurvey: %v", err)
	}
	if _, err := s.Surveys().Get(ctx, created.SurveyID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get after delete: err=%v, want ErrNotFound", err)
	}
	if err := s.Surveys().Delete(ctx, created.SurveyID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Delete twice: err=%v, want ErrNotFound", err)
	}
}
