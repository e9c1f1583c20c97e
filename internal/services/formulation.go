package services

import (
	"context"
	"encoding/json"

	"github.com/ionwell/formulation-service/internal/engine"
	"github.com/ionwell/formulation-service/internal/model"
	"github.com/ionwell/formulation-service/internal/store"
)

// FormulationService orchestrates calculation and survey persistence.
// The engine stays pure; everything with a side effect lives here.
type FormulationService struct {
	store store.Store
	eng   *engine.Engine
}

func NewFormulationService(s store.Store, eng *engine.Engine) *FormulationService {
	return &FormulationService{store: s, eng: eng}
}

// Calculate runs the engine without persisting anything.
func (s *FormulationService) Calculate(rec model.SurveyRecord) (*model.FormulationResult, model.ValidationResult) {
	return s.eng.Calculate(rec)
}

// ValidateOnly skips composition and returns the normalizer/validator view.
func (s *FormulationService) ValidateOnly(rec model.SurveyRecord) engine.ValidationReport {
	return s.eng.ValidateOnly(rec)
}

// ConvertBatch converts intake triples with partial-failure semantics.
func (s *FormulationService) ConvertBatch(items []model.BatchConvertItem) []model.BatchConvertResult {
	return s.eng.ConvertBatch(items)
}

// SubmitSurvey calculates and, when the record is valid, stores the survey
// verbatim alongside derived scalars and the conversion audit trail. On
// validation failure nothing is persisted.
func (s *FormulationService) SubmitSurvey(ctx context.Context, rec model.SurveyRecord) (*model.Survey, model.ValidationResult, error) {
	result, vr := s.eng.Calculate(rec)
	if !vr.IsValid {
		return nil, vr, nil
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, vr, err
	}

	defaulted := engine.ApplyDefaults(rec)
	survey := &model.Survey{
		Record:        raw,
		Age:           defaulted.Age,
		BiologicalSex: defaulted.BiologicalSex,
		Weight:        defaulted.Weight,
		ActivityLevel: defaulted.ActivityLevel,
		SweatLevel:    defaulted.SweatLevel,
		UseCase:       result.UseCase,
		Result:        result,
	}
	created, err := s.store.Surveys().Create(ctx, survey)
	if err != nil {
		return nil, vr, err
	}

	analysis := s.eng.Analyze(rec)
	if err := s.store.Conversions().CreateBatch(ctx, created.SurveyID, analysis.Conversions); err != nil {
		// A survey must never persist without its audit trail.
		_ = s.store.Surveys().Delete(ctx, created.SurveyID)
		return nil, vr, err
	}
	return created, vr, nil
}

// GetSurvey returns a stored survey with its result snapshot.
func (s *FormulationService) GetSurvey(ctx context.Context, surveyID string) (*model.Survey, error) {
	return s.store.Surveys().Get(ctx, surveyID)
}

// ListConversions returns the audit trail for a stored survey.
func (s *FormulationService) ListConversions(ctx context.Context, surveyID string) ([]model.IntakeConversion, error) {
	if _, err := s.store.Surveys().Get(ctx, surveyID); err != nil {
		return nil, err
	}
	return s.store.Conversions().ListBySurvey(ctx, surveyID)
}
