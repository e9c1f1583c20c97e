package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ionwell/formulation-service/internal/engine"
	"github.com/ionwell/formulation-service/internal/model"
	"github.com/ionwell/formulation-service/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	surveys     map[string]*model.Survey
	conversions map[string][]model.IntakeConversion
	createErr   error
	batchErr    error
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		surveys:     map[string]*model.Survey{},
		conversions: map[string][]model.IntakeConversion{},
	}
}

func (f *fakeStore) Surveys() store.Surveys         { return &fakeSurveys{f} }
func (f *fakeStore) Conversions() store.Conversions { return &fakeConversions{f} }

type fakeSurveys struct{ p *fakeStore }

func (s *fakeSurveys) Create(_ context.Context, m *model.Survey) (*model.Survey, error) {
	if s.p.createErr != nil {
		return nil, s.p.createErr
	}
	s.p.nextID++
	out := *m
	out.SurveyID = string(rune('a' + s.p.nextID))
	s.p.surveys[out.SurveyID] = &out
	return &out, nil
}

func (s *fakeSurveys) Get(_ context.Context, id string) (*model.Survey, error) {
	if sv, ok := s.p.surveys[id]; ok {
		return sv, nil
	}
	return nil, model.ErrNotFound
}

func (s *fakeSurveys) Delete(_ context.Context, id string) error {
	if _, ok := s.p.surveys[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.p.surveys, id)
	return nil
}

type fakeConversions struct{ p *fakeStore }

func (c *fakeConversions) CreateBatch(_ context.Context, surveyID string, rows []model.IntakeConversion) error {
	if c.p.batchErr != nil {
		return c.p.batchErr
	}
	c.p.conversions[surveyID] = append(c.p.conversions[surveyID], rows...)
	return nil
}

func (c *fakeConversions) ListBySurvey(_ context.Context, surveyID string) ([]model.IntakeConversion, error) {
	return c.p.conversions[surveyID], nil
}

// --- Tests ---

func validSurveyRecord() model.SurveyRecord {
	return model.SurveyRecord{
		Age:             32,
		BiologicalSex:   "female",
		Weight:          145.5,
		SodiumIntake:    "8-10",
		PotassiumIntake: "3.5",
	}
}

func TestSubmitSurvey_PersistsRecordAndAuditTrail(t *testing.T) {
	fs := newFakeStore()
	svc := NewFormulationService(fs, engine.New(0))

	created, vr, err := svc.SubmitSurvey(context.Background(), validSurveyRecord())
	if err != nil {
		t.Fatalf("SubmitSurvey: %v", err)
	}
	if !vr.IsValid {
		t.Fatalf("unexpected validation failure: %v", vr.Errors)
	}
	if created == nil || created.SurveyID == "" {
		t.Fatalf("no survey persisted: %+v", created)
	}
	if created.UseCase != model.UseCaseDaily {
		t.Fatalf("use case = %v", created.UseCase)
	}
	if created.Result == nil {
		t.Fatal("result snapshot missing")
	}

	rows, err := svc.ListConversions(context.Background(), created.SurveyID)
	if err != nil {
		t.Fatalf("ListConversions: %v", err)
	}
	// All four intake fields are non-empty after defaulting.
	if len(rows) != 4 {
		t.Fatalf("audit rows = %d, want 4", len(rows))
	}
	if rows[0].Source != model.SourceLegacyEstimates || rows[1].Source != model.SourceDirectNumeric {
		t.Fatalf("sources = %v %v", rows[0].Source, rows[1].Source)
	}
}

func TestSubmitSurvey_InvalidRecordNotPersisted(t *testing.T) {
	fs := newFakeStore()
	svc := NewFormulationService(fs, engine.New(0))

	rec := validSurveyRecord()
	rec.Age = 12
	created, vr, err := svc.SubmitSurvey(context.Background(), rec)
	if err != nil {
		t.Fatalf("SubmitSurvey: %v", err)
	}
	if vr.IsValid || created != nil {
		t.Fatalf("invalid record must not persist: %+v", created)
	}
	if len(fs.surveys) != 0 {
		t.Fatalf("store not empty: %d", len(fs.surveys))
	}
}

func TestSubmitSurvey_StoreErrorPropagates(t *testing.T) {
	fs := newFakeStore()
	fs.createErr = errors.New("db down")
	svc := NewFormulationService(fs, engine.New(0))

	_, _, err := svc.SubmitSurvey(context.Background(), validSurveyRecord())
	if err == nil {
		t.Fatal("expected store error")
	}
}

func TestSubmitSurvey_AuditTrailFailureRemovesSurvey(t *testing.T) {
	fs := newFakeStore()
	fs.batchErr = errors.New("db down")
	svc := NewFormulationService(fs, engine.New(0))

	created, _, err := svc.SubmitSurvey(context.Background(), validSurveyRecord())
	if err == nil {
		t.Fatal("expected audit trail error")
	}
	if created != nil {
		t.Fatalf("no survey must be returned on failure: %+v", created)
	}
	if len(fs.surveys) != 0 {
		t.Fatalf("survey row left behind without its audit trail: %d", len(fs.surveys))
	}
}

func TestListConversions_UnknownSurvey(t *testing.T) {
	svc := NewFormulationService(newFakeStore(), engine.New(0))
	if _, err := svc.ListConversions(context.Background(), "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}
