package store

import (
	"context"

	"github.com/ionwell/formulation-service/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Surveys() Surveys
	Conversions() Conversions
}

type Surveys interface {
	Create(ctx context.Context, s *model.Survey) (*model.Survey, error)
	Get(ctx context.Context, surveyID string) (*model.Survey, error)
	Delete(ctx context.Context, surveyID string) error
}

// Conversions is the per-survey intake conversion audit trail, one row per
// non-empty intake field.
type Conversions interface {
	CreateBatch(ctx context.Context, surveyID string, rows []model.IntakeConversion) error
	ListBySurvey(ctx context.Context, surveyID string) ([]model.IntakeConversion, error)
}
