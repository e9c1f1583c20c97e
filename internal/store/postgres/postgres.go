package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ionwell/formulation-service/internal/model"
	"github.com/ionwell/formulation-service/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Surveys() store.Surveys         { return &surveys{db: s.db} }
func (s *pgStore) Conversions() store.Conversions { return &conversions{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
// This is a fast ping-only check since compose migrations handle schema setup.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil // No DSN configured, skip bootstrap
	}

	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.PingContext(ctx)
}

// --- Surveys ---

type surveys struct{ db *sql.DB }

func (s *surveys) Create(ctx context.Context, m *model.Survey) (*model.Survey, error) {
	id := m.SurveyID
	if id == "" {
		id = uuid.New().String()
	}
	var resultJSON []byte
	if m.Result != nil {
		b, err := json.Marshal(m.Result)
		if err != nil {
			return nil, err
		}
		resultJSON = b
	}
	var created time.Time
	row := s.db.QueryRowContext(ctx, `
        INSERT INTO surveys (survey_id, record, age, biological_sex, weight, activity_level, sweat_level, use_case, result)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING creation_time
    `, id, []byte(m.Record), m.Age, m.BiologicalSex, m.Weight, m.ActivityLevel, m.SweatLevel, string(m.UseCase), resultJSON)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.SurveyID = id
	out.CreationTime = created
	return &out, nil
}

func (s *surveys) Get(ctx context.Context, surveyID string) (*model.Survey, error) {
	var out model.Survey
	var record, result []byte
	var useCase string
	row := s.db.QueryRowContext(ctx, `
        SELECT survey_id, record, age, biological_sex, weight, activity_level, sweat_level, use_case, result, creation_time
        FROM surveys WHERE survey_id=$1
    `, surveyID)
	err := row.Scan(&out.SurveyID, &record, &out.Age, &out.BiologicalSex, &out.Weight,
		&out.ActivityLevel, &out.SweatLevel, &useCase, &result, &out.CreationTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out.Record = record
	out.UseCase = model.UseCase(useCase)
	if len(result) > 0 {
		var fr model.FormulationResult
		if err := json.Unmarshal(result, &fr); err != nil {
			return nil, err
		}
		out.Result = &fr
	}
	return &out, nil
}

func (s *surveys) Delete(ctx context.Context, surveyID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM surveys WHERE survey_id=$1`, surveyID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Conversions ---

type conversions struct{ db *sql.DB }

func (c *conversions) CreateBatch(ctx context.Context, surveyID string, rows []model.IntakeConversion) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO survey_conversions (survey_id, electrolyte, original_value, original_format, converted_mg, conversion_source)
            VALUES ($1,$2,$3,$4,$5,$6)
        `, surveyID, string(r.Electrolyte), r.OriginalValue, string(r.Format), r.Mg, string(r.Source)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (c *conversions) ListBySurvey(ctx context.Context, surveyID string) ([]model.IntakeConversion, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT electrolyte, original_value, original_format, converted_mg, conversion_source
        FROM survey_conversions WHERE survey_id=$1 ORDER BY id
    `, surveyID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.IntakeConversion
	for rows.Next() {
		var r model.IntakeConversion
		var e, f, src string
		if err := rows.Scan(&e, &r.OriginalValue, &f, &r.Mg, &src); err != nil {
			return nil, err
		}
		r.Electrolyte = model.Electrolyte(e)
		r.Format = model.IntakeFormat(f)
		r.Source = model.ConversionSource(src)
		out = append(out, r)
	}
	return out, rows.Err()
}
