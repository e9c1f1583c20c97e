package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ionwell/formulation-service/internal/model"
	"github.com/ionwell/formulation-service/internal/store"
)

// schema is applied on open; SQLite is the local/dev driver so the store
// bootstraps itself instead of relying on external migrations.
const schema = `
CREATE TABLE IF NOT EXISTS surveys (
    survey_id      TEXT PRIMARY KEY,
    record         TEXT NOT NULL,
    age            INTEGER NOT NULL,
    biological_sex TEXT NOT NULL,
    weight         REAL NOT NULL,
    activity_level TEXT NOT NULL,
    sweat_level    TEXT NOT NULL,
    use_case       TEXT NOT NULL,
    result         TEXT,
    creation_time  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS survey_conversions (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    survey_id         TEXT NOT NULL REFERENCES surveys(survey_id) ON DELETE CASCADE,
    electrolyte       TEXT NOT NULL,
    original_value    TEXT NOT NULL,
    original_format   TEXT NOT NULL,
    converted_mg      REAL NOT NULL,
    conversion_source TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_survey_conversions_survey ON survey_conversions(survey_id);
`

// New opens a SQLite-backed store at path, creating the schema if needed.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires a store over an existing connection (used by factory and tests).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Surveys() store.Surveys         { return &surveys{db: s.db} }
func (s *sqliteStore) Conversions() store.Conversions { return &conversions{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
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
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO surveys (survey_id, record, age, biological_sex, weight, activity_level, sweat_level, use_case, result, creation_time)
        VALUES (?,?,?,?,?,?,?,?,?,?)
    `, id, string(m.Record), m.Age, m.BiologicalSex, m.Weight, m.ActivityLevel, m.SweatLevel, string(m.UseCase), resultJSON, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.SurveyID = id
	out.CreationTime = now
	return &out, nil
}

func (s *surveys) Get(ctx context.Context, surveyID string) (*model.Survey, error) {
	var out model.Survey
	var record string
	var result []byte
	var useCase string
	row := s.db.QueryRowContext(ctx, `
        SELECT survey_id, record, age, biological_sex, weight, activity_level, sweat_level, use_case, result, creation_time
        FROM surveys WHERE survey_id=?
    `, surveyID)
	err := row.Scan(&out.SurveyID, &record, &out.Age, &out.BiologicalSex, &out.Weight,
		&out.ActivityLevel, &out.SweatLevel, &useCase, &result, &out.CreationTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out.Record = json.RawMessage(record)
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM surveys WHERE survey_id=?`, surveyID)
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
            VALUES (?,?,?,?,?,?)
        `, surveyID, string(r.Electrolyte), r.OriginalValue, string(r.Format), r.Mg, string(r.Source)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (c *conversions) ListBySurvey(ctx context.Context, surveyID string) ([]model.IntakeConversion, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT electrolyte, original_value, original_format, converted_mg, conversion_source
        FROM survey_conversions WHERE survey_id=? ORDER BY id
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
