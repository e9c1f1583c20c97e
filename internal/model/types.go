package model

import (
	"encoding/json"
	"time"
)

// Electrolyte identifies one of the four formulated electrolytes.
type Electrolyte string

const (
	Sodium    Electrolyte = "sodium"
	Potassium Electrolyte = "potassium"
	Magnesium Electrolyte = "magnesium"
	Calcium   Electrolyte = "calcium"
)

// Electrolytes lists all electrolytes in canonical order.
var Electrolytes = []Electrolyte{Sodium, Potassium, Magnesium, Calcium}

// IntakeFormat describes how an intake field value is encoded.
type IntakeFormat string

const (
	FormatLegacy  IntakeFormat = "legacy"
	FormatNumeric IntakeFormat = "numeric"
)

// ConversionSource tags a stored intake conversion with its origin.
type ConversionSource string

const (
	SourceLegacyEstimates ConversionSource = "LEGACY_INTAKE_ESTIMATES"
	SourceDirectNumeric   ConversionSource = "DIRECT_NUMERIC"
)

// UseCase is the clinical/lifestyle context a formulation targets.
type UseCase string

const (
	UseCaseBedtime   UseCase = "bedtime"
	UseCaseMenstrual UseCase = "menstrual"
	UseCaseSweat     UseCase = "sweat"
	UseCaseHangover  UseCase = "hangover"
	UseCaseDaily     UseCase = "daily"
)

// ValidUseCase reports whether s names one of the five use cases.
func ValidUseCase(s string) bool {
	switch UseCase(s) {
	case UseCaseBedtime, UseCaseMenstrual, UseCaseSweat, UseCaseHangover, UseCaseDaily:
		return true
	}
	return false
}

// ElectrolyteAmounts holds one mg quantity per electrolyte.
type ElectrolyteAmounts struct {
	Sodium    float64 `json:"sodium"`
	Potassium float64 `json:"potassium"`
	Magnesium float64 `json:"magnesium"`
	Calcium   float64 `json:"calcium"`
}

// Get returns the amount for e. Unknown electrolytes return 0.
func (a ElectrolyteAmounts) Get(e Electrolyte) float64 {
	switch e {
	case Sodium:
		return a.Sodium
	case Potassium:
		return a.Potassium
	case Magnesium:
		return a.Magnesium
	case Calcium:
		return a.Calcium
	}
	return 0
}

// With returns a copy of a with the amount for e replaced by v.
func (a ElectrolyteAmounts) With(e Electrolyte, v float64) ElectrolyteAmounts {
	switch e {
	case Sodium:
		a.Sodium = v
	case Potassium:
		a.Potassium = v
	case Magnesium:
		a.Magnesium = v
	case Calcium:
		a.Calcium = v
	}
	return a
}

// SurveyRecord is the flat survey input. Fields not supplied by the caller
// resolve to documented defaults before validation (see engine.ApplyDefaults).
type SurveyRecord struct {
	Age           int     `json:"age"`
	BiologicalSex string  `json:"biologicalSex"`
	Weight        float64 `json:"weight"`

	ActivityLevel    string `json:"activityLevel"`
	SweatLevel       string `json:"sweatLevel"`
	WorkoutFrequency string `json:"workoutFrequency"`
	WorkoutDuration  string `json:"workoutDuration"`
	WorkoutIntensity string `json:"workoutIntensity"`

	DailyGoals        []string `json:"dailyGoals,omitempty"`
	SleepGoals        []string `json:"sleepGoals,omitempty"`
	SleepIssues       []string `json:"sleepIssues,omitempty"`
	MenstrualSymptoms []string `json:"menstrualSymptoms,omitempty"`
	HangoverSymptoms  []string `json:"hangoverSymptoms,omitempty"`
	HangoverTiming    string   `json:"hangoverTiming,omitempty"`
	HealthConditions  []string `json:"healthConditions,omitempty"`

	SodiumIntake    string `json:"sodiumIntake"`
	PotassiumIntake string `json:"potassiumIntake"`
	MagnesiumIntake string `json:"magnesiumIntake"`
	CalciumIntake   string `json:"calciumIntake"`

	SodiumSupplement    float64 `json:"sodiumSupplement"`
	PotassiumSupplement float64 `json:"potassiumSupplement"`
	MagnesiumSupplement float64 `json:"magnesiumSupplement"`
	CalciumSupplement   float64 `json:"calciumSupplement"`

	WaterIntake float64 `json:"waterIntake"`

	// Usage optionally forces one of the five use cases.
	Usage string `json:"usage,omitempty"`
}

// IntakeField returns the raw intake string for e.
func (r SurveyRecord) IntakeField(e Electrolyte) string {
	switch e {
	case Sodium:
		return r.SodiumIntake
	case Potassium:
		return r.PotassiumIntake
	case Magnesium:
		return r.MagnesiumIntake
	case Calcium:
		return r.CalciumIntake
	}
	return ""
}

// SupplementField returns the supplemental mg for e.
func (r SurveyRecord) SupplementField(e Electrolyte) float64 {
	switch e {
	case Sodium:
		return r.SodiumSupplement
	case Potassium:
		return r.PotassiumSupplement
	case Magnesium:
		return r.MagnesiumSupplement
	case Calcium:
		return r.CalciumSupplement
	}
	return 0
}

// ValidationResult reports blocking errors and non-blocking warnings.
// IsValid holds exactly when Errors is empty; warnings never affect it.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// IntakeConversion is one normalized intake field with its provenance.
type IntakeConversion struct {
	Electrolyte   Electrolyte      `json:"electrolyte"`
	OriginalValue string           `json:"originalValue"`
	Format        IntakeFormat     `json:"originalFormat"`
	Mg            float64          `json:"convertedMg"`
	Source        ConversionSource `json:"conversionSource"`
	// Fallback is set when the value could not be parsed and the
	// documented default was substituted.
	Fallback bool `json:"fallback,omitempty"`
}

// IntakeAnalysis is the Normalizer's full view of a record's intake fields.
type IntakeAnalysis struct {
	Formats     map[Electrolyte]IntakeFormat `json:"formats"`
	Converted   ElectrolyteAmounts           `json:"converted"`
	Conversions []IntakeConversion           `json:"conversions"`
	Warnings    []string                     `json:"warnings,omitempty"`
}

// Provenance captures where a formulation came from.
type Provenance struct {
	GeneratedAt        time.Time `json:"generatedAt"`
	Age                int       `json:"age"`
	Weight             float64   `json:"weight"`
	UseCase            UseCase   `json:"useCase"`
	AppliedMultipliers []string  `json:"appliedMultipliers"`
}

// FormulationMetadata carries everything around the per-serving amounts.
type FormulationMetadata struct {
	ServingSize               string                 `json:"servingSize"`
	RecommendedServingsPerDay int                    `json:"recommendedServingsPerDay"`
	OptimalIntake             ElectrolyteAmounts     `json:"optimalIntake"`
	CurrentIntake             ElectrolyteAmounts     `json:"currentIntake"`
	Deficits                  ElectrolyteAmounts     `json:"deficits"`
	ElectrolyteForms          map[Electrolyte]string `json:"electrolyteForms"`
	Notes                     string                 `json:"notes"`
	Recommendations           []string               `json:"recommendations"`
	Provenance                Provenance             `json:"provenance"`
}

// FormulationResult is the engine's final output.
type FormulationResult struct {
	FormulationPerServing ElectrolyteAmounts  `json:"formulationPerServing"`
	UseCase               UseCase             `json:"useCase"`
	Metadata              FormulationMetadata `json:"metadata"`
}

// BatchConvertItem is one entry in a batch conversion request.
type BatchConvertItem struct {
	ID          string `json:"id"`
	Value       string `json:"value"`
	Electrolyte string `json:"electrolyte"`
}

// BatchConvertResult is the per-item outcome; a failed item never aborts
// the rest of the batch.
type BatchConvertResult struct {
	ID      string `json:"id"`
	Input   string `json:"input"`
	Output  *MgOut `json:"output,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// MgOut wraps a converted milligram value.
type MgOut struct {
	Mg float64 `json:"mg"`
}

// Survey is a stored survey submission with its result snapshot and the
// derived scalar columns used for indexing.
type Survey struct {
	SurveyID      string             `json:"surveyId"`
	Record        json.RawMessage    `json:"record"`
	Age           int                `json:"age"`
	BiologicalSex string             `json:"biologicalSex"`
	Weight        float64            `json:"weight"`
	ActivityLevel string             `json:"activityLevel"`
	SweatLevel    string             `json:"sweatLevel"`
	UseCase       UseCase            `json:"useCase"`
	Result        *FormulationResult `json:"result,omitempty"`
	CreationTime  time.Time          `json:"creationTime"`
}
