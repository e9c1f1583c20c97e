package engine

import "github.com/ionwell/formulation-service/internal/model"

// Intake normalization constants. Base intake is the assumed dietary floor
// (mg/day) at bucket "0"; the weekly increment spans buckets "0".."14";
// per-serving mg converts one direct serving of a high-intake food.
var (
	baseIntake = map[model.Electrolyte]float64{
		model.Sodium:    1500,
		model.Potassium: 2000,
		model.Magnesium: 200,
		model.Calcium:   800,
	}
	weeklyIncrement = map[model.Electrolyte]float64{
		model.Sodium:    500,
		model.Potassium: 400,
		model.Magnesium: 100,
		model.Calcium:   300,
	}
	perServingMg = map[model.Electrolyte]float64{
		model.Sodium:    500,
		model.Potassium: 400,
		model.Magnesium: 100,
		model.Calcium:   300,
	}
)

// legacyBucketMidpoints maps the seven bucket tokens to the midpoint of the
// weekly serving range they represent.
var legacyBucketMidpoints = map[string]float64{
	"0":     0,
	"1-3":   2,
	"4-6":   5,
	"7":     7,
	"8-10":  9,
	"11-13": 12,
	"14":    14,
}

// legacyIntakeEstimates is precomputed once at init from the base/increment
// constants: base + (midpoint/7) * weeklyIncrement.
var legacyIntakeEstimates = func() map[model.Electrolyte]map[string]float64 {
	out := make(map[model.Electrolyte]map[string]float64, len(model.Electrolytes))
	for _, e := range model.Electrolytes {
		t := make(map[string]float64, len(legacyBucketMidpoints))
		for bucket, mid := range legacyBucketMidpoints {
			t[bucket] = baseIntake[e] + (mid/7.0)*weeklyIncrement[e]
		}
		out[e] = t
	}
	return out
}()

// defaultIntakeBucket is substituted for empty or unparseable intake fields.
const defaultIntakeBucket = "7"

// Supplement soft ceilings (mg); exceeding one is a warning, not an error.
var supplementCeilings = map[model.Electrolyte]float64{
	model.Sodium:    2000,
	model.Potassium: 1000,
	model.Magnesium: 500,
	model.Calcium:   1200,
}

// numericServingWarnThreshold flags implausibly high direct serving counts.
const numericServingWarnThreshold = 50

// Demographic validation bounds.
const (
	minAge    = 13
	maxAge    = 120
	minWeight = 80
	maxWeight = 400
)

// Record defaults applied before validation.
const (
	defaultAge           = 30
	defaultBiologicalSex = "female"
	defaultWeight        = 70
	defaultActivityLevel = "moderately-active"
	defaultSweatLevel    = "moderate"
)

// baselines are the unmodified per-serving starting targets per use case.
var baselines = map[model.UseCase]model.ElectrolyteAmounts{
	model.UseCaseDaily:     {Sodium: 500, Potassium: 400, Magnesium: 150, Calcium: 100},
	model.UseCaseSweat:     {Sodium: 800, Potassium: 500, Magnesium: 150, Calcium: 100},
	model.UseCaseBedtime:   {Sodium: 200, Potassium: 300, Magnesium: 250, Calcium: 150},
	model.UseCaseMenstrual: {Sodium: 400, Potassium: 450, Magnesium: 250, Calcium: 200},
	model.UseCaseHangover:  {Sodium: 900, Potassium: 600, Magnesium: 150, Calcium: 100},
}

// sweatAdditions are flat sodium additions (mg) by sweat level, applied
// before the multiplicative stage. The table is keyed per level only; the
// addition targets sodium, matching how the estimates are derived from
// sweat sodium-loss studies.
var sweatAdditions = map[string]float64{
	"minimal":   0,
	"light":     300,
	"moderate":  700,
	"heavy":     1200,
	"excessive": 1800,
}

// multiplierMap is a partial per-electrolyte multiplier; electrolytes it
// does not name keep multiplier 1.0.
type multiplierMap map[model.Electrolyte]float64

// activityMultipliers is the single source of truth for valid activity
// levels.
var activityMultipliers = map[string]multiplierMap{
	"sedentary":         {model.Sodium: 0.8, model.Potassium: 0.9, model.Magnesium: 0.9},
	"lightly-active":    {model.Sodium: 0.9, model.Potassium: 0.95},
	"moderately-active": {},
	"very-active":       {model.Sodium: 1.2, model.Potassium: 1.1, model.Magnesium: 1.1},
	"extremely-active":  {model.Sodium: 1.4, model.Potassium: 1.2, model.Magnesium: 1.15},
}

// goalMultipliers covers the dailyGoals axis.
var goalMultipliers = map[string]multiplierMap{
	"hydration":       {model.Sodium: 1.2, model.Potassium: 1.1},
	"energy":          {model.Potassium: 1.15, model.Magnesium: 1.1},
	"focus":           {model.Magnesium: 1.15},
	"muscle-recovery": {model.Potassium: 1.2, model.Magnesium: 1.2},
	"bone-health":     {model.Magnesium: 1.1, model.Calcium: 1.3},
}

// sleepGoalMultipliers covers the sleepGoals axis (bedtime use case).
var sleepGoalMultipliers = map[string]multiplierMap{
	"fall-asleep-faster": {model.Magnesium: 1.3},
	"stay-asleep":        {model.Magnesium: 1.2, model.Calcium: 1.1},
	"wake-rested":        {model.Magnesium: 1.1},
}

// Workout axes apply only to the sweat use case.
var workoutDurationMultipliers = map[string]multiplierMap{
	"under-30": {model.Sodium: 0.9, model.Potassium: 0.9},
	"30-60":    {},
	"60-90":    {model.Sodium: 1.15, model.Potassium: 1.1, model.Magnesium: 1.05},
	"over-90":  {model.Sodium: 1.3, model.Potassium: 1.2, model.Magnesium: 1.1},
}

var workoutIntensityMultipliers = map[string]multiplierMap{
	"light":    {model.Sodium: 0.9, model.Potassium: 0.95},
	"moderate": {},
	"vigorous": {model.Sodium: 1.2, model.Potassium: 1.1, model.Magnesium: 1.05},
}

// Hangover axes apply only to the hangover use case.
var hangoverTimingMultipliers = map[string]multiplierMap{
	"before-drinking": {model.Sodium: 0.9, model.Potassium: 0.9},
	"while-drinking":  {model.Sodium: 1.1, model.Potassium: 1.1},
	"morning-after":   {model.Sodium: 1.3, model.Potassium: 1.2, model.Magnesium: 1.1},
}

var hangoverSymptomMultipliers = map[string]multiplierMap{
	"headache":  {model.Magnesium: 1.2},
	"nausea":    {model.Sodium: 1.1, model.Potassium: 1.15},
	"fatigue":   {model.Potassium: 1.2},
	"dizziness": {model.Sodium: 1.25},
	"dry-mouth": {model.Sodium: 1.15},
}

// conditionMultipliers covers the healthConditions axis.
var conditionMultipliers = map[string]multiplierMap{
	"hypertension":    {model.Sodium: 0.7, model.Potassium: 1.1},
	"kidney-disease":  {model.Sodium: 0.8, model.Potassium: 0.7, model.Magnesium: 0.8},
	"diabetes":        {model.Magnesium: 1.2},
	"heart-condition": {model.Sodium: 0.8, model.Potassium: 1.1},
	"osteoporosis":    {model.Calcium: 1.3},
}

// conditionCeilings are hard per-electrolyte caps imposed by a condition,
// applied after all multipliers and before the safety clamp.
var conditionCeilings = map[string]map[model.Electrolyte]float64{
	"kidney-disease": {model.Calcium: 1000},
	"hypertension":   {model.Sodium: 1500},
}

// safetyBand is a per-serving [Min,Max] mg range.
type safetyBand struct{ Min, Max float64 }

// safetyBands is the fixed five-use-case by four-electrolyte clamp table.
var safetyBands = map[model.UseCase]map[model.Electrolyte]safetyBand{
	model.UseCaseDaily: {
		model.Sodium:    {300, 800},
		model.Potassium: {200, 600},
		model.Magnesium: {50, 300},
		model.Calcium:   {50, 400},
	},
	model.UseCaseSweat: {
		model.Sodium:    {500, 1500},
		model.Potassium: {200, 800},
		model.Magnesium: {50, 350},
		model.Calcium:   {50, 400},
	},
	model.UseCaseBedtime: {
		model.Sodium:    {100, 500},
		model.Potassium: {100, 500},
		model.Magnesium: {100, 400},
		model.Calcium:   {50, 500},
	},
	model.UseCaseMenstrual: {
		model.Sodium:    {200, 700},
		model.Potassium: {200, 700},
		model.Magnesium: {100, 400},
		model.Calcium:   {100, 500},
	},
	model.UseCaseHangover: {
		model.Sodium:    {500, 1500},
		model.Potassium: {300, 800},
		model.Magnesium: {50, 300},
		model.Calcium:   {50, 300},
	},
}

// ratioBand bounds the calcium:magnesium ratio; when the clamped amounts
// fall outside [Min,Max], calcium is moved toward Target*magnesium.
type ratioBand struct{ Min, Max, Target float64 }

var calciumMagnesiumRatios = map[model.UseCase]ratioBand{
	model.UseCaseDaily:     {Min: 0.5, Max: 1.5, Target: 1.0},
	model.UseCaseSweat:     {Min: 0.4, Max: 1.5, Target: 0.8},
	model.UseCaseBedtime:   {Min: 0.4, Max: 1.0, Target: 0.6},
	model.UseCaseMenstrual: {Min: 0.6, Max: 1.4, Target: 1.0},
	model.UseCaseHangover:  {Min: 0.4, Max: 1.5, Target: 0.8},
}

// Fixed assembly metadata.
const servingSize = "16 fl oz (473 ml)"

var electrolyteForms = map[model.Electrolyte]string{
	model.Sodium:    "sodium chloride",
	model.Potassium: "potassium citrate",
	model.Magnesium: "magnesium glycinate",
	model.Calcium:   "calcium citrate",
}
