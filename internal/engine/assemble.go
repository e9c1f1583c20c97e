package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/ionwell/formulation-service/internal/model"
)

func roundAmounts(a model.ElectrolyteAmounts) model.ElectrolyteAmounts {
	for _, e := range model.Electrolytes {
		a = a.With(e, math.Round(a.Get(e)))
	}
	return a
}

// recommendedServingsPerDay is 2 for hangover, for sweat with daily
// workouts, and for extremely active users; otherwise 1.
func recommendedServingsPerDay(useCase model.UseCase, rec model.SurveyRecord) int {
	if useCase == model.UseCaseHangover {
		return 2
	}
	if useCase == model.UseCaseSweat && rec.WorkoutFrequency == "daily" {
		return 2
	}
	if rec.ActivityLevel == "extremely-active" {
		return 2
	}
	return 1
}

var useCaseNotes = map[model.UseCase]string{
	model.UseCaseDaily:     "Balanced daily electrolyte support.",
	model.UseCaseSweat:     "Formulated to replace heavy sweat losses around training.",
	model.UseCaseBedtime:   "Magnesium-forward blend to support sleep quality.",
	model.UseCaseMenstrual: "Supports fluid balance and cramp relief during menstruation.",
	model.UseCaseHangover:  "Aggressive rehydration blend for alcohol recovery.",
}

var useCaseRecommendations = map[model.UseCase]string{
	model.UseCaseDaily:     "Take one serving with a meal to support steady hydration.",
	model.UseCaseSweat:     "Drink one serving during or immediately after training.",
	model.UseCaseBedtime:   "Take your serving 30-60 minutes before bed.",
	model.UseCaseMenstrual: "Start a daily serving a few days before symptoms typically begin.",
	model.UseCaseHangover:  "Take one serving before sleep and another on waking.",
}

// buildRecommendations emits a deterministic, non-empty list seeded by the
// use case and any matched condition/activity flags.
func buildRecommendations(useCase model.UseCase, rec model.SurveyRecord, deficits model.ElectrolyteAmounts) []string {
	recs := []string{useCaseRecommendations[useCase]}

	for _, c := range rec.HealthConditions {
		switch c {
		case "hypertension":
			recs = append(recs, "Sodium is reduced for blood pressure management; review intake with your physician.")
		case "kidney-disease":
			recs = append(recs, "Amounts are capped for kidney health; confirm electrolyte supplementation with your nephrologist.")
		case "diabetes":
			recs = append(recs, "Magnesium is increased to support glucose metabolism.")
		case "heart-condition":
			recs = append(recs, "Potassium is emphasized for cardiac rhythm support; consult your cardiologist.")
		case "osteoporosis":
			recs = append(recs, "Calcium is increased for bone density support.")
		}
	}

	if rec.ActivityLevel == "very-active" || rec.ActivityLevel == "extremely-active" {
		recs = append(recs, "Split servings around training sessions for best absorption.")
	}
	if rec.WaterIntake > 0 && rec.WaterIntake < 8 {
		recs = append(recs, fmt.Sprintf("Increase plain water intake toward 8 glasses per day (currently %g).", rec.WaterIntake))
	}

	for _, e := range model.Electrolytes {
		if deficits.Get(e) > 0 {
			recs = append(recs, fmt.Sprintf("Your estimated %s intake runs below target; dietary sources can close the gap.", e))
			break
		}
	}
	return recs
}

// Assemble packages the clamped amounts into the final result. This is the
// only stage that rounds to whole milligrams.
func Assemble(useCase model.UseCase, amounts model.ElectrolyteAmounts, rec model.SurveyRecord, analysis model.IntakeAnalysis, trace []string) model.FormulationResult {
	perServing := roundAmounts(amounts)

	optimal := OptimalIntake(rec)
	current := CurrentIntake(analysis.Converted, rec)

	var deficits model.ElectrolyteAmounts
	for _, e := range model.Electrolytes {
		deficits = deficits.With(e, math.Max(0, math.Round(optimal.Get(e)-current.Get(e))))
	}

	return model.FormulationResult{
		FormulationPerServing: perServing,
		UseCase:               useCase,
		Metadata: model.FormulationMetadata{
			ServingSize:               servingSize,
			RecommendedServingsPerDay: recommendedServingsPerDay(useCase, rec),
			OptimalIntake:             roundAmounts(optimal),
			CurrentIntake:             roundAmounts(current),
			Deficits:                  deficits,
			ElectrolyteForms:          electrolyteForms,
			Notes:                     useCaseNotes[useCase],
			Recommendations:           buildRecommendations(useCase, rec, deficits),
			Provenance: model.Provenance{
				GeneratedAt:        time.Now().UTC(),
				Age:                rec.Age,
				Weight:             rec.Weight,
				UseCase:            useCase,
				AppliedMultipliers: trace,
			},
		},
	}
}
