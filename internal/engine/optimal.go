package engine

import "github.com/ionwell/formulation-service/internal/model"

// OptimalIntake is an RDA-style daily target computed from age, sex and
// weight. It is a sibling calculation to the per-serving formulation and
// reuses the same base intake constants as its floor.
func OptimalIntake(rec model.SurveyRecord) model.ElectrolyteAmounts {
	var out model.ElectrolyteAmounts

	// Sodium adequate intake drops with age.
	out.Sodium = baseIntake[model.Sodium]
	switch {
	case rec.Age > 70:
		out.Sodium = 1200
	case rec.Age > 50:
		out.Sodium = 1300
	}

	// Potassium scales with body mass; men run higher.
	out.Potassium = baseIntake[model.Potassium] + rec.Weight*2
	if rec.BiologicalSex == "male" {
		out.Potassium *= 1.15
	}

	// Magnesium scales roughly 1 mg per lb over the base.
	out.Magnesium = baseIntake[model.Magnesium] + rec.Weight
	if rec.BiologicalSex == "male" {
		out.Magnesium += 40
	}

	out.Calcium = baseIntake[model.Calcium] + 200
	if rec.Age > 50 {
		out.Calcium = 1200
	}

	return out
}

// CurrentIntake is the user's estimated daily intake: converted dietary
// intake plus reported supplements.
func CurrentIntake(converted model.ElectrolyteAmounts, rec model.SurveyRecord) model.ElectrolyteAmounts {
	for _, e := range model.Electrolytes {
		converted = converted.With(e, converted.Get(e)+rec.SupplementField(e))
	}
	return converted
}
