package engine

import "github.com/ionwell/formulation-service/internal/model"

func clampValue(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Clamp forces each electrolyte independently into the use case's safety
// band, then nudges the calcium:magnesium ratio toward the target band by
// moving calcium only. Calcium is re-clamped afterwards: the safety band
// always wins over the ratio target.
func Clamp(amounts model.ElectrolyteAmounts, useCase model.UseCase) model.ElectrolyteAmounts {
	bands := safetyBands[useCase]
	for _, e := range model.Electrolytes {
		b := bands[e]
		amounts = amounts.With(e, clampValue(amounts.Get(e), b.Min, b.Max))
	}

	rb := calciumMagnesiumRatios[useCase]
	if amounts.Magnesium > 0 {
		ratio := amounts.Calcium / amounts.Magnesium
		if ratio < rb.Min || ratio > rb.Max {
			amounts.Calcium = amounts.Magnesium * rb.Target
			b := bands[model.Calcium]
			amounts.Calcium = clampValue(amounts.Calcium, b.Min, b.Max)
		}
	}
	return amounts
}
