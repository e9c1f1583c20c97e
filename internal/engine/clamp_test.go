package engine

import (
	"testing"

	"github.com/ionwell/formulation-service/internal/model"
)

func TestClamp_ForcesAmountsIntoBands(t *testing.T) {
	extreme := model.ElectrolyteAmounts{Sodium: 10000, Potassium: 0, Magnesium: 10000, Calcium: 0}
	for uc, bands := range safetyBands {
		got := Clamp(extreme, uc)
		for _, e := range model.Electrolytes {
			b := bands[e]
			if v := got.Get(e); v < b.Min || v > b.Max {
				t.Fatalf("%s %s = %v outside [%v,%v]", uc, e, v, b.Min, b.Max)
			}
		}
	}
}

func TestClamp_InBandAmountsUntouched(t *testing.T) {
	in := model.ElectrolyteAmounts{Sodium: 600, Potassium: 400, Magnesium: 200, Calcium: 200}
	// ratio 1.0 sits inside the daily band [0.5, 1.5].
	if got := Clamp(in, model.UseCaseDaily); got != in {
		t.Fatalf("got %+v, want unchanged %+v", got, in)
	}
}

func TestClamp_LowRatioPullsCalciumTowardTarget(t *testing.T) {
	in := model.ElectrolyteAmounts{Sodium: 500, Potassium: 400, Magnesium: 300, Calcium: 60}
	got := Clamp(in, model.UseCaseDaily)
	// ratio 0.2 < 0.5: calcium moves to magnesium * target 1.0.
	if !almostEqual(got.Calcium, 300) {
		t.Fatalf("calcium = %v, want 300", got.Calcium)
	}
	if !almostEqual(got.Magnesium, 300) {
		t.Fatalf("magnesium must not move, got %v", got.Magnesium)
	}
}

func TestClamp_HighRatioPullsCalciumDown(t *testing.T) {
	in := model.ElectrolyteAmounts{Sodium: 300, Potassium: 300, Magnesium: 350, Calcium: 500}
	got := Clamp(in, model.UseCaseBedtime)
	// ratio 1.43 > 1.0: calcium moves to 350 * 0.6 = 210.
	if !almostEqual(got.Calcium, 210) {
		t.Fatalf("calcium = %v, want 210", got.Calcium)
	}
}

func TestClamp_RatioAdjustmentRespectsSafetyBand(t *testing.T) {
	// Calcium lands below the menstrual floor after ratio adjustment input;
	// the band must win over the ratio target.
	in := model.ElectrolyteAmounts{Sodium: 400, Potassium: 400, Magnesium: 100, Calcium: 30}
	got := Clamp(in, model.UseCaseMenstrual)
	b := safetyBands[model.UseCaseMenstrual][model.Calcium]
	if got.Calcium < b.Min || got.Calcium > b.Max {
		t.Fatalf("calcium = %v outside band [%v,%v]", got.Calcium, b.Min, b.Max)
	}
}
