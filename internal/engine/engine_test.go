package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionwell/formulation-service/internal/model"
)

func TestCalculate_EndToEndScenario(t *testing.T) {
	eng := New(128)
	rec := model.SurveyRecord{
		Age:             32,
		BiologicalSex:   "female",
		Weight:          145.5,
		ActivityLevel:   "moderately-active",
		SweatLevel:      "moderate",
		SodiumIntake:    "8-10",
		PotassiumIntake: "3.5",
		MagnesiumIntake: "7",
		CalciumIntake:   "12.8",
	}

	res, vr := eng.Calculate(rec)
	require.True(t, vr.IsValid, "errors: %v", vr.Errors)
	require.NotNil(t, res)
	assert.Equal(t, model.UseCaseDaily, res.UseCase)

	report := eng.ValidateOnly(rec)
	assert.Equal(t, model.FormatLegacy, report.Formats[model.Sodium])
	assert.Equal(t, model.FormatNumeric, report.Formats[model.Potassium])
	assert.Equal(t, model.FormatLegacy, report.Formats[model.Magnesium])
	assert.Equal(t, model.FormatNumeric, report.Formats[model.Calcium])
	assert.InDelta(t, 3400, report.Converted.Potassium, tol)
}

func TestCalculate_InvalidRecordReturnsOnlyValidation(t *testing.T) {
	eng := New(0)
	rec := model.SurveyRecord{Age: 12, BiologicalSex: "female", Weight: 145.5}
	res, vr := eng.Calculate(rec)
	assert.Nil(t, res, "no partial results on validation failure")
	assert.False(t, vr.IsValid)
	assert.NotEmpty(t, vr.Errors)
}

func TestCalculate_FinalAmountsAlwaysInSafetyBands(t *testing.T) {
	eng := New(0)
	// Multiplier composition would drive sodium far above the daily band.
	rec := model.SurveyRecord{
		Age:              40,
		BiologicalSex:    "male",
		Weight:           220,
		ActivityLevel:    "very-active",
		SweatLevel:       "excessive",
		DailyGoals:       []string{"hydration"},
		HealthConditions: []string{"hypertension"},
	}

	res, vr := eng.Calculate(rec)
	require.True(t, vr.IsValid, "errors: %v", vr.Errors)
	bands := safetyBands[res.UseCase]
	for _, e := range model.Electrolytes {
		v := res.FormulationPerServing.Get(e)
		b := bands[e]
		assert.GreaterOrEqual(t, v, b.Min, "%s below band", e)
		assert.LessOrEqual(t, v, b.Max, "%s above band", e)
	}
	assert.LessOrEqual(t, res.FormulationPerServing.Sodium, 800.0,
		"daily sodium must clamp to 800 even under hypertension + very-active")
}

func TestCalculate_AllUseCasesStayInBands(t *testing.T) {
	eng := New(0)
	base := model.SurveyRecord{Age: 30, BiologicalSex: "female", Weight: 150, SweatLevel: "excessive", ActivityLevel: "extremely-active"}
	for uc := range safetyBands {
		rec := base
		rec.Usage = string(uc)
		res, vr := eng.Calculate(rec)
		require.True(t, vr.IsValid)
		require.Equal(t, uc, res.UseCase)
		for _, e := range model.Electrolytes {
			b := safetyBands[uc][e]
			v := res.FormulationPerServing.Get(e)
			assert.GreaterOrEqual(t, v, b.Min, "%s %s", uc, e)
			assert.LessOrEqual(t, v, b.Max, "%s %s", uc, e)
		}
	}
}

func TestCalculate_MalformedIntakeBlocks(t *testing.T) {
	eng := New(0)
	rec := model.SurveyRecord{Age: 30, BiologicalSex: "female", Weight: 150, PotassiumIntake: "3,5"}
	res, vr := eng.Calculate(rec)
	// "3,5" is blocked by validation, not silently converted.
	assert.Nil(t, res)
	assert.False(t, vr.IsValid)
}

func TestValidateOnly_SkipsComposition(t *testing.T) {
	eng := New(0)
	rec := model.SurveyRecord{Age: 12} // invalid
	report := eng.ValidateOnly(rec)
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Errors)
	// Conversion still runs so callers can preview mg values.
	assert.InDelta(t, 2000, report.Converted.Sodium, tol)
}

func TestConvertBatch_PartialFailure(t *testing.T) {
	eng := New(0)
	items := []model.BatchConvertItem{
		{ID: "1", Value: "7", Electrolyte: "sodium"},
		{ID: "2", Value: "7", Electrolyte: "chromium"},
		{ID: "3", Value: "2.5", Electrolyte: "calcium"},
	}
	out := eng.ConvertBatch(items)
	require.Len(t, out, 3)

	assert.True(t, out[0].Success)
	assert.InDelta(t, 2000, out[0].Output.Mg, tol)

	assert.False(t, out[1].Success)
	assert.Nil(t, out[1].Output)
	assert.Contains(t, out[1].Error, "chromium")

	assert.True(t, out[2].Success)
	assert.InDelta(t, 800+2.5*300, out[2].Output.Mg, tol)
}

func TestConvertBatch_OrderPreserved(t *testing.T) {
	eng := New(0)
	items := []model.BatchConvertItem{
		{ID: "z", Value: "0", Electrolyte: "magnesium"},
		{ID: "a", Value: "14", Electrolyte: "magnesium"},
	}
	out := eng.ConvertBatch(items)
	require.Len(t, out, 2)
	assert.Equal(t, "z", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
}

func TestCalculate_ConcurrentCallsAgree(t *testing.T) {
	eng := New(64)
	rec := model.SurveyRecord{Age: 32, BiologicalSex: "female", Weight: 145.5, PotassiumIntake: "3.5"}

	want, vr := eng.Calculate(rec)
	require.True(t, vr.IsValid)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, gvr := eng.Calculate(rec)
			if !gvr.IsValid || got.FormulationPerServing != want.FormulationPerServing {
				t.Errorf("concurrent result diverged: %+v", got)
			}
		}()
	}
	wg.Wait()
}
