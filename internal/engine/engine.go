// Package engine implements the formulation calculation pipeline: intake
// normalization, validation, use-case classification, multiplier
// composition, safety clamping and result assembly. The engine is a pure
// function of its input and is safe for unlimited concurrent use; the only
// shared state is the optional bounded memo cache, which never affects
// output.
package engine

import (
	"fmt"

	"github.com/ionwell/formulation-service/internal/model"
)

// Engine runs formulation calculations. The zero value works; New
// additionally wires the normalizer's memo cache.
type Engine struct {
	cache *memoCache
}

// New returns an Engine with a conversion memo cache of the given
// capacity. A capacity of zero disables the cache.
func New(cacheCapacity int) *Engine {
	return &Engine{cache: newMemoCache(cacheCapacity)}
}

// Calculate runs the full pipeline. When the record fails validation the
// result is nil and the ValidationResult carries the blocking errors; on
// success the ValidationResult still carries any non-blocking warnings.
func (eng *Engine) Calculate(rec model.SurveyRecord) (*model.FormulationResult, model.ValidationResult) {
	rec = ApplyDefaults(rec)

	vr := Validate(rec)
	if !vr.IsValid {
		return nil, vr
	}

	analysis := eng.ConvertAllIntakes(rec)
	vr.Warnings = append(vr.Warnings, analysis.Warnings...)

	useCase := Classify(rec)
	composed, trace := Compose(useCase, rec)
	clamped := Clamp(composed, useCase)
	result := Assemble(useCase, clamped, rec, analysis, trace)
	return &result, vr
}

// ValidationReport is the validate-only response: validation outcome plus
// the normalizer's view, without composing a formulation.
type ValidationReport struct {
	Valid     bool                                     `json:"valid"`
	Errors    []string                                 `json:"errors,omitempty"`
	Warnings  []string                                 `json:"warnings,omitempty"`
	Formats   map[model.Electrolyte]model.IntakeFormat `json:"formats"`
	Converted model.ElectrolyteAmounts                 `json:"converted"`
}

// ValidateOnly skips the multiplier and clamp stages and reports formats,
// converted mg and warnings alongside the validation outcome.
func (eng *Engine) ValidateOnly(rec model.SurveyRecord) ValidationReport {
	rec = ApplyDefaults(rec)
	vr := Validate(rec)
	analysis := eng.ConvertAllIntakes(rec)
	return ValidationReport{
		Valid:     vr.IsValid,
		Errors:    vr.Errors,
		Warnings:  append(vr.Warnings, analysis.Warnings...),
		Formats:   analysis.Formats,
		Converted: analysis.Converted,
	}
}

// Analyze exposes the normalizer's full per-field view, used when
// persisting the conversion audit trail.
func (eng *Engine) Analyze(rec model.SurveyRecord) model.IntakeAnalysis {
	return eng.ConvertAllIntakes(ApplyDefaults(rec))
}

// ConvertBatch converts an ordered sequence of items with partial-failure
// semantics: one item's failure never aborts the rest, and the result is
// always the same length and order as the input.
func (eng *Engine) ConvertBatch(items []model.BatchConvertItem) []model.BatchConvertResult {
	out := make([]model.BatchConvertResult, 0, len(items))
	for _, item := range items {
		res := model.BatchConvertResult{ID: item.ID, Input: item.Value}
		conv, err := eng.ConvertIntake(item.Value, model.Electrolyte(item.Electrolyte))
		if err != nil {
			res.Error = fmt.Sprintf("unknown electrolyte %q", item.Electrolyte)
		} else {
			res.Output = &model.MgOut{Mg: conv.Mg}
			res.Success = true
		}
		out = append(out, res)
	}
	return out
}
