package engine

import (
	"fmt"
	"strconv"

	"github.com/ionwell/formulation-service/internal/model"
)

// Conversion is the normalizer's internal result: a milligram value plus an
// optional warning describing a fallback. The no-throw contract of the
// outer API is kept, but the fallback stays observable.
type Conversion struct {
	Mg       float64
	Format   model.IntakeFormat
	Source   model.ConversionSource
	Fallback bool
	Warning  string
}

// ConvertIntake converts a single intake field for electrolyte e.
// Empty values and unparseable numeric values resolve to the documented
// bucket-"7" default; only the unparseable case carries a warning.
func (eng *Engine) ConvertIntake(value string, e model.Electrolyte) (Conversion, error) {
	table, ok := legacyIntakeEstimates[e]
	if !ok {
		return Conversion{}, fmt.Errorf("unknown electrolyte %q", e)
	}

	if value == "" {
		return Conversion{
			Mg:     table[defaultIntakeBucket],
			Format: model.FormatLegacy,
			Source: model.SourceLegacyEstimates,
		}, nil
	}

	format := DetectFormat(value)
	if format == model.FormatLegacy {
		return Conversion{
			Mg:     table[value],
			Format: model.FormatLegacy,
			Source: model.SourceLegacyEstimates,
		}, nil
	}

	key := string(e) + "|" + value
	if mg, ok := eng.cache.get(key); ok {
		return Conversion{Mg: mg, Format: model.FormatNumeric, Source: model.SourceDirectNumeric}, nil
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		return Conversion{
			Mg:       table[defaultIntakeBucket],
			Format:   model.FormatNumeric,
			Source:   model.SourceLegacyEstimates,
			Fallback: true,
			Warning:  fmt.Sprintf("%s intake %q is not a valid serving count; using moderate default", e, value),
		}, nil
	}

	mg := baseIntake[e] + n*perServingMg[e]
	eng.cache.put(key, mg)
	return Conversion{Mg: mg, Format: model.FormatNumeric, Source: model.SourceDirectNumeric}, nil
}

// ConvertAllIntakes normalizes all four intake fields independently; there
// is no cross-electrolyte coupling at this stage.
func (eng *Engine) ConvertAllIntakes(rec model.SurveyRecord) model.IntakeAnalysis {
	analysis := model.IntakeAnalysis{
		Formats: make(map[model.Electrolyte]model.IntakeFormat, len(model.Electrolytes)),
	}
	for _, e := range model.Electrolytes {
		raw := rec.IntakeField(e)
		conv, err := eng.ConvertIntake(raw, e)
		if err != nil {
			// Unreachable for the four known electrolytes.
			continue
		}
		analysis.Formats[e] = conv.Format
		analysis.Converted = analysis.Converted.With(e, conv.Mg)
		if raw != "" {
			analysis.Conversions = append(analysis.Conversions, model.IntakeConversion{
				Electrolyte:   e,
				OriginalValue: raw,
				Format:        conv.Format,
				Mg:            conv.Mg,
				Source:        conv.Source,
				Fallback:      conv.Fallback,
			})
		}
		if conv.Warning != "" {
			analysis.Warnings = append(analysis.Warnings, conv.Warning)
		}
	}
	return analysis
}
