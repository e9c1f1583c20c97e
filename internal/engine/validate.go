package engine

import (
	"fmt"
	"strconv"

	"github.com/ionwell/formulation-service/internal/model"
)

// ApplyDefaults fills unset fields with their documented defaults.
// Defaulting always precedes validation.
func ApplyDefaults(rec model.SurveyRecord) model.SurveyRecord {
	if rec.Age == 0 {
		rec.Age = defaultAge
	}
	if rec.BiologicalSex == "" {
		rec.BiologicalSex = defaultBiologicalSex
	}
	if rec.Weight == 0 {
		rec.Weight = defaultWeight
	}
	if rec.ActivityLevel == "" {
		rec.ActivityLevel = defaultActivityLevel
	}
	if rec.SweatLevel == "" {
		rec.SweatLevel = defaultSweatLevel
	}
	if rec.SodiumIntake == "" {
		rec.SodiumIntake = defaultIntakeBucket
	}
	if rec.PotassiumIntake == "" {
		rec.PotassiumIntake = defaultIntakeBucket
	}
	if rec.MagnesiumIntake == "" {
		rec.MagnesiumIntake = defaultIntakeBucket
	}
	if rec.CalciumIntake == "" {
		rec.CalciumIntake = defaultIntakeBucket
	}
	return rec
}

// validIntakeValue reports whether v is a legacy bucket token or a
// parseable non-negative number.
func validIntakeValue(v string) bool {
	if v == "" {
		return true
	}
	if DetectFormat(v) == model.FormatLegacy {
		return true
	}
	n, err := strconv.ParseFloat(v, 64)
	return err == nil && n >= 0
}

// Validate checks a (defaulted) record. All checks are field-local; errors
// are emitted in field declaration order. Warnings never affect IsValid.
func Validate(rec model.SurveyRecord) model.ValidationResult {
	var errs, warns []string

	if rec.Age < minAge || rec.Age > maxAge {
		errs = append(errs, fmt.Sprintf("age must be between %d and %d, got %d", minAge, maxAge, rec.Age))
	}
	if rec.BiologicalSex != "male" && rec.BiologicalSex != "female" {
		errs = append(errs, fmt.Sprintf("biologicalSex must be male or female, got %q", rec.BiologicalSex))
	}
	if rec.Weight < minWeight || rec.Weight > maxWeight {
		errs = append(errs, fmt.Sprintf("weight must be between %d and %d lb, got %g", minWeight, maxWeight, rec.Weight))
	}

	for _, e := range model.Electrolytes {
		if mg := rec.SupplementField(e); mg < 0 {
			errs = append(errs, fmt.Sprintf("%s supplement must not be negative, got %g", e, mg))
		}
	}

	for _, e := range model.Electrolytes {
		if v := rec.IntakeField(e); !validIntakeValue(v) {
			errs = append(errs, fmt.Sprintf("%s intake %q is neither a bucket token nor a non-negative number", e, v))
		}
	}

	for _, e := range model.Electrolytes {
		mg := rec.SupplementField(e)
		if ceiling := supplementCeilings[e]; mg > ceiling {
			warns = append(warns, fmt.Sprintf("%s supplement %gmg exceeds the %gmg safety ceiling", e, mg, ceiling))
		}
	}

	for _, e := range model.Electrolytes {
		v := rec.IntakeField(e)
		if v == "" || DetectFormat(v) != model.FormatNumeric {
			continue
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > numericServingWarnThreshold {
			warns = append(warns, fmt.Sprintf("%s intake of %g servings per week is unusually high", e, n))
		}
	}

	return model.ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}
