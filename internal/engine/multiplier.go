package engine

import (
	"fmt"

	"github.com/ionwell/formulation-service/internal/model"
)

// appliedMultiplier is one matched (predicate, map) pair in the ordered
// reduction. The label feeds the provenance trace.
type appliedMultiplier struct {
	label string
	m     multiplierMap
}

// applicableMultipliers collects every matched axis in a fixed order:
// activity, daily goals, sleep goals, workout duration/intensity (sweat
// only), hangover timing/symptoms (hangover only), health conditions.
// New axes slot into this list without touching the reducer below.
func applicableMultipliers(useCase model.UseCase, rec model.SurveyRecord) []appliedMultiplier {
	var out []appliedMultiplier
	add := func(label string, m multiplierMap, ok bool) {
		if ok && len(m) > 0 {
			out = append(out, appliedMultiplier{label: label, m: m})
		}
	}

	m, ok := activityMultipliers[rec.ActivityLevel]
	add("activity:"+rec.ActivityLevel, m, ok)

	for _, g := range rec.DailyGoals {
		m, ok := goalMultipliers[g]
		add("goal:"+g, m, ok)
	}
	for _, g := range rec.SleepGoals {
		m, ok := sleepGoalMultipliers[g]
		add("sleep-goal:"+g, m, ok)
	}

	if useCase == model.UseCaseSweat {
		m, ok := workoutDurationMultipliers[rec.WorkoutDuration]
		add("workout-duration:"+rec.WorkoutDuration, m, ok)
		m, ok = workoutIntensityMultipliers[rec.WorkoutIntensity]
		add("workout-intensity:"+rec.WorkoutIntensity, m, ok)
	}

	if useCase == model.UseCaseHangover {
		m, ok := hangoverTimingMultipliers[rec.HangoverTiming]
		add("hangover-timing:"+rec.HangoverTiming, m, ok)
		for _, s := range rec.HangoverSymptoms {
			m, ok := hangoverSymptomMultipliers[s]
			add("hangover-symptom:"+s, m, ok)
		}
	}

	for _, c := range rec.HealthConditions {
		m, ok := conditionMultipliers[c]
		add("condition:"+c, m, ok)
	}

	return out
}

// Compose builds the pre-clamp per-serving target: baseline, plus the flat
// sweat-level sodium addition, then the product of every applicable
// multiplier per electrolyte, then condition hard ceilings. Full float
// precision is kept throughout; rounding happens only at assembly.
// The returned trace lists the applied adjustments in order.
func Compose(useCase model.UseCase, rec model.SurveyRecord) (model.ElectrolyteAmounts, []string) {
	amounts := baselines[useCase]
	var trace []string

	if add, ok := sweatAdditions[rec.SweatLevel]; ok && add > 0 {
		amounts.Sodium += add
		trace = append(trace, fmt.Sprintf("sweat-addition:%s:+%.0fmg sodium", rec.SweatLevel, add))
	}

	applied := applicableMultipliers(useCase, rec)
	for _, e := range model.Electrolytes {
		factor := 1.0
		for _, am := range applied {
			if f, ok := am.m[e]; ok {
				factor *= f
			}
		}
		amounts = amounts.With(e, amounts.Get(e)*factor)
	}
	for _, am := range applied {
		trace = append(trace, am.label)
	}

	for _, c := range rec.HealthConditions {
		ceilings, ok := conditionCeilings[c]
		if !ok {
			continue
		}
		for _, e := range model.Electrolytes {
			limit, ok := ceilings[e]
			if !ok || amounts.Get(e) <= limit {
				continue
			}
			amounts = amounts.With(e, limit)
			trace = append(trace, fmt.Sprintf("ceiling:%s:%s<=%.0fmg", c, e, limit))
		}
	}

	return amounts, trace
}
