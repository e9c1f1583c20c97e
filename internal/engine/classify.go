package engine

import "github.com/ionwell/formulation-service/internal/model"

// firstSignal reports whether seq carries a real signal: non-empty and its
// first element is not "none".
func firstSignal(seq []string) bool {
	return len(seq) > 0 && seq[0] != "none"
}

// Classify selects the use case by a fixed-priority decision tree; the
// first match wins and there is no scoring. The priority order encodes a
// clinical judgment (transient severe conditions dominate general fitness
// signals) and must not be reordered without domain sign-off.
//
// An explicit, valid usage override short-circuits the tree entirely so
// users can force a selection. Hangover is checked after sweat.
func Classify(rec model.SurveyRecord) model.UseCase {
	if model.ValidUseCase(rec.Usage) {
		return model.UseCase(rec.Usage)
	}
	if firstSignal(rec.SleepIssues) {
		return model.UseCaseBedtime
	}
	if firstSignal(rec.MenstrualSymptoms) {
		return model.UseCaseMenstrual
	}
	if (rec.SweatLevel == "heavy" || rec.SweatLevel == "excessive") &&
		(rec.WorkoutFrequency == "daily" || rec.WorkoutFrequency == "4-6-per-week") {
		return model.UseCaseSweat
	}
	if firstSignal(rec.HangoverSymptoms) {
		return model.UseCaseHangover
	}
	return model.UseCaseDaily
}
