package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/ionwell/formulation-service/internal/api/respond"
	"github.com/ionwell/formulation-service/internal/api/validate"
	"github.com/ionwell/formulation-service/internal/model"
	"github.com/ionwell/formulation-service/internal/services"
)

// SurveyHandler exposes the persisting survey surfaces.
type SurveyHandler struct {
	svc *services.FormulationService
}

func NewSurveyHandler(svc *services.FormulationService) *SurveyHandler {
	return &SurveyHandler{svc: svc}
}

// SubmitSurvey POST /v0/surveys
func (h *SurveyHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	var rec model.SurveyRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	survey, vr, err := h.svc.SubmitSurvey(r.Context(), rec)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if survey == nil {
		respond.WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"success":    false,
			"validation": vr,
		})
		return
	}
	respond.WriteJSON(w, http.StatusCreated, survey)
}

// GetSurvey GET /v0/surveys/{surveyId}
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	if err := validate.SurveyID(surveyID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	survey, err := h.svc.GetSurvey(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "survey not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, survey)
}

// ListConversions GET /v0/surveys/{surveyId}/conversions
func (h *SurveyHandler) ListConversions(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	if err := validate.SurveyID(surveyID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	rows, err := h.svc.ListConversions(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "survey not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"conversions": rows,
		"count":       len(rows),
	})
}
