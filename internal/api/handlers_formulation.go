package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/ionwell/formulation-service/internal/api/respond"
	"github.com/ionwell/formulation-service/internal/api/validate"
	"github.com/ionwell/formulation-service/internal/model"
	"github.com/ionwell/formulation-service/internal/services"
)

// FormulationHandler is a thin HTTP transport over FormulationService.
type FormulationHandler struct {
	svc *services.FormulationService
}

func NewFormulationHandler(svc *services.FormulationService) *FormulationHandler {
	return &FormulationHandler{svc: svc}
}

// Calculate POST /v0/formulations
func (h *FormulationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var rec model.SurveyRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	result, vr := h.svc.Calculate(rec)
	if result == nil {
		respond.WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"success":    false,
			"validation": vr,
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// Validate POST /v0/formulations/validate
func (h *FormulationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var rec model.SurveyRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.svc.ValidateOnly(rec))
}

// ConvertBatch POST /v0/intake/convert
func (h *FormulationHandler) ConvertBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []model.BatchConvertItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.BatchItems(req.Items); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	results := h.svc.ConvertBatch(req.Items)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}
