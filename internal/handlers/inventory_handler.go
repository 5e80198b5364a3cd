package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/numjklpp1/parts-management-pro/internal/inventory"
	"github.com/numjklpp1/parts-management-pro/internal/models"
	"github.com/numjklpp1/parts-management-pro/internal/services"
	"github.com/numjklpp1/parts-management-pro/pkg/utils"
)

var validate = validator.New()

type InventoryHandler struct {
	Service *services.InventoryService
}

func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{Service: service}
}

// writeServiceError maps service errors onto the wire: validation to
// 400, persistence (already rolled back) to 502, anything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		utils.Error(w, http.StatusBadRequest, verr.Error())
		return
	}
	var perr *services.PersistenceError
	if errors.As(err, &perr) {
		utils.Error(w, http.StatusBadGateway, perr.Error())
		return
	}
	utils.Error(w, http.StatusInternalServerError, err.Error())
}

func (h *InventoryHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{"records": h.Service.Records()})
}

func (h *InventoryHandler) SubmitRecord(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, result)
}

func (h *InventoryHandler) RefreshRecords(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Load(r.Context()); err != nil {
		writeServiceError(w, &services.PersistenceError{Err: err})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"records": h.Service.Records()})
}

func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	stage := inventory.Stage(r.URL.Query().Get("stage"))
	model := r.URL.Query().Get("model")
	if !inventory.ValidStage(stage) {
		utils.Error(w, http.StatusBadRequest, "unknown stage")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"stage": stage,
		"model": model,
		"stock": h.Service.Project(stage, model),
	})
}

func (h *InventoryHandler) GetStockSummary(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{"summary": h.Service.Summary()})
}

func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req models.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.Adjust(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, result)
}

func (h *InventoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.Dashboard())
}
