package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/numjklpp1/parts-management-pro/internal/models"
	"github.com/numjklpp1/parts-management-pro/internal/services"
	"github.com/numjklpp1/parts-management-pro/pkg/utils"
)

// AdvisoryHandler serves the language-model panels. These endpoints
// always answer 200 with text; provider failures already degraded to
// placeholder strings inside the service.
type AdvisoryHandler struct {
	Advisory  *services.AdvisoryService
	Inventory *services.InventoryService
}

func NewAdvisoryHandler(advisory *services.AdvisoryService, inventory *services.InventoryService) *AdvisoryHandler {
	return &AdvisoryHandler{Advisory: advisory, Inventory: inventory}
}

func (h *AdvisoryHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	text := h.Advisory.Analyze(r.Context(), h.Inventory.Records())
	utils.JSON(w, http.StatusOK, map[string]string{"analysis": text})
}

type suggestRequest struct {
	Category models.PartCategory `json:"category" validate:"required"`
	Name     string              `json:"name" validate:"required"`
}

func (h *AdvisoryHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	text := h.Advisory.Suggest(r.Context(), req.Category, req.Name)
	utils.JSON(w, http.StatusOK, map[string]string{"suggestion": text})
}
