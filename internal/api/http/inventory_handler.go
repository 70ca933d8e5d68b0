package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"toolrental/internal/domain"
	"toolrental/internal/report"
	"toolrental/internal/service"
)

// AddToolRequest is the body of POST /api/v1/tools
type AddToolRequest struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Brand string `json:"brand"`
}

// ToolView is the JSON form of an inventory tool
type ToolView struct {
	Code              string `json:"code"`
	Type              string `json:"type"`
	Brand             string `json:"brand"`
	DailyRentalCharge string `json:"daily_rental_charge"`
	WeekdayCharge     bool   `json:"weekday_charge"`
	WeekendCharge     bool   `json:"weekend_charge"`
	HolidayCharge     bool   `json:"holiday_charge"`
}

func MapDomainToolToView(t domain.ToolSpec) ToolView {
	return ToolView{
		Code:              t.Code,
		Type:              string(t.Type),
		Brand:             t.Brand,
		DailyRentalCharge: report.FormatMoney(t.DailyCharge),
		WeekdayCharge:     t.Weekday,
		WeekendCharge:     t.Weekend,
		HolidayCharge:     t.Holiday,
	}
}

type InventoryHandler struct {
	inventorySvc service.InventoryService
}

func NewInventoryHandler(inventorySvc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

func (h *InventoryHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.inventorySvc.ListTools(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": lo.Map(tools, func(t domain.ToolSpec, _ int) ToolView { return MapDomainToolToView(t) }),
	})
}

func (h *InventoryHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	tool, err := h.inventorySvc.GetTool(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainToolToView(*tool))
}

func (h *InventoryHandler) AddTool(w http.ResponseWriter, r *http.Request) {
	var body AddToolRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorCode(w, http.StatusBadRequest, codeInvalidRequest, "malformed request body: "+err.Error())
		return
	}

	category, err := domain.ParseToolCategory(body.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tool, err := h.inventorySvc.AddTool(r.Context(), body.Code, body.Brand, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapDomainToolToView(*tool))
}

func (h *InventoryHandler) RemoveTool(w http.ResponseWriter, r *http.Request) {
	if err := h.inventorySvc.RemoveTool(r.Context(), mux.Vars(r)["code"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
