package http

import (
	"net/http"
	"strconv"

	"toolrental/internal/utils"

	"github.com/gorilla/mux"
)

type HolidayHandler struct {
	calendar utils.HolidayCalendar
}

func NewHolidayHandler(calendar utils.HolidayCalendar) *HolidayHandler {
	return &HolidayHandler{calendar: calendar}
}

// ListHolidays returns the observed holidays of the year in the path
func (h *HolidayHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil || year < 1 || year > 9999 {
		writeErrorCode(w, http.StatusBadRequest, codeInvalidRequest, "year must be between 1 and 9999")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":     year,
		"holidays": h.calendar.HolidaysIn(year),
	})
}
