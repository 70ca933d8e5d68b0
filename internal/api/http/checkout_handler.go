package http

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"toolrental/internal/domain"
	"toolrental/internal/report"
	"toolrental/internal/service"
	"toolrental/internal/utils"
)

// CheckoutRequest is the body of POST /api/v1/checkouts
type CheckoutRequest struct {
	ToolCode        string `json:"tool_code"`
	RentalDayCount  int    `json:"rental_day_count"`
	DiscountPercent int    `json:"discount_percent"`
	CheckoutDate    string `json:"checkout_date"` // MM/DD/YY or YYYY-MM-DD
}

// maxCheckoutBody bounds the size of a checkout request body
const maxCheckoutBody = 64 << 10

type CheckoutHandler struct {
	checkoutSvc service.CheckoutService
	calendar    utils.HolidayCalendar
}

// NewCheckoutHandler serves checkouts. calendar must be the one checkoutSvc prices with.
func NewCheckoutHandler(checkoutSvc service.CheckoutService, calendar utils.HolidayCalendar) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc, calendar: calendar}
}

// Checkout prices a rental and returns the agreement. With ?format=text the
// printable agreement is returned instead of JSON.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var body CheckoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckoutBody)).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorCode(w, http.StatusRequestEntityTooLarge, codeInvalidRequest, "request body too large")
			return
		}
		writeErrorCode(w, http.StatusBadRequest, codeInvalidRequest, "malformed request body: "+err.Error())
		return
	}

	checkoutDate, dateErr := report.ParseDate(body.CheckoutDate)
	agreement, err := h.checkoutSvc.Checkout(r.Context(), domain.RentalRequest{
		ToolCode:        body.ToolCode,
		RentalDayCount:  body.RentalDayCount,
		DiscountPercent: body.DiscountPercent,
		CheckoutDate:    checkoutDate,
	})
	if err != nil {
		// An unparseable date reaches the service as the zero date; report the parse failure instead.
		if dateErr != nil && errors.Is(err, domain.ErrInvalidCheckoutDate) {
			err = dateErr
		}
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(report.Render(*agreement) + "\n"))
		return
	}
	writeJSON(w, http.StatusOK, report.NewView(*agreement, h.calendar))
}
