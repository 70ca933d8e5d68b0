package http

import (
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"toolrental/internal/config"
	"toolrental/internal/service"
	"toolrental/internal/utils"
)

// Services holds the service dependencies of the HTTP API. Calendar must be the
// calendar Checkout prices with.
type Services struct {
	Checkout  service.CheckoutService
	Inventory service.InventoryService
	Calendar  utils.HolidayCalendar
}

// NewRouter builds the HTTP API. Checkouts are rate limited when cfg sets a
// positive request rate.
func NewRouter(svcs Services, cfg config.RateLimitConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware())
	api := router.PathPrefix("/api/v1").Subrouter()

	checkoutHandler := NewCheckoutHandler(svcs.Checkout, svcs.Calendar)
	checkouts := api.PathPrefix("/checkouts").Subrouter()
	if cfg.RequestsPerSecond > 0 {
		checkouts.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)))
	}
	checkouts.HandleFunc("", checkoutHandler.Checkout).Methods("POST")

	inventoryHandler := NewInventoryHandler(svcs.Inventory)
	api.HandleFunc("/tools", inventoryHandler.ListTools).Methods("GET")
	api.HandleFunc("/tools", inventoryHandler.AddTool).Methods("POST")
	api.HandleFunc("/tools/{code}", inventoryHandler.GetTool).Methods("GET")
	api.HandleFunc("/tools/{code}", inventoryHandler.RemoveTool).Methods("DELETE")

	holidayHandler := NewHolidayHandler(svcs.Calendar)
	api.HandleFunc("/holidays/{year:[0-9]+}", holidayHandler.ListHolidays).Methods("GET")

	return router
}
