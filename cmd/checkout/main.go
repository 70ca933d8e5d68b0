package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"toolrental/internal/bootstrap"
	"toolrental/internal/config"
	"toolrental/internal/domain"
	"toolrental/internal/logger"
	"toolrental/internal/report"
	"toolrental/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (built-in defaults when empty)")
	toolCode := flag.String("tool", "", "Tool code, e.g. LADW")
	days := flag.Int("days", 0, "Rental day count")
	discount := flag.Int("discount", 0, "Discount percent (0-100)")
	date := flag.String("date", "", "Checkout date, MM/DD/YY or YYYY-MM-DD")
	flag.Parse()

	os.Exit(run(*configPath, *toolCode, *days, *discount, *date))
}

func run(configPath, toolCode string, days, discount int, date string) int {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			return 2
		}
	}
	// Diagnostics go to stderr so stdout carries only the agreement.
	logger.Set(logger.New(os.Stderr, "warn", cfg.Log.Format))

	ctx := context.Background()
	inventory, err := bootstrap.OpenInventory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open inventory: %v\n", err)
		return 2
	}
	defer inventory.Close()

	checkoutDate, dateErr := report.ParseDate(date)
	agreement, err := service.NewCheckoutService(inventory.Tools).Checkout(ctx, domain.RentalRequest{
		ToolCode:        toolCode,
		RentalDayCount:  days,
		DiscountPercent: discount,
		CheckoutDate:    checkoutDate,
	})
	if err != nil {
		if dateErr != nil && errors.Is(err, domain.ErrInvalidCheckoutDate) {
			err = dateErr
		}
		fmt.Fprintln(os.Stderr, err)
		if _, isInput := domain.KindOf(err); isInput {
			return 1
		}
		return 2
	}

	fmt.Println(report.Render(*agreement))
	return 0
}
