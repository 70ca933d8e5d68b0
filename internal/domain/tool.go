package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

type ToolCategory string

const (
	ToolCategoryChainsaw   ToolCategory = "Chainsaw"
	ToolCategoryLadder     ToolCategory = "Ladder"
	ToolCategoryJackhammer ToolCategory = "Jackhammer"
)

// ChargeFlags says which classes of day are billable for a tool category.
type ChargeFlags struct {
	Weekday bool `json:"weekday"`
	Weekend bool `json:"weekend"`
	Holiday bool `json:"holiday"`
}

// CategoryRates is the fixed pricing configuration of a tool category.
type CategoryRates struct {
	DailyCharge decimal.Decimal
	Flags       ChargeFlags
}

var categoryOrder = []ToolCategory{
	ToolCategoryChainsaw,
	ToolCategoryLadder,
	ToolCategoryJackhammer,
}

var categoryRates = map[ToolCategory]CategoryRates{
	ToolCategoryChainsaw: {
		DailyCharge: decimal.RequireFromString("1.49"),
		Flags:       ChargeFlags{Weekday: true, Weekend: false, Holiday: true},
	},
	ToolCategoryLadder: {
		DailyCharge: decimal.RequireFromString("1.99"),
		Flags:       ChargeFlags{Weekday: true, Weekend: true, Holiday: false},
	},
	ToolCategoryJackhammer: {
		DailyCharge: decimal.RequireFromString("2.99"),
		Flags:       ChargeFlags{Weekday: true, Weekend: false, Holiday: false},
	},
}

// LookupCategory returns the rates for a category.
func LookupCategory(category ToolCategory) (CategoryRates, bool) {
	rates, ok := categoryRates[category]
	return rates, ok
}

// Categories lists the known categories in a stable order.
func Categories() []ToolCategory {
	out := make([]ToolCategory, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseToolCategory matches a category name case-insensitively.
func ParseToolCategory(name string) (ToolCategory, error) {
	for _, c := range categoryOrder {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return "", NewUnknownCategoryError(name)
}

// ToolSpec is an inventory item. Its rate and charge flags always come from the
// category table.
type ToolSpec struct {
	Code        string          `json:"code"`
	Type        ToolCategory    `json:"type"`
	Brand       string          `json:"brand"`
	DailyCharge decimal.Decimal `json:"daily_charge"`
	ChargeFlags `json:"charge_flags"`
}

func NewToolSpec(code, brand string, category ToolCategory) (ToolSpec, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return ToolSpec{}, errors.Mark(errors.New("tool code is required"), ErrInvalidToolCode)
	}
	rates, ok := LookupCategory(category)
	if !ok {
		return ToolSpec{}, NewUnknownCategoryError(string(category))
	}
	return ToolSpec{
		Code:        code,
		Type:        category,
		Brand:       strings.TrimSpace(brand),
		DailyCharge: rates.DailyCharge,
		ChargeFlags: rates.Flags,
	}, nil
}
