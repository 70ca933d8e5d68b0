package utils

import (
	"github.com/shopspring/decimal"

	"toolrental/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculateCharges computes the monetary breakdown of a rental.
// The result is exact; rounding to cents happens when the charges are presented.
func CalculateCharges(dailyCharge decimal.Decimal, chargeDayCount, discountPercent int) domain.Charges {
	preDiscount := dailyCharge.Mul(decimal.NewFromInt(int64(chargeDayCount)))
	discount := preDiscount.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred)
	return domain.Charges{
		PreDiscount: preDiscount,
		Discount:    discount,
		Final:       preDiscount.Sub(discount),
	}
}

// PriceRental runs the charge-day and pricing calculations for an already
// validated request and assembles the agreement.
func PriceRental(tool domain.ToolSpec, req domain.RentalRequest) domain.RentalAgreement {
	return DefaultCalendar.PriceRental(tool, req)
}

// PriceRental prices a rental against this calendar's holidays
func (c HolidayCalendar) PriceRental(tool domain.ToolSpec, req domain.RentalRequest) domain.RentalAgreement {
	chargeDays := c.CountChargeDays(req.CheckoutDate, req.RentalDayCount, tool.ChargeFlags)
	charges := CalculateCharges(tool.DailyCharge, chargeDays, req.DiscountPercent)
	return domain.NewRentalAgreement(tool, req, chargeDays, charges)
}
