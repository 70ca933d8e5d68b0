package domain

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalRequest struct {
	ToolCode        string     `json:"tool_code" validate:"required"`
	RentalDayCount  int        `json:"rental_day_count" validate:"min=1"`
	DiscountPercent int        `json:"discount_percent" validate:"min=0,max=100"`
	CheckoutDate    civil.Date `json:"checkout_date"`
}

// Charges holds the exact monetary breakdown of a rental. Nothing is rounded here.
type Charges struct {
	PreDiscount decimal.Decimal `json:"pre_discount"`
	Discount    decimal.Decimal `json:"discount"`
	Final       decimal.Decimal `json:"final"`
}

// CentsPlaces is the number of decimal places money is presented with.
const CentsPlaces = 2

// RoundCents rounds half-up to whole cents. Amounts are never negative, so the
// half-away-from-zero rounding of decimal.Round is half-up here.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CentsPlaces)
}

// Rounded returns the charges as presented. The discount is rounded on its own and
// the final charge is taken from the rounded figures so the three lines reconcile.
//
// This intentionally differs from rounding the exact final charge: on half-cent
// discounts the two disagree by a cent (2.99 at 50% presents a $1.50 discount and a
// $1.49 final, not $1.50). Keep the reconciled form.
func (c Charges) Rounded() Charges {
	pre := RoundCents(c.PreDiscount)
	discount := RoundCents(c.Discount)
	return Charges{
		PreDiscount: pre,
		Discount:    discount,
		Final:       pre.Sub(discount),
	}
}

var agreementNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("toolrental:rental-agreement"))

// RentalAgreement is the result of a checkout. It is built once and only exposes
// read accessors.
type RentalAgreement struct {
	id              uuid.UUID
	tool            ToolSpec
	rentalDayCount  int
	checkoutDate    civil.Date
	chargeDayCount  int
	discountPercent int
	charges         Charges
}

func NewRentalAgreement(tool ToolSpec, req RentalRequest, chargeDayCount int, charges Charges) RentalAgreement {
	return RentalAgreement{
		id:              agreementID(tool, req),
		tool:            tool,
		rentalDayCount:  req.RentalDayCount,
		checkoutDate:    req.CheckoutDate,
		chargeDayCount:  chargeDayCount,
		discountPercent: req.DiscountPercent,
		charges:         charges,
	}
}

// agreementID is name-based so repeated checkouts with the same inputs agree.
func agreementID(tool ToolSpec, req RentalRequest) uuid.UUID {
	name := fmt.Sprintf("%s|%d|%d|%s", tool.Code, req.RentalDayCount, req.DiscountPercent, req.CheckoutDate)
	return uuid.NewSHA1(agreementNamespace, []byte(name))
}

func (a RentalAgreement) ID() uuid.UUID                { return a.id }
func (a RentalAgreement) Tool() ToolSpec               { return a.tool }
func (a RentalAgreement) ToolCode() string             { return a.tool.Code }
func (a RentalAgreement) ToolType() ToolCategory       { return a.tool.Type }
func (a RentalAgreement) ToolBrand() string            { return a.tool.Brand }
func (a RentalAgreement) RentalDayCount() int          { return a.rentalDayCount }
func (a RentalAgreement) CheckoutDate() civil.Date     { return a.checkoutDate }
func (a RentalAgreement) DailyCharge() decimal.Decimal { return a.tool.DailyCharge }
func (a RentalAgreement) ChargeDayCount() int          { return a.chargeDayCount }
func (a RentalAgreement) DiscountPercent() int         { return a.discountPercent }

// DueDate is the last day of the rental window.
func (a RentalAgreement) DueDate() civil.Date {
	return a.checkoutDate.AddDays(a.rentalDayCount)
}

// Charges returns the unrounded breakdown.
func (a RentalAgreement) Charges() Charges { return a.charges }

func (a RentalAgreement) PreDiscountCharge() decimal.Decimal {
	return a.charges.Rounded().PreDiscount
}

func (a RentalAgreement) DiscountAmount() decimal.Decimal {
	return a.charges.Rounded().Discount
}

func (a RentalAgreement) FinalCharge() decimal.Decimal {
	return a.charges.Rounded().Final
}
