package report

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"toolrental/internal/domain"
	"toolrental/internal/utils"
)

const (
	dateLayout     = "01/02/06"
	currencySymbol = "$"
)

// FormatDate renders a date as MM/DD/YY
func FormatDate(d civil.Date) string {
	return d.In(time.UTC).Format(dateLayout)
}

// ParseDate accepts MM/DD/YY or YYYY-MM-DD
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return civil.DateOf(t), nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, errors.Mark(
			errors.Newf("checkout date %q is not in MM/DD/YY or YYYY-MM-DD format", s),
			domain.ErrInvalidCheckoutDate,
		)
	}
	return d, nil
}

// FormatMoney renders an amount as US dollars with thousands separators,
// rounded half-up to cents, e.g. $1,234.57.
func FormatMoney(amount decimal.Decimal) string {
	rounded := domain.RoundCents(amount)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	fixed := rounded.StringFixed(domain.CentsPlaces)
	whole, cents, _ := strings.Cut(fixed, ".")
	return sign + currencySymbol + groupThousands(whole) + "." + cents
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Render produces the printable rental agreement
func Render(a domain.RentalAgreement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tool code: %s\n", a.ToolCode())
	fmt.Fprintf(&b, "Tool type: %s\n", a.ToolType())
	fmt.Fprintf(&b, "Tool brand: %s\n", a.ToolBrand())
	fmt.Fprintf(&b, "Rental days: %d\n", a.RentalDayCount())
	fmt.Fprintf(&b, "Check out date: %s\n", FormatDate(a.CheckoutDate()))
	fmt.Fprintf(&b, "Due date: %s\n", FormatDate(a.DueDate()))
	fmt.Fprintf(&b, "Daily rental charge: %s\n", FormatMoney(a.DailyCharge()))
	fmt.Fprintf(&b, "Charge days: %d\n", a.ChargeDayCount())
	fmt.Fprintf(&b, "Pre-discount charge: %s\n", FormatMoney(a.PreDiscountCharge()))
	fmt.Fprintf(&b, "Discount percent: %d%%\n", a.DiscountPercent())
	fmt.Fprintf(&b, "Discount amount: %s\n", FormatMoney(a.DiscountAmount()))
	fmt.Fprintf(&b, "Final charge: %s", FormatMoney(a.FinalCharge()))
	return b.String()
}

// View is the JSON form of an agreement with presentation formatting applied
type View struct {
	AgreementID       string    `json:"agreement_id"`
	ToolCode          string    `json:"tool_code"`
	ToolType          string    `json:"tool_type"`
	ToolBrand         string    `json:"tool_brand"`
	RentalDays        int       `json:"rental_days"`
	CheckoutDate      string    `json:"checkout_date"`
	DueDate           string    `json:"due_date"`
	DailyRentalCharge string    `json:"daily_rental_charge"`
	ChargeDays        int       `json:"charge_days"`
	PreDiscountCharge string    `json:"pre_discount_charge"`
	DiscountPercent   int       `json:"discount_percent"`
	DiscountAmount    string    `json:"discount_amount"`
	FinalCharge       string    `json:"final_charge"`
	Schedule          []DayView `json:"schedule"`
	ScheduleTruncated bool      `json:"schedule_truncated,omitempty"`
}

// MaxScheduleDays bounds how many days of a rental the view itemizes
const MaxScheduleDays = 366

type DayView struct {
	Date    string `json:"date"`
	Kind    string `json:"kind"`
	Holiday string `json:"holiday,omitempty"`
	Charged bool   `json:"charged"`
}

// NewView formats an agreement for JSON. cal must be the calendar the agreement
// was priced with so the schedule agrees with the charge day count. Only the first
// MaxScheduleDays days are itemized.
func NewView(a domain.RentalAgreement, cal utils.HolidayCalendar) View {
	scheduleDays := min(a.RentalDayCount(), MaxScheduleDays)
	schedule := cal.ChargeSchedule(a.CheckoutDate(), scheduleDays, a.Tool().ChargeFlags)
	return View{
		AgreementID:       a.ID().String(),
		ToolCode:          a.ToolCode(),
		ToolType:          string(a.ToolType()),
		ToolBrand:         a.ToolBrand(),
		RentalDays:        a.RentalDayCount(),
		CheckoutDate:      FormatDate(a.CheckoutDate()),
		DueDate:           FormatDate(a.DueDate()),
		DailyRentalCharge: FormatMoney(a.DailyCharge()),
		ChargeDays:        a.ChargeDayCount(),
		PreDiscountCharge: FormatMoney(a.PreDiscountCharge()),
		DiscountPercent:   a.DiscountPercent(),
		DiscountAmount:    FormatMoney(a.DiscountAmount()),
		FinalCharge:       FormatMoney(a.FinalCharge()),
		Schedule: lo.Map(schedule, func(d utils.ChargeDay, _ int) DayView {
			return DayView{
				Date:    FormatDate(d.Date),
				Kind:    string(d.Kind),
				Holiday: d.Holiday,
				Charged: d.Charged,
			}
		}),
		ScheduleTruncated: scheduleDays < a.RentalDayCount(),
	}
}
