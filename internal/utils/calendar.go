package utils

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/lo"

	"toolrental/internal/domain"
)

// DayKind classifies a calendar day for billing
type DayKind string

const (
	DayKindWeekday DayKind = "weekday"
	DayKindWeekend DayKind = "weekend"
	DayKindHoliday DayKind = "holiday"
)

// Holiday is a recognized holiday and the rule giving its observed date in a year
type Holiday struct {
	Name       string
	ObservedOn func(year int) civil.Date
}

// HolidayCalendar answers holiday questions for a fixed set of holidays
type HolidayCalendar struct {
	holidays []Holiday
}

// DefaultHolidays are the only holidays the rental business recognizes
var DefaultHolidays = []Holiday{
	{Name: "Independence Day", ObservedOn: ObservedIndependenceDay},
	{Name: "Labor Day", ObservedOn: LaborDay},
}

// DefaultCalendar is the calendar used for pricing
var DefaultCalendar = NewHolidayCalendar(DefaultHolidays...)

// NewHolidayCalendar creates a calendar recognizing the given holidays
func NewHolidayCalendar(holidays ...Holiday) HolidayCalendar {
	hs := make([]Holiday, len(holidays))
	copy(hs, holidays)
	return HolidayCalendar{holidays: hs}
}

// Weekday returns the day of the week of a calendar date
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// IsWeekend returns true for Saturdays and Sundays
func IsWeekend(d civil.Date) bool {
	wd := Weekday(d)
	return wd == time.Saturday || wd == time.Sunday
}

// ObservedIndependenceDay returns the day July 4th is observed in the given year.
// A Saturday July 4th is observed on Friday the 3rd, a Sunday on Monday the 5th.
func ObservedIndependenceDay(year int) civil.Date {
	julyFourth := civil.Date{Year: year, Month: time.July, Day: 4}
	switch Weekday(julyFourth) {
	case time.Saturday:
		return julyFourth.AddDays(-1)
	case time.Sunday:
		return julyFourth.AddDays(1)
	default:
		return julyFourth
	}
}

// LaborDay returns the first Monday in September of the given year
func LaborDay(year int) civil.Date {
	first := civil.Date{Year: year, Month: time.September, Day: 1}
	offset := (int(time.Monday) - int(Weekday(first)) + 7) % 7
	return first.AddDays(offset)
}

// HolidayOn returns the holiday observed on the date, if any
func (c HolidayCalendar) HolidayOn(d civil.Date) (Holiday, bool) {
	return lo.Find(c.holidays, func(h Holiday) bool {
		return h.ObservedOn(d.Year) == d
	})
}

// IsHoliday returns true if a recognized holiday is observed on the date
func (c HolidayCalendar) IsHoliday(d civil.Date) bool {
	_, ok := c.HolidayOn(d)
	return ok
}

// ObservedHoliday is a holiday resolved to a concrete date
type ObservedHoliday struct {
	Name string     `json:"name"`
	Date civil.Date `json:"date"`
}

// HolidaysIn lists the observed holidays of a year in date order
func (c HolidayCalendar) HolidaysIn(year int) []ObservedHoliday {
	out := lo.Map(c.holidays, func(h Holiday, _ int) ObservedHoliday {
		return ObservedHoliday{Name: h.Name, Date: h.ObservedOn(year)}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ChargeDay is the billing classification of one day of a rental
type ChargeDay struct {
	Date    civil.Date `json:"date"`
	Kind    DayKind    `json:"kind"`
	Holiday string     `json:"holiday,omitempty"`
	Charged bool       `json:"charged"`
}

// ClassifyDay decides whether a day is billable for a tool's charge flags.
//
// The weekend check runs before the holiday check. With the current holidays an
// observed holiday never falls on a weekend, but the order must hold if one ever does.
func (c HolidayCalendar) ClassifyDay(d civil.Date, flags domain.ChargeFlags) ChargeDay {
	day := ChargeDay{Date: d, Kind: DayKindWeekday}
	holiday, isHoliday := c.HolidayOn(d)
	if isHoliday {
		day.Kind = DayKindHoliday
		day.Holiday = holiday.Name
	}
	weekend := IsWeekend(d)
	if weekend && !isHoliday {
		day.Kind = DayKindWeekend
	}

	switch {
	case weekend && !flags.Weekend:
		day.Charged = false
	case isHoliday && !flags.Holiday:
		day.Charged = false
	default:
		day.Charged = true
	}
	return day
}

// RentalWindow returns the days of a rental: the day after checkout through
// checkout plus dayCount, inclusive. The checkout day itself is never part of it.
func RentalWindow(checkoutDate civil.Date, dayCount int) []civil.Date {
	if dayCount < 1 {
		return nil
	}
	days := make([]civil.Date, 0, dayCount)
	for i := 1; i <= dayCount; i++ {
		days = append(days, checkoutDate.AddDays(i))
	}
	return days
}

// ChargeSchedule classifies every day of the rental window. It allocates per
// day; callers presenting long rentals should pass a bounded dayCount.
func (c HolidayCalendar) ChargeSchedule(checkoutDate civil.Date, dayCount int, flags domain.ChargeFlags) []ChargeDay {
	return lo.Map(RentalWindow(checkoutDate, dayCount), func(d civil.Date, _ int) ChargeDay {
		return c.ClassifyDay(d, flags)
	})
}

// CountChargeDays returns how many days of the rental window are billable.
// Whole weeks are counted arithmetically and the recognized holidays of each year
// in the window are adjusted for afterwards, so the cost depends on the number of
// years spanned rather than days, and nothing is allocated.
func (c HolidayCalendar) CountChargeDays(checkoutDate civil.Date, dayCount int, flags domain.ChargeFlags) int {
	if dayCount < 1 {
		return 0
	}
	first := checkoutDate.AddDays(1)
	last := checkoutDate.AddDays(dayCount)

	weeks, rest := dayCount/7, dayCount%7
	weekendDays := 2 * weeks
	startDay := int(Weekday(first))
	for i := 0; i < rest; i++ {
		wd := time.Weekday((startDay + i) % 7)
		if wd == time.Saturday || wd == time.Sunday {
			weekendDays++
		}
	}
	weekdayDays := dayCount - weekendDays

	charged := weekdayDays
	if flags.Weekend {
		charged += weekendDays
	}
	if flags.Holiday {
		return charged
	}

	// A holiday already counted above is billed only when holidays are.
	for year := first.Year; year <= last.Year; year++ {
		for i, h := range c.holidays {
			d := h.ObservedOn(year)
			if d.Year != year || d.Before(first) || last.Before(d) || c.observedEarlier(i, year, d) {
				continue
			}
			if !IsWeekend(d) || flags.Weekend {
				charged--
			}
		}
	}
	return charged
}

// observedEarlier reports whether a holiday before index i falls on the same day
func (c HolidayCalendar) observedEarlier(i, year int, d civil.Date) bool {
	for _, h := range c.holidays[:i] {
		if h.ObservedOn(year) == d {
			return true
		}
	}
	return false
}

// DaysBetween returns the number of days from a to b, negative when b is earlier
func DaysBetween(a, b civil.Date) int {
	return int((b.In(time.UTC).Unix() - a.In(time.UTC).Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// LatestDueDate is the last date a rental may run to
var LatestDueDate = civil.Date{Year: 9999, Month: time.December, Day: 31}

// CountChargeDays counts billable days using the default holiday calendar
func CountChargeDays(checkoutDate civil.Date, dayCount int, flags domain.ChargeFlags) int {
	return DefaultCalendar.CountChargeDays(checkoutDate, dayCount, flags)
}

// ChargeSchedule classifies the rental window using the default holiday calendar
func ChargeSchedule(checkoutDate civil.Date, dayCount int, flags domain.ChargeFlags) []ChargeDay {
	return DefaultCalendar.ChargeSchedule(checkoutDate, dayCount, flags)
}
