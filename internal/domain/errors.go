package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinels for checkout and inventory failures. Errors returned by this module are
// marked with one of these; match them with errors.Is.
var (
	ErrInvalidDayCount     = errors.New("invalid day count")
	ErrInvalidDiscount     = errors.New("invalid discount")
	ErrInvalidCheckoutDate = errors.New("invalid checkout date")
	ErrToolNotFound        = errors.New("tool not found")
	ErrUnknownCategory     = errors.New("unknown tool category")
	ErrInvalidToolCode     = errors.New("invalid tool code")
	ErrDuplicateTool       = errors.New("duplicate tool")
)

type ErrorKind string

const (
	ErrorKindInvalidDayCount     ErrorKind = "invalid_day_count"
	ErrorKindInvalidDiscount     ErrorKind = "invalid_discount"
	ErrorKindInvalidCheckoutDate ErrorKind = "invalid_checkout_date"
	ErrorKindToolNotFound        ErrorKind = "tool_not_found"
	ErrorKindUnknownCategory     ErrorKind = "unknown_category"
	ErrorKindInvalidToolCode     ErrorKind = "invalid_tool_code"
	ErrorKindDuplicateTool       ErrorKind = "duplicate_tool"
)

var errorKinds = []struct {
	sentinel error
	kind     ErrorKind
}{
	{ErrInvalidDayCount, ErrorKindInvalidDayCount},
	{ErrInvalidDiscount, ErrorKindInvalidDiscount},
	{ErrInvalidCheckoutDate, ErrorKindInvalidCheckoutDate},
	{ErrToolNotFound, ErrorKindToolNotFound},
	{ErrUnknownCategory, ErrorKindUnknownCategory},
	{ErrInvalidToolCode, ErrorKindInvalidToolCode},
	{ErrDuplicateTool, ErrorKindDuplicateTool},
}

// KindOf reports which caller error err carries. The second result is false for
// anything that is not a known input error.
func KindOf(err error) (ErrorKind, bool) {
	if err == nil {
		return "", false
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.sentinel) {
			return k.kind, true
		}
	}
	return "", false
}

func NewInvalidDayCountError(dayCount int) error {
	return errors.Mark(
		errors.Newf("day count %d is not within the acceptable range of 1 or greater", dayCount),
		ErrInvalidDayCount,
	)
}

// NewDueDateOutOfRangeError reports a day count whose due date would fall after latest.
func NewDueDateOutOfRangeError(dayCount int, latest fmt.Stringer) error {
	return errors.Mark(
		errors.Newf("day count %d would put the due date after %s", dayCount, latest),
		ErrInvalidDayCount,
	)
}

func NewInvalidDiscountError(discount int) error {
	return errors.Mark(
		errors.Newf("discount percentage %d is not within the acceptable range of 0 to 100", discount),
		ErrInvalidDiscount,
	)
}

func NewToolNotFoundError(code string) error {
	return errors.Mark(
		errors.Newf("there is no tool in inventory with code %s", code),
		ErrToolNotFound,
	)
}

func NewUnknownCategoryError(category string) error {
	return errors.Mark(
		errors.Newf("unknown tool category %q", category),
		ErrUnknownCategory,
	)
}

func NewDuplicateToolError(code string) error {
	return errors.Mark(
		errors.Newf("a tool with code %s is already in inventory", code),
		ErrDuplicateTool,
	)
}
