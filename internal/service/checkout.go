package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"toolrental/internal/domain"
	"toolrental/internal/logger"
	"toolrental/internal/repository"
	"toolrental/internal/utils"
)

type checkoutService struct {
	toolRepo repository.ToolRepository
	calendar utils.HolidayCalendar
	validate *validator.Validate
}

func NewCheckoutService(toolRepo repository.ToolRepository) CheckoutService {
	return NewCheckoutServiceWithCalendar(toolRepo, utils.DefaultCalendar)
}

func NewCheckoutServiceWithCalendar(toolRepo repository.ToolRepository, calendar utils.HolidayCalendar) CheckoutService {
	return &checkoutService{
		toolRepo: toolRepo,
		calendar: calendar,
		validate: validator.New(),
	}
}

// Checkout validates the request, resolves the tool and prices the rental.
// Validation runs before any lookup or calendar work.
func (s *checkoutService) Checkout(ctx context.Context, req domain.RentalRequest) (*domain.RentalAgreement, error) {
	logger.EnterMethod("Checkout", "tool_code", req.ToolCode, "rental_days", req.RentalDayCount,
		"discount_percent", req.DiscountPercent, "checkout_date", req.CheckoutDate.String())

	if err := s.validateRequest(req); err != nil {
		logger.ExitMethodWithError("Checkout", err, true)
		return nil, err
	}

	tool, err := s.toolRepo.GetByCode(ctx, req.ToolCode)
	if err != nil {
		if errors.Is(err, domain.ErrToolNotFound) {
			logger.ExitMethodWithError("Checkout", err, true)
			return nil, err
		}
		err = errors.Wrapf(err, "resolve tool %s", req.ToolCode)
		logger.ExitMethodWithError("Checkout", err, false)
		return nil, err
	}

	agreement := s.calendar.PriceRental(*tool, req)

	logger.ExitMethod("Checkout", "agreement_id", agreement.ID().String(),
		"charge_days", agreement.ChargeDayCount(), "final_charge", agreement.FinalCharge().StringFixed(2))
	return &agreement, nil
}

// validateRequest reports the first failure in the order day count, discount,
// checkout date, due date range, tool code.
func (s *checkoutService) validateRequest(req domain.RentalRequest) error {
	var failed []string
	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errors.Wrap(err, "validate rental request")
		}
		failed = lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
			return fe.StructField()
		})
	}

	switch {
	case lo.Contains(failed, "RentalDayCount"):
		return domain.NewInvalidDayCountError(req.RentalDayCount)
	case lo.Contains(failed, "DiscountPercent"):
		return domain.NewInvalidDiscountError(req.DiscountPercent)
	case !req.CheckoutDate.IsValid():
		return errors.Mark(
			errors.Newf("checkout date %s is not a valid calendar date", req.CheckoutDate),
			domain.ErrInvalidCheckoutDate,
		)
	case req.RentalDayCount > utils.DaysBetween(req.CheckoutDate, utils.LatestDueDate):
		return domain.NewDueDateOutOfRangeError(req.RentalDayCount, utils.LatestDueDate)
	case lo.Contains(failed, "ToolCode"):
		return domain.NewToolNotFoundError(req.ToolCode)
	}
	return nil
}
