package service

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolrental/internal/domain"
	"toolrental/internal/repository/memory"
)

var (
	septThird2015  = civil.Date{Year: 2015, Month: time.September, Day: 3}
	julySecond2020 = civil.Date{Year: 2020, Month: time.July, Day: 2}
	julySecond2015 = civil.Date{Year: 2015, Month: time.July, Day: 2}
)

func newInventory(t *testing.T) *MockToolRepo {
	t.Helper()
	repo := new(MockToolRepo)
	for _, entry := range []struct {
		code, brand string
		category    domain.ToolCategory
	}{
		{"CHNS", "Stihl", domain.ToolCategoryChainsaw},
		{"LADW", "Werner", domain.ToolCategoryLadder},
		{"JAKD", "DeWalt", domain.ToolCategoryJackhammer},
		{"JAKR", "Ridgid", domain.ToolCategoryJackhammer},
	} {
		tool, err := domain.NewToolSpec(entry.code, entry.brand, entry.category)
		require.NoError(t, err)
		repo.On("GetByCode", mock.Anything, entry.code).Return(&tool, nil)
	}
	return repo
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         domain.RentalRequest
		toolType    domain.ToolCategory
		brand       string
		dueDate     string
		daily       string
		chargeDays  int
		preDiscount string
		discountAmt string
		final       string
	}{
		{
			name:        "Ladder over observed July 4th",
			req:         domain.RentalRequest{ToolCode: "LADW", RentalDayCount: 3, DiscountPercent: 10, CheckoutDate: julySecond2020},
			toolType:    domain.ToolCategoryLadder,
			brand:       "Werner",
			dueDate:     "2020-07-05",
			daily:       "1.99",
			chargeDays:  2,
			preDiscount: "3.98",
			discountAmt: "0.40",
			final:       "3.58",
		},
		{
			name:        "Chainsaw charges the holiday but not the weekend",
			req:         domain.RentalRequest{ToolCode: "CHNS", RentalDayCount: 5, DiscountPercent: 25, CheckoutDate: julySecond2015},
			toolType:    domain.ToolCategoryChainsaw,
			brand:       "Stihl",
			dueDate:     "2015-07-07",
			daily:       "1.49",
			chargeDays:  3,
			preDiscount: "4.47",
			discountAmt: "1.12",
			final:       "3.35",
		},
		{
			name:        "Jackhammer over Labor Day",
			req:         domain.RentalRequest{ToolCode: "JAKD", RentalDayCount: 6, DiscountPercent: 0, CheckoutDate: septThird2015},
			toolType:    domain.ToolCategoryJackhammer,
			brand:       "DeWalt",
			dueDate:     "2015-09-09",
			daily:       "2.99",
			chargeDays:  3,
			preDiscount: "8.97",
			discountAmt: "0.00",
			final:       "8.97",
		},
		{
			name:        "Jackhammer over July 4th and two weekends",
			req:         domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: 9, DiscountPercent: 0, CheckoutDate: julySecond2015},
			toolType:    domain.ToolCategoryJackhammer,
			brand:       "Ridgid",
			dueDate:     "2015-07-11",
			daily:       "2.99",
			chargeDays:  5,
			preDiscount: "14.95",
			discountAmt: "0.00",
			final:       "14.95",
		},
		{
			name:        "Jackhammer with half off",
			req:         domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: 4, DiscountPercent: 50, CheckoutDate: julySecond2020},
			toolType:    domain.ToolCategoryJackhammer,
			brand:       "Ridgid",
			dueDate:     "2020-07-06",
			daily:       "2.99",
			chargeDays:  1,
			preDiscount: "2.99",
			discountAmt: "1.50",
			final:       "1.49",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCheckoutService(newInventory(t))

			a, err := svc.Checkout(ctx, tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.req.ToolCode, a.ToolCode())
			assert.Equal(t, tt.toolType, a.ToolType())
			assert.Equal(t, tt.brand, a.ToolBrand())
			assert.Equal(t, tt.req.RentalDayCount, a.RentalDayCount())
			assert.Equal(t, tt.req.CheckoutDate, a.CheckoutDate())
			assert.Equal(t, tt.dueDate, a.DueDate().String())
			assert.Equal(t, tt.daily, a.DailyCharge().StringFixed(2))
			assert.Equal(t, tt.chargeDays, a.ChargeDayCount())
			assert.Equal(t, tt.preDiscount, a.PreDiscountCharge().StringFixed(2))
			assert.Equal(t, tt.req.DiscountPercent, a.DiscountPercent())
			assert.Equal(t, tt.discountAmt, a.DiscountAmount().StringFixed(2))
			assert.Equal(t, tt.final, a.FinalCharge().StringFixed(2))
		})
	}
}

func TestCheckoutService_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("Discount above 100", func(t *testing.T) {
		repo := newInventory(t)
		svc := NewCheckoutService(repo)

		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: 5, DiscountPercent: 101, CheckoutDate: septThird2015})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidDiscount))
		assert.Contains(t, err.Error(), "101")
		repo.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	})

	t.Run("Negative discount", func(t *testing.T) {
		svc := NewCheckoutService(newInventory(t))
		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: 5, DiscountPercent: -1, CheckoutDate: septThird2015})
		kind, ok := domain.KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ErrorKindInvalidDiscount, kind)
	})

	t.Run("Zero days", func(t *testing.T) {
		svc := NewCheckoutService(newInventory(t))
		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: 0, DiscountPercent: 10, CheckoutDate: septThird2015})
		assert.True(t, errors.Is(err, domain.ErrInvalidDayCount))
		assert.Contains(t, err.Error(), "0")
	})

	t.Run("Day count is checked before discount", func(t *testing.T) {
		svc := NewCheckoutService(newInventory(t))
		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "NOPE", RentalDayCount: -3, DiscountPercent: 150, CheckoutDate: septThird2015})
		assert.True(t, errors.Is(err, domain.ErrInvalidDayCount))
		assert.False(t, errors.Is(err, domain.ErrInvalidDiscount))
	})

	t.Run("Due date beyond the calendar", func(t *testing.T) {
		repo := newInventory(t)
		svc := NewCheckoutService(repo)
		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: 2147483647, DiscountPercent: 0, CheckoutDate: septThird2015})
		assert.True(t, errors.Is(err, domain.ErrInvalidDayCount))
		assert.Contains(t, err.Error(), "2147483647")
		repo.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	})

	t.Run("Rental up to the last supported day", func(t *testing.T) {
		svc := NewCheckoutService(newInventory(t))
		days := int((time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC).Unix() -
			time.Date(2015, time.September, 3, 0, 0, 0, 0, time.UTC).Unix()) / 86400)
		a, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: days, DiscountPercent: 0, CheckoutDate: septThird2015})
		require.NoError(t, err)
		assert.Equal(t, "9999-12-31", a.DueDate().String())
		assert.LessOrEqual(t, a.ChargeDayCount(), days)
	})

	t.Run("Missing checkout date", func(t *testing.T) {
		svc := NewCheckoutService(newInventory(t))
		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "JAKR", RentalDayCount: 2, DiscountPercent: 0})
		assert.True(t, errors.Is(err, domain.ErrInvalidCheckoutDate))
	})

	t.Run("Empty tool code", func(t *testing.T) {
		repo := newInventory(t)
		svc := NewCheckoutService(repo)
		_, err := svc.Checkout(ctx, domain.RentalRequest{RentalDayCount: 2, DiscountPercent: 0, CheckoutDate: septThird2015})
		assert.True(t, errors.Is(err, domain.ErrToolNotFound))
		repo.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_ToolLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown tool", func(t *testing.T) {
		repo := new(MockToolRepo)
		repo.On("GetByCode", ctx, "ABCD").Return(nil, domain.NewToolNotFoundError("ABCD"))
		svc := NewCheckoutService(repo)

		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "ABCD", RentalDayCount: 3, DiscountPercent: 0, CheckoutDate: septThird2015})
		assert.True(t, errors.Is(err, domain.ErrToolNotFound))
		assert.Contains(t, err.Error(), "ABCD")
	})

	t.Run("Inventory failure propagates", func(t *testing.T) {
		repo := new(MockToolRepo)
		repo.On("GetByCode", ctx, "LADW").Return(nil, errors.New("connection refused"))
		svc := NewCheckoutService(repo)

		_, err := svc.Checkout(ctx, domain.RentalRequest{ToolCode: "LADW", RentalDayCount: 3, DiscountPercent: 0, CheckoutDate: septThird2015})
		require.Error(t, err)
		_, isInputErr := domain.KindOf(err)
		assert.False(t, isInputErr)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Contains(t, err.Error(), "resolve tool LADW")
	})
}

func TestCheckoutService_Idempotent(t *testing.T) {
	ctx := context.Background()
	tool, err := domain.NewToolSpec("CHNS", "Stihl", domain.ToolCategoryChainsaw)
	require.NoError(t, err)
	svc := NewCheckoutService(memory.NewToolRepository(tool))

	req := domain.RentalRequest{ToolCode: "CHNS", RentalDayCount: 5, DiscountPercent: 25, CheckoutDate: julySecond2015}
	first, err := svc.Checkout(ctx, req)
	require.NoError(t, err)
	second, err := svc.Checkout(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, first.ChargeDayCount(), second.ChargeDayCount())
	assert.Equal(t, first.DueDate(), second.DueDate())
	assert.True(t, first.FinalCharge().Equal(second.FinalCharge()))
	assert.Equal(t, first.PreDiscountCharge().String(), second.PreDiscountCharge().String())
}

func TestCheckoutService_Invariants(t *testing.T) {
	ctx := context.Background()
	svc := NewCheckoutService(newInventory(t))

	for _, code := range []string{"CHNS", "LADW", "JAKD"} {
		for _, days := range []int{1, 3, 7, 10, 45} {
			for _, discount := range []int{0, 15, 33, 100} {
				start := civil.Date{Year: 2021, Month: time.June, Day: 28}
				for offset := 0; offset < 80; offset += 9 {
					req := domain.RentalRequest{ToolCode: code, RentalDayCount: days, DiscountPercent: discount, CheckoutDate: start.AddDays(offset)}
					a, err := svc.Checkout(ctx, req)
					require.NoError(t, err)

					assert.GreaterOrEqual(t, a.ChargeDayCount(), 0)
					assert.LessOrEqual(t, a.ChargeDayCount(), days)
					assert.Equal(t, req.CheckoutDate.AddDays(days), a.DueDate())
					assert.True(t, a.PreDiscountCharge().Sub(a.DiscountAmount()).Equal(a.FinalCharge()))
					assert.True(t, a.DiscountAmount().LessThanOrEqual(a.PreDiscountCharge()))
					assert.False(t, a.FinalCharge().IsNegative())
				}
			}
		}
	}
}
