package service

import (
	"context"

	"toolrental/internal/domain"
)

type CheckoutService interface {
	Checkout(ctx context.Context, req domain.RentalRequest) (*domain.RentalAgreement, error)
}

type InventoryService interface {
	AddTool(ctx context.Context, code, brand string, category domain.ToolCategory) (*domain.ToolSpec, error)
	RemoveTool(ctx context.Context, code string) error
	GetTool(ctx context.Context, code string) (*domain.ToolSpec, error)
	ListTools(ctx context.Context) ([]domain.ToolSpec, error)
}
