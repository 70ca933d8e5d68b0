package repository

import (
	"context"

	"toolrental/internal/domain"
)

// ToolRepository is the rental inventory. GetByCode and Delete return an error
// marked domain.ErrToolNotFound for unknown codes; Create returns one marked
// domain.ErrDuplicateTool when the code is taken.
type ToolRepository interface {
	Create(ctx context.Context, tool *domain.ToolSpec) error
	GetByCode(ctx context.Context, code string) (*domain.ToolSpec, error)
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]domain.ToolSpec, error)
}
