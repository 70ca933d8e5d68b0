package cache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	gocache "github.com/patrickmn/go-cache"

	"toolrental/internal/domain"
	"toolrental/internal/logger"
	"toolrental/internal/repository"
)

// ToolRepository caches inventory lookups in front of another repository.
// Writes go to the backing repository first and then invalidate the cache.
type ToolRepository struct {
	next  repository.ToolRepository
	cache *gocache.Cache
}

var _ repository.ToolRepository = (*ToolRepository)(nil)

func NewToolRepository(next repository.ToolRepository, ttl time.Duration) *ToolRepository {
	return &ToolRepository{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (r *ToolRepository) Create(ctx context.Context, t *domain.ToolSpec) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.cache.Delete(t.Code)
	return nil
}

func (r *ToolRepository) GetByCode(ctx context.Context, code string) (*domain.ToolSpec, error) {
	if cached, ok := r.cache.Get(code); ok {
		tool := cached.(domain.ToolSpec)
		return &tool, nil
	}

	tool, err := r.next.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(code, *tool)
	return tool, nil
}

// Delete removes the tool from the backing repository and then evicts it. A lookup
// racing the delete may have cached the tool again, so eviction runs after the
// backing delete as well as before it.
func (r *ToolRepository) Delete(ctx context.Context, code string) error {
	r.cache.Delete(code)
	if err := r.next.Delete(ctx, code); err != nil {
		return err
	}
	r.cache.Delete(code)
	return nil
}

func (r *ToolRepository) List(ctx context.Context) ([]domain.ToolSpec, error) {
	return r.next.List(ctx)
}

// Warm replaces the cache contents with the full inventory and returns how many
// tools were loaded.
func (r *ToolRepository) Warm(ctx context.Context) (int, error) {
	tools, err := r.next.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "warm inventory cache")
	}
	r.cache.Flush()
	for _, t := range tools {
		r.cache.SetDefault(t.Code, t)
	}
	logger.Debug("Inventory cache warmed", "tools", len(tools))
	return len(tools), nil
}

// Len returns the number of cached tools, expired entries included
func (r *ToolRepository) Len() int {
	return r.cache.ItemCount()
}
