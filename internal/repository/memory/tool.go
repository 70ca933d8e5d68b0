package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"toolrental/internal/domain"
	"toolrental/internal/logger"
	"toolrental/internal/repository"
)

const backend = "memory"

type toolRepository struct {
	mu    sync.RWMutex
	tools map[string]domain.ToolSpec
}

// NewToolRepository creates an in-process inventory holding the given tools.
// Later tools with a duplicate code replace earlier ones.
func NewToolRepository(tools ...domain.ToolSpec) repository.ToolRepository {
	r := &toolRepository{tools: make(map[string]domain.ToolSpec, len(tools))}
	for _, t := range tools {
		r.tools[t.Code] = t
	}
	return r
}

func (r *toolRepository) Create(ctx context.Context, t *domain.ToolSpec) error {
	logger.RepositoryCall(backend, "Create", "code", t.Code)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Code]; exists {
		err := domain.NewDuplicateToolError(t.Code)
		logger.RepositoryResult(backend, "Create", err, "code", t.Code)
		return err
	}
	r.tools[t.Code] = *t
	logger.RepositoryResult(backend, "Create", nil, "code", t.Code)
	return nil
}

func (r *toolRepository) GetByCode(ctx context.Context, code string) (*domain.ToolSpec, error) {
	logger.RepositoryCall(backend, "GetByCode", "code", code)
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[code]
	if !ok {
		return nil, domain.NewToolNotFoundError(code)
	}
	return &t, nil
}

func (r *toolRepository) Delete(ctx context.Context, code string) error {
	logger.RepositoryCall(backend, "Delete", "code", code)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[code]; !ok {
		return domain.NewToolNotFoundError(code)
	}
	delete(r.tools, code)
	return nil
}

func (r *toolRepository) List(ctx context.Context) ([]domain.ToolSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := lo.Values(r.tools)
	sort.Slice(tools, func(i, j int) bool { return tools[i].Code < tools[j].Code })
	return tools, nil
}
