package postgres

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"toolrental/internal/domain"
	"toolrental/internal/logger"
	"toolrental/internal/repository"
)

const (
	backend = "postgres"

	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var toolColumns = []string{"code", "tool_type", "brand"}

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Create(ctx context.Context, t *domain.ToolSpec) error {
	query, args, err := psql.Insert("tools").
		Columns("code", "tool_type", "brand", "created_on").
		Values(t.Code, string(t.Type), t.Brand, time.Now().UTC()).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build insert")
	}

	logger.RepositoryCall(backend, "Create", "query", query)
	_, err = r.db.ExecContext(ctx, query, args...)
	logger.RepositoryResult(backend, "Create", err, "code", t.Code)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.NewDuplicateToolError(t.Code)
	}
	if err != nil {
		return errors.Wrapf(err, "insert tool %s", t.Code)
	}
	return nil
}

func (r *toolRepository) GetByCode(ctx context.Context, code string) (*domain.ToolSpec, error) {
	query, args, err := psql.Select(toolColumns...).
		From("tools").
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select")
	}

	logger.RepositoryCall(backend, "GetByCode", "query", query)
	var rowCode, toolType, brand string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&rowCode, &toolType, &brand)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewToolNotFoundError(code)
	}
	logger.RepositoryResult(backend, "GetByCode", err, "code", code)
	if err != nil {
		return nil, errors.Wrapf(err, "select tool %s", code)
	}

	tool, err := toToolSpec(rowCode, toolType, brand)
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *toolRepository) Delete(ctx context.Context, code string) error {
	query, args, err := psql.Delete("tools").
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete")
	}

	logger.RepositoryCall(backend, "Delete", "query", query)
	res, err := r.db.ExecContext(ctx, query, args...)
	logger.RepositoryResult(backend, "Delete", err, "code", code)
	if err != nil {
		return errors.Wrapf(err, "delete tool %s", code)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return domain.NewToolNotFoundError(code)
	}
	return nil
}

func (r *toolRepository) List(ctx context.Context) ([]domain.ToolSpec, error) {
	query, args, err := psql.Select(toolColumns...).
		From("tools").
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select")
	}

	logger.RepositoryCall(backend, "List", "query", query)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.RepositoryResult(backend, "List", err)
		return nil, errors.Wrap(err, "list tools")
	}
	defer rows.Close()

	var tools []domain.ToolSpec
	for rows.Next() {
		var code, toolType, brand string
		if err := rows.Scan(&code, &toolType, &brand); err != nil {
			return nil, errors.Wrap(err, "scan tool")
		}
		tool, err := toToolSpec(code, toolType, brand)
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate tools")
	}
	logger.RepositoryResult(backend, "List", nil, "count", len(tools))
	return tools, nil
}

// toToolSpec rebuilds a tool from its stored category; rates are never stored.
// Invalid rows yield unmarked errors so they surface as server faults.
func toToolSpec(code, toolType, brand string) (domain.ToolSpec, error) {
	category, err := domain.ParseToolCategory(toolType)
	if err != nil {
		// A bad stored row is a data fault, not a caller error: drop the input mark.
		return domain.ToolSpec{}, errors.Newf("stored tool %s has unknown category %q", code, toolType)
	}
	tool, err := domain.NewToolSpec(code, brand, category)
	if err != nil {
		return domain.ToolSpec{}, errors.Newf("stored tool has invalid code %q", code)
	}
	return tool, nil
}
