package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
)

// BaseRepo provides CRUD for tables whose rows map onto T through "db" tags.
// Embed it in entity repositories. T is a pointer to the entity struct.
type BaseRepo[T any] struct {
	txm        *TxManager
	tableName  string
	entityName string
	selectCols []string
	newFn      func() T
}

// NewBaseRepo creates a new base repository.
func NewBaseRepo[T any](
	txm *TxManager,
	tableName, entityName string,
	selectCols []string,
	newFn func() T,
) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		tableName:  tableName,
		entityName: entityName,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the transaction carried by ctx, or the pool.
func (r *BaseRepo[T]) Querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// Table returns the table name.
func (r *BaseRepo[T]) Table() string {
	return r.tableName
}

// Select starts a SELECT of every mapped column.
func (r *BaseRepo[T]) Select() squirrel.SelectBuilder {
	return r.Builder().Select(r.selectCols...).From(r.tableName)
}

func (r *BaseRepo[T]) columns(entity T, skip ...string) map[string]any {
	data := StructToMap(entity)
	out := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if v, ok := data[col]; ok {
			out[col] = v
		}
	}
	for _, col := range skip {
		delete(out, col)
	}
	return out
}

// Create inserts entity.
func (r *BaseRepo[T]) Create(ctx context.Context, entity T) error {
	data := r.columns(entity)
	if len(data) == 0 {
		return fmt.Errorf("%s: no db columns", r.tableName)
	}

	sql, args, err := r.Builder().Insert(r.tableName).SetMap(data).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return MapError(fmt.Errorf("insert %s: %w", r.tableName, err))
	}
	return nil
}

// Update rewrites every column of entity except id and created_at.
func (r *BaseRepo[T]) Update(ctx context.Context, entity T) error {
	data := StructToMap(entity)
	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("%s: entity has no id column", r.tableName)
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(r.columns(entity, "id", "created_at")).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return MapError(fmt.Errorf("update %s: %w", r.tableName, err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	return nil
}

// GetByID retrieves entity by ID.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	return r.GetBy(ctx, "id", entityID)
}

// GetBy retrieves the entity whose column equals value.
func (r *BaseRepo[T]) GetBy(ctx context.Context, column string, value any) (T, error) {
	entity, err := r.FindOne(ctx, r.Select().Where(squirrel.Eq{column: value}).Limit(1))
	if apperror.IsNotFound(err) {
		return entity, apperror.NewNotFound(r.entityName, value)
	}
	return entity, err
}

// GetForUpdate retrieves entity by ID with a row lock.
func (r *BaseRepo[T]) GetForUpdate(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := r.FindOne(ctx, r.Select().Where(squirrel.Eq{"id": entityID}).Suffix("FOR UPDATE"))
	if apperror.IsNotFound(err) {
		return entity, apperror.NewNotFound(r.entityName, entityID)
	}
	return entity, err
}

// FindOne executes q and scans a single row.
func (r *BaseRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.entityName, "matching query")
		}
		return entity, MapError(fmt.Errorf("find %s: %w", r.tableName, err))
	}
	return entity, nil
}

// FindAll executes q and scans every row.
func (r *BaseRepo[T]) FindAll(ctx context.Context, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, MapError(fmt.Errorf("list %s: %w", r.tableName, err))
	}
	return items, nil
}

// ListQuery applies filter to a SELECT of every mapped column.
func (r *BaseRepo[T]) ListQuery(filter domain.ListFilter, where ...squirrel.Sqlizer) (squirrel.SelectBuilder, error) {
	q := r.Select()
	for _, w := range where {
		q = q.Where(w)
	}

	if filter.ActiveOnly && r.hasColumn("is_active") {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Search != "" && r.hasColumn("name") {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return q, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q, nil
}

// List retrieves entities matching filter.
func (r *BaseRepo[T]) List(ctx context.Context, filter domain.ListFilter) ([]T, error) {
	q, err := r.ListQuery(filter)
	if err != nil {
		return nil, err
	}
	return r.FindAll(ctx, q)
}

// ExistsWhere reports whether any row satisfies where.
func (r *BaseRepo[T]) ExistsWhere(ctx context.Context, where squirrel.Sqlizer) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		Prefix("SELECT EXISTS (").
		From(r.tableName).
		Where(where).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var exists bool
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, MapError(fmt.Errorf("exists %s: %w", r.tableName, err))
	}
	return exists, nil
}

// NameTaken implements validation.NameChecker.
func (r *BaseRepo[T]) NameTaken(ctx context.Context, name string, exclude *id.ID) (bool, error) {
	where := squirrel.And{squirrel.Eq{"name": name}}
	if exclude != nil {
		where = append(where, squirrel.NotEq{"id": *exclude})
	}
	return r.ExistsWhere(ctx, where)
}

// Delete performs physical removal. A row still referenced by a foreign key
// yields a Conflict.
func (r *BaseRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	sql, args, err := r.Builder().Delete(r.tableName).Where(squirrel.Eq{"id": entityID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		mapped := MapError(fmt.Errorf("delete %s: %w", r.tableName, err))
		if appErr, ok := apperror.AsAppError(mapped); ok && apperror.IsConflict(mapped) {
			return appErr.WithDetail("entity", r.entityName).WithDetail("id", entityID.String())
		}
		return mapped
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	return nil
}

// ClearFlag implements singleton.Collection: every row holding the boolean
// field is reset to false.
func (r *BaseRepo[T]) ClearFlag(ctx context.Context, field string) error {
	if !r.hasColumn(field) {
		return fmt.Errorf("%s: unknown flag column %q", r.tableName, field)
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		Set(field, false).
		Where(squirrel.Eq{field: true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear flag: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return MapError(fmt.Errorf("clear %s.%s: %w", r.tableName, field, err))
	}
	return nil
}

func (r *BaseRepo[T]) hasColumn(col string) bool {
	for _, c := range r.selectCols {
		if c == col {
			return true
		}
	}
	return false
}

func (r *BaseRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		if r.hasColumn("name") {
			return "name ASC", nil
		}
		return "created_at ASC", nil
	}

	direction := "ASC"
	field := orderBy
	switch {
	case strings.HasPrefix(orderBy, "-"):
		direction = "DESC"
		field = orderBy[1:]
	case strings.HasPrefix(orderBy, "+"):
		field = orderBy[1:]
	}

	field = strings.TrimSpace(field)
	if !r.hasColumn(field) {
		return "", apperror.NewInvalidInput("orderBy", "invalid orderBy").WithDetail("value", orderBy)
	}
	return field + " " + direction, nil
}
