package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/catalogs/product"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const (
	ingredientTable = "ingredients"
	linkTable       = "product_ingredients"
)

var _ product.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implements product.IngredientRepository.
type IngredientRepo struct {
	*postgres.BaseRepo[*product.Ingredient]
}

// NewIngredientRepo creates a new ingredient repository.
func NewIngredientRepo(txm *postgres.TxManager) *IngredientRepo {
	return &IngredientRepo{
		BaseRepo: postgres.NewBaseRepo[*product.Ingredient](
			txm,
			ingredientTable,
			"ingredient",
			postgres.ExtractDBColumns[product.Ingredient](),
			func() *product.Ingredient { return &product.Ingredient{} },
		),
	}
}

// UpsertQuery builds the statement that inserts missing names and returns
// the row of every requested name.
func (r *IngredientRepo) UpsertQuery(names []string) (string, []any, error) {
	q := r.Builder().Insert(ingredientTable).Columns("id", "name")
	for _, name := range names {
		q = q.Values(id.New(), name)
	}
	return q.Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id, name").ToSql()
}

// Upsert returns one ingredient per name, creating missing ones.
func (r *IngredientRepo) Upsert(ctx context.Context, names []string) ([]product.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}

	sql, args, err := r.UpsertQuery(names)
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var out []product.Ingredient
	if err := pgxscan.Select(ctx, r.Querier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("upsert ingredients: %w", err))
	}
	return out, nil
}

// Replace makes ingredientIDs the exact association set of productID.
func (r *IngredientRepo) Replace(ctx context.Context, productID id.ID, ingredientIDs []id.ID) error {
	q := r.Querier(ctx)

	sql, args, err := r.Builder().Delete(linkTable).Where(squirrel.Eq{"product_id": productID}).ToSql()
	if err != nil {
		return fmt.Errorf("build unlink: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(fmt.Errorf("unlink ingredients: %w", err))
	}

	if len(ingredientIDs) == 0 {
		return nil
	}

	ins := r.Builder().Insert(linkTable).Columns("product_id", "ingredient_id")
	for _, ingredientID := range ingredientIDs {
		ins = ins.Values(productID, ingredientID)
	}
	if sql, args, err = ins.Suffix("ON CONFLICT DO NOTHING").ToSql(); err != nil {
		return fmt.Errorf("build link: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(fmt.Errorf("link ingredients: %w", err))
	}
	return nil
}

type linkedIngredient struct {
	ProductID id.ID `db:"product_id"`
	product.Ingredient
}

// ForProducts loads the ingredient sets of several products at once.
func (r *IngredientRepo) ForProducts(ctx context.Context, productIDs []id.ID) (map[id.ID][]product.Ingredient, error) {
	out := make(map[id.ID][]product.Ingredient, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	sql, args, err := r.Builder().
		Select("pi.product_id", "i.id", "i.name").
		From(linkTable + " pi").
		Join(ingredientTable + " i ON i.id = pi.ingredient_id").
		Where(squirrel.Eq{"pi.product_id": productIDs}).
		OrderBy("i.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []linkedIngredient
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("load ingredients: %w", err))
	}
	for _, row := range rows {
		out[row.ProductID] = append(out[row.ProductID], row.Ingredient)
	}
	return out, nil
}
