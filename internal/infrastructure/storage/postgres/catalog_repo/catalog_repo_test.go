package catalog_repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/domain"
)

func TestUpsertQuery(t *testing.T) {
	repo := NewIngredientRepo(nil)

	sql, args, err := repo.UpsertQuery([]string{"onion", "lamb"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO ingredients (id,name) VALUES ($1,$2),($3,$4)"), sql)
	assert.True(t, strings.HasSuffix(sql, "ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id, name"), sql)
	require.Len(t, args, 4)
	assert.Equal(t, "onion", args[1])
	assert.Equal(t, "lamb", args[3])
}

func TestProductListQuery_ActiveMenu(t *testing.T) {
	repo := NewProductRepo(nil)

	q, err := repo.ListQuery(domain.ListFilter{ActiveOnly: true, OrderBy: "-created_at"})
	require.NoError(t, err)
	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM products WHERE is_active = $1 ORDER BY created_at DESC")
	assert.Equal(t, []any{true}, args)
}

func TestCategoryColumns(t *testing.T) {
	sql, _, err := NewCategoryRepo(nil).Select().ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name, slug, image, is_active, created_at, updated_at FROM categories", sql)
}
