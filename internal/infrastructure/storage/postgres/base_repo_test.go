package postgres

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/domain"
)

type row struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

func newTestRepo() *BaseRepo[*row] {
	return NewBaseRepo[*row](nil, "things", "thing", ExtractDBColumns[row](), func() *row { return &row{} })
}

func TestListQuery(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name     string
		filter   domain.ListFilter
		where    []squirrel.Sqlizer
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "default order",
			filter:  domain.ListFilter{},
			wantSQL: "SELECT id, name, is_active FROM things ORDER BY name ASC",
		},
		{
			name:     "active with search",
			filter:   domain.ListFilter{ActiveOnly: true, Search: "plov", OrderBy: "-name", Limit: 10},
			wantSQL:  "SELECT id, name, is_active FROM things WHERE is_active = $1 AND name ILIKE $2 ORDER BY name DESC LIMIT 10",
			wantArgs: []any{true, "%plov%"},
		},
		{
			name:     "extra condition first",
			filter:   domain.ListFilter{Offset: 20},
			where:    []squirrel.Sqlizer{squirrel.Eq{"category_id": "c1"}},
			wantSQL:  "SELECT id, name, is_active FROM things WHERE category_id = $1 ORDER BY name ASC OFFSET 20",
			wantArgs: []any{"c1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.ListQuery(tt.filter, tt.where...)
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if len(tt.wantArgs) == 0 {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestListQuery_RejectsUnknownOrder(t *testing.T) {
	_, err := newTestRepo().ListQuery(domain.ListFilter{OrderBy: "name; drop table things"})
	assert.True(t, apperror.IsInvalidInput(err))
}
