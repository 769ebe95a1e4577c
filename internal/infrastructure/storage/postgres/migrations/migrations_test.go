package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpSection(t *testing.T) {
	script := "-- +goose Up\nCREATE TABLE a (id INT);\n-- +goose Down\nDROP TABLE a;\n"

	assert.Equal(t, "CREATE TABLE a (id INT);", UpSection(script))
	assert.Empty(t, UpSection("SELECT 1"))
}

func TestEmbeddedSchema(t *testing.T) {
	names, err := Scripts()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	raw, err := files.ReadFile(names[0])
	require.NoError(t, err)
	up := UpSection(string(raw))

	assert.Contains(t, up, "addresses_one_default")
	assert.Contains(t, up, "media_one_feature")
	assert.Contains(t, up, "UNIQUE (customer_id, restaurant_id)")
	assert.NotContains(t, up, "DROP TABLE")
}
