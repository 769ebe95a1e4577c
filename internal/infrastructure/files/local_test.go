package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "http://localhost:8080/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "category_images/soups.png", []byte("png")))

	data, err := os.ReadFile(filepath.Join(root, "category_images", "soups.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Equal(t, "http://localhost:8080/media/category_images/soups.png", store.URL("category_images/soups.png"))

	require.NoError(t, store.Delete(ctx, "category_images/soups.png"))
	_, err = os.Stat(filepath.Join(root, "category_images", "soups.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "category_images/soups.png"), "deleting twice is fine")
}

func TestLocalStore_RejectsEscapingRefs(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)
	ctx := context.Background()

	for _, ref := range []string{"", "../etc/passwd", "/abs/path.png", "a/../../b.png"} {
		assert.Error(t, store.Save(ctx, ref, []byte("x")), ref)
	}
}
