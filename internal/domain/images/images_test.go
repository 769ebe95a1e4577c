package images

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type storeMock struct {
	mock.Mock
}

func (m *storeMock) Save(ctx context.Context, ref string, data []byte) error {
	return m.Called(ctx, ref, data).Error(0)
}

func (m *storeMock) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

func TestCleanupSkipsSentinelsAndDuplicates(t *testing.T) {
	c := NewCleanup(nil)

	c.Replace(NoFood, "product_images/plov.png")
	c.Replace("product_images/plov.png", "product_images/plov.png")
	c.Remove("")
	c.Remove(NoPhoto)
	c.Remove("category_images/soups.png")
	c.Remove("category_images/soups.png")
	c.Replace("product_images/old.png", "product_images/new.png")

	assert.Equal(t, []string{"category_images/soups.png", "product_images/old.png"}, c.Pending())
}

func TestCleanupFlushDeletesInOrderAndSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	store.On("Delete", ctx, "a.png").Return(errors.New("gone")).Once()
	store.On("Delete", ctx, "b.png").Return(nil).Once()

	c := NewCleanup(store)
	c.Remove("a.png")
	c.Remove("b.png")
	c.Flush(ctx)

	store.AssertExpectations(t)
	assert.Empty(t, c.Pending())
}

func TestUploadValidate(t *testing.T) {
	var none *Upload
	assert.NoError(t, none.Validate())
	assert.Error(t, (&Upload{Filename: "a.png"}).Validate())
	assert.NoError(t, (&Upload{Filename: "a.png", Data: []byte{1}}).Validate())
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, "product_images/plov.jpg", Distinct("product_images/plov.jpg", "product_images/old.jpg"))
	assert.Equal(t, "product_images/plov.jpg", Distinct("product_images/plov.jpg", ""))

	got := Distinct("product_images/plov.jpg", "product_images/plov.jpg")
	assert.NotEqual(t, "product_images/plov.jpg", got)
	assert.True(t, strings.HasPrefix(got, "product_images/plov-"), got)
	assert.True(t, strings.HasSuffix(got, ".jpg"), got)
	assert.Len(t, got, len("product_images/plov-12345678.jpg"))

	again := Distinct(got, got)
	assert.NotEqual(t, got, again)
}

func TestCleanupDiscardRemovesOnlyWrittenFiles(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	store.On("Save", ctx, "category_images/soups-1.png", []byte("NEW")).Return(nil).Once()
	store.On("Delete", ctx, "category_images/soups-1.png").Return(nil).Once()

	c := NewCleanup(store)
	require.NoError(t, c.Put(ctx, "category_images/soups-1.png", &Upload{Filename: "b.png", Data: []byte("NEW")}))
	require.NoError(t, c.Put(ctx, "category_images/ignored.png", nil))
	c.Replace("category_images/soups.png", "category_images/soups-1.png")
	assert.Equal(t, []string{"category_images/soups-1.png"}, c.Written())

	c.Discard(ctx)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Delete", ctx, "category_images/soups.png")
	assert.Empty(t, c.Pending())
	assert.Empty(t, c.Written())
}

func TestCleanupPutReportsStorageFailure(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	store.On("Save", ctx, "a.png", []byte{1}).Return(errors.New("bucket unavailable")).Once()

	c := NewCleanup(store)
	err := c.Put(ctx, "a.png", &Upload{Filename: "a.png", Data: []byte{1}})
	require.Error(t, err)
	assert.Empty(t, c.Written())
}
