package media

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/domaintest"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/singleton"
)

type memRepo struct {
	rows      *domaintest.Table[Media]
	updateErr error

	lockedReads int
}

func (r *memRepo) Create(_ context.Context, m *Media) error {
	r.rows.Put(m.ID, *m)
	return nil
}

func (r *memRepo) Update(_ context.Context, m *Media) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.rows.Put(m.ID, *m)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, key id.ID) (*Media, error) {
	m, ok := r.rows.Get(key)
	if !ok {
		return nil, apperror.NewNotFound("media", key)
	}
	return &m, nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, key id.ID) (*Media, error) {
	if domaintest.InTx(ctx) {
		r.lockedReads++
	}
	return r.GetByID(ctx, key)
}

func (r *memRepo) ListByRestaurant(_ context.Context, restaurantID id.ID) ([]*Media, error) {
	var out []*Media
	for _, m := range r.rows.All() {
		if m.RestaurantID == restaurantID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *memRepo) Delete(_ context.Context, key id.ID) error {
	if !r.rows.Delete(key) {
		return apperror.NewNotFound("media", key)
	}
	return nil
}

func (r *memRepo) ClearFlag(_ context.Context, _ string) error {
	r.rows.UpdateWhere(func(m Media) (Media, bool) {
		if !m.IsFeature {
			return m, false
		}
		m.IsFeature = false
		return m, true
	})
	return nil
}

type stubRestaurants map[string]id.ID

func (s stubRestaurants) IDBySlug(_ context.Context, slug string) (id.ID, error) {
	if v, ok := s[slug]; ok {
		return v, nil
	}
	return id.ID{}, apperror.NewNotFound("restaurant", slug)
}

type fixture struct {
	repo  *memRepo
	tx    *domaintest.TxManager
	store *domaintest.ImageStore
	svc   *Service
	rid   id.ID
}

func newFixture() *fixture {
	repo := &memRepo{rows: domaintest.NewTable[Media]()}
	store := domaintest.NewImageStore()
	txm := domaintest.NewTxManager(repo.rows)
	rid := id.New()
	svc := NewService(repo, stubRestaurants{"dastarkhan": rid}, txm, singleton.NewEnforcer(txm, txm), store)
	return &fixture{repo: repo, tx: txm, store: store, svc: svc, rid: rid}
}

func featured(repo *memRepo) int {
	return repo.rows.Count(func(m Media) bool { return m.IsFeature })
}

func TestCreate_FeaturedFlagIsExclusive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/a.jpg", AltText: "Hall", IsFeature: true})
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/b.jpg", AltText: "Terrace", IsFeature: true})
	require.NoError(t, err)

	gotA, _ := f.svc.Get(ctx, a.ID)
	gotB, _ := f.svc.Get(ctx, b.ID)
	assert.False(t, gotA.IsFeature)
	assert.True(t, gotB.IsFeature)
	assert.Equal(t, 1, featured(f.repo))
}

func TestCreate_Rules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", AltText: "No image"})
	assert.True(t, apperror.IsInvalidInput(err))

	_, err = f.svc.Create(ctx, CreateInput{RestaurantSlug: "unknown", Image: "restaurant_images/a.jpg", AltText: "Hall"})
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/a.jpg", AltText: strings.Repeat("x", MaxAltTextLength+1)})
	assert.True(t, apperror.IsInvalidInput(err))

	assert.Equal(t, 0, f.repo.rows.Len())
}

func TestCreate_UploadIsStored(t *testing.T) {
	f := newFixture()

	m, err := f.svc.Create(context.Background(), CreateInput{
		RestaurantSlug: "dastarkhan",
		Upload:         &images.Upload{Filename: "main hall.jpg", Data: []byte{1}},
		AltText:        "Hall",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.Image, "restaurant_images/"))
	assert.True(t, strings.HasSuffix(m.Image, "_main_hall.jpg"))
	assert.Contains(t, f.store.Files, m.Image)
}

func TestUpdate_ImageReplacement(t *testing.T) {
	ctx := context.Background()

	t.Run("old file removed after commit", func(t *testing.T) {
		f := newFixture()
		m, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/a.jpg", AltText: "Hall"})
		require.NoError(t, err)

		next := "restaurant_images/b.jpg"
		_, err = f.svc.Update(ctx, m.ID, UpdateInput{Image: &next, IsFeature: ptr(true)})
		require.NoError(t, err)
		assert.Equal(t, []string{"restaurant_images/a.jpg"}, f.store.DeletedRefs())
		assert.Equal(t, 1, featured(f.repo))
	})

	t.Run("failed update rolls back the flag clear", func(t *testing.T) {
		f := newFixture()
		first, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/a.jpg", AltText: "Hall", IsFeature: true})
		require.NoError(t, err)
		second, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/b.jpg", AltText: "Bar"})
		require.NoError(t, err)

		f.repo.updateErr = errors.New("lost connection")
		next := "restaurant_images/c.jpg"
		_, err = f.svc.Update(ctx, second.ID, UpdateInput{Image: &next, IsFeature: ptr(true)})
		require.Error(t, err)

		got, _ := f.svc.Get(ctx, first.ID)
		assert.True(t, got.IsFeature)
		assert.Empty(t, f.store.DeletedRefs())
	})
}

func TestUpdate_UploadOnSamePath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m, err := f.svc.Create(ctx, CreateInput{
		RestaurantSlug: "dastarkhan",
		Upload:         &images.Upload{Filename: "hall.jpg", Data: []byte("OLD")},
		AltText:        "Hall",
	})
	require.NoError(t, err)
	old := m.Image

	f.repo.updateErr = errors.New("lost connection")
	_, err = f.svc.Update(ctx, m.ID, UpdateInput{Upload: &images.Upload{Filename: "hall.jpg", Data: []byte("NEW")}})
	require.Error(t, err)

	got, err := f.svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, old, got.Image)
	assert.Equal(t, []byte("OLD"), f.store.Files[old])
	assert.Len(t, f.store.Files, 1)

	f.repo.updateErr = nil
	got, err = f.svc.Update(ctx, m.ID, UpdateInput{Upload: &images.Upload{Filename: "hall.jpg", Data: []byte("NEW")}})
	require.NoError(t, err)
	assert.NotEqual(t, old, got.Image)
	assert.Equal(t, []byte("NEW"), f.store.Files[got.Image])
	assert.Contains(t, f.store.DeletedRefs(), old)
	assert.NotContains(t, f.store.Files, old)
}

func TestUpdate_ReadsRowInsideTransaction(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/a.jpg", AltText: "Hall"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := f.svc.Update(ctx, m.ID, UpdateInput{AltText: ptr("Main hall")})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := f.svc.Update(ctx, m.ID, UpdateInput{IsFeature: ptr(true)})
		assert.NoError(t, err)
	}()
	wg.Wait()

	got, err := f.svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main hall", got.AltText)
	assert.True(t, got.IsFeature)
	assert.Equal(t, 2, f.repo.lockedReads)
}

func TestUpdate_MissingImage(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), id.New(), UpdateInput{AltText: ptr("Hall")})
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 1, f.tx.Rollbacks)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m, err := f.svc.Create(ctx, CreateInput{RestaurantSlug: "dastarkhan", Image: "restaurant_images/a.jpg", AltText: "Hall"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, m.ID))
	assert.Equal(t, []string{"restaurant_images/a.jpg"}, f.store.DeletedRefs())
	assert.True(t, apperror.IsNotFound(f.svc.Delete(ctx, m.ID)))
}

func ptr[T any](v T) *T { return &v }
