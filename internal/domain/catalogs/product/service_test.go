package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/catalogs/category"
	"dastarkhan/internal/domain/domaintest"
	"dastarkhan/internal/domain/images"
)

// --- fakes ---

type memProducts struct {
	rows      *domaintest.Table[Product]
	updateErr error
}

func (r *memProducts) Create(_ context.Context, p *Product) error {
	if _, ok := r.rows.Find(func(v Product) bool { return v.Name == p.Name }); ok {
		return apperror.NewDuplicate("product", "name", p.Name)
	}
	stored := *p
	stored.Ingredients = nil
	r.rows.Put(p.ID, stored)
	return nil
}

func (r *memProducts) Update(_ context.Context, p *Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored := *p
	stored.Ingredients = nil
	r.rows.Put(p.ID, stored)
	return nil
}

func (r *memProducts) GetBySlug(_ context.Context, slug string) (*Product, error) {
	p, ok := r.rows.Find(func(v Product) bool { return v.Slug == slug })
	if !ok {
		return nil, apperror.NewNotFound("product", slug)
	}
	return &p, nil
}

func (r *memProducts) List(_ context.Context, filter domain.ListFilter, categoryID *id.ID) ([]*Product, error) {
	var out []*Product
	for _, p := range r.rows.All() {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if categoryID != nil && p.CategoryID != *categoryID {
			continue
		}
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (r *memProducts) Delete(_ context.Context, key id.ID) error {
	if !r.rows.Delete(key) {
		return apperror.NewNotFound("product", key)
	}
	return nil
}

func (r *memProducts) NameTaken(_ context.Context, name string, exclude *id.ID) (bool, error) {
	_, ok := r.rows.Find(func(v Product) bool {
		return v.Name == name && (exclude == nil || v.ID != *exclude)
	})
	return ok, nil
}

type memIngredients struct {
	rows  *domaintest.Table[Ingredient]
	links *domaintest.Table[[]id.ID]
}

func (r *memIngredients) Upsert(_ context.Context, names []string) ([]Ingredient, error) {
	out := make([]Ingredient, 0, len(names))
	for _, n := range names {
		ing, ok := r.rows.Find(func(v Ingredient) bool { return v.Name == n })
		if !ok {
			ing = Ingredient{Name: n}
			ing.ID = id.New()
			r.rows.Put(ing.ID, ing)
		}
		out = append(out, ing)
	}
	return out, nil
}

func (r *memIngredients) Replace(_ context.Context, productID id.ID, ids []id.ID) error {
	r.links.Put(productID, append([]id.ID(nil), ids...))
	return nil
}

func (r *memIngredients) ForProducts(_ context.Context, productIDs []id.ID) (map[id.ID][]Ingredient, error) {
	out := make(map[id.ID][]Ingredient)
	for _, pid := range productIDs {
		ids, _ := r.links.Get(pid)
		for _, iid := range ids {
			ing, _ := r.rows.Get(iid)
			out[pid] = append(out[pid], ing)
		}
	}
	return out, nil
}

type stubCategories map[string]*category.Category

func (s stubCategories) GetByID(_ context.Context, key id.ID) (*category.Category, error) {
	for _, c := range s {
		if c.ID == key {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("category", key)
}

func (s stubCategories) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := s[slug]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("category", slug)
}

type fixture struct {
	products    *memProducts
	ingredients *memIngredients
	store       *domaintest.ImageStore
	soups       *category.Category
	drinks      *category.Category
	svc         *Service
}

func newFixture() *fixture {
	f := &fixture{
		products: &memProducts{rows: domaintest.NewTable[Product]()},
		ingredients: &memIngredients{
			rows:  domaintest.NewTable[Ingredient](),
			links: domaintest.NewTable[[]id.ID](),
		},
		store:  domaintest.NewImageStore(),
		soups:  category.NewCategory("Soups"),
		drinks: category.NewCategory("Drinks"),
	}
	f.soups.Slug, f.drinks.Slug = "soups", "drinks"
	txm := domaintest.NewTxManager(f.products.rows, f.ingredients.rows, f.ingredients.links)
	cats := stubCategories{"soups": f.soups, "drinks": f.drinks}
	f.svc = NewService(f.products, f.ingredients, cats, txm, f.store)
	return f
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (f *fixture) input(name string) CreateInput {
	return CreateInput{
		CategoryID:    f.soups.ID,
		Name:          name,
		Description:   "Slow cooked",
		OriginalPrice: decimal.RequireFromString("100.00"),
	}
}

// --- tests ---

func TestCreate_DerivedFields(t *testing.T) {
	f := newFixture()
	in := f.input("Lagman  soup")
	in.DiscountPercent = dec("10")
	in.Ingredients = []string{" Salt", "pepper", "SALT", ""}

	p, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "lagman-soup", p.Slug)
	require.NotNil(t, p.DiscountedPrice)
	assert.Equal(t, "90.00", p.DiscountedPrice.StringFixed(2))
	assert.Equal(t, images.NoFood, p.Image)
	assert.Equal(t, 1, p.Quantity)
	assert.True(t, p.IsActive)
	assert.Equal(t, []string{"salt", "pepper"}, p.IngredientNames())
}

func TestCreate_NoDiscountMeansNoDiscountedPrice(t *testing.T) {
	f := newFixture()

	p, err := f.svc.Create(context.Background(), f.input("Shorpa"))
	require.NoError(t, err)
	assert.Nil(t, p.DiscountPercent)
	assert.Nil(t, p.DiscountedPrice)
}

func TestCreate_UploadPath(t *testing.T) {
	f := newFixture()
	in := f.input("Beef Plov")
	in.Upload = &images.Upload{Filename: "IMG_1.JPG", Data: []byte{9}}

	p, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "product_images/beef-plov.jpg", p.Image)
	assert.Contains(t, f.store.Files, "product_images/beef-plov.jpg")
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, in *CreateInput)
		check  func(error) bool
	}{
		{
			name:   "discounted price without percent",
			mutate: func(_ *fixture, in *CreateInput) { in.DiscountedPrice = dec("50") },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "zero price",
			mutate: func(_ *fixture, in *CreateInput) { in.OriginalPrice = decimal.Zero },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "too many digits",
			mutate: func(_ *fixture, in *CreateInput) { in.OriginalPrice = decimal.RequireFromString("123456789.99") },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "nine whole digits",
			mutate: func(_ *fixture, in *CreateInput) { in.OriginalPrice = decimal.RequireFromString("123456789.5") },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "sub-cent price",
			mutate: func(_ *fixture, in *CreateInput) { in.OriginalPrice = decimal.RequireFromString("1.005") },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "discount over bound",
			mutate: func(_ *fixture, in *CreateInput) { in.DiscountPercent = dec("100") },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "negative quantity",
			mutate: func(_ *fixture, in *CreateInput) { q := -1; in.Quantity = &q },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "missing description",
			mutate: func(_ *fixture, in *CreateInput) { in.Description = " " },
			check:  apperror.IsInvalidInput,
		},
		{
			name:   "unknown category",
			mutate: func(_ *fixture, in *CreateInput) { in.CategoryID = id.New() },
			check:  apperror.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			in := f.input("Manti")
			tt.mutate(f, &in)

			_, err := f.svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Equal(t, 0, f.products.rows.Len())
		})
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input("Samsa"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.input("Samsa"))
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdate_IngredientSetIsReplaced(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := f.input("Salad")
	in.Ingredients = []string{"tomato", "cucumber"}
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	p, err := f.svc.Update(ctx, "salad", UpdateInput{Ingredients: []string{"Cucumber", "onion", "ONION"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"cucumber", "onion"}, p.IngredientNames())

	got, err := f.svc.Get(ctx, "salad")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cucumber", "onion"}, got.IngredientNames())

	_, kept := f.ingredients.rows.Find(func(v Ingredient) bool { return v.Name == "tomato" })
	assert.True(t, kept, "disassociated ingredients stay in the ingredient table")
}

func TestUpdate_OmittedIngredientsAreKept(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := f.input("Salad")
	in.Ingredients = []string{"tomato"}
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	desc := "Fresh"
	p, err := f.svc.Update(ctx, "salad", UpdateInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato"}, p.IngredientNames())
}

func TestUpdate_DiscountRecomputed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := f.input("Kebab")
	in.DiscountPercent = dec("10")
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	price := decimal.RequireFromString("19.99")
	p, err := f.svc.Update(ctx, "kebab", UpdateInput{OriginalPrice: &price, DiscountPercent: dec("15")})
	require.NoError(t, err)
	require.NotNil(t, p.DiscountedPrice)
	assert.Equal(t, "16.99", p.DiscountedPrice.StringFixed(2))

	p, err = f.svc.Update(ctx, "kebab", UpdateInput{ClearDiscount: true})
	require.NoError(t, err)
	assert.Nil(t, p.DiscountPercent)
	assert.Nil(t, p.DiscountedPrice)

	_, err = f.svc.Update(ctx, "kebab", UpdateInput{DiscountedPrice: dec("1")})
	assert.True(t, apperror.IsInvalidInput(err))
}

func TestUpdate_RenameRecomputesSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input("Tea"))
	require.NoError(t, err)

	name := "Green Tea"
	p, err := f.svc.Update(ctx, "tea", UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "green-tea", p.Slug)

	_, err = f.svc.Get(ctx, "tea")
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_ImageCleanupOrdering(t *testing.T) {
	ctx := context.Background()
	const x, y = "product_images/x.png", "product_images/y.png"

	t.Run("delete emitted after successful update", func(t *testing.T) {
		f := newFixture()
		in := f.input("Plov")
		in.Image = x
		_, err := f.svc.Create(ctx, in)
		require.NoError(t, err)

		ref := y
		p, err := f.svc.Update(ctx, "plov", UpdateInput{Image: &ref})
		require.NoError(t, err)
		assert.Equal(t, y, p.Image)
		assert.Equal(t, []string{x}, f.store.DeletedRefs())
	})

	t.Run("no delete when persist fails", func(t *testing.T) {
		f := newFixture()
		in := f.input("Plov")
		in.Image = x
		_, err := f.svc.Create(ctx, in)
		require.NoError(t, err)

		f.products.updateErr = errors.New("disk full")
		ref := y
		_, err = f.svc.Update(ctx, "plov", UpdateInput{Image: &ref})
		require.Error(t, err)
		assert.Empty(t, f.store.DeletedRefs())

		stored, err := f.svc.Get(ctx, "plov")
		require.NoError(t, err)
		assert.Equal(t, x, stored.Image)
	})

	t.Run("sentinel is never deleted", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Create(ctx, f.input("Plov"))
		require.NoError(t, err)

		ref := y
		_, err = f.svc.Update(ctx, "plov", UpdateInput{Image: &ref})
		require.NoError(t, err)
		assert.Empty(t, f.store.DeletedRefs())
	})
}

func TestUpdate_UploadOnSamePath(t *testing.T) {
	ctx := context.Background()
	const old = "product_images/beef-plov.jpg"

	f := newFixture()
	in := f.input("Beef Plov")
	in.Upload = &images.Upload{Filename: "a.jpg", Data: []byte("OLD")}
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	f.products.updateErr = errors.New("persist failed")
	_, err = f.svc.Update(ctx, "beef-plov", UpdateInput{
		Upload: &images.Upload{Filename: "b.jpg", Data: []byte("NEW")},
	})
	require.Error(t, err)

	stored, err := f.svc.Get(ctx, "beef-plov")
	require.NoError(t, err)
	assert.Equal(t, old, stored.Image)
	assert.Equal(t, []byte("OLD"), f.store.Files[old])
	assert.Len(t, f.store.Files, 1)
	assert.NotContains(t, f.store.DeletedRefs(), old)

	f.products.updateErr = nil
	p, err := f.svc.Update(ctx, "beef-plov", UpdateInput{
		Upload: &images.Upload{Filename: "b.jpg", Data: []byte("NEW")},
	})
	require.NoError(t, err)
	assert.NotEqual(t, old, p.Image)
	assert.Equal(t, []byte("NEW"), f.store.Files[p.Image])
	assert.NotContains(t, f.store.Files, old)
}

func TestListActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input("Lagman"))
	require.NoError(t, err)
	hidden := f.input("Hidden")
	inactive := false
	hidden.IsActive = &inactive
	_, err = f.svc.Create(ctx, hidden)
	require.NoError(t, err)

	all, err := f.svc.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Lagman", all[0].Name)

	bySoups, err := f.svc.ListActive(ctx, "soups")
	require.NoError(t, err)
	assert.Len(t, bySoups, 1)

	_, err = f.svc.ListActive(ctx, "drinks")
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.svc.ListActive(ctx, "unknown")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_RemovesImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := f.input("Manti")
	in.Image = "product_images/manti.png"
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "manti"))
	assert.Equal(t, []string{"product_images/manti.png"}, f.store.DeletedRefs())
	assert.True(t, apperror.IsNotFound(f.svc.Delete(ctx, "manti")))
}
