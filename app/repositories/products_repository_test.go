package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmaulana/go-catalog/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name string, categoryID, views int) *models.Product {
	return &models.Product{
		Name:        name,
		Description: "test product",
		Price:       decimal.NewFromFloat(9.99),
		Image:       "/uploads/test.webp",
		CategoryID:  categoryID,
		Views:       views,
	}
}

func TestProductRepositoryInitializesMissingFile(t *testing.T) {
	dir := t.TempDir()
	repo := NewProductRepository(dir)

	products, err := repo.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	data, err := os.ReadFile(filepath.Join(dir, productsFileName))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestProductRepositoryResetsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, productsFileName)
	require.NoError(t, os.WriteFile(path, []byte("{this is not json"), 0o644))

	repo := NewProductRepository(dir)
	products, err := repo.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestProductRepositoryCreateAssignsMaxPlusOne(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	first := newProduct("first", 1, 0)
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 1, first.ID)

	second := newProduct("second", 1, 0)
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 2, second.ID)

	// A pre-assigned id is respected and raises the next assignment.
	tenth := newProduct("tenth", 1, 0)
	tenth.ID = 10
	require.NoError(t, repo.Create(ctx, tenth))

	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, next)
}

func TestProductRepositoryCreateRejectsDuplicateID(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	first := newProduct("first", 1, 0)
	first.ID = 3
	require.NoError(t, repo.Create(ctx, first))

	dup := newProduct("dup", 1, 0)
	dup.ID = 3
	assert.Error(t, repo.Create(ctx, dup))
}

func TestProductRepositoryGetByID(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	created := newProduct("mug", 1, 0)
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "mug", found.Name)
	assert.True(t, found.Price.Equal(decimal.NewFromFloat(9.99)))

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepositoryUpdate(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	product := newProduct("mug", 1, 0)
	require.NoError(t, repo.Create(ctx, product))

	product.Name = "renamed mug"
	product.Price = decimal.NewFromFloat(12.00)
	require.NoError(t, repo.Update(ctx, product))

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "renamed mug", found.Name)

	ghost := newProduct("ghost", 1, 0)
	ghost.ID = 42
	assert.Error(t, repo.Update(ctx, ghost))
}

func TestProductRepositoryDelete(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	keep := newProduct("keep", 1, 0)
	drop := newProduct("drop", 1, 0)
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, drop))

	require.NoError(t, repo.Delete(ctx, drop.ID))

	products, err := repo.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "keep", products[0].Name)
}

func TestProductRepositoryGetByCategoryID(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("a", 1, 0)))
	require.NoError(t, repo.Create(ctx, newProduct("b", 2, 0)))
	require.NoError(t, repo.Create(ctx, newProduct("c", 1, 0)))

	inCategory, err := repo.GetByCategoryID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, inCategory, 2)

	empty, err := repo.GetByCategoryID(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductRepositoryGetFeaturedSortsByViews(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("cold", 1, 1)))
	require.NoError(t, repo.Create(ctx, newProduct("hot", 1, 50)))
	require.NoError(t, repo.Create(ctx, newProduct("warm", 1, 10)))

	featured, err := repo.GetFeatured(ctx, 2)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "hot", featured[0].Name)
	assert.Equal(t, "warm", featured[1].Name)
}

func TestProductRepositoryIncrementViews(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	product := newProduct("mug", 1, 0)
	require.NoError(t, repo.Create(ctx, product))

	updated, err := repo.IncrementViews(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 1, updated.Views)

	updated, err = repo.IncrementViews(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Views)

	missing, err := repo.IncrementViews(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepositoryDeleteByCategoryID(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("a", 1, 0)))
	require.NoError(t, repo.Create(ctx, newProduct("b", 2, 0)))
	require.NoError(t, repo.Create(ctx, newProduct("c", 1, 0)))

	removed, err := repo.DeleteByCategoryID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	remaining, err := repo.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].Name)

	none, err := repo.DeleteByCategoryID(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductRepositoryStoresPricesAsBareNumbers(t *testing.T) {
	dir := t.TempDir()
	repo := NewProductRepository(dir)
	ctx := context.Background()

	product := newProduct("mug", 1, 0)
	product.Price = decimal.NewFromFloat(24.5)
	require.NoError(t, repo.Create(ctx, product))

	data, err := os.ReadFile(filepath.Join(dir, productsFileName))
	require.NoError(t, err)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "24.5", string(raw[0]["price"]))
}
