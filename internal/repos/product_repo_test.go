package repos_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldleaf/internal/repos"
	"goldleaf/internal/validate"
)

func memdb(t *testing.T) *sqlxDB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return &sqlxDB{
		Products:   repos.NewProductRepo(db),
		Categories: repos.NewCategoryRepo(db),
		Carts:      repos.NewCartRepo(db),
	}
}

type sqlxDB struct {
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo
	Carts      *repos.CartRepo
}

func fakeProduct(f *gofakeit.Faker) repos.ProductInput {
	name := f.ProductName()
	return repos.ProductInput{
		Name:            name,
		Slug:            validate.Slugify(name),
		Description:     f.Sentence(8),
		Price:           decimal.NewFromInt(int64(f.Number(100, 5000))),
		StockStatus:     "in_stock",
		PopularityScore: float64(f.Number(0, 100)),
	}
}

func TestProductCreateUpdateDelete(t *testing.T) {
	db := memdb(t)
	f := gofakeit.New(7)

	in := fakeProduct(f)
	require.NoError(t, db.Products.Create("prd-x1", in))

	got, err := db.Products.Get("prd-x1")
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Slug, got.Slug)
	assert.True(t, got.Price.Equal(in.Price))
	assert.False(t, got.OriginalPrice.Valid)

	in.Price = decimal.NewFromInt(250)
	in.OriginalPrice = decimal.NullDecimal{Decimal: decimal.NewFromInt(400), Valid: true}
	require.NoError(t, db.Products.Update("prd-x1", in))

	got, err = db.Products.Get("prd-x1")
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(250)))
	require.True(t, got.OriginalPrice.Valid)
	assert.True(t, got.OriginalPrice.Decimal.Equal(decimal.NewFromInt(400)))

	require.NoError(t, db.Products.Delete("prd-x1"))
	_, err = db.Products.Get("prd-x1")
	assert.Error(t, err)
}

func TestSetCategoriesReplaces(t *testing.T) {
	db := memdb(t)

	require.NoError(t, db.Products.SetCategories("prd-chain-01", []string{"cat-rings", "cat-belts"}))
	cats, err := db.Products.Categories("prd-chain-01")
	require.NoError(t, err)
	require.Len(t, cats, 2)

	require.NoError(t, db.Products.SetCategories("prd-chain-01", nil))
	cats, err = db.Products.Categories("prd-chain-01")
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCartSaveLoadKeepsPosition(t *testing.T) {
	db := memdb(t)

	belt, err := db.Products.Get("prd-belt-01")
	require.NoError(t, err)
	ring, err := db.Products.Get("prd-ring-01")
	require.NoError(t, err)

	lines := []repos.CartLine{
		{Product: belt, Quantity: 2},
		{Product: ring, Quantity: 1},
	}
	require.NoError(t, db.Carts.Save("sess-a", lines))

	got, err := db.Carts.Load("sess-a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "prd-belt-01", got[0].Product.ID)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "prd-ring-01", got[1].Product.ID)

	// saving again replaces the snapshot
	require.NoError(t, db.Carts.Save("sess-a", lines[1:]))
	got, err = db.Carts.Load("sess-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "prd-ring-01", got[0].Product.ID)

	require.NoError(t, db.Carts.Delete("sess-a"))
	got, err = db.Carts.Load("sess-a")
	require.NoError(t, err)
	assert.Empty(t, got)
}
