package components

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	dbtypes "github.com/aslanbekov/pcforge-backend/pkg/db/types"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	"github.com/aslanbekov/pcforge-backend/pkg/pagination"
)

func setupComponentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS components (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  category TEXT NOT NULL,
  price INTEGER NOT NULL,
  currency TEXT NOT NULL DEFAULT 'KZT',
  rating REAL NOT NULL DEFAULT 0,
  availability TEXT NOT NULL DEFAULT 'in_stock',
  specs TEXT NOT NULL DEFAULT '{}',
  color TEXT NOT NULL DEFAULT '',
  description TEXT,
  features TEXT NOT NULL DEFAULT '{}',
  image TEXT,
  popularity INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedComponent(t *testing.T, db *gorm.DB, name, brand string, category enums.ComponentCategory, price int, rating float64, availability enums.Availability, popularity int) *models.Component {
	t.Helper()
	component := &models.Component{
		ID:           uuid.New(),
		Name:         name,
		Brand:        brand,
		Model:        name,
		Category:     category,
		Price:        price,
		Currency:     enums.CurrencyKZT,
		Rating:       rating,
		Availability: availability,
		Specs:        dbtypes.SpecMap{"power": "125"},
		Features:     pq.StringArray{"feature-a"},
		Popularity:   popularity,
	}
	require.NoError(t, db.Create(component).Error)
	return component
}

func seedCatalogFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedComponent(t, db, "Intel Core i7-13700K", "Intel", enums.CategoryCPU, 185_000, 4.8, enums.AvailabilityInStock, 95)
	seedComponent(t, db, "AMD Ryzen 7 7700X", "AMD", enums.CategoryCPU, 162_000, 4.7, enums.AvailabilityInStock, 88)
	seedComponent(t, db, "Intel Core i5-13600K", "Intel", enums.CategoryCPU, 133_000, 4.6, enums.AvailabilityPreOrder, 82)
	seedComponent(t, db, "NVIDIA RTX 4070", "NVIDIA", enums.CategoryGPU, 259_000, 4.9, enums.AvailabilityInStock, 97)
}

func TestListFiltersByCategoryAndBrand(t *testing.T) {
	db := setupComponentsTestDB(t)
	seedCatalogFixture(t, db)
	repo := NewRepository(db)

	category := enums.CategoryCPU
	brand := "Intel"
	rows, total, err := repo.List(context.Background(), ListFilters{
		Category: &category,
		Brand:    &brand,
	}, pagination.Params{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	for _, row := range rows {
		assert.Equal(t, enums.CategoryCPU, row.Category)
		assert.Equal(t, "Intel", row.Brand)
	}
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	db := setupComponentsTestDB(t)
	seedCatalogFixture(t, db)
	repo := NewRepository(db)

	rows, total, err := repo.List(context.Background(), ListFilters{Search: "rYzEn"}, pagination.Params{})
	require.NoError(t, err)

	require.EqualValues(t, 1, total)
	assert.Equal(t, "AMD Ryzen 7 7700X", rows[0].Name)
}

func TestListPriceRangeAndStockFilters(t *testing.T) {
	db := setupComponentsTestDB(t)
	seedCatalogFixture(t, db)
	repo := NewRepository(db)

	minPrice, maxPrice := 150_000, 200_000
	inStock := true
	rows, total, err := repo.List(context.Background(), ListFilters{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		InStock:  &inStock,
	}, pagination.Params{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	for _, row := range rows {
		assert.GreaterOrEqual(t, row.Price, 150_000)
		assert.LessOrEqual(t, row.Price, 200_000)
		assert.Equal(t, enums.AvailabilityInStock, row.Availability)
	}
}

func TestListSortsByPriceAscending(t *testing.T) {
	db := setupComponentsTestDB(t)
	seedCatalogFixture(t, db)
	repo := NewRepository(db)

	category := enums.CategoryCPU
	rows, _, err := repo.List(context.Background(), ListFilters{
		Category:  &category,
		SortBy:    enums.SortByPrice,
		SortOrder: enums.SortAsc,
	}, pagination.Params{})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, 133_000, rows[0].Price)
	assert.Equal(t, 162_000, rows[1].Price)
	assert.Equal(t, 185_000, rows[2].Price)
}

func TestListDefaultsToPopularityDescending(t *testing.T) {
	db := setupComponentsTestDB(t)
	seedCatalogFixture(t, db)
	repo := NewRepository(db)

	rows, _, err := repo.List(context.Background(), ListFilters{}, pagination.Params{})
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, "NVIDIA RTX 4070", rows[0].Name)
	assert.Equal(t, "Intel Core i7-13700K", rows[1].Name)
}

func TestListPaginates(t *testing.T) {
	db := setupComponentsTestDB(t)
	seedCatalogFixture(t, db)
	repo := NewRepository(db)

	rows, total, err := repo.List(context.Background(), ListFilters{}, pagination.Params{Page: 2, Limit: 3})
	require.NoError(t, err)

	assert.EqualValues(t, 4, total)
	assert.Len(t, rows, 1)
}

func TestFindByID(t *testing.T) {
	db := setupComponentsTestDB(t)
	repo := NewRepository(db)
	seeded := seedComponent(t, db, "Corsair RM850x", "Corsair", enums.CategoryPSU, 67_000, 4.8, enums.AvailabilityInStock, 86)

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Name, found.Name)
	assert.Equal(t, 125, found.Specs.Int("power", 0))

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListAllReturnsWholeCatalog(t *testing.T) {
	db := setupComponentsTestDB(t)
	seedCatalogFixture(t, db)
	repo := NewRepository(db)

	rows, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
