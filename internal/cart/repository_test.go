package cart_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront/internal/cart"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	if dsn := os.Getenv("STOREFRONT_TEST_DSN"); dsn != "" {
		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("Failed to connect to test database: %v", err)
		}
		testPool = pool
	}

	exitCode := m.Run()

	if testPool != nil {
		testPool.Close()
	}

	os.Exit(exitCode)
}

func setup(t *testing.T) *pgxpool.Pool {
	if testPool == nil {
		t.Skip("STOREFRONT_TEST_DSN not set, skipping Postgres integration test")
	}

	truncate := func() {
		_, err := testPool.Exec(context.Background(),
			`TRUNCATE TABLE cart_items, products, categories, customers CASCADE`)
		if err != nil {
			t.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	truncate()
	t.Cleanup(truncate)

	return testPool
}

func seedCustomerAndProduct(t *testing.T, db *pgxpool.Pool, price float64, stock int) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	customerID, err := uuid.NewV4()
	require.NoError(t, err)
	_, err = db.Exec(ctx, `
		INSERT INTO customers (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, 'Test', 'Customer', $2, 'x', $3, $3)
	`, customerID, customerID.String()+"@example.com", now)
	require.NoError(t, err)

	categoryID, err := uuid.NewV4()
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1, 'Accessories')`, categoryID)
	require.NoError(t, err)

	productID, err := uuid.NewV4()
	require.NoError(t, err)
	_, err = db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, stock, category_id, created_at, updated_at)
		VALUES ($1, 'Cashmere Crew Neck Sweater', '', $2, $3, $4, $5, $5)
	`, productID, price, stock, categoryID, now)
	require.NoError(t, err)

	return customerID, productID
}

func TestPostgresRepository_AddItem_MergesQuantity(t *testing.T) {
	db := setup(t)
	repo := cart.NewRepository(db)

	customerID, productID := seedCustomerAndProduct(t, db, 99.90, 30)
	ctx := context.Background()

	firstID, err := repo.AddItem(ctx, customerID, productID, 2)
	require.NoError(t, err)

	// Re-adding the same product merges into one line by summing quantities.
	secondID, err := repo.AddItem(ctx, customerID, productID, 3)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	items, err := repo.ListItems(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, productID, items[0].ProductID)
}

func TestPostgresRepository_ListItems_CurrentPrice(t *testing.T) {
	db := setup(t)
	repo := cart.NewRepository(db)

	customerID, productID := seedCustomerAndProduct(t, db, 19.90, 100)
	ctx := context.Background()

	_, err := repo.AddItem(ctx, customerID, productID, 2)
	require.NoError(t, err)

	items, err := repo.ListItems(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 19.90, items[0].UnitPrice, 0.001)
	assert.InDelta(t, 39.80, items[0].LineTotal(), 0.001)

	// The listing always reflects the current product price, not the price
	// at add time.
	_, err = db.Exec(ctx, `UPDATE products SET price = 24.90 WHERE id = $1`, productID)
	require.NoError(t, err)

	items, err = repo.ListItems(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 24.90, items[0].UnitPrice, 0.001)
}

func TestPostgresRepository_ListItems_ReadIsIdempotent(t *testing.T) {
	db := setup(t)
	repo := cart.NewRepository(db)

	customerID, productID := seedCustomerAndProduct(t, db, 14.90, 50)
	ctx := context.Background()

	_, err := repo.AddItem(ctx, customerID, productID, 4)
	require.NoError(t, err)

	first, err := repo.ListItems(ctx, customerID)
	require.NoError(t, err)
	second, err := repo.ListItems(ctx, customerID)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated reads differ (-first +second):\n%s", diff)
	}
}

func TestPostgresRepository_RemoveItem(t *testing.T) {
	db := setup(t)
	repo := cart.NewRepository(db)

	customerID, productID := seedCustomerAndProduct(t, db, 49.90, 10)
	ctx := context.Background()

	itemID, err := repo.AddItem(ctx, customerID, productID, 1)
	require.NoError(t, err)

	require.NoError(t, repo.RemoveItem(ctx, itemID))

	items, err := repo.ListItems(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// A second delete finds nothing.
	assert.ErrorIs(t, repo.RemoveItem(ctx, itemID), cart.ErrItemNotFound)
}
