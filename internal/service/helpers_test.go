package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"postavki/internal/config"
	"postavki/internal/domain"
	"postavki/internal/repository"
)

type testEnv struct {
	repos     *repository.Repositories
	supplies  *SupplyService
	houses    *WarehouseService
	stores    *StoreService
	suppliers *SupplierService
	batches   *BatchService
	products  *ProductService
	reviews   *ReviewService
	support   *SupportService
	clock     time.Time
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { _ = repository.Close(db) })

	r := repository.NewRepositories(db)
	hasher := NewPasswordHasher(4)
	env := &testEnv{
		repos:     r,
		supplies:  NewSupplyService(r.Supplies, r.Batches, r.Stores, r.Suppliers, r.Warehouses, r.Products, r.DB),
		houses:    NewWarehouseService(r.Warehouses, r.Products, r.DB),
		stores:    NewStoreService(r.Stores, r.Warehouses, r.Reviews, r.SupportMessages, r.Supplies, r.DB, hasher),
		suppliers: NewSupplierService(r.Suppliers, r.Batches, r.Reviews, r.SupportMessages, r.Supplies, r.DB, hasher),
		batches:   NewBatchService(r.Batches, r.Suppliers),
		products:  NewProductService(r.Products, r.Warehouses, r.DB),
		reviews:   NewReviewService(r.Reviews, r.Stores, r.Suppliers),
		support:   NewSupportService(r.SupportMessages, r.Stores, r.Suppliers),
		clock:     time.Date(2025, 9, 28, 12, 0, 0, 0, time.UTC),
	}
	env.supplies.now = func() time.Time { return env.clock }
	env.support.now = func() time.Time { return env.clock }
	return env
}

func (e *testEnv) store(t *testing.T, name string) *domain.Store {
	t.Helper()
	st, err := e.stores.Create(context.Background(), AccountInput{Name: name, Password: "secret", Address: "ул. Мира, 1"})
	require.NoError(t, err)
	return st
}

func (e *testEnv) supplier(t *testing.T, name string) *domain.Supplier {
	t.Helper()
	photo := "https://img.example/" + name + ".png"
	sp, err := e.suppliers.Create(context.Background(), AccountInput{Name: name, Password: "secret", Address: "склад 7", Photo: &photo})
	require.NoError(t, err)
	return sp
}

func (e *testEnv) batch(t *testing.T, supplierID int64, quantity, perBatch int) *domain.Batch {
	t.Helper()
	b, err := e.batches.Create(context.Background(), domain.Batch{
		Name:          "Молоко",
		Description:   "2.5%",
		Expiration:    10,
		Price:         decimal.RequireFromString("12.50"),
		ItemsPerBatch: perBatch,
		Quantity:      quantity,
		SupplierID:    supplierID,
	})
	require.NoError(t, err)
	return b
}

func (e *testEnv) warehouseCount(t *testing.T, storeID int64) (counter, rows int64) {
	t.Helper()
	ctx := context.Background()
	w, err := e.repos.Warehouses.GetByStoreID(ctx, storeID, false)
	require.NoError(t, err)
	rows, err = e.repos.Warehouses.CountUnits(ctx, w.ID)
	require.NoError(t, err)
	return w.ProductCount, rows
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
