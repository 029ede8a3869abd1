package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postavki/internal/domain"
	"postavki/internal/repository"
)

func TestReview_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	st := env.store(t, "Магазин")
	sp := env.supplier(t, "Ферма")

	_, err := env.reviews.Create(ctx, st.ID, sp.ID, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.reviews.Create(ctx, st.ID, 999, "текст")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	rv, err := env.reviews.Create(ctx, st.ID, sp.ID, "всё вовремя")
	require.NoError(t, err)
	require.NotNil(t, rv.FromStore)
	require.NotNil(t, rv.ToSupplier)

	up, err := env.reviews.UpdateText(ctx, rv.ID, "почти всё вовремя")
	require.NoError(t, err)
	assert.Equal(t, "почти всё вовремя", up.Text)

	bySupplier, _ := env.reviews.List(ctx, repository.ReviewFilter{SupplierID: sp.ID})
	assert.Len(t, bySupplier, 1)
	byOther, _ := env.reviews.List(ctx, repository.ReviewFilter{StoreID: st.ID + 100})
	assert.Empty(t, byOther)

	require.NoError(t, env.reviews.Delete(ctx, rv.ID))
	assert.ErrorIs(t, env.reviews.Delete(ctx, rv.ID), repository.ErrNotFound)
}

func TestSupport_Messages(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	st := env.store(t, "Магазин")
	sp := env.supplier(t, "Ферма")

	m1, err := env.support.FromStore(ctx, st.ID, "не пришла поставка")
	require.NoError(t, err)
	require.NotNil(t, m1.FromStoreID)
	assert.Nil(t, m1.FromSupplierID)
	assert.True(t, env.clock.Equal(m1.CreatedAt))

	m2, err := env.support.FromSupplier(ctx, sp.ID, "как изменить адрес")
	require.NoError(t, err)
	require.NotNil(t, m2.FromSupplierID)
	assert.Nil(t, m2.FromStoreID)

	_, err = env.support.FromStore(ctx, 999, "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.support.FromSupplier(ctx, sp.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	byStore, _ := env.support.List(ctx, repository.SupportFilter{StoreID: st.ID})
	require.Len(t, byStore, 1)
	assert.Equal(t, m1.ID, byStore[0].ID)
	all, _ := env.support.List(ctx, repository.SupportFilter{})
	assert.Len(t, all, 2)

	require.NoError(t, env.support.Delete(ctx, m1.ID))
	_, err = env.support.GetByID(ctx, m1.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBatch_CreateValidation(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	sp := env.supplier(t, "Ферма")

	b, err := env.batches.Create(ctx, domain.Batch{Name: "Сыр", SupplierID: sp.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, b.ItemsPerBatch)
	require.NotNil(t, b.Supplier)

	_, err = env.batches.Create(ctx, domain.Batch{Name: "Сыр", SupplierID: 999})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.batches.Create(ctx, domain.Batch{Name: "Сыр", SupplierID: sp.ID, Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.batches.Create(ctx, domain.Batch{Name: "Сыр", SupplierID: sp.ID, Price: decimal.RequireFromString("-0.01")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	b.Quantity = 8
	up, err := env.batches.Update(ctx, *b)
	require.NoError(t, err)
	assert.Equal(t, 8, up.Quantity)

	own, _ := env.batches.List(ctx, sp.ID)
	assert.Len(t, own, 1)
	none, _ := env.batches.List(ctx, sp.ID+1)
	assert.Empty(t, none)
}
