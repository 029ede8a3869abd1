package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyContent_RoundTrip(t *testing.T) {
	photo := "sup.png"
	b := Batch{ID: 7, Name: "Молоко", Description: "2.5%", Expiration: 10, Price: decimal.RequireFromString("12.50"), ItemsPerBatch: 4}
	s := Supplier{ID: 3, Name: "Ферма", Photo: &photo}

	c := NewSupplyContent(b, s, 3)
	assert.Equal(t, 12, c.TotalItems)
	assert.True(t, c.TotalPrice.Equal(decimal.RequireFromString("37.5")))

	raw, err := c.Encode()
	require.NoError(t, err)
	assert.Contains(t, raw, `"totalPrice":37.5`)

	got, err := ParseSupplyContent(raw)
	require.NoError(t, err)
	assert.Equal(t, c.BatchID, got.BatchID)
	assert.Equal(t, c.BatchName, got.BatchName)
	assert.Equal(t, c.Description, got.Description)
	assert.Equal(t, c.Expiration, got.Expiration)
	assert.Equal(t, c.Quantity, got.Quantity)
	assert.Equal(t, c.ItemsPerBatch, got.ItemsPerBatch)
	assert.Equal(t, c.TotalItems, got.TotalItems)
	assert.True(t, c.TotalPrice.Equal(got.TotalPrice))
	assert.Equal(t, "sup.png", got.SupplierPhoto)
	assert.Equal(t, "Ферма", got.SupplierName)
	assert.Equal(t, 12, got.Units())
}

func TestSupplyContent_EncodeKeepsShape(t *testing.T) {
	require.False(t, decimal.MarshalJSONWithoutQuotes, "importing domain must not change decimal encoding")

	b := Batch{ID: 2, Name: "Хлеб", Price: decimal.RequireFromString("40"), ItemsPerBatch: 1}
	raw, err := NewSupplyContent(b, Supplier{ID: 1, Name: "Пекарня"}, 2).Encode()
	require.NoError(t, err)
	assert.Contains(t, raw, `"totalPrice":80`)
	assert.Contains(t, raw, `"supplierPhoto":""`)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	for _, key := range []string{"version", "batchId", "batchName", "description", "expiration", "quantity",
		"itemsPerBatch", "totalItems", "totalPrice", "supplierPhoto", "supplierName"} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 11)
}

func TestParseSupplyContent_Defaults(t *testing.T) {
	c, err := ParseSupplyContent(`{"batchId":1,"quantity":2}`)
	require.NoError(t, err)
	assert.Equal(t, SupplyContentVersion, c.Version)
	assert.Equal(t, 1, c.ItemsPerBatch)
	assert.Equal(t, 2, c.Units())
}

func TestParseSupplyContent_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        "просто текст",
		"array":           `[1,2]`,
		"missing batch":   `{"quantity":1}`,
		"zero quantity":   `{"batchId":1,"quantity":0}`,
		"unknown version": `{"version":2,"batchId":1,"quantity":1}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSupplyContent(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedContent))
		})
	}
}
