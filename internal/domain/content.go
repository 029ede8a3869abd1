package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SupplyContentVersion текущая версия формата Supply.Content
const SupplyContentVersion = 1

// ErrMalformedContent содержимое поставки не разбирается как SupplyContent
var ErrMalformedContent = errors.New("malformed supply content")

// SupplyContent снимок заказа, который сохраняется в Supply.Content при оформлении
type SupplyContent struct {
	Version       int             `json:"version"`
	BatchID       int64           `json:"batchId"`
	BatchName     string          `json:"batchName"`
	Description   string          `json:"description"`
	Expiration    int             `json:"expiration"`
	Quantity      int             `json:"quantity"`
	ItemsPerBatch int             `json:"itemsPerBatch"`
	TotalItems    int             `json:"totalItems"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	SupplierPhoto string          `json:"supplierPhoto"`
	SupplierName  string          `json:"supplierName"`
}

// NewSupplyContent собирает снимок заказа quantity партий batch у supplier
func NewSupplyContent(b Batch, s Supplier, quantity int) SupplyContent {
	c := SupplyContent{
		Version:       SupplyContentVersion,
		BatchID:       b.ID,
		BatchName:     b.Name,
		Description:   b.Description,
		Expiration:    b.Expiration,
		Quantity:      quantity,
		ItemsPerBatch: b.ItemsPerBatch,
		TotalItems:    quantity * b.ItemsPerBatch,
		TotalPrice:    b.Price.Mul(decimal.NewFromInt(int64(quantity))),
		SupplierName:  s.Name,
	}
	if s.Photo != nil {
		c.SupplierPhoto = *s.Photo
	}
	return c
}

// MarshalJSON пишет totalPrice числом независимо от настроек пакета decimal
func (c SupplyContent) MarshalJSON() ([]byte, error) {
	type plain SupplyContent
	return json.Marshal(struct {
		plain
		TotalPrice json.Number `json:"totalPrice"`
	}{plain: plain(c), TotalPrice: json.Number(c.TotalPrice.String())})
}

// Encode сериализует снимок в строку для Supply.Content
func (c SupplyContent) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode supply content: %w", err)
	}
	return string(b), nil
}

// Units число физических единиц товара в заказе
func (c SupplyContent) Units() int {
	return c.Quantity * c.ItemsPerBatch
}

// ParseSupplyContent строгий разбор содержимого поставки.
// Отсутствующая версия читается как 1, ItemsPerBatch < 1 как 1.
func ParseSupplyContent(raw string) (SupplyContent, error) {
	var c SupplyContent
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return SupplyContent{}, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	if c.Version == 0 {
		c.Version = SupplyContentVersion
	}
	if c.Version != SupplyContentVersion {
		return SupplyContent{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedContent, c.Version)
	}
	if c.BatchID <= 0 {
		return SupplyContent{}, fmt.Errorf("%w: batchId is required", ErrMalformedContent)
	}
	if c.Quantity < 1 {
		return SupplyContent{}, fmt.Errorf("%w: quantity must be positive", ErrMalformedContent)
	}
	if c.ItemsPerBatch < 1 {
		c.ItemsPerBatch = 1
	}
	return c, nil
}
