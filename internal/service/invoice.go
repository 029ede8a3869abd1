package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"postavki/internal/domain"
)

const (
	invoiceFallbackName      = "Товар из поставки"
	invoiceDefaultExpiration = 30
)

// InvoiceParty реквизиты стороны накладной
type InvoiceParty struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// InvoiceLine строка накладной
type InvoiceLine struct {
	BatchName     string          `json:"batchName"`
	Description   string          `json:"description"`
	Expiration    int             `json:"expiration,omitempty"`
	Quantity      int             `json:"quantity"`
	ItemsPerBatch int             `json:"itemsPerBatch"`
	TotalItems    int             `json:"totalItems"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// Invoice накладная по поставке
type Invoice struct {
	Number    string              `json:"number"`
	IssuedAt  time.Time           `json:"issuedAt"`
	SupplyID  int64               `json:"supplyId"`
	Status    domain.SupplyStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Supplier  InvoiceParty        `json:"supplier"`
	Store     InvoiceParty        `json:"store"`
	Line      InvoiceLine         `json:"line"`
}

// invoiceContent нестрогий вид содержимого: отсутствующие поля остаются nil
type invoiceContent struct {
	BatchName     *string          `json:"batchName"`
	Description   *string          `json:"description"`
	Expiration    *int             `json:"expiration"`
	Quantity      *int             `json:"quantity"`
	ItemsPerBatch *int             `json:"itemsPerBatch"`
	TotalPrice    *decimal.Decimal `json:"totalPrice"`
}

// parseInvoiceLine разбирает содержимое поставки без ошибок, подставляя значения по умолчанию
func parseInvoiceLine(raw string) InvoiceLine {
	line := InvoiceLine{
		BatchName:     invoiceFallbackName,
		Expiration:    invoiceDefaultExpiration,
		Quantity:      1,
		ItemsPerBatch: 1,
		TotalPrice:    decimal.Zero,
	}

	var c invoiceContent
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		line.Description = raw
		line.TotalItems = 1
		return line
	}
	if c.BatchName != nil && *c.BatchName != "" {
		line.BatchName = *c.BatchName
	}
	if c.Description != nil {
		line.Description = *c.Description
	}
	if c.Expiration != nil {
		line.Expiration = *c.Expiration
	}
	if line.Expiration < 0 {
		line.Expiration = 0
	}
	if c.Quantity != nil && *c.Quantity > 0 {
		line.Quantity = *c.Quantity
	}
	if c.ItemsPerBatch != nil && *c.ItemsPerBatch > 0 {
		line.ItemsPerBatch = *c.ItemsPerBatch
	}
	if c.TotalPrice != nil {
		line.TotalPrice = *c.TotalPrice
	}
	line.TotalItems = line.Quantity * line.ItemsPerBatch
	return line
}

// Invoice собирает накладную. Содержимое разбирается нестрого, накладная строится и по повреждённой поставке
func (s *SupplyService) Invoice(ctx context.Context, supplyID int64) (*Invoice, error) {
	if supplyID <= 0 {
		return nil, ErrInvalidInput
	}
	sp, err := s.supplies.GetByID(ctx, supplyID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inv := &Invoice{
		Number:    fmt.Sprintf("%d-%d", sp.ID, now.UnixMilli()),
		IssuedAt:  now,
		SupplyID:  sp.ID,
		Status:    sp.Status,
		CreatedAt: sp.CreatedAt,
		Supplier:  InvoiceParty{ID: sp.FromSupplierID},
		Store:     InvoiceParty{ID: sp.ToStoreID},
		Line:      parseInvoiceLine(sp.Content),
	}
	if sp.FromSupplier != nil {
		inv.Supplier.Name = sp.FromSupplier.Name
		inv.Supplier.Address = sp.FromSupplier.Address
	}
	if sp.ToStore != nil {
		inv.Store.Name = sp.ToStore.Name
		inv.Store.Address = sp.ToStore.Address
	}
	return inv, nil
}
