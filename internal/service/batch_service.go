package service

import (
	"context"
	"strings"

	"postavki/internal/domain"
	"postavki/internal/repository"
)

// BatchService партии товара поставщиков
type BatchService struct {
	batches   repository.BatchRepository
	suppliers repository.SupplierRepository
}

func NewBatchService(batches repository.BatchRepository, suppliers repository.SupplierRepository) *BatchService {
	return &BatchService{batches: batches, suppliers: suppliers}
}

func validateBatch(b *domain.Batch) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" || b.SupplierID <= 0 {
		return invalid("name and supplierId are required")
	}
	if b.ItemsPerBatch == 0 {
		b.ItemsPerBatch = 1
	}
	if b.ItemsPerBatch < 0 || b.Quantity < 0 || b.Expiration < 0 {
		return invalid("itemsPerBatch, quantity and expiration must not be negative")
	}
	if b.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	return nil
}

func (s *BatchService) Create(ctx context.Context, b domain.Batch) (*domain.Batch, error) {
	if err := validateBatch(&b); err != nil {
		return nil, err
	}
	if _, err := s.suppliers.GetByID(ctx, b.SupplierID); err != nil {
		return nil, err
	}
	b.ID = 0
	b.Supplier = nil
	if err := s.batches.Create(ctx, &b); err != nil {
		return nil, err
	}
	return s.batches.GetByID(ctx, b.ID)
}

func (s *BatchService) GetByID(ctx context.Context, id int64) (*domain.Batch, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.batches.GetByID(ctx, id)
}

func (s *BatchService) Update(ctx context.Context, b domain.Batch) (*domain.Batch, error) {
	if b.ID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := validateBatch(&b); err != nil {
		return nil, err
	}
	if _, err := s.suppliers.GetByID(ctx, b.SupplierID); err != nil {
		return nil, err
	}
	b.Supplier = nil
	if err := s.batches.Update(ctx, &b); err != nil {
		return nil, err
	}
	return s.batches.GetByID(ctx, b.ID)
}

func (s *BatchService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.batches.Delete(ctx, id)
}

// List supplierID == 0 возвращает партии всех поставщиков
func (s *BatchService) List(ctx context.Context, supplierID int64) ([]domain.Batch, error) {
	return s.batches.List(ctx, supplierID)
}
