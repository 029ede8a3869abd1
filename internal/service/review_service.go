package service

import (
	"context"
	"strings"

	"postavki/internal/domain"
	"postavki/internal/repository"
)

// ReviewService отзывы магазинов о поставщиках
type ReviewService struct {
	reviews   repository.ReviewRepository
	stores    repository.StoreRepository
	suppliers repository.SupplierRepository
}

func NewReviewService(reviews repository.ReviewRepository, stores repository.StoreRepository, suppliers repository.SupplierRepository) *ReviewService {
	return &ReviewService{reviews: reviews, stores: stores, suppliers: suppliers}
}

func (s *ReviewService) Create(ctx context.Context, fromStoreID, toSupplierID int64, text string) (*domain.Review, error) {
	text = strings.TrimSpace(text)
	if fromStoreID <= 0 || toSupplierID <= 0 || text == "" {
		return nil, invalid("fromStoreId, toSupplierId and text are required")
	}
	if _, err := s.stores.GetByID(ctx, fromStoreID); err != nil {
		return nil, err
	}
	if _, err := s.suppliers.GetByID(ctx, toSupplierID); err != nil {
		return nil, err
	}
	rv := domain.Review{FromStoreID: fromStoreID, ToSupplierID: toSupplierID, Text: text}
	if err := s.reviews.Create(ctx, &rv); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, rv.ID)
}

func (s *ReviewService) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.reviews.GetByID(ctx, id)
}

// UpdateText меняет только текст отзыва
func (s *ReviewService) UpdateText(ctx context.Context, id int64, text string) (*domain.Review, error) {
	text = strings.TrimSpace(text)
	if id <= 0 || text == "" {
		return nil, invalid("text is required")
	}
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rv.Text = text
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.reviews.Delete(ctx, id)
}

func (s *ReviewService) List(ctx context.Context, f repository.ReviewFilter) ([]domain.Review, error) {
	return s.reviews.List(ctx, f)
}
