package service

import (
	"context"
	"strings"
	"time"

	"postavki/internal/domain"
	"postavki/internal/logging"
	"postavki/internal/repository"
)

// SupportService обращения в поддержку
type SupportService struct {
	messages  repository.SupportMessageRepository
	stores    repository.StoreRepository
	suppliers repository.SupplierRepository
	now       func() time.Time
}

func NewSupportService(messages repository.SupportMessageRepository, stores repository.StoreRepository, suppliers repository.SupplierRepository) *SupportService {
	return &SupportService{messages: messages, stores: stores, suppliers: suppliers, now: time.Now}
}

func (s *SupportService) FromStore(ctx context.Context, storeID int64, text string) (*domain.SupportMessage, error) {
	text = strings.TrimSpace(text)
	if storeID <= 0 || text == "" {
		return nil, invalid("storeId and text are required")
	}
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return nil, err
	}
	return s.create(ctx, domain.SupportMessage{FromStoreID: &storeID, Text: text})
}

func (s *SupportService) FromSupplier(ctx context.Context, supplierID int64, text string) (*domain.SupportMessage, error) {
	text = strings.TrimSpace(text)
	if supplierID <= 0 || text == "" {
		return nil, invalid("supplierId and text are required")
	}
	if _, err := s.suppliers.GetByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.create(ctx, domain.SupportMessage{FromSupplierID: &supplierID, Text: text})
}

func (s *SupportService) create(ctx context.Context, m domain.SupportMessage) (*domain.SupportMessage, error) {
	m.CreatedAt = s.now().UTC()
	if err := s.messages.Create(ctx, &m); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("support message created", "message_id", m.ID)
	return s.messages.GetByID(ctx, m.ID)
}

func (s *SupportService) GetByID(ctx context.Context, id int64) (*domain.SupportMessage, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.messages.GetByID(ctx, id)
}

func (s *SupportService) List(ctx context.Context, f repository.SupportFilter) ([]domain.SupportMessage, error) {
	return s.messages.List(ctx, f)
}

func (s *SupportService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.messages.Delete(ctx, id)
}
