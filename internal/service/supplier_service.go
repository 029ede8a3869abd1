package service

import (
	"context"
	"errors"
	"strings"

	"postavki/internal/domain"
	"postavki/internal/logging"
	"postavki/internal/repository"
)

// SupplierService поставщики: регистрация, вход, удаление со всеми зависимыми данными
type SupplierService struct {
	suppliers repository.SupplierRepository
	batches   repository.BatchRepository
	reviews   repository.ReviewRepository
	messages  repository.SupportMessageRepository
	supplies  repository.SupplyRepository
	tx        repository.TxManager
	hasher    *PasswordHasher
}

func NewSupplierService(
	suppliers repository.SupplierRepository,
	batches repository.BatchRepository,
	reviews repository.ReviewRepository,
	messages repository.SupportMessageRepository,
	supplies repository.SupplyRepository,
	tx repository.TxManager,
	hasher *PasswordHasher,
) *SupplierService {
	return &SupplierService{
		suppliers: suppliers,
		batches:   batches,
		reviews:   reviews,
		messages:  messages,
		supplies:  supplies,
		tx:        tx,
		hasher:    hasher,
	}
}

func (s *SupplierService) Create(ctx context.Context, in AccountInput) (*domain.Supplier, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	sp := domain.Supplier{
		Name:        in.Name,
		Password:    hash,
		Address:     in.Address,
		Description: in.Description,
		Photo:       in.Photo,
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.suppliers.GetByName(ctx, in.Name); err == nil {
			return invalid("supplier %q already exists", in.Name)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return s.suppliers.Create(ctx, &sp)
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("supplier created", "supplier_id", sp.ID)
	return &sp, nil
}

func (s *SupplierService) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.suppliers.GetByID(ctx, id)
}

func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *SupplierService) Update(ctx context.Context, id int64, patch AccountPatch) (*domain.Supplier, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	var out *domain.Supplier
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		sp, err := s.suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		pw, err := patch.apply(&sp.Name, &sp.Address, &sp.Description, &sp.Photo)
		if err != nil {
			return err
		}
		if pw != "" {
			if sp.Password, err = s.hasher.Hash(pw); err != nil {
				return err
			}
		}
		other, err := s.suppliers.GetByName(ctx, sp.Name)
		switch {
		case err == nil && other.ID != sp.ID:
			return invalid("supplier %q already exists", sp.Name)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return err
		}
		if err := s.suppliers.Update(ctx, sp); err != nil {
			return err
		}
		out = sp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete удаляет поставщика вместе с партиями, отзывами о нём, обращениями и поставками
func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.suppliers.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.batches.DeleteBySupplier(ctx, id); err != nil {
			return err
		}
		if err := s.reviews.DeleteBySupplier(ctx, id); err != nil {
			return err
		}
		if err := s.messages.DeleteBySupplier(ctx, id); err != nil {
			return err
		}
		if err := s.supplies.DeleteBySupplier(ctx, id); err != nil {
			return err
		}
		return s.suppliers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("supplier deleted", "supplier_id", id)
	return nil
}

func (s *SupplierService) Login(ctx context.Context, name, password string) (*domain.Supplier, error) {
	sp, err := s.suppliers.GetByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, sp.Password) {
		return nil, ErrInvalidCredentials
	}
	return sp, nil
}
