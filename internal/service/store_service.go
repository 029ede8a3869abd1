package service

import (
	"context"
	"errors"
	"strings"

	"postavki/internal/domain"
	"postavki/internal/logging"
	"postavki/internal/repository"
)

// maxPasswordLen bcrypt учитывает только первые 72 байта
const maxPasswordLen = 72

// AccountInput поля регистрации магазина или поставщика
type AccountInput struct {
	Name        string  `json:"name"`
	Password    string  `json:"password"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	Photo       *string `json:"photo"`
}

func (in *AccountInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" || in.Password == "" || in.Address == "" {
		return invalid("name, password and address are required")
	}
	return checkPassword(in.Password)
}

// AccountPatch частичное обновление: nil поля не меняются
type AccountPatch struct {
	Name        *string `json:"name"`
	Password    *string `json:"password"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Photo       *string `json:"photo"`
}

// apply переносит заданные поля в name/address/description/photo, возвращает новый пароль или ""
func (p AccountPatch) apply(name, address, description *string, photo **string) (string, error) {
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" {
			return "", invalid("name must not be empty")
		}
		*name = n
	}
	if p.Address != nil {
		a := strings.TrimSpace(*p.Address)
		if a == "" {
			return "", invalid("address must not be empty")
		}
		*address = a
	}
	if p.Description != nil {
		*description = *p.Description
	}
	if p.Photo != nil {
		*photo = p.Photo
	}
	if p.Password == nil {
		return "", nil
	}
	if *p.Password == "" {
		return "", invalid("password must not be empty")
	}
	return *p.Password, checkPassword(*p.Password)
}

func checkPassword(pw string) error {
	if len(pw) > maxPasswordLen {
		return invalid("password must be at most %d bytes", maxPasswordLen)
	}
	return nil
}

// StoreService магазины: регистрация, вход, удаление со всеми зависимыми данными
type StoreService struct {
	stores     repository.StoreRepository
	warehouses repository.WarehouseRepository
	reviews    repository.ReviewRepository
	messages   repository.SupportMessageRepository
	supplies   repository.SupplyRepository
	tx         repository.TxManager
	hasher     *PasswordHasher
}

func NewStoreService(
	stores repository.StoreRepository,
	warehouses repository.WarehouseRepository,
	reviews repository.ReviewRepository,
	messages repository.SupportMessageRepository,
	supplies repository.SupplyRepository,
	tx repository.TxManager,
	hasher *PasswordHasher,
) *StoreService {
	return &StoreService{
		stores:     stores,
		warehouses: warehouses,
		reviews:    reviews,
		messages:   messages,
		supplies:   supplies,
		tx:         tx,
		hasher:     hasher,
	}
}

// Create регистрирует магазин и в той же транзакции заводит ему пустой склад
func (s *StoreService) Create(ctx context.Context, in AccountInput) (*domain.Store, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var out *domain.Store
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.stores.GetByName(ctx, in.Name); err == nil {
			return invalid("store %q already exists", in.Name)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		st := domain.Store{
			Name:        in.Name,
			Password:    hash,
			Address:     in.Address,
			Description: in.Description,
			Photo:       in.Photo,
		}
		if err := s.stores.Create(ctx, &st); err != nil {
			return err
		}
		if err := s.warehouses.Create(ctx, &domain.Warehouse{StoreID: st.ID}); err != nil {
			return err
		}
		out, err = s.stores.GetByID(ctx, st.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("store created", "store_id", out.ID)
	return out, nil
}

func (s *StoreService) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.stores.GetByID(ctx, id)
}

func (s *StoreService) List(ctx context.Context) ([]domain.Store, error) {
	return s.stores.List(ctx)
}

func (s *StoreService) Update(ctx context.Context, id int64, patch AccountPatch) (*domain.Store, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	var out *domain.Store
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		st, err := s.stores.GetByID(ctx, id)
		if err != nil {
			return err
		}
		pw, err := patch.apply(&st.Name, &st.Address, &st.Description, &st.Photo)
		if err != nil {
			return err
		}
		if pw != "" {
			if st.Password, err = s.hasher.Hash(pw); err != nil {
				return err
			}
		}
		other, err := s.stores.GetByName(ctx, st.Name)
		switch {
		case err == nil && other.ID != st.ID:
			return invalid("store %q already exists", st.Name)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return err
		}
		if err := s.stores.Update(ctx, st); err != nil {
			return err
		}
		out, err = s.stores.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete удаляет магазин вместе со складом, отзывами, обращениями и поставками
func (s *StoreService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.stores.GetByID(ctx, id); err != nil {
			return err
		}
		w, err := s.warehouses.GetByStoreID(ctx, id, false)
		switch {
		case err == nil:
			if err := s.warehouses.DeleteUnitsByWarehouse(ctx, w.ID); err != nil {
				return err
			}
			if err := s.warehouses.Delete(ctx, w.ID); err != nil {
				return err
			}
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		if err := s.reviews.DeleteByStore(ctx, id); err != nil {
			return err
		}
		if err := s.messages.DeleteByStore(ctx, id); err != nil {
			return err
		}
		if err := s.supplies.DeleteByStore(ctx, id); err != nil {
			return err
		}
		return s.stores.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("store deleted", "store_id", id)
	return nil
}

// Login проверяет пароль. Неизвестное имя и неверный пароль неразличимы
func (s *StoreService) Login(ctx context.Context, name, password string) (*domain.Store, error) {
	st, err := s.stores.GetByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, st.Password) {
		return nil, ErrInvalidCredentials
	}
	return st, nil
}
