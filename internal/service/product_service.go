package service

import (
	"context"
	"strings"

	"postavki/internal/domain"
	"postavki/internal/repository"
)

// ProductService инкапсулирует бизнес-логику вокруг товаров
type ProductService struct {
	repo       repository.ProductRepository
	warehouses repository.WarehouseRepository
	tx         repository.TxManager
}

func NewProductService(repo repository.ProductRepository, warehouses repository.WarehouseRepository, tx repository.TxManager) *ProductService {
	return &ProductService{repo: repo, warehouses: warehouses, tx: tx}
}

func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Price.IsNegative() || p.Expiration < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	cp := p
	cp.ID = 0
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	cp := p
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Delete удаляет товар и все его единицы на складах, счётчики складов уменьшаются
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		units, err := s.warehouses.UnitsByProduct(ctx, id)
		if err != nil {
			return err
		}
		perWarehouse := make(map[int64]int64)
		ids := make([]int64, 0, len(units))
		for _, u := range units {
			perWarehouse[u.WarehouseID]++
			ids = append(ids, u.ID)
		}
		if _, err := s.warehouses.DeleteUnits(ctx, ids); err != nil {
			return err
		}
		for wid, n := range perWarehouse {
			if err := s.warehouses.AdjustProductCount(ctx, wid, -n); err != nil {
				return err
			}
		}
		return s.repo.Delete(ctx, id)
	})
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}
