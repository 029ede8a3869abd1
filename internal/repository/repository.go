package repository

import (
	"context"
	"errors"
	"time"

	"postavki/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrConflict условное обновление не затронуло ни одной строки
var ErrConflict = errors.New("conflict")

// SupplyFilter параметры фильтрации списка поставок
type SupplyFilter struct {
	StoreID    int64
	SupplierID int64
	Status     domain.SupplyStatus
}

// ReviewFilter параметры фильтрации отзывов
type ReviewFilter struct {
	StoreID    int64
	SupplierID int64
}

// SupportFilter параметры фильтрации обращений в поддержку
type SupportFilter struct {
	StoreID    int64
	SupplierID int64
}

// StoreRepository интерфейс репозитория магазинов
type StoreRepository interface {
	Create(ctx context.Context, s *domain.Store) error
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetByName(ctx context.Context, name string) (*domain.Store, error)
	Update(ctx context.Context, s *domain.Store) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Store, error)
}

// SupplierRepository интерфейс репозитория поставщиков
type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	GetByName(ctx context.Context, name string) (*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Supplier, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	CreateMany(ctx context.Context, ps []domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Product, error)
}

// BatchRepository интерфейс репозитория партий
type BatchRepository interface {
	Create(ctx context.Context, b *domain.Batch) error
	GetByID(ctx context.Context, id int64) (*domain.Batch, error)
	// GetForSupplier ищет партию только среди партий поставщика
	GetForSupplier(ctx context.Context, id, supplierID int64) (*domain.Batch, error)
	Update(ctx context.Context, b *domain.Batch) error
	Delete(ctx context.Context, id int64) error
	DeleteBySupplier(ctx context.Context, supplierID int64) error
	List(ctx context.Context, supplierID int64) ([]domain.Batch, error)
	// DecrementQuantity списывает n партий одним условным UPDATE.
	// ErrConflict, если остаток меньше n.
	DecrementQuantity(ctx context.Context, id, supplierID int64, n int) error
}

// WarehouseRepository интерфейс репозитория складов и единиц товара на них
type WarehouseRepository interface {
	Create(ctx context.Context, w *domain.Warehouse) error
	GetByID(ctx context.Context, id int64) (*domain.Warehouse, error)
	// GetByStoreID с withUnits подгружает единицы вместе с товарами
	GetByStoreID(ctx context.Context, storeID int64, withUnits bool) (*domain.Warehouse, error)
	List(ctx context.Context) ([]domain.Warehouse, error)
	Delete(ctx context.Context, id int64) error
	AdjustProductCount(ctx context.Context, id int64, delta int64) error

	CreateUnits(ctx context.Context, units []domain.WarehouseProduct) error
	GetUnit(ctx context.Context, id int64) (*domain.WarehouseProduct, error)
	FindUnits(ctx context.Context, ids []int64) ([]domain.WarehouseProduct, error)
	UnitsByProduct(ctx context.Context, productID int64) ([]domain.WarehouseProduct, error)
	DeleteUnits(ctx context.Context, ids []int64) (int64, error)
	DeleteUnitsByWarehouse(ctx context.Context, warehouseID int64) error
	CountUnits(ctx context.Context, warehouseID int64) (int64, error)
}

// SupplyRepository интерфейс репозитория поставок
type SupplyRepository interface {
	Create(ctx context.Context, s *domain.Supply) error
	// GetByID подгружает поставщика и магазин
	GetByID(ctx context.Context, id int64) (*domain.Supply, error)
	List(ctx context.Context, f SupplyFilter) ([]domain.Supply, error)
	Delete(ctx context.Context, id int64) error
	DeleteByStore(ctx context.Context, storeID int64) error
	DeleteBySupplier(ctx context.Context, supplierID int64) error
	// Transition переводит поставку из from в to одним условным UPDATE.
	// ErrConflict, если текущий статус уже не from.
	Transition(ctx context.Context, id int64, from, to domain.SupplyStatus, at time.Time) error
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ReviewFilter) ([]domain.Review, error)
	DeleteByStore(ctx context.Context, storeID int64) error
	DeleteBySupplier(ctx context.Context, supplierID int64) error
}

// SupportMessageRepository интерфейс репозитория обращений
type SupportMessageRepository interface {
	Create(ctx context.Context, m *domain.SupportMessage) error
	GetByID(ctx context.Context, id int64) (*domain.SupportMessage, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f SupportFilter) ([]domain.SupportMessage, error)
	DeleteByStore(ctx context.Context, storeID int64) error
	DeleteBySupplier(ctx context.Context, supplierID int64) error
}

// TxManager абстракция транзакции. Все вызовы репозиториев с ctx из fn идут в одной транзакции.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
