package service

import (
	"context"
	"strings"

	"postavki/internal/domain"
	"postavki/internal/logging"
	"postavki/internal/repository"
)

// DefaultExpiration срок годности в днях, если он не указан при добавлении товара
const DefaultExpiration = 30

// WarehouseService управление единицами товара на складах и группировка для витрины
type WarehouseService struct {
	warehouses repository.WarehouseRepository
	products   repository.ProductRepository
	tx         repository.TxManager
}

func NewWarehouseService(warehouses repository.WarehouseRepository, products repository.ProductRepository, tx repository.TxManager) *WarehouseService {
	return &WarehouseService{warehouses: warehouses, products: products, tx: tx}
}

// ProductGroup одинаковые товары склада одной строкой
type ProductGroup struct {
	Product          domain.Product `json:"product"`
	Count            int            `json:"count"`
	WarehouseIDs     []int64        `json:"warehouseIds"`
	FirstWarehouseID int64          `json:"firstWarehouseId"`
}

type GroupedWarehouse struct {
	Warehouse       *domain.Warehouse `json:"warehouse"`
	GroupedProducts []ProductGroup    `json:"groupedProducts"`
}

// groupKey товары равны, если совпадают все видимые покупателю поля
type groupKey struct {
	Name        string
	Description string
	Expiration  int
	Price       string
	Photo       string
}

func keyOf(p domain.Product) groupKey {
	k := groupKey{
		Name:        p.Name,
		Description: p.Description,
		Expiration:  p.Expiration,
		Price:       p.Price.String(),
	}
	if p.Photo != nil {
		k.Photo = *p.Photo
	}
	return k
}

// GroupProducts группирует единицы склада в порядке первого появления.
// WarehouseIDs хранит id строк WarehouseProduct, по ним клиент удаляет единицы.
func GroupProducts(units []domain.WarehouseProduct) []ProductGroup {
	groups := make([]ProductGroup, 0)
	index := make(map[groupKey]int)
	for _, u := range units {
		if u.Product == nil {
			continue
		}
		k := keyOf(*u.Product)
		i, ok := index[k]
		if !ok {
			index[k] = len(groups)
			groups = append(groups, ProductGroup{
				Product:          *u.Product,
				WarehouseIDs:     []int64{},
				FirstWarehouseID: u.ID,
			})
			i = len(groups) - 1
		}
		groups[i].Count++
		groups[i].WarehouseIDs = append(groups[i].WarehouseIDs, u.ID)
	}
	return groups
}

// GroupByStore склад магазина с товарами, сгруппированными для отображения
func (s *WarehouseService) GroupByStore(ctx context.Context, storeID int64) (*GroupedWarehouse, error) {
	if storeID <= 0 {
		return nil, ErrInvalidInput
	}
	w, err := s.warehouses.GetByStoreID(ctx, storeID, true)
	if err != nil {
		return nil, err
	}
	return &GroupedWarehouse{Warehouse: w, GroupedProducts: GroupProducts(w.Products)}, nil
}

func (s *WarehouseService) GetByStore(ctx context.Context, storeID int64) (*domain.Warehouse, error) {
	if storeID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.warehouses.GetByStoreID(ctx, storeID, true)
}

func (s *WarehouseService) List(ctx context.Context) ([]domain.Warehouse, error) {
	return s.warehouses.List(ctx)
}

// RemoveUnit удаляет одну единицу товара и уменьшает счётчик её склада
func (s *WarehouseService) RemoveUnit(ctx context.Context, unitID int64) (*domain.Warehouse, error) {
	if unitID <= 0 {
		return nil, ErrInvalidInput
	}
	var w *domain.Warehouse
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := s.warehouses.GetUnit(ctx, unitID)
		if err != nil {
			return err
		}
		n, err := s.warehouses.DeleteUnits(ctx, []int64{u.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		if err := s.warehouses.AdjustProductCount(ctx, u.WarehouseID, -1); err != nil {
			return err
		}
		w, err = s.warehouses.GetByID(ctx, u.WarehouseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("warehouse unit removed", "unit_id", unitID, "warehouse_id", w.ID)
	return w, nil
}

// BulkRemove удаляет найденные единицы из ids, несуществующие id пропускаются.
// Если не найдено ни одной (в том числе для пустого списка), возвращает ErrNotFound
func (s *WarehouseService) BulkRemove(ctx context.Context, ids []int64) (int64, error) {
	var removed int64
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		units, err := s.warehouses.FindUnits(ctx, ids)
		if err != nil {
			return err
		}
		if len(units) == 0 {
			return repository.ErrNotFound
		}

		perWarehouse := make(map[int64]int64)
		order := make([]int64, 0)
		found := make([]int64, 0, len(units))
		for _, u := range units {
			if _, ok := perWarehouse[u.WarehouseID]; !ok {
				order = append(order, u.WarehouseID)
			}
			perWarehouse[u.WarehouseID]++
			found = append(found, u.ID)
		}

		if removed, err = s.warehouses.DeleteUnits(ctx, found); err != nil {
			return err
		}
		for _, wid := range order {
			if err := s.warehouses.AdjustProductCount(ctx, wid, -perWarehouse[wid]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logging.FromContext(ctx).Info("warehouse units removed", "requested", len(ids), "removed", removed)
	return removed, nil
}

// AddProduct заводит товар и кладёт одну его единицу на склад магазина
func (s *WarehouseService) AddProduct(ctx context.Context, storeID int64, p domain.Product) (*domain.WarehouseProduct, error) {
	if storeID <= 0 {
		return nil, ErrInvalidInput
	}
	p.ID = 0
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, invalid("name is required")
	}
	if p.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}
	if p.Expiration <= 0 {
		p.Expiration = DefaultExpiration
	}

	units := make([]domain.WarehouseProduct, 1)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		w, err := s.warehouses.GetByStoreID(ctx, storeID, false)
		if err != nil {
			return err
		}
		if err := s.products.Create(ctx, &p); err != nil {
			return err
		}
		units[0] = domain.WarehouseProduct{ProductID: p.ID, WarehouseID: w.ID}
		if err := s.warehouses.CreateUnits(ctx, units); err != nil {
			return err
		}
		return s.warehouses.AdjustProductCount(ctx, w.ID, 1)
	})
	if err != nil {
		return nil, err
	}
	unit := units[0]
	unit.Product = &p
	logging.FromContext(ctx).Info("product added to warehouse",
		"store_id", storeID, "warehouse_id", unit.WarehouseID, "product_id", p.ID)
	return &unit, nil
}
