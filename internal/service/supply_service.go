package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"postavki/internal/domain"
	"postavki/internal/logging"
	"postavki/internal/repository"
)

// SupplyService реализует жизненный цикл поставки: оформление, отправка, получение
type SupplyService struct {
	supplies   repository.SupplyRepository
	batches    repository.BatchRepository
	stores     repository.StoreRepository
	suppliers  repository.SupplierRepository
	warehouses repository.WarehouseRepository
	products   repository.ProductRepository
	tx         repository.TxManager
	now        func() time.Time
}

func NewSupplyService(
	supplies repository.SupplyRepository,
	batches repository.BatchRepository,
	stores repository.StoreRepository,
	suppliers repository.SupplierRepository,
	warehouses repository.WarehouseRepository,
	products repository.ProductRepository,
	tx repository.TxManager,
) *SupplyService {
	return &SupplyService{
		supplies:   supplies,
		batches:    batches,
		stores:     stores,
		suppliers:  suppliers,
		warehouses: warehouses,
		products:   products,
		tx:         tx,
		now:        time.Now,
	}
}

// OrderRequest заказ магазином quantity партий batchId у поставщика supplierId
type OrderRequest struct {
	BatchID    int64 `json:"batchId"`
	StoreID    int64 `json:"storeId"`
	SupplierID int64 `json:"supplierId"`
	Quantity   int   `json:"quantity"`
}

// BatchView партия с числом единиц товара в остатке
type BatchView struct {
	domain.Batch
	ProductCount int `json:"productCount"`
}

type SendResult struct {
	Supply       *domain.Supply `json:"supply"`
	UpdatedBatch BatchView      `json:"updatedBatch"`
}

type ReceiveResult struct {
	CreatedCount int               `json:"createdCount"`
	Supply       *domain.Supply    `json:"supply"`
	Warehouse    *domain.Warehouse `json:"warehouse"`
	Products     []domain.Product  `json:"products"`
}

// CreateOrder оформляет поставку. Остаток партии проверяется, но не списывается
func (s *SupplyService) CreateOrder(ctx context.Context, req OrderRequest) (*domain.Supply, error) {
	if req.BatchID <= 0 || req.StoreID <= 0 || req.SupplierID <= 0 {
		return nil, invalid("batchId, storeId and supplierId are required")
	}
	if req.Quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}

	var created *domain.Supply
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		b, err := s.batches.GetForSupplier(ctx, req.BatchID, req.SupplierID)
		if err != nil {
			return err
		}
		if _, err := s.stores.GetByID(ctx, req.StoreID); err != nil {
			return err
		}
		if b.Quantity < req.Quantity {
			return &StockError{Available: b.Quantity, Requested: req.Quantity}
		}
		supplier := b.Supplier
		if supplier == nil {
			if supplier, err = s.suppliers.GetByID(ctx, req.SupplierID); err != nil {
				return err
			}
		}

		content, err := domain.NewSupplyContent(*b, *supplier, req.Quantity).Encode()
		if err != nil {
			return err
		}
		sp := domain.Supply{
			FromSupplierID: req.SupplierID,
			ToStoreID:      req.StoreID,
			Content:        content,
			Status:         domain.SupplyStatusCreated,
			CreatedAt:      s.now().UTC(),
		}
		if err := s.supplies.Create(ctx, &sp); err != nil {
			return err
		}
		created, err = s.supplies.GetByID(ctx, sp.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("supply created",
		"supply_id", created.ID, "batch_id", req.BatchID, "store_id", req.StoreID, "quantity", req.Quantity)
	return created, nil
}

// Send отправка поставщиком: списывает партии и переводит поставку в «отправлен»
func (s *SupplyService) Send(ctx context.Context, supplyID int64) (*SendResult, error) {
	if supplyID <= 0 {
		return nil, invalid("supplyId is required")
	}

	var res SendResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		sp, err := s.supplies.GetByID(ctx, supplyID)
		if err != nil {
			return err
		}
		if sp.Status != domain.SupplyStatusCreated {
			return &StateError{Current: sp.Status, Required: domain.SupplyStatusCreated}
		}
		c, err := domain.ParseSupplyContent(sp.Content)
		if err != nil {
			return err
		}

		// партия заново ищется среди партий поставщика этой поставки
		b, err := s.batches.GetForSupplier(ctx, c.BatchID, sp.FromSupplierID)
		if err != nil {
			return err
		}
		if b.Quantity < c.Quantity {
			return &StockError{Available: b.Quantity, Requested: c.Quantity}
		}

		if err := s.supplies.Transition(ctx, sp.ID, domain.SupplyStatusCreated, domain.SupplyStatusShipped, s.now().UTC()); err != nil {
			return s.transitionErr(ctx, err, sp.ID, domain.SupplyStatusCreated)
		}
		if err := s.batches.DecrementQuantity(ctx, b.ID, sp.FromSupplierID, c.Quantity); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return s.stockErr(ctx, b.ID, c.Quantity)
			}
			return err
		}

		if res.Supply, err = s.supplies.GetByID(ctx, sp.ID); err != nil {
			return err
		}
		updated, err := s.batches.GetByID(ctx, b.ID)
		if err != nil {
			return err
		}
		res.UpdatedBatch = BatchView{Batch: *updated, ProductCount: updated.Quantity * updated.ItemsPerBatch}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("supply shipped",
		"supply_id", supplyID, "batch_id", res.UpdatedBatch.ID, "batch_quantity", res.UpdatedBatch.Quantity)
	return &res, nil
}

// Receive приёмка магазином: создаёт по строке Product и WarehouseProduct на каждую единицу товара
func (s *SupplyService) Receive(ctx context.Context, supplyID int64, pricePerItem *decimal.Decimal, photo string) (*ReceiveResult, error) {
	if supplyID <= 0 {
		return nil, invalid("supplyId is required")
	}
	if pricePerItem == nil {
		return nil, invalid("pricePerItem is required")
	}
	if pricePerItem.IsNegative() {
		return nil, invalid("pricePerItem must not be negative")
	}

	var res ReceiveResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		sp, err := s.supplies.GetByID(ctx, supplyID)
		if err != nil {
			return err
		}
		if sp.Status != domain.SupplyStatusShipped {
			return &StateError{Current: sp.Status, Required: domain.SupplyStatusShipped}
		}
		c, err := domain.ParseSupplyContent(sp.Content)
		if err != nil {
			return err
		}
		w, err := s.warehouses.GetByStoreID(ctx, sp.ToStoreID, false)
		if err != nil {
			return err
		}

		if err := s.supplies.Transition(ctx, sp.ID, domain.SupplyStatusShipped, domain.SupplyStatusReceived, s.now().UTC()); err != nil {
			return s.transitionErr(ctx, err, sp.ID, domain.SupplyStatusShipped)
		}

		if photo == "" {
			photo = c.SupplierPhoto
		}
		var photoRef *string
		if photo != "" {
			photoRef = &photo
		}
		total := c.Units()
		products := make([]domain.Product, total)
		for i := range products {
			products[i] = domain.Product{
				Name:        c.BatchName,
				Description: c.Description,
				Expiration:  c.Expiration,
				Price:       *pricePerItem,
				Photo:       photoRef,
			}
		}
		if err := s.products.CreateMany(ctx, products); err != nil {
			return err
		}
		units := make([]domain.WarehouseProduct, total)
		for i, p := range products {
			units[i] = domain.WarehouseProduct{ProductID: p.ID, WarehouseID: w.ID}
		}
		if err := s.warehouses.CreateUnits(ctx, units); err != nil {
			return err
		}
		if err := s.warehouses.AdjustProductCount(ctx, w.ID, int64(total)); err != nil {
			return err
		}

		res.CreatedCount = total
		res.Products = products
		if res.Supply, err = s.supplies.GetByID(ctx, sp.ID); err != nil {
			return err
		}
		res.Warehouse, err = s.warehouses.GetByID(ctx, w.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("supply received",
		"supply_id", supplyID, "warehouse_id", res.Warehouse.ID, "created", res.CreatedCount)
	return &res, nil
}

// GetSupply возвращает поставку по id
func (s *SupplyService) GetSupply(ctx context.Context, id int64) (*domain.Supply, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.supplies.GetByID(ctx, id)
}

func (s *SupplyService) ListSupplies(ctx context.Context, f repository.SupplyFilter) ([]domain.Supply, error) {
	return s.supplies.List(ctx, f)
}

func (s *SupplyService) DeleteSupply(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.supplies.Delete(ctx, id)
}

// transitionErr условный UPDATE статуса не прошёл: поставку успели перевести параллельно
func (s *SupplyService) transitionErr(ctx context.Context, err error, id int64, required domain.SupplyStatus) error {
	if !errors.Is(err, repository.ErrConflict) {
		return err
	}
	sp, gerr := s.supplies.GetByID(ctx, id)
	if gerr != nil {
		return gerr
	}
	return &StateError{Current: sp.Status, Required: required}
}

func (s *SupplyService) stockErr(ctx context.Context, batchID int64, requested int) error {
	b, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	return &StockError{Available: b.Quantity, Requested: requested}
}
