package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"postavki/internal/domain"
)

// transaction-aware connection helpers
type txKey struct{}

// Database обёртка над *gorm.DB, реализует TxManager.
// Активная транзакция лежит в контексте, репозитории берут её оттуда.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database { return &Database{db: db} }

var _ TxManager = (*Database)(nil)

func (d *Database) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.db.WithContext(ctx)
}

// WithTransaction выполняет fn в транзакции. Вложенный вызов присоединяется к внешней.
func (d *Database) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Ping проверяет доступность БД
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func wrap(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func deleteResult(res *gorm.DB, op string) error {
	if res.Error != nil {
		return wrap(res.Error, op)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func update(ctx context.Context, d *Database, model any, op string) error {
	res := d.conn(ctx).Model(model).Select("*").Omit(clause.Associations).Updates(model)
	return deleteResult(res, op)
}

// Repositories все gorm-репозитории поверх одного подключения
type Repositories struct {
	DB              *Database
	Stores          *GormStores
	Suppliers       *GormSuppliers
	Products        *GormProducts
	Batches         *GormBatches
	Warehouses      *GormWarehouses
	Supplies        *GormSupplies
	Reviews         *GormReviews
	SupportMessages *GormSupportMessages
}

func NewRepositories(db *gorm.DB) *Repositories {
	d := NewDatabase(db)
	return &Repositories{
		DB:              d,
		Stores:          &GormStores{db: d},
		Suppliers:       &GormSuppliers{db: d},
		Products:        &GormProducts{db: d},
		Batches:         &GormBatches{db: d},
		Warehouses:      &GormWarehouses{db: d},
		Supplies:        &GormSupplies{db: d},
		Reviews:         &GormReviews{db: d},
		SupportMessages: &GormSupportMessages{db: d},
	}
}

// Ensure interfaces
var (
	_ StoreRepository          = (*GormStores)(nil)
	_ SupplierRepository       = (*GormSuppliers)(nil)
	_ ProductRepository        = (*GormProducts)(nil)
	_ BatchRepository          = (*GormBatches)(nil)
	_ WarehouseRepository      = (*GormWarehouses)(nil)
	_ SupplyRepository         = (*GormSupplies)(nil)
	_ ReviewRepository         = (*GormReviews)(nil)
	_ SupportMessageRepository = (*GormSupportMessages)(nil)
)

// GormStores StoreRepository implementation
type GormStores struct{ db *Database }

func (r *GormStores) Create(ctx context.Context, s *domain.Store) error {
	if err := r.db.conn(ctx).Omit(clause.Associations).Create(s).Error; err != nil {
		return wrap(err, "create store")
	}
	return nil
}

func (r *GormStores) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	var s domain.Store
	if err := r.db.conn(ctx).Preload("Warehouse").First(&s, id).Error; err != nil {
		return nil, wrap(err, "find store")
	}
	return &s, nil
}

func (r *GormStores) GetByName(ctx context.Context, name string) (*domain.Store, error) {
	var s domain.Store
	if err := r.db.conn(ctx).Preload("Warehouse").Where("name = ?", name).First(&s).Error; err != nil {
		return nil, wrap(err, "find store")
	}
	return &s, nil
}

func (r *GormStores) Update(ctx context.Context, s *domain.Store) error {
	return update(ctx, r.db, s, "update store")
}

func (r *GormStores) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.Store{}, id), "delete store")
}

func (r *GormStores) List(ctx context.Context) ([]domain.Store, error) {
	out := make([]domain.Store, 0)
	if err := r.db.conn(ctx).Preload("Warehouse").Order("id").Find(&out).Error; err != nil {
		return nil, wrap(err, "list stores")
	}
	return out, nil
}

// GormSuppliers SupplierRepository implementation
type GormSuppliers struct{ db *Database }

func (r *GormSuppliers) Create(ctx context.Context, s *domain.Supplier) error {
	if err := r.db.conn(ctx).Create(s).Error; err != nil {
		return wrap(err, "create supplier")
	}
	return nil
}

func (r *GormSuppliers) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.db.conn(ctx).First(&s, id).Error; err != nil {
		return nil, wrap(err, "find supplier")
	}
	return &s, nil
}

func (r *GormSuppliers) GetByName(ctx context.Context, name string) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.db.conn(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, wrap(err, "find supplier")
	}
	return &s, nil
}

func (r *GormSuppliers) Update(ctx context.Context, s *domain.Supplier) error {
	return update(ctx, r.db, s, "update supplier")
}

func (r *GormSuppliers) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.Supplier{}, id), "delete supplier")
}

func (r *GormSuppliers) List(ctx context.Context) ([]domain.Supplier, error) {
	out := make([]domain.Supplier, 0)
	if err := r.db.conn(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, wrap(err, "list suppliers")
	}
	return out, nil
}

// GormProducts ProductRepository implementation
type GormProducts struct{ db *Database }

func (r *GormProducts) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.conn(ctx).Create(p).Error; err != nil {
		return wrap(err, "create product")
	}
	return nil
}

func (r *GormProducts) CreateMany(ctx context.Context, ps []domain.Product) error {
	if len(ps) == 0 {
		return nil
	}
	if err := r.db.conn(ctx).CreateInBatches(&ps, 200).Error; err != nil {
		return wrap(err, "create products")
	}
	return nil
}

func (r *GormProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.conn(ctx).First(&p, id).Error; err != nil {
		return nil, wrap(err, "find product")
	}
	return &p, nil
}

func (r *GormProducts) Update(ctx context.Context, p *domain.Product) error {
	return update(ctx, r.db, p, "update product")
}

func (r *GormProducts) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.Product{}, id), "delete product")
}

func (r *GormProducts) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	if err := r.db.conn(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, wrap(err, "list products")
	}
	return out, nil
}

// GormBatches BatchRepository implementation
type GormBatches struct{ db *Database }

func (r *GormBatches) Create(ctx context.Context, b *domain.Batch) error {
	if err := r.db.conn(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return wrap(err, "create batch")
	}
	return nil
}

func (r *GormBatches) GetByID(ctx context.Context, id int64) (*domain.Batch, error) {
	var b domain.Batch
	if err := r.db.conn(ctx).Preload("Supplier").First(&b, id).Error; err != nil {
		return nil, wrap(err, "find batch")
	}
	return &b, nil
}

func (r *GormBatches) GetForSupplier(ctx context.Context, id, supplierID int64) (*domain.Batch, error) {
	var b domain.Batch
	err := r.db.conn(ctx).Preload("Supplier").
		Where("id = ? AND supplier_id = ?", id, supplierID).
		First(&b).Error
	if err != nil {
		return nil, wrap(err, "find batch")
	}
	return &b, nil
}

func (r *GormBatches) Update(ctx context.Context, b *domain.Batch) error {
	return update(ctx, r.db, b, "update batch")
}

func (r *GormBatches) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.Batch{}, id), "delete batch")
}

func (r *GormBatches) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	if err := r.db.conn(ctx).Where("supplier_id = ?", supplierID).Delete(&domain.Batch{}).Error; err != nil {
		return wrap(err, "delete batches")
	}
	return nil
}

func (r *GormBatches) List(ctx context.Context, supplierID int64) ([]domain.Batch, error) {
	q := r.db.conn(ctx).Preload("Supplier").Order("id")
	if supplierID > 0 {
		q = q.Where("supplier_id = ?", supplierID)
	}
	out := make([]domain.Batch, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(err, "list batches")
	}
	return out, nil
}

func (r *GormBatches) DecrementQuantity(ctx context.Context, id, supplierID int64, n int) error {
	res := r.db.conn(ctx).Model(&domain.Batch{}).
		Where("id = ? AND supplier_id = ? AND quantity >= ?", id, supplierID, n).
		Update("quantity", gorm.Expr("quantity - ?", n))
	if res.Error != nil {
		return wrap(res.Error, "decrement batch quantity")
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// GormWarehouses WarehouseRepository implementation
type GormWarehouses struct{ db *Database }

func preloadUnits(db *gorm.DB) *gorm.DB {
	return db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("warehouse_products.id")
	}).Preload("Products.Product")
}

func (r *GormWarehouses) Create(ctx context.Context, w *domain.Warehouse) error {
	if err := r.db.conn(ctx).Omit(clause.Associations).Create(w).Error; err != nil {
		return wrap(err, "create warehouse")
	}
	return nil
}

func (r *GormWarehouses) GetByID(ctx context.Context, id int64) (*domain.Warehouse, error) {
	var w domain.Warehouse
	if err := r.db.conn(ctx).First(&w, id).Error; err != nil {
		return nil, wrap(err, "find warehouse")
	}
	return &w, nil
}

func (r *GormWarehouses) GetByStoreID(ctx context.Context, storeID int64, withUnits bool) (*domain.Warehouse, error) {
	q := r.db.conn(ctx)
	if withUnits {
		q = preloadUnits(q)
	}
	var w domain.Warehouse
	if err := q.Where("store_id = ?", storeID).First(&w).Error; err != nil {
		return nil, wrap(err, "find warehouse")
	}
	return &w, nil
}

func (r *GormWarehouses) List(ctx context.Context) ([]domain.Warehouse, error) {
	out := make([]domain.Warehouse, 0)
	if err := preloadUnits(r.db.conn(ctx)).Preload("Store").Order("id").Find(&out).Error; err != nil {
		return nil, wrap(err, "list warehouses")
	}
	return out, nil
}

func (r *GormWarehouses) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.Warehouse{}, id), "delete warehouse")
}

func (r *GormWarehouses) AdjustProductCount(ctx context.Context, id int64, delta int64) error {
	res := r.db.conn(ctx).Model(&domain.Warehouse{}).
		Where("id = ?", id).
		Update("product_count", gorm.Expr("product_count + ?", delta))
	return deleteResult(res, "update warehouse product count")
}

func (r *GormWarehouses) CreateUnits(ctx context.Context, units []domain.WarehouseProduct) error {
	if len(units) == 0 {
		return nil
	}
	if err := r.db.conn(ctx).Omit(clause.Associations).CreateInBatches(&units, 200).Error; err != nil {
		return wrap(err, "create warehouse units")
	}
	return nil
}

func (r *GormWarehouses) GetUnit(ctx context.Context, id int64) (*domain.WarehouseProduct, error) {
	var u domain.WarehouseProduct
	if err := r.db.conn(ctx).Preload("Product").First(&u, id).Error; err != nil {
		return nil, wrap(err, "find warehouse unit")
	}
	return &u, nil
}

func (r *GormWarehouses) FindUnits(ctx context.Context, ids []int64) ([]domain.WarehouseProduct, error) {
	out := make([]domain.WarehouseProduct, 0)
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.conn(ctx).Where("id IN ?", ids).Order("id").Find(&out).Error; err != nil {
		return nil, wrap(err, "find warehouse units")
	}
	return out, nil
}

func (r *GormWarehouses) UnitsByProduct(ctx context.Context, productID int64) ([]domain.WarehouseProduct, error) {
	out := make([]domain.WarehouseProduct, 0)
	if err := r.db.conn(ctx).Where("product_id = ?", productID).Order("id").Find(&out).Error; err != nil {
		return nil, wrap(err, "find warehouse units")
	}
	return out, nil
}

func (r *GormWarehouses) DeleteUnits(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.conn(ctx).Where("id IN ?", ids).Delete(&domain.WarehouseProduct{})
	if res.Error != nil {
		return 0, wrap(res.Error, "delete warehouse units")
	}
	return res.RowsAffected, nil
}

func (r *GormWarehouses) DeleteUnitsByWarehouse(ctx context.Context, warehouseID int64) error {
	if err := r.db.conn(ctx).Where("warehouse_id = ?", warehouseID).Delete(&domain.WarehouseProduct{}).Error; err != nil {
		return wrap(err, "delete warehouse units")
	}
	return nil
}

func (r *GormWarehouses) CountUnits(ctx context.Context, warehouseID int64) (int64, error) {
	var n int64
	if err := r.db.conn(ctx).Model(&domain.WarehouseProduct{}).Where("warehouse_id = ?", warehouseID).Count(&n).Error; err != nil {
		return 0, wrap(err, "count warehouse units")
	}
	return n, nil
}

// GormSupplies SupplyRepository implementation
type GormSupplies struct{ db *Database }

func (r *GormSupplies) Create(ctx context.Context, s *domain.Supply) error {
	if err := r.db.conn(ctx).Omit(clause.Associations).Create(s).Error; err != nil {
		return wrap(err, "create supply")
	}
	return nil
}

func (r *GormSupplies) GetByID(ctx context.Context, id int64) (*domain.Supply, error) {
	var s domain.Supply
	if err := r.db.conn(ctx).Preload("FromSupplier").Preload("ToStore").First(&s, id).Error; err != nil {
		return nil, wrap(err, "find supply")
	}
	return &s, nil
}

func (r *GormSupplies) List(ctx context.Context, f SupplyFilter) ([]domain.Supply, error) {
	q := r.db.conn(ctx).Preload("FromSupplier").Preload("ToStore").Order("id")
	if f.StoreID > 0 {
		q = q.Where("to_store_id = ?", f.StoreID)
	}
	if f.SupplierID > 0 {
		q = q.Where("from_supplier_id = ?", f.SupplierID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	out := make([]domain.Supply, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(err, "list supplies")
	}
	return out, nil
}

func (r *GormSupplies) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.Supply{}, id), "delete supply")
}

func (r *GormSupplies) DeleteByStore(ctx context.Context, storeID int64) error {
	if err := r.db.conn(ctx).Where("to_store_id = ?", storeID).Delete(&domain.Supply{}).Error; err != nil {
		return wrap(err, "delete supplies")
	}
	return nil
}

func (r *GormSupplies) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	if err := r.db.conn(ctx).Where("from_supplier_id = ?", supplierID).Delete(&domain.Supply{}).Error; err != nil {
		return wrap(err, "delete supplies")
	}
	return nil
}

func (r *GormSupplies) Transition(ctx context.Context, id int64, from, to domain.SupplyStatus, at time.Time) error {
	res := r.db.conn(ctx).Model(&domain.Supply{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "delivery_time": at})
	if res.Error != nil {
		return wrap(res.Error, "update supply status")
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// GormReviews ReviewRepository implementation
type GormReviews struct{ db *Database }

func (r *GormReviews) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.conn(ctx).Omit(clause.Associations).Create(rv).Error; err != nil {
		return wrap(err, "create review")
	}
	return nil
}

func (r *GormReviews) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.conn(ctx).Preload("FromStore").Preload("ToSupplier").First(&rv, id).Error; err != nil {
		return nil, wrap(err, "find review")
	}
	return &rv, nil
}

func (r *GormReviews) Update(ctx context.Context, rv *domain.Review) error {
	return update(ctx, r.db, rv, "update review")
}

func (r *GormReviews) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.Review{}, id), "delete review")
}

func (r *GormReviews) List(ctx context.Context, f ReviewFilter) ([]domain.Review, error) {
	q := r.db.conn(ctx).Preload("FromStore").Preload("ToSupplier").Order("id")
	if f.StoreID > 0 {
		q = q.Where("from_store_id = ?", f.StoreID)
	}
	if f.SupplierID > 0 {
		q = q.Where("to_supplier_id = ?", f.SupplierID)
	}
	out := make([]domain.Review, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(err, "list reviews")
	}
	return out, nil
}

func (r *GormReviews) DeleteByStore(ctx context.Context, storeID int64) error {
	if err := r.db.conn(ctx).Where("from_store_id = ?", storeID).Delete(&domain.Review{}).Error; err != nil {
		return wrap(err, "delete reviews")
	}
	return nil
}

func (r *GormReviews) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	if err := r.db.conn(ctx).Where("to_supplier_id = ?", supplierID).Delete(&domain.Review{}).Error; err != nil {
		return wrap(err, "delete reviews")
	}
	return nil
}

// GormSupportMessages SupportMessageRepository implementation
type GormSupportMessages struct{ db *Database }

func (r *GormSupportMessages) Create(ctx context.Context, m *domain.SupportMessage) error {
	if err := r.db.conn(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return wrap(err, "create support message")
	}
	return nil
}

func (r *GormSupportMessages) GetByID(ctx context.Context, id int64) (*domain.SupportMessage, error) {
	var m domain.SupportMessage
	if err := r.db.conn(ctx).Preload("FromStore").Preload("FromSupplier").First(&m, id).Error; err != nil {
		return nil, wrap(err, "find support message")
	}
	return &m, nil
}

func (r *GormSupportMessages) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.conn(ctx).Delete(&domain.SupportMessage{}, id), "delete support message")
}

func (r *GormSupportMessages) List(ctx context.Context, f SupportFilter) ([]domain.SupportMessage, error) {
	q := r.db.conn(ctx).Preload("FromStore").Preload("FromSupplier").Order("id")
	if f.StoreID > 0 {
		q = q.Where("from_store_id = ?", f.StoreID)
	}
	if f.SupplierID > 0 {
		q = q.Where("from_supplier_id = ?", f.SupplierID)
	}
	out := make([]domain.SupportMessage, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(err, "list support messages")
	}
	return out, nil
}

func (r *GormSupportMessages) DeleteByStore(ctx context.Context, storeID int64) error {
	if err := r.db.conn(ctx).Where("from_store_id = ?", storeID).Delete(&domain.SupportMessage{}).Error; err != nil {
		return wrap(err, "delete support messages")
	}
	return nil
}

func (r *GormSupportMessages) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	if err := r.db.conn(ctx).Where("from_supplier_id = ?", supplierID).Delete(&domain.SupportMessage{}).Error; err != nil {
		return wrap(err, "delete support messages")
	}
	return nil
}
