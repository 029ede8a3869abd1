package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store магазин. Владеет ровно одним складом
type Store struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Password    string     `gorm:"size:100;not null" json:"-"`
	Address     string     `gorm:"size:300;not null" json:"address"`
	Description string     `gorm:"type:text" json:"description"`
	Photo       *string    `gorm:"type:text" json:"photo"`
	Warehouse   *Warehouse `gorm:"foreignKey:StoreID" json:"warehouse,omitempty"`
}

// Supplier поставщик
type Supplier struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Password    string  `gorm:"size:100;not null" json:"-"`
	Address     string  `gorm:"size:300;not null" json:"address"`
	Description string  `gorm:"type:text" json:"description"`
	Photo       *string `gorm:"type:text" json:"photo"`
}

// Product единица товара. Каждая физическая единица на складе: отдельная строка
type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Expiration  int             `gorm:"not null;default:0" json:"expiration"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Photo       *string         `gorm:"type:text" json:"photo"`
}

// Batch партия товара у поставщика.
// Quantity сколько партий доступно, ItemsPerBatch сколько единиц в одной партии
type Batch struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:200;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Expiration    int             `gorm:"not null;default:0" json:"expiration"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Photo         *string         `gorm:"type:text" json:"photo"`
	ItemsPerBatch int             `gorm:"not null;default:1" json:"itemsPerBatch"`
	Quantity      int             `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	SupplierID    int64           `gorm:"not null;index" json:"supplierId"`
	Supplier      *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// Warehouse склад магазина. ProductCount всегда равен числу строк WarehouseProduct
type Warehouse struct {
	ID           int64              `gorm:"primaryKey" json:"id"`
	StoreID      int64              `gorm:"not null;uniqueIndex" json:"storeId"`
	ProductCount int64              `gorm:"not null;default:0" json:"productCount"`
	Store        *Store             `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Products     []WarehouseProduct `gorm:"foreignKey:WarehouseID" json:"products,omitempty"`
}

// WarehouseProduct одна физическая единица товара на складе
type WarehouseProduct struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	ProductID   int64      `gorm:"not null;index" json:"productId"`
	WarehouseID int64      `gorm:"not null;index" json:"warehouseId"`
	Product     *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse   *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (WarehouseProduct) TableName() string { return "warehouse_products" }

// SupplyStatus статус поставки. Значения сравниваются как есть
type SupplyStatus string

const (
	SupplyStatusCreated  SupplyStatus = "оформлен"
	SupplyStatusShipped  SupplyStatus = "отправлен"
	SupplyStatusReceived SupplyStatus = "получено"
)

// Supply заказ магазина у поставщика
type Supply struct {
	ID             int64        `gorm:"primaryKey" json:"id"`
	FromSupplierID int64        `gorm:"not null;index" json:"fromSupplierId"`
	ToStoreID      int64        `gorm:"not null;index" json:"toStoreId"`
	Content        string       `gorm:"type:text;not null" json:"content"`
	Status         SupplyStatus `gorm:"size:20;not null;index" json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	// DeliveryTime выставляется при отправке и перезаписывается при получении
	DeliveryTime *time.Time `json:"deliveryTime"`
	FromSupplier *Supplier  `gorm:"foreignKey:FromSupplierID" json:"fromSupplier,omitempty"`
	ToStore      *Store     `gorm:"foreignKey:ToStoreID" json:"toStore,omitempty"`
}

// Review отзыв магазина о поставщике
type Review struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	FromStoreID  int64     `gorm:"not null;index" json:"fromStoreId"`
	ToSupplierID int64     `gorm:"not null;index" json:"toSupplierId"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	FromStore    *Store    `gorm:"foreignKey:FromStoreID" json:"fromStore,omitempty"`
	ToSupplier   *Supplier `gorm:"foreignKey:ToSupplierID" json:"toSupplier,omitempty"`
}

// SupportMessage обращение в поддержку. Автор либо магазин, либо поставщик
type SupportMessage struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	FromStoreID    *int64    `gorm:"index" json:"fromStoreId"`
	FromSupplierID *int64    `gorm:"index" json:"fromSupplierId"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
	FromStore      *Store    `gorm:"foreignKey:FromStoreID" json:"fromStore,omitempty"`
	FromSupplier   *Supplier `gorm:"foreignKey:FromSupplierID" json:"fromSupplier,omitempty"`
}
