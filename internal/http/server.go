package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"postavki/internal/logging"
	"postavki/internal/repository"
	"postavki/internal/service"
)

// Services зависимости HTTP-слоя
type Services struct {
	Supplies   *service.SupplyService
	Warehouses *service.WarehouseService
	Stores     *service.StoreService
	Suppliers  *service.SupplierService
	Batches    *service.BatchService
	Products   *service.ProductService
	Reviews    *service.ReviewService
	Support    *service.SupportService
}

type errorResponse struct {
	Error string `json:"error"`
}

// Pinger проверка доступности БД для /healthz
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	engine *gin.Engine
	svc    Services
	db     Pinger
	log    *slog.Logger
}

func NewServer(svc Services, db Pinger, log *slog.Logger) *Server {
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	s := &Server{engine: r, svc: svc, db: db, log: log}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", s.healthz)

	v1 := s.engine.Group("/api/v1")
	{
		supplies := v1.Group("/supplies")
		supplies.POST("/order", s.createOrder)
		supplies.POST("/send", s.sendSupply)
		supplies.POST("/receive", s.receiveSupply)
		supplies.GET("", s.listSupplies)
		supplies.GET("/:id", s.getSupply)
		supplies.GET("/:id/invoice", s.supplyInvoice)
		supplies.DELETE("/:id", s.deleteSupply)

		units := v1.Group("/warehouse-products")
		units.DELETE("/:id", s.removeUnit)
		units.POST("/bulk-delete", s.bulkRemoveUnits)

		warehouses := v1.Group("/warehouses")
		warehouses.GET("", s.listWarehouses)
		warehouses.GET("/store/:storeId", s.getStoreWarehouse)
		warehouses.GET("/store/:storeId/products-grouped", s.groupedProducts)
		warehouses.POST("/store/:storeId/products", s.addWarehouseProduct)

		stores := v1.Group("/stores")
		stores.POST("", s.createStore)
		stores.GET("", s.listStores)
		stores.GET("/:id", s.getStore)
		stores.PUT("/:id", s.updateStore)
		stores.DELETE("/:id", s.deleteStore)

		suppliers := v1.Group("/suppliers")
		suppliers.POST("", s.createSupplier)
		suppliers.GET("", s.listSuppliers)
		suppliers.GET("/:id", s.getSupplier)
		suppliers.PUT("/:id", s.updateSupplier)
		suppliers.DELETE("/:id", s.deleteSupplier)

		auth := v1.Group("/auth")
		auth.POST("/store", s.loginStore)
		auth.POST("/supplier", s.loginSupplier)

		batches := v1.Group("/batches")
		batches.POST("", s.createBatch)
		batches.GET("", s.listBatches)
		batches.GET("/:id", s.getBatch)
		batches.PUT("/:id", s.updateBatch)
		batches.DELETE("/:id", s.deleteBatch)

		products := v1.Group("/products")
		products.POST("", s.createProduct)
		products.GET(":id", s.getProduct)
		products.PUT(":id", s.updateProduct)
		products.DELETE(":id", s.deleteProduct)
		products.GET("", s.listProducts)

		reviews := v1.Group("/reviews")
		reviews.POST("", s.createReview)
		reviews.GET("", s.listReviews)
		reviews.GET("/:id", s.getReview)
		reviews.GET("/supplier/:id", s.supplierReviews)
		reviews.GET("/store/:id", s.storeReviews)
		reviews.PUT("/:id", s.updateReview)
		reviews.DELETE("/:id", s.deleteReview)

		support := v1.Group("/support-messages")
		support.GET("", s.listSupportMessages)
		support.GET("/:id", s.getSupportMessage)
		support.POST("/store", s.storeSupportMessage)
		support.POST("/supplier", s.supplierSupportMessage)
		support.DELETE("/:id", s.deleteSupportMessage)
	}
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (s *Server) healthz(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		logging.FromContext(c.Request.Context()).Error("database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// pathID читает положительный id из параметра пути, при ошибке отвечает 400
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// queryID необязательный id из строки запроса, 0 если не задан
func queryID(c *gin.Context, name string) (int64, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	id, err := parseID(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return false
	}
	return true
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotEnoughStock):
		return http.StatusConflict
	case errors.Is(err, service.ErrMalformedContent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail отвечает ошибкой. Текст внутренних ошибок остаётся только в логе
func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed", "error", err)
		c.JSON(status, errorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
