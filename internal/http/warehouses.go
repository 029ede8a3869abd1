package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"postavki/internal/domain"
)

// @Summary Remove one warehouse unit
// @Tags warehouse
// @Produce json
// @Param id path int true "WarehouseProduct ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorResponse
// @Router /warehouse-products/{id} [delete]
func (s *Server) removeUnit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	w, err := s.svc.Warehouses.RemoveUnit(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Товар удалён со склада", "warehouse": w})
}

type bulkRemoveReq struct {
	WarehouseIDs []int64 `json:"warehouseIds"`
}

// @Summary Remove warehouse units in bulk
// @Tags warehouse
// @Accept json
// @Produce json
// @Param input body bulkRemoveReq true "Unit ids"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /warehouse-products/bulk-delete [post]
func (s *Server) bulkRemoveUnits(c *gin.Context) {
	var req bulkRemoveReq
	if !bindJSON(c, &req) {
		return
	}
	if req.WarehouseIDs == nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "warehouseIds is required"})
		return
	}
	n, err := s.svc.Warehouses.BulkRemove(c.Request.Context(), req.WarehouseIDs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Товары удалены со склада", "removedCount": n})
}

// @Summary List warehouses
// @Tags warehouse
// @Produce json
// @Success 200 {array} domain.Warehouse
// @Router /warehouses [get]
func (s *Server) listWarehouses(c *gin.Context) {
	list, err := s.svc.Warehouses.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Store warehouse with units
// @Tags warehouse
// @Produce json
// @Param storeId path int true "Store ID"
// @Success 200 {object} domain.Warehouse
// @Failure 404 {object} errorResponse
// @Router /warehouses/store/{storeId} [get]
func (s *Server) getStoreWarehouse(c *gin.Context) {
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}
	w, err := s.svc.Warehouses.GetByStore(c.Request.Context(), storeID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// @Summary Store warehouse grouped for display
// @Tags warehouse
// @Produce json
// @Param storeId path int true "Store ID"
// @Success 200 {object} service.GroupedWarehouse
// @Failure 404 {object} errorResponse
// @Router /warehouses/store/{storeId}/products-grouped [get]
func (s *Server) groupedProducts(c *gin.Context) {
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}
	g, err := s.svc.Warehouses.GroupByStore(c.Request.Context(), storeID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

type addProductReq struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Expiration  *int             `json:"expiration"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Photo       *string          `json:"photo"`
}

// @Summary Add product unit to store warehouse
// @Tags warehouse
// @Accept json
// @Produce json
// @Param storeId path int true "Store ID"
// @Param input body addProductReq true "Product"
// @Success 201 {object} domain.WarehouseProduct
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /warehouses/store/{storeId}/products [post]
func (s *Server) addWarehouseProduct(c *gin.Context) {
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}
	var req addProductReq
	if !bindJSON(c, &req) {
		return
	}
	p := domain.Product{Name: req.Name, Description: req.Description, Photo: req.Photo}
	if req.Expiration != nil {
		p.Expiration = *req.Expiration
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	u, err := s.svc.Warehouses.AddProduct(c.Request.Context(), storeID, p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
