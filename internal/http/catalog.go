package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"postavki/internal/domain"
)

// Batch handlers
type batchReq struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Expiration    int             `json:"expiration"`
	Price         decimal.Decimal `json:"price" swaggertype:"number"`
	Photo         *string         `json:"photo"`
	ItemsPerBatch int             `json:"itemsPerBatch"`
	Quantity      int             `json:"quantity"`
	SupplierID    int64           `json:"supplierId"`
}

func (r batchReq) toDomain(id int64) domain.Batch {
	return domain.Batch{
		ID:            id,
		Name:          r.Name,
		Description:   r.Description,
		Expiration:    r.Expiration,
		Price:         r.Price,
		Photo:         r.Photo,
		ItemsPerBatch: r.ItemsPerBatch,
		Quantity:      r.Quantity,
		SupplierID:    r.SupplierID,
	}
}

// @Summary Create batch
// @Tags batches
// @Accept json
// @Produce json
// @Param input body batchReq true "Batch"
// @Success 201 {object} domain.Batch
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /batches [post]
func (s *Server) createBatch(c *gin.Context) {
	var req batchReq
	if !bindJSON(c, &req) {
		return
	}
	b, err := s.svc.Batches.Create(c.Request.Context(), req.toDomain(0))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary List batches
// @Tags batches
// @Produce json
// @Param supplierId query int false "Supplier ID"
// @Success 200 {array} domain.Batch
// @Router /batches [get]
func (s *Server) listBatches(c *gin.Context) {
	supplierID, ok := queryID(c, "supplierId")
	if !ok {
		return
	}
	list, err := s.svc.Batches.List(c.Request.Context(), supplierID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get batch by id
// @Tags batches
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} domain.Batch
// @Failure 404 {object} errorResponse
// @Router /batches/{id} [get]
func (s *Server) getBatch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := s.svc.Batches.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Update batch
// @Tags batches
// @Accept json
// @Produce json
// @Param id path int true "Batch ID"
// @Param input body batchReq true "Batch"
// @Success 200 {object} domain.Batch
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /batches/{id} [put]
func (s *Server) updateBatch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req batchReq
	if !bindJSON(c, &req) {
		return
	}
	b, err := s.svc.Batches.Update(c.Request.Context(), req.toDomain(id))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Delete batch
// @Tags batches
// @Param id path int true "Batch ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /batches/{id} [delete]
func (s *Server) deleteBatch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.Batches.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Product handlers
type productReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Expiration  int             `json:"expiration"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Photo       *string         `json:"photo"`
}

func (r productReq) toDomain(id int64) domain.Product {
	return domain.Product{ID: id, Name: r.Name, Description: r.Description, Expiration: r.Expiration, Price: r.Price, Photo: r.Photo}
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if !bindJSON(c, &req) {
		return
	}
	p, err := s.svc.Products.Create(c.Request.Context(), req.toDomain(0))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := s.svc.Products.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body productReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req productReq
	if !bindJSON(c, &req) {
		return
	}
	p, err := s.svc.Products.Update(c.Request.Context(), req.toDomain(id))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product and its warehouse units
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.Products.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.svc.Products.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
