package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"postavki/internal/domain"
	"postavki/internal/repository"
	"postavki/internal/service"
)

type createOrderReq struct {
	BatchID    int64 `json:"batchId"`
	StoreID    int64 `json:"storeId"`
	SupplierID int64 `json:"supplierId"`
	Quantity   int   `json:"quantity"`
}

// @Summary Create supply order
// @Tags supplies
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} map[string]domain.Supply
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /supplies/order [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if !bindJSON(c, &req) {
		return
	}
	sp, err := s.svc.Supplies.CreateOrder(c.Request.Context(), service.OrderRequest(req))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supply": sp})
}

type sendSupplyReq struct {
	SupplyID int64 `json:"supplyId"`
}

// @Summary Ship supply
// @Tags supplies
// @Accept json
// @Produce json
// @Param input body sendSupplyReq true "Supply"
// @Success 200 {object} service.SendResult
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /supplies/send [post]
func (s *Server) sendSupply(c *gin.Context) {
	var req sendSupplyReq
	if !bindJSON(c, &req) {
		return
	}
	res, err := s.svc.Supplies.Send(c.Request.Context(), req.SupplyID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type receiveSupplyReq struct {
	SupplyID     int64            `json:"supplyId"`
	PricePerItem *decimal.Decimal `json:"pricePerItem" swaggertype:"number"`
	Photo        string           `json:"photo"`
}

// @Summary Receive supply into the store warehouse
// @Tags supplies
// @Accept json
// @Produce json
// @Param input body receiveSupplyReq true "Receive"
// @Success 200 {object} service.ReceiveResult
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /supplies/receive [post]
func (s *Server) receiveSupply(c *gin.Context) {
	var req receiveSupplyReq
	if !bindJSON(c, &req) {
		return
	}
	res, err := s.svc.Supplies.Receive(c.Request.Context(), req.SupplyID, req.PricePerItem, req.Photo)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List supplies
// @Tags supplies
// @Produce json
// @Param storeId query int false "Store ID"
// @Param supplierId query int false "Supplier ID"
// @Param status query string false "Status"
// @Success 200 {array} domain.Supply
// @Router /supplies [get]
func (s *Server) listSupplies(c *gin.Context) {
	storeID, ok := queryID(c, "storeId")
	if !ok {
		return
	}
	supplierID, ok := queryID(c, "supplierId")
	if !ok {
		return
	}
	f := repository.SupplyFilter{StoreID: storeID, SupplierID: supplierID, Status: domain.SupplyStatus(c.Query("status"))}
	list, err := s.svc.Supplies.ListSupplies(c.Request.Context(), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get supply by id
// @Tags supplies
// @Produce json
// @Param id path int true "Supply ID"
// @Success 200 {object} domain.Supply
// @Failure 404 {object} errorResponse
// @Router /supplies/{id} [get]
func (s *Server) getSupply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sp, err := s.svc.Supplies.GetSupply(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// @Summary Supply invoice
// @Tags supplies
// @Produce json
// @Param id path int true "Supply ID"
// @Success 200 {object} service.Invoice
// @Failure 404 {object} errorResponse
// @Router /supplies/{id}/invoice [get]
func (s *Server) supplyInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := s.svc.Supplies.Invoice(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// @Summary Delete supply
// @Tags supplies
// @Param id path int true "Supply ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /supplies/{id} [delete]
func (s *Server) deleteSupply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.Supplies.DeleteSupply(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
