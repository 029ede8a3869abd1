package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"postavki/internal/repository"
)

type createReviewReq struct {
	FromStoreID  int64  `json:"fromStoreId"`
	ToSupplierID int64  `json:"toSupplierId"`
	Text         string `json:"text"`
}

type updateReviewReq struct {
	Text string `json:"text"`
}

// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Param input body createReviewReq true "Review"
// @Success 201 {object} domain.Review
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /reviews [post]
func (s *Server) createReview(c *gin.Context) {
	var req createReviewReq
	if !bindJSON(c, &req) {
		return
	}
	rv, err := s.svc.Reviews.Create(c.Request.Context(), req.FromStoreID, req.ToSupplierID, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} domain.Review
// @Router /reviews [get]
func (s *Server) listReviews(c *gin.Context) {
	s.respondReviews(c, repository.ReviewFilter{})
}

// @Summary Reviews about supplier
// @Tags reviews
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {array} domain.Review
// @Router /reviews/supplier/{id} [get]
func (s *Server) supplierReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s.respondReviews(c, repository.ReviewFilter{SupplierID: id})
}

// @Summary Reviews written by store
// @Tags reviews
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {array} domain.Review
// @Router /reviews/store/{id} [get]
func (s *Server) storeReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s.respondReviews(c, repository.ReviewFilter{StoreID: id})
}

func (s *Server) respondReviews(c *gin.Context, f repository.ReviewFilter) {
	list, err := s.svc.Reviews.List(c.Request.Context(), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get review by id
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} domain.Review
// @Failure 404 {object} errorResponse
// @Router /reviews/{id} [get]
func (s *Server) getReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rv, err := s.svc.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// @Summary Update review text
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param input body updateReviewReq true "Text"
// @Success 200 {object} domain.Review
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /reviews/{id} [put]
func (s *Server) updateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateReviewReq
	if !bindJSON(c, &req) {
		return
	}
	rv, err := s.svc.Reviews.UpdateText(c.Request.Context(), id, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// @Summary Delete review
// @Tags reviews
// @Param id path int true "Review ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /reviews/{id} [delete]
func (s *Server) deleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.Reviews.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Support handlers
type storeMessageReq struct {
	StoreID int64  `json:"storeId"`
	Text    string `json:"text"`
}

type supplierMessageReq struct {
	SupplierID int64  `json:"supplierId"`
	Text       string `json:"text"`
}

// @Summary List support messages
// @Tags support
// @Produce json
// @Param storeId query int false "Store ID"
// @Param supplierId query int false "Supplier ID"
// @Success 200 {array} domain.SupportMessage
// @Router /support-messages [get]
func (s *Server) listSupportMessages(c *gin.Context) {
	storeID, ok := queryID(c, "storeId")
	if !ok {
		return
	}
	supplierID, ok := queryID(c, "supplierId")
	if !ok {
		return
	}
	list, err := s.svc.Support.List(c.Request.Context(), repository.SupportFilter{StoreID: storeID, SupplierID: supplierID})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get support message by id
// @Tags support
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} domain.SupportMessage
// @Failure 404 {object} errorResponse
// @Router /support-messages/{id} [get]
func (s *Server) getSupportMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := s.svc.Support.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary Support message from store
// @Tags support
// @Accept json
// @Produce json
// @Param input body storeMessageReq true "Message"
// @Success 201 {object} domain.SupportMessage
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /support-messages/store [post]
func (s *Server) storeSupportMessage(c *gin.Context) {
	var req storeMessageReq
	if !bindJSON(c, &req) {
		return
	}
	m, err := s.svc.Support.FromStore(c.Request.Context(), req.StoreID, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary Support message from supplier
// @Tags support
// @Accept json
// @Produce json
// @Param input body supplierMessageReq true "Message"
// @Success 201 {object} domain.SupportMessage
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /support-messages/supplier [post]
func (s *Server) supplierSupportMessage(c *gin.Context) {
	var req supplierMessageReq
	if !bindJSON(c, &req) {
		return
	}
	m, err := s.svc.Support.FromSupplier(c.Request.Context(), req.SupplierID, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary Delete support message
// @Tags support
// @Param id path int true "Message ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /support-messages/{id} [delete]
func (s *Server) deleteSupportMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.Support.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
