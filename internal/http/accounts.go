package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"postavki/internal/service"
)

type loginReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// @Summary Create store
// @Tags stores
// @Accept json
// @Produce json
// @Param input body service.AccountInput true "Store"
// @Success 201 {object} domain.Store
// @Failure 400 {object} errorResponse
// @Router /stores [post]
func (s *Server) createStore(c *gin.Context) {
	var req service.AccountInput
	if !bindJSON(c, &req) {
		return
	}
	st, err := s.svc.Stores.Create(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// @Summary List stores
// @Tags stores
// @Produce json
// @Success 200 {array} domain.Store
// @Router /stores [get]
func (s *Server) listStores(c *gin.Context) {
	list, err := s.svc.Stores.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get store by id
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} domain.Store
// @Failure 404 {object} errorResponse
// @Router /stores/{id} [get]
func (s *Server) getStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	st, err := s.svc.Stores.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Update store
// @Tags stores
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param input body service.AccountPatch true "Fields to change"
// @Success 200 {object} domain.Store
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /stores/{id} [put]
func (s *Server) updateStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.AccountPatch
	if !bindJSON(c, &req) {
		return
	}
	st, err := s.svc.Stores.Update(c.Request.Context(), id, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Delete store with its warehouse, reviews, messages and supplies
// @Tags stores
// @Param id path int true "Store ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /stores/{id} [delete]
func (s *Server) deleteStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.Stores.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param input body service.AccountInput true "Supplier"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} errorResponse
// @Router /suppliers [post]
func (s *Server) createSupplier(c *gin.Context) {
	var req service.AccountInput
	if !bindJSON(c, &req) {
		return
	}
	sp, err := s.svc.Suppliers.Create(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {array} domain.Supplier
// @Router /suppliers [get]
func (s *Server) listSuppliers(c *gin.Context) {
	list, err := s.svc.Suppliers.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get supplier by id
// @Tags suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} errorResponse
// @Router /suppliers/{id} [get]
func (s *Server) getSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sp, err := s.svc.Suppliers.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// @Summary Update supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path int true "Supplier ID"
// @Param input body service.AccountPatch true "Fields to change"
// @Success 200 {object} domain.Supplier
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /suppliers/{id} [put]
func (s *Server) updateSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.AccountPatch
	if !bindJSON(c, &req) {
		return
	}
	sp, err := s.svc.Suppliers.Update(c.Request.Context(), id, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// @Summary Delete supplier with its batches, reviews, messages and supplies
// @Tags suppliers
// @Param id path int true "Supplier ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /suppliers/{id} [delete]
func (s *Server) deleteSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.Suppliers.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Store login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} domain.Store
// @Failure 401 {object} errorResponse
// @Router /auth/store [post]
func (s *Server) loginStore(c *gin.Context) {
	var req loginReq
	if !bindJSON(c, &req) {
		return
	}
	st, err := s.svc.Stores.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Supplier login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} domain.Supplier
// @Failure 401 {object} errorResponse
// @Router /auth/supplier [post]
func (s *Server) loginSupplier(c *gin.Context) {
	var req loginReq
	if !bindJSON(c, &req) {
		return
	}
	sp, err := s.svc.Suppliers.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}
