package handlers

import (
	"net/http"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/gin-gonic/gin"
)

// ResourceHandler serves list, get, create, update and delete for one reference entity.
// C and U are the create and update request bodies.
type ResourceHandler[T any, C any, U any] struct {
	entity string
	idOf   func(*T) int64
	list   func(models.ListParams) ([]T, error)
	get    func(int64) (*T, error)
	create func(*C) (*T, error)
	update func(int64, *U) error
	remove func(int64) error
	audit  auditor
}

// Register mounts the handler on a group. Deletes are wrapped by the given guards.
func (h *ResourceHandler[T, C, U]) Register(rg *gin.RouterGroup, deleteGuards ...gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", append(deleteGuards, h.Delete)...)
}

// List handles GET /?q=
func (h *ResourceHandler[T, C, U]) List(c *gin.Context) {
	var params models.ListParams
	if !bindList(c, &params) {
		return
	}

	items, err := h.list(params)
	if err != nil {
		respondError(c, err, h.entity)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Get handles GET /:id
func (h *ResourceHandler[T, C, U]) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.get(id)
	if err != nil {
		respondError(c, err, h.entity)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create handles POST /
func (h *ResourceHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.create(&req)
	if err != nil {
		respondError(c, err, h.entity)
		return
	}

	h.audit.record(c, "create", h.entity, h.idOf(item), map[string]interface{}{"record": item})
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /:id and returns the stored record
func (h *ResourceHandler[T, C, U]) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req U
	if !bindJSON(c, &req) {
		return
	}

	if err := h.update(id, &req); err != nil {
		respondError(c, err, h.entity)
		return
	}

	item, err := h.get(id)
	if err != nil {
		respondError(c, err, h.entity)
		return
	}

	h.audit.record(c, "update", h.entity, id, map[string]interface{}{"changes": req})
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /:id. Entities still referenced elsewhere answer 409.
func (h *ResourceHandler[T, C, U]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove(id); err != nil {
		respondError(c, err, h.entity)
		return
	}

	h.audit.record(c, "delete", h.entity, id, nil)
	c.JSON(http.StatusOK, gin.H{"message": h.entity + " deleted"})
}
