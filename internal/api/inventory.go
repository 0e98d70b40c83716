package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/inventra/internal/middleware"
	"github.com/lalith-99/inventra/internal/service"
	"go.uber.org/zap"
)

// InventoryHandler handles inventory CRUD and the inventory page.
type InventoryHandler struct {
	inventories InventoryService
	logger      *zap.Logger
}

func NewInventoryHandler(inventories InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventories: inventories, logger: logger}
}

type createInventoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPublic    bool   `json:"is_public"`
}

// Create handles POST /v1/inventories. The caller becomes the owner.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.inventories.Create(c.Request.Context(), middleware.GetUserID(c), service.CreateInventoryInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, h.logger, err, "failed to create inventory")
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// List handles GET /v1/inventories
func (h *InventoryHandler) List(c *gin.Context) {
	invs, err := h.inventories.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "failed to list inventories")
		return
	}
	c.JSON(http.StatusOK, invs)
}

// Get handles GET /v1/inventories/:id. Guests get the page without edit
// rights; the grantee list is only shown to the owner.
func (h *InventoryHandler) Get(c *gin.Context) {
	inventoryID, ok := paramUUID(c, "id", "inventory")
	if !ok {
		return
	}

	details, err := h.inventories.Details(c.Request.Context(), inventoryID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "failed to get inventory")
		return
	}
	c.JSON(http.StatusOK, details)
}

// Delete handles DELETE /v1/inventories/:id (owner only).
func (h *InventoryHandler) Delete(c *gin.Context) {
	inventoryID, ok := paramUUID(c, "id", "inventory")
	if !ok {
		return
	}

	if err := h.inventories.Delete(c.Request.Context(), inventoryID, middleware.GetUserID(c)); err != nil {
		respondError(c, h.logger, err, "failed to delete inventory")
		return
	}
	c.Status(http.StatusNoContent)
}
