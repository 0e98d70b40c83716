package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/inventra/internal/middleware"
	"go.uber.org/zap"
)

// ItemHandler handles items and their likes.
type ItemHandler struct {
	items  ItemService
	likes  LikeService
	logger *zap.Logger
}

func NewItemHandler(items ItemService, likes LikeService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{items: items, likes: likes, logger: logger}
}

type createItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create handles POST /v1/inventories/:id/items
func (h *ItemHandler) Create(c *gin.Context) {
	inventoryID, ok := paramUUID(c, "id", "inventory")
	if !ok {
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Create(c.Request.Context(), inventoryID, middleware.GetUserID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, h.logger, err, "failed to create item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Delete handles DELETE /v1/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := paramUUID(c, "id", "item")
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), itemID, middleware.GetUserID(c)); err != nil {
		respondError(c, h.logger, err, "failed to delete item")
		return
	}
	c.Status(http.StatusNoContent)
}

// Like handles POST /v1/items/:id/like. It toggles: a second call unlikes.
func (h *ItemHandler) Like(c *gin.Context) {
	itemID, ok := paramUUID(c, "id", "item")
	if !ok {
		return
	}

	count, err := h.likes.Toggle(c.Request.Context(), itemID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "failed to toggle like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}
