package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/middleware"
	"github.com/lalith-99/inventra/internal/permission"
	"go.uber.org/zap"
)

// AccessHandler manages write-access grants. Every endpoint is owner-only:
// a grantee can edit items but cannot hand out or take away access.
type AccessHandler struct {
	inventories InventoryService
	access      AccessService
	logger      *zap.Logger
}

func NewAccessHandler(inventories InventoryService, access AccessService, logger *zap.Logger) *AccessHandler {
	return &AccessHandler{inventories: inventories, access: access, logger: logger}
}

type grantRequest struct {
	Email string `json:"email" binding:"required"`
}

// requireOwner loads the inventory named by :id and answers 400/403/404
// itself when the caller may not manage its grants.
func (h *AccessHandler) requireOwner(c *gin.Context) (uuid.UUID, bool) {
	inventoryID, ok := paramUUID(c, "id", "inventory")
	if !ok {
		return uuid.Nil, false
	}

	inv, err := h.inventories.Get(c.Request.Context(), inventoryID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get inventory")
		return uuid.Nil, false
	}
	if !permission.IsOwner(inv, middleware.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can manage access"})
		return uuid.Nil, false
	}
	return inventoryID, true
}

// Grant handles POST /v1/inventories/:id/access
func (h *AccessHandler) Grant(c *gin.Context) {
	inventoryID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.access.Grant(c.Request.Context(), inventoryID, req.Email); err != nil {
		respondError(c, h.logger, err, "failed to grant access")
		return
	}
	c.Status(http.StatusNoContent)
}

// Revoke handles DELETE /v1/inventories/:id/access/:userId
func (h *AccessHandler) Revoke(c *gin.Context) {
	inventoryID, ok := h.requireOwner(c)
	if !ok {
		return
	}
	userID, ok := paramUUID(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.access.Revoke(c.Request.Context(), inventoryID, userID); err != nil {
		respondError(c, h.logger, err, "failed to revoke access")
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /v1/inventories/:id/access
func (h *AccessHandler) List(c *gin.Context) {
	inventoryID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	users, err := h.access.ListGrantees(c.Request.Context(), inventoryID)
	if err != nil {
		respondError(c, h.logger, err, "failed to list access")
		return
	}
	c.JSON(http.StatusOK, users)
}
