package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DiscussionHandler serves discussion history over plain HTTP. New posts
// arrive over the websocket.
type DiscussionHandler struct {
	discussion DiscussionService
	logger     *zap.Logger
}

func NewDiscussionHandler(discussion DiscussionService, logger *zap.Logger) *DiscussionHandler {
	return &DiscussionHandler{discussion: discussion, logger: logger}
}

// History handles GET /v1/inventories/:id/posts (oldest first).
func (h *DiscussionHandler) History(c *gin.Context) {
	inventoryID, ok := paramUUID(c, "id", "inventory")
	if !ok {
		return
	}

	posts, err := h.discussion.History(c.Request.Context(), inventoryID)
	if err != nil {
		respondError(c, h.logger, err, "failed to list posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}
