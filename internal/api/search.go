package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler serves full-text search. It is public and does no access
// checks.
type SearchHandler struct {
	search   SearchService
	pageSize int
	logger   *zap.Logger
}

func NewSearchHandler(search SearchService, pageSize int, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{search: search, pageSize: pageSize, logger: logger}
}

// Search handles GET /v1/search?q=&page=. A missing or malformed page is
// treated as page 1; out-of-range pages are clamped by the service.
func (h *SearchHandler) Search(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := h.search.Search(c.Request.Context(), c.Query("q"), page, h.pageSize)
	if err != nil {
		respondError(c, h.logger, err, "search failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
