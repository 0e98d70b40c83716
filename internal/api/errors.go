package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/service"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Anything it does not
// recognize is logged and reported as a 500 carrying fallback, so storage
// details never reach the client.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &verr):
		c.JSON(validationStatus(verr), gin.H{"error": verr.Message})
	default:
		logger.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func validationStatus(verr *service.ValidationError) int {
	if errors.Is(verr, service.ErrAlreadyGranted) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// paramUUID parses a path parameter, answering 400 itself on failure.
func paramUUID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " id"})
		return uuid.Nil, false
	}
	return id, true
}
