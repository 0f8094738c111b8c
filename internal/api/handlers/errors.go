package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngson927/Greatea-smart-management/internal/service"
	"github.com/rs/zerolog/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidSupplyID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForecastNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes {"error": ...}. Client errors echo the
// cause; upstream failures add it as details.
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)

	event := log.Error()
	if status < http.StatusInternalServerError {
		event = log.Warn()
	}
	event.Err(err).
		Str("path", c.FullPath()).
		Int("status", status).
		Msg(message)

	switch {
	case status < http.StatusInternalServerError:
		c.JSON(status, gin.H{"error": err.Error()})
	case status == http.StatusBadGateway:
		c.JSON(status, gin.H{"error": message, "details": err.Error()})
	default:
		c.JSON(status, gin.H{"error": message})
	}
}
