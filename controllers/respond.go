package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	gateway "github.com/fulld/event-map-go/gateway"
)

// statusFor maps gateway error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, gateway.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrInconsistentState):
		return http.StatusConflict
	case errors.Is(err, gateway.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
