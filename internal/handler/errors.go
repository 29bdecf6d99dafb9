package handler

import (
	"errors"
	"net/http"

	"address-api/internal/models"
	"address-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON body returned on failure
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	var vErr *validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, models.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "address not found"})
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
