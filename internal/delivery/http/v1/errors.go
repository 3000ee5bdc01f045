package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errInvalidRequestBody = errors.New("invalid request body")

// Machine-readable error kinds, stable across the API surface.
const (
	kindValidation   = "validation"
	kindUnauthorized = "unauthorized"
	kindNotFound     = "not_found"
	kindConflict     = "conflict"
	kindInternal     = "internal"
)

type apiError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{
		"error": err.Message,
		"kind":  err.Kind,
	})
}

func newValidationError(message string) apiError {
	return apiError{Code: http.StatusBadRequest, Kind: kindValidation, Message: message}
}

func newUnauthorizedError(message string) apiError {
	return apiError{Code: http.StatusUnauthorized, Kind: kindUnauthorized, Message: message}
}

func newNotFoundError(message string) apiError {
	return apiError{Code: http.StatusNotFound, Kind: kindNotFound, Message: message}
}

func newConflictError(message string) apiError {
	return apiError{Code: http.StatusConflict, Kind: kindConflict, Message: message}
}

// newInternalError deliberately hides the cause; internals never
// reach the client.
func newInternalError() apiError {
	return apiError{
		Code:    http.StatusInternalServerError,
		Kind:    kindInternal,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
