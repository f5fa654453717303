// Package api exposes the folio services over REST, plus a websocket event
// stream for the admin dashboard.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquinn/folio/backend/internal/apperrors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// fail maps an application error to its HTTP status.
func fail(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error(), Code: string(apperrors.ErrInternal)})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.ErrInvalid, apperrors.ErrValidation:
		status = http.StatusBadRequest
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
	case apperrors.ErrDuplicateSlug, apperrors.ErrInvalidTransition:
		status = http.StatusConflict
	case apperrors.ErrBackendUnavailable:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, errorBody{Error: appErr.Message, Code: string(appErr.Code)})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, errorBody{Error: message, Code: string(apperrors.ErrNotFound)})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorBody{Error: message, Code: string(apperrors.ErrInvalid)})
}
