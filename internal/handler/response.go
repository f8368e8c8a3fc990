package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/careerlane/jobportal/internal/constants"
	apperrors "github.com/careerlane/jobportal/internal/errors"
)

// respond writes a success envelope.
func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, constants.NewResponse(status, data, message))
}

// respondError maps a domain error onto the envelope. HTTP status mapping
// lives here, at the edge, so services stay transport-agnostic.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
}
