package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/civilregistry/backend/internal/interfaces/http/dto"
	"github.com/civilregistry/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getOfficerExternalID extracts the authenticated officer's external ID
func getOfficerExternalID(c *gin.Context) (string, error) {
	id := middleware.GetOfficerExternalID(c)
	if id == "" {
		return "", errors.New("officer identity not found in context")
	}
	return id, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError maps an application error to its HTTP response. Domain and
// technical error codes pass through to the body unchanged so the caller can
// key behavior on them.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	var techErr *shared.TechnicalError
	if errors.As(err, &techErr) {
		// The cause stays in the logs; the body carries only the code.
		h.Error(c, dto.GetHTTPStatus(techErr.Code), techErr.Code, techErr.Message)
		return
	}

	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}
