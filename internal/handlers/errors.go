package handlers

import (
	"errors"
	"net/http"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/service"

	"github.com/gin-gonic/gin"
)

// detail wraps a message in the error envelope every endpoint uses.
func detail(msg string) gin.H { return gin.H{"detail": msg} }

// respondError maps tagged domain errors to HTTP statuses. Anything
// untagged is a store failure and surfaces as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, detail(err.Error()))
	case isClientError(err):
		c.JSON(http.StatusBadRequest, detail(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, detail("Erro interno do servidor."))
	}
}

// isClientError reports whether err is caller-caused (mapped to 4xx).
func isClientError(err error) bool {
	var statusErr *domain.InvalidStatusError
	return errors.As(err, &statusErr) ||
		errors.Is(err, service.ErrTaskNotFound) ||
		errors.Is(err, service.ErrEmptyTitle) ||
		errors.Is(err, service.ErrNoUpdateFields) ||
		errors.Is(err, service.ErrEmailTaken) ||
		errors.Is(err, service.ErrPasswordTooShort) ||
		errors.Is(err, service.ErrInvalidCredentials)
}
