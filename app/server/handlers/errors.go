package handlers

import (
	"errors"
	"net/http"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/storage"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/users"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ErrorMessage struct {
	Message string `json:"message"`
}

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

func (a *App) erMsg(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &ErrorMessage{
		Message: message,
	})
}

// erStorage maps storage-layer failures onto the HTTP surface. Provider
// failures pass their upstream message through; they are never flattened
// into an empty success.
func (a *App) erStorage(c echo.Context, err error) error {
	var providerErr *storage.ProviderError

	switch {
	case errors.Is(err, storage.ErrMissingPath):
		return a.erMsg(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotLinked):
		return a.erMsg(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, users.ErrNotFound):
		return a.er(c, http.StatusNotFound)
	case errors.As(err, &providerErr):
		a.l.Error("storage provider call failed",
			zap.String("op", providerErr.Op),
			zap.String("message", providerErr.Message),
		)
		return a.erMsg(c, http.StatusBadGateway, providerErr.Message)
	default:
		a.l.Error("storage operation failed", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
}
