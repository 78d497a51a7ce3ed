package handlers

import (
	"errors"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/jwt"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/middlewares"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/storage"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/users"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type App struct {
	l       *zap.Logger
	users   users.Directory
	storage *storage.Factory
	jwt     *jwt.Service
}

func NewApp(l *zap.Logger, dir users.Directory, factory *storage.Factory, j *jwt.Service) *App {
	return &App{
		l:       l,
		users:   dir,
		storage: factory,
		jwt:     j,
	}
}

// userFromContext returns the identity the auth guard attached. Handlers
// behind the guard can rely on it being present.
func userFromContext(c echo.Context) (*jwt.User, error) {
	u, ok := c.Get(middlewares.ContextKeyUser).(*jwt.User)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}
	return u, nil
}
