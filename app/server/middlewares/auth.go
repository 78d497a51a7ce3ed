package middlewares

import (
	"net/http"
	"strings"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/jwt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContextKeyUser is where the guard stores the verified identity.
const ContextKeyUser = "user"

// Auth gates a route group behind a verified bearer token. The identity is
// only ever taken from jwt.Service.ParseUser, which checks the signature;
// the payload is never trusted from a bare decode. Public routes are simply
// registered outside the group.
func Auth(j *jwt.Service, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthenticated(c)
			}

			splits := strings.Split(authHeader, " ")
			if len(splits) != 2 || splits[1] == "" {
				return unauthenticated(c)
			}

			if !strings.EqualFold(splits[0], "bearer") {
				return unauthenticated(c)
			}

			jwtUser, err := j.ParseUser(splits[1])
			if err != nil {
				l.Debug("rejected token", zap.Error(err))
				return unauthenticated(c)
			}

			c.Set(ContextKeyUser, jwtUser)

			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"message": http.StatusText(http.StatusUnauthorized),
	})
}
