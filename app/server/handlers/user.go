package handlers

import (
	"errors"
	"net/http"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/users"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) UserInfoGet(c echo.Context) error {
	rctx := c.Request().Context()

	user, err := a.users.FindByID(rctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, userInfo(user))
}

// UserUpdate applies a partial patch to the caller's own record, including
// attaching or rotating the external storage credential.
func (a *App) UserUpdate(c echo.Context) error {
	jwtUser, err := userFromContext(c)
	if err != nil {
		a.l.Error("failed to get jwt user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	id := c.Param("id")
	if id != jwtUser.ID {
		return a.er(c, http.StatusForbidden)
	}

	rctx := c.Request().Context()

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Email != nil && !validEmail(*req.Email) {
		return a.erMsg(c, http.StatusBadRequest, "invalid email")
	}

	patch := &users.Patch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Storage:  req.Storage,
	}
	if err := a.users.Update(rctx, id, patch); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to update user", zap.String("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
