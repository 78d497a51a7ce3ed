package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/constants"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/jwt"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/users"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Name == "" {
		return a.erMsg(c, http.StatusBadRequest, "name is required")
	}
	if req.Password == "" {
		return a.erMsg(c, http.StatusBadRequest, "password is required")
	}
	if !validEmail(req.Email) {
		return a.erMsg(c, http.StatusBadRequest, "invalid email")
	}

	user, err := a.users.Create(rctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return a.erMsg(c, http.StatusConflict, err.Error())
		}
		a.l.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	token, err := a.signToken(user)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, &LoginResponse{
		AccessToken: token,
		User:        userInfo(user),
	})
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Email == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest)
	}

	// Unknown email and wrong password answer identically so login cannot be
	// used to discover which addresses are registered.
	user, err := a.users.FindByEmail(rctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return a.erMsg(c, http.StatusUnauthorized, "email or password are invalid")
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return a.erMsg(c, http.StatusUnauthorized, "email or password are invalid")
	}

	token, err := a.signToken(user)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &LoginResponse{
		AccessToken: token,
		User:        userInfo(user),
	})
}

func (a *App) signToken(user *models.User) (string, error) {
	expires := time.Now().Add(constants.AuthTokenDuration)
	return a.jwt.SignToken(&jwt.User{
		ID:      user.ID.String(),
		Expires: expires.Unix(),
	})
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
