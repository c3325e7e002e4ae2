package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/advert-board/internal/config"
	"github.com/iliyamo/advert-board/internal/repository"
	"github.com/iliyamo/advert-board/internal/utils"
)

// AuthHandler implements login (Basic credentials -> bearer token) and
// logout (token row deletion).
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo) *AuthHandler {
	if users == nil || tokens == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type tokenResp struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Login verifies `Authorization: Basic <base64(username:password)>` and
// issues a fresh token row. Previously issued tokens stay valid until they
// age out or are deleted.
func (h *AuthHandler) Login(c echo.Context) error {
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "basic credentials required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		return respondError(c, err)
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.Tokens.Issue(ctx, user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, tokenResp{Token: token.Value, CreatedAt: token.CreatedAt})
}

// Logout deletes the presented token row, terminating that session.
func (h *AuthHandler) Logout(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Token ") {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token required"})
	}
	value := strings.TrimSpace(strings.TrimPrefix(header, "Token "))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.Delete(ctx, value); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
