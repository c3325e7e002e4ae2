package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/advert-board/internal/config"
	"github.com/iliyamo/advert-board/internal/middleware"
	"github.com/iliyamo/advert-board/internal/model"
	"github.com/iliyamo/advert-board/internal/repository"
	"github.com/iliyamo/advert-board/internal/resource"
	"github.com/iliyamo/advert-board/internal/rights"
	"github.com/iliyamo/advert-board/internal/utils"
)

// UserHandler bundles dependencies for the /user endpoints.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Rights *rights.Table
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo, table *rights.Table) *UserHandler {
	if users == nil || table == nil {
		panic("nil dependency passed to NewUserHandler")
	}
	return &UserHandler{Cfg: cfg, Users: users, Rights: table}
}

// ----- DTOs -----

type createUserReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type userResp struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

func newUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Username: u.Username, Role: u.Role, RegisteredAt: u.RegisteredAt}
}

// List returns a paginated, optionally filtered page of users.
func (h *UserHandler) List(c echo.Context) error {
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Users.Name, nil, rights.Request{Read: true}); err != nil {
		return respondError(c, err)
	}
	clause, paginator, err := listParams(c, resource.Users, h.Cfg.ValuesOnPage)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx, clause, paginator)
	if err != nil {
		return respondError(c, err)
	}
	results := make([]userResp, len(users))
	for i, u := range users {
		results[i] = newUserResp(u)
	}
	return c.JSON(http.StatusOK, paginator.Envelope(results))
}

// Detail returns a single user by id.
func (h *UserHandler) Detail(c echo.Context) error {
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Users.Name, nil, rights.Request{Read: true}); err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Detail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserResp(user))
}

// Create registers a new account. Registration is open, so the anonymous
// rights allow it; the password must pass the strength policy.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "username/password required"})
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return respondError(c, err)
	}
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Users.Name, nil, rights.Request{Create: true}); err != nil {
		return respondError(c, err)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Create(ctx, req.Username, hash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newUserResp(user))
}

// Patch partially updates an account: only fields present in the body are
// written. Owner or admin only.
func (h *UserHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Users.Detail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Users.Name, existing,
		rights.Request{OwnerOnly: true, Update: true}); err != nil {
		return respondError(c, err)
	}

	var fields []repository.FieldValue
	if req.Username != nil {
		fields = append(fields, repository.FieldValue{Column: "username", Value: strings.TrimSpace(*req.Username)})
	}
	if req.Password != nil {
		if err := utils.ValidatePassword(*req.Password); err != nil {
			return respondError(c, err)
		}
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return respondError(c, err)
		}
		fields = append(fields, repository.FieldValue{Column: "password_hash", Value: hash})
	}

	updated, err := h.Users.Update(ctx, id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserResp(updated))
}

// Delete removes an account along with its tokens and advertisements.
// Owner or admin only.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Users.Detail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Users.Name, existing,
		rights.Request{OwnerOnly: true, Delete: true}); err != nil {
		return respondError(c, err)
	}
	if err := h.Users.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
