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
	"github.com/iliyamo/advert-board/internal/queue"
	"github.com/iliyamo/advert-board/internal/repository"
	"github.com/iliyamo/advert-board/internal/resource"
	"github.com/iliyamo/advert-board/internal/rights"
	publisher "github.com/iliyamo/advert-board/internal/service"
)

// AdvertHandler bundles dependencies for the /advertisement endpoints.
type AdvertHandler struct {
	Cfg     config.Config
	Adverts *repository.AdvertRepo
	Rights  *rights.Table
}

func NewAdvertHandler(cfg config.Config, adverts *repository.AdvertRepo, table *rights.Table) *AdvertHandler {
	if adverts == nil || table == nil {
		panic("nil dependency passed to NewAdvertHandler")
	}
	return &AdvertHandler{Cfg: cfg, Adverts: adverts, Rights: table}
}

// ----- DTOs -----

type createAdvertReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
}

type updateAdvertReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
}

type advertResp struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newAdvertResp(a model.Advertisement) advertResp {
	return advertResp{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		Description: a.Description,
		Price:       a.Price,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// audit emits an advert audit event; a broker failure never fails the
// request.
func (h *AdvertHandler) audit(action string, a model.Advertisement) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = publisher.PublishAdvertEvent(ctx, queue.AdvertEvent{
		Action:     action,
		AdvertID:   a.ID,
		UserID:     a.UserID,
		Title:      a.Title,
		Price:      a.Price,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// List returns a paginated, optionally filtered page of advertisements.
func (h *AdvertHandler) List(c echo.Context) error {
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Advertisements.Name, nil, rights.Request{Read: true}); err != nil {
		return respondError(c, err)
	}
	clause, paginator, err := listParams(c, resource.Advertisements, h.Cfg.ValuesOnPage)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	adverts, err := h.Adverts.List(ctx, clause, paginator)
	if err != nil {
		return respondError(c, err)
	}
	results := make([]advertResp, len(adverts))
	for i, a := range adverts {
		results[i] = newAdvertResp(a)
	}
	return c.JSON(http.StatusOK, paginator.Envelope(results))
}

// Detail returns a single advertisement by id.
func (h *AdvertHandler) Detail(c echo.Context) error {
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Advertisements.Name, nil, rights.Request{Read: true}); err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	advert, err := h.Adverts.Detail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newAdvertResp(advert))
}

// Create inserts a new advertisement owned by the caller. Requires a token:
// the anonymous rights carry no create flag for this kind.
func (h *AdvertHandler) Create(c echo.Context) error {
	var req createAdvertReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Description == "" || req.Price == nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "title/description/price required"})
	}

	actor := middleware.Actor(c)
	if err := h.Rights.Evaluate(actor, resource.Advertisements.Name, nil, rights.Request{Create: true}); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	advert, err := h.Adverts.Create(ctx, actor.ID, req.Title, req.Description, *req.Price)
	if err != nil {
		return respondError(c, err)
	}
	h.audit("created", advert)
	return c.JSON(http.StatusCreated, newAdvertResp(advert))
}

// Patch partially updates an advertisement. Owner or admin only.
func (h *AdvertHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	var req updateAdvertReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Adverts.Detail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Advertisements.Name, existing,
		rights.Request{OwnerOnly: true, Update: true}); err != nil {
		return respondError(c, err)
	}

	var fields []repository.FieldValue
	if req.Title != nil {
		fields = append(fields, repository.FieldValue{Column: "title", Value: strings.TrimSpace(*req.Title)})
	}
	if req.Description != nil {
		fields = append(fields, repository.FieldValue{Column: "description", Value: *req.Description})
	}
	if req.Price != nil {
		fields = append(fields, repository.FieldValue{Column: "price", Value: *req.Price})
	}

	updated, err := h.Adverts.Update(ctx, id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newAdvertResp(updated))
}

// Delete removes an advertisement. Owner or admin only.
func (h *AdvertHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Adverts.Detail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Rights.Evaluate(middleware.Actor(c), resource.Advertisements.Name, existing,
		rights.Request{OwnerOnly: true, Delete: true}); err != nil {
		return respondError(c, err)
	}
	if err := h.Adverts.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	h.audit("deleted", existing)
	return c.NoContent(http.StatusNoContent)
}
