package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/manpreet1462/bookit/internal/model"
	"github.com/manpreet1462/bookit/internal/service"
)

// CatalogService is the read side of the checkout service.
type CatalogService interface {
	ListExperiences(ctx context.Context, query string) ([]model.Experience, error)
	ExperienceDetail(ctx context.Context, q service.DetailQuery) (*service.ExperienceDetail, error)
}

// CatalogHandler serves the experience list and detail pages.
type CatalogHandler struct {
	svc CatalogService
}

// NewCatalogHandler panics on a nil service.
func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	if svc == nil {
		panic("nil service passed to NewCatalogHandler")
	}
	return &CatalogHandler{svc: svc}
}

// List handles GET /v1/experiences?q=.
func (h *CatalogHandler) List(c echo.Context) error {
	exps, err := h.svc.ListExperiences(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":  exps,
		"total": len(exps),
	})
}

// Detail handles GET /v1/experiences/:id?date=&slot=&quantity=.
func (h *CatalogHandler) Detail(c echo.Context) error {
	qty, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil {
		qty = 1
	}
	d, err := h.svc.ExperienceDetail(c.Request().Context(), service.DetailQuery{
		ExperienceID: c.Param("id"),
		Date:         strings.TrimSpace(c.QueryParam("date")),
		SlotID:       strings.TrimSpace(c.QueryParam("slot")),
		Quantity:     qty,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
