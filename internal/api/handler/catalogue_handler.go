package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/service"
)

// CatalogueHandler handles the service catalogue and subscriptions.
type CatalogueHandler struct {
	service *service.CatalogueService
}

func NewCatalogueHandler(svc *service.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{service: svc}
}

type createOfferingRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" validate:"gt=0"`
	Currency    string `json:"currency"`
	Recurring   bool   `json:"recurring"`
}

type subscribeRequest struct {
	ClientID   string `json:"client_id" validate:"required"`
	OfferingID string `json:"offering_id" validate:"required"`
}

func (h *CatalogueHandler) CreateOffering(c echo.Context) error {
	var req createOfferingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	off, err := h.service.CreateOffering(c.Request().Context(), service.CreateOfferingInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		Recurring:   req.Recurring,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, off)
}

func (h *CatalogueHandler) ListOfferings(c echo.Context) error {
	offerings, err := h.service.ListOfferings(c.Request().Context())
	if err != nil {
		return err
	}
	if offerings == nil {
		offerings = []*domain.Offering{}
	}
	return c.JSON(http.StatusOK, offerings)
}

func (h *CatalogueHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.service.Subscribe(c.Request().Context(), req.ClientID, req.OfferingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *CatalogueHandler) ListSubscriptions(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	subs, err := h.service.ListSubscriptions(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []*domain.Subscription{}
	}
	return c.JSON(http.StatusOK, subs)
}

func (h *CatalogueHandler) Unsubscribe(c echo.Context) error {
	if err := h.service.Unsubscribe(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
