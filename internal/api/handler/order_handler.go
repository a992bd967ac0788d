package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// OrderHandler handles order management.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type createOrderRequest struct {
	ClientID    string `json:"client_id" validate:"required"`
	OfferingID  string `json:"offering_id"`
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	Currency    string `json:"currency"`
	Notes       string `json:"notes"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active completed cancelled"`
}

type orderResponse struct {
	*domain.Order
	StatusLabel string `json:"status_label"`
}

func presentOrder(o *domain.Order) orderResponse {
	return orderResponse{Order: o, StatusLabel: o.Status.Label()}
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		ClientID:    req.ClientID,
		OfferingID:  req.OfferingID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, presentOrder(order))
}

func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presentOrder(order))
}

func (h *OrderHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	orders, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, presentOrder(o))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) SetStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
