package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// InvoiceHandler handles billing. Creation and status changes are
// admin-gated by the router; reads are tenant-scoped.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

type invoiceLineRequest struct {
	Description string `json:"description" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	UnitCents   int64  `json:"unit_cents" validate:"gt=0"`
}

type createInvoiceRequest struct {
	ClientID string               `json:"client_id" validate:"required"`
	OrderID  string               `json:"order_id"`
	Currency string               `json:"currency"`
	Lines    []invoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
	DueDate  *time.Time           `json:"due_date"`
}

type invoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid void"`
}

type invoiceResponse struct {
	*domain.Invoice
	StatusLabel string `json:"status_label"`
	TotalCents  int64  `json:"total_cents"`
}

func presentInvoice(inv *domain.Invoice) invoiceResponse {
	return invoiceResponse{Invoice: inv, StatusLabel: inv.Status.Label(), TotalCents: inv.TotalCents()}
}

func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lines := make([]domain.InvoiceLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.InvoiceLine{Description: l.Description, Quantity: l.Quantity, UnitCents: l.UnitCents}
	}

	inv, err := h.service.Create(c.Request().Context(), ports.CreateInvoiceInput{
		ClientID: req.ClientID,
		OrderID:  req.OrderID,
		Currency: req.Currency,
		Lines:    lines,
		DueDate:  req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, presentInvoice(inv))
}

func (h *InvoiceHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	inv, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presentInvoice(inv))
}

func (h *InvoiceHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	invoices, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, presentInvoice(inv))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InvoiceHandler) SetStatus(c echo.Context) error {
	var req invoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetStatus(c.Request().Context(), c.Param("id"), domain.InvoiceStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
