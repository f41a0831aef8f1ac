package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
)

// InvoiceHandler exposes invoicing: issuance, PDF download and external
// submission.
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	pdfs     *billing.InvoicePDFUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, pdfs *billing.InvoicePDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, pdfs: pdfs}
}

// Create godoc
// @Summary Issue an invoice
// @Description Lines come from the referenced order when order_id is set, otherwise from the request body.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.invoices.Create(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary Get one invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.invoices.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param type query string false "Invoice type filter"
// @Param status query string false "Status filter"
// @Success 200 {object} dto.InvoiceListResponse
// @Security BearerAuth
// @Router /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	resp, err := h.invoices.List(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SoftDelete godoc
// @Summary Soft-delete an invoice
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/invoices/{id} [delete]
func (h *InvoiceHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.invoices.SoftDelete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit godoc
// @Summary Submit the invoice to the e-invoicing service
// @Description Idempotent; an already-submitted invoice returns its existing reference.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.SubmitInvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/invoices/{id}/submit [post]
func (h *InvoiceHandler) Submit(c *fiber.Ctx) error {
	resp, err := h.invoices.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// PDF godoc
// @Summary Download the invoice PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfs.Render(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
