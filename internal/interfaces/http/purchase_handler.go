package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/application/orders"
)

// PurchaseHandler exposes the supplier purchase workflow.
type PurchaseHandler struct {
	purchases *orders.PurchaseUseCase
}

// NewPurchaseHandler builds the handler.
func NewPurchaseHandler(purchases *orders.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Create godoc
// @Summary Create a draft purchase
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body dto.CreatePurchaseRequest true "Purchase data"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.purchases.Create(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary Get one purchase with its lines
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.purchases.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary List purchases
// @Tags purchases
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} dto.PurchaseListResponse
// @Security BearerAuth
// @Router /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	resp, err := h.purchases.List(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Confirm godoc
// @Summary Confirm a draft purchase
// @Tags purchases
// @Param id path string true "Purchase ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases/{id}/confirm [post]
func (h *PurchaseHandler) Confirm(c *fiber.Ctx) error {
	if err := h.purchases.Confirm(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receive godoc
// @Summary Receive a confirmed purchase
// @Tags purchases
// @Param id path string true "Purchase ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	if err := h.purchases.Receive(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary Set the purchase status directly
// @Tags purchases
// @Accept json
// @Param id path string true "Purchase ID"
// @Param request body dto.UpdatePurchaseStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases/{id}/status [put]
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdatePurchaseStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.purchases.UpdateStatus(c.Context(), c.Params("id"), GetUserID(c), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SoftDelete godoc
// @Summary Soft-delete a purchase
// @Tags purchases
// @Param id path string true "Purchase ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases/{id} [delete]
func (h *PurchaseHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.purchases.SoftDelete(c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary Purchase history entries
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {array} dto.OrderHistoryResponse
// @Security BearerAuth
// @Router /api/purchases/{id}/history [get]
func (h *PurchaseHandler) History(c *fiber.Ctx) error {
	entries, err := h.purchases.History(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
