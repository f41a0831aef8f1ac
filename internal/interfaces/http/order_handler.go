package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/application/orders"
)

// OrderHandler exposes sale and purchase orders.
type OrderHandler struct {
	orders *orders.OrderUseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(ordersUC *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{orders: ordersUC}
}

// Create godoc
// @Summary Create a draft order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Order data"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.orders.Create(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary Get one order with its lines
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.orders.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param type query string false "sale or purchase"
// @Param status query string false "Status filter"
// @Success 200 {object} dto.OrderListResponse
// @Security BearerAuth
// @Router /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	resp, err := h.orders.List(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Confirm godoc
// @Summary Confirm a draft order
// @Description Sale orders decrement stock per line, all lines or none; purchase orders record pending receipts.
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	if err := h.orders.Confirm(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receive godoc
// @Summary Receive a confirmed purchase-type order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	if err := h.orders.Receive(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary Set the order status directly
// @Tags orders
// @Accept json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.orders.UpdateStatus(c.Context(), c.Params("id"), GetUserID(c), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SoftDelete godoc
// @Summary Soft-delete an order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.orders.SoftDelete(c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary Order history entries
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} dto.OrderHistoryResponse
// @Security BearerAuth
// @Router /api/orders/{id}/history [get]
func (h *OrderHandler) History(c *fiber.Ctx) error {
	entries, err := h.orders.History(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
