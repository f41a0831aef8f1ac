package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/catalog"
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/application/stock"
)

// ItemHandler exposes the item catalog plus per-item movement and audit views.
type ItemHandler struct {
	items   *catalog.ItemUseCase
	queries *stock.MovementQueryUseCase
}

// NewItemHandler builds the handler.
func NewItemHandler(items *catalog.ItemUseCase, queries *stock.MovementQueryUseCase) *ItemHandler {
	return &ItemHandler{items: items, queries: queries}
}

// Create godoc
// @Summary Create a catalog item
// @Tags items
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Item data"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	item, err := h.items.Create(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetByID godoc
// @Summary Get one item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.items.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Update godoc
// @Summary Update item fields
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.UpdateItemRequest true "Fields to patch"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	item, err := h.items.Update(GetUserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// List godoc
// @Summary List items
// @Tags items
// @Produce json
// @Param search query string false "Search in code, name, category"
// @Param category query string false "Category filter"
// @Param location_id query string false "Location filter"
// @Param sort_by query string false "Sort field, prefix with - for descending"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ItemListResponse
// @Security BearerAuth
// @Router /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	resp, err := h.items.List(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListDeleted godoc
// @Summary List soft-deleted items
// @Tags items
// @Produce json
// @Success 200 {object} dto.ItemListResponse
// @Security BearerAuth
// @Router /api/items/deleted [get]
func (h *ItemHandler) ListDeleted(c *fiber.Ctx) error {
	resp, err := h.items.ListDeleted(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SoftDelete godoc
// @Summary Soft-delete an item
// @Tags items
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/items/{id} [delete]
func (h *ItemHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.items.SoftDelete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary Restore a soft-deleted item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/items/{id}/restore [post]
func (h *ItemHandler) Restore(c *fiber.Ctx) error {
	item, err := h.items.Restore(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Movements godoc
// @Summary Movement history of an item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {array} dto.MovementResponse
// @Security BearerAuth
// @Router /api/items/{id}/movements [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	list, err := h.queries.ItemMovements(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Log godoc
// @Summary Audit log of an item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {array} dto.OperationLogResponse
// @Security BearerAuth
// @Router /api/items/{id}/log [get]
func (h *ItemHandler) Log(c *fiber.Ctx) error {
	list, err := h.queries.ItemLog(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
