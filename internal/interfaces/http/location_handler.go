package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/catalog"
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
)

// LocationHandler exposes warehouse locations.
type LocationHandler struct {
	locations *catalog.LocationUseCase
}

// NewLocationHandler builds the handler.
func NewLocationHandler(locations *catalog.LocationUseCase) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// Create godoc
// @Summary Create a location
// @Tags locations
// @Accept json
// @Produce json
// @Param request body dto.CreateLocationRequest true "Location data"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.locations.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary Get one location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.locations.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary Update location fields
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body dto.UpdateLocationRequest true "Fields to patch"
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.locations.Update(c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary List locations
// @Tags locations
// @Produce json
// @Success 200 {object} dto.LocationListResponse
// @Security BearerAuth
// @Router /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	resp, err := h.locations.List(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListDeleted godoc
// @Summary List soft-deleted locations
// @Tags locations
// @Produce json
// @Success 200 {object} dto.LocationListResponse
// @Security BearerAuth
// @Router /api/locations/deleted [get]
func (h *LocationHandler) ListDeleted(c *fiber.Ctx) error {
	resp, err := h.locations.ListDeleted(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Restore godoc
// @Summary Restore a soft-deleted location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/locations/{id}/restore [post]
func (h *LocationHandler) Restore(c *fiber.Ctx) error {
	resp, err := h.locations.Restore(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SoftDelete godoc
// @Summary Soft-delete a location
// @Tags locations
// @Param id path string true "Location ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/locations/{id} [delete]
func (h *LocationHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.locations.SoftDelete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
