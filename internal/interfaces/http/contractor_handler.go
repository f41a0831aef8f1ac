package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/catalog"
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
)

// ContractorHandler exposes the contractor registry.
type ContractorHandler struct {
	contractors *catalog.ContractorUseCase
}

// NewContractorHandler builds the handler.
func NewContractorHandler(contractors *catalog.ContractorUseCase) *ContractorHandler {
	return &ContractorHandler{contractors: contractors}
}

// Create godoc
// @Summary Create a contractor
// @Tags contractors
// @Accept json
// @Produce json
// @Param request body dto.CreateContractorRequest true "Contractor data"
// @Success 201 {object} dto.ContractorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/contractors [post]
func (h *ContractorHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContractorRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.contractors.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary Get one contractor
// @Tags contractors
// @Produce json
// @Param id path string true "Contractor ID"
// @Success 200 {object} dto.ContractorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/contractors/{id} [get]
func (h *ContractorHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.contractors.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary Update contractor fields
// @Tags contractors
// @Accept json
// @Produce json
// @Param id path string true "Contractor ID"
// @Param request body dto.UpdateContractorRequest true "Fields to patch"
// @Success 200 {object} dto.ContractorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/contractors/{id} [put]
func (h *ContractorHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateContractorRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.contractors.Update(c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary List contractors
// @Tags contractors
// @Produce json
// @Param search query string false "Search in name, NIP, city"
// @Param type query string false "supplier or client"
// @Success 200 {object} dto.ContractorListResponse
// @Security BearerAuth
// @Router /api/contractors [get]
func (h *ContractorHandler) List(c *fiber.Ctx) error {
	resp, err := h.contractors.List(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListDeleted godoc
// @Summary List soft-deleted contractors
// @Tags contractors
// @Produce json
// @Success 200 {object} dto.ContractorListResponse
// @Security BearerAuth
// @Router /api/contractors/deleted [get]
func (h *ContractorHandler) ListDeleted(c *fiber.Ctx) error {
	resp, err := h.contractors.ListDeleted(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Restore godoc
// @Summary Restore a soft-deleted contractor
// @Tags contractors
// @Produce json
// @Param id path string true "Contractor ID"
// @Success 200 {object} dto.ContractorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/contractors/{id}/restore [post]
func (h *ContractorHandler) Restore(c *fiber.Ctx) error {
	resp, err := h.contractors.Restore(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SoftDelete godoc
// @Summary Soft-delete a contractor
// @Tags contractors
// @Param id path string true "Contractor ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/contractors/{id} [delete]
func (h *ContractorHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.contractors.SoftDelete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
