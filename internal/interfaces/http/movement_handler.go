package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/application/stock"
)

// maxAttachmentSize bounds uploaded files at 10 MB.
const maxAttachmentSize = 10 << 20

// MovementHandler exposes the stock engine: registering movements, reading
// the movement trail and managing attachments.
type MovementHandler struct {
	applier     *stock.ApplyMovementUseCase
	queries     *stock.MovementQueryUseCase
	attachments *stock.AttachmentUseCase
}

// NewMovementHandler builds the handler.
func NewMovementHandler(applier *stock.ApplyMovementUseCase, queries *stock.MovementQueryUseCase, attachments *stock.AttachmentUseCase) *MovementHandler {
	return &MovementHandler{applier: applier, queries: queries, attachments: attachments}
}

// Register godoc
// @Summary Register a stock movement
// @Description Applies a movement (PZ, PW, ZW, ZK for receipts; WZ, RW, MM for issues; INW sets the quantity) to one item atomically.
// @Tags movements
// @Accept json
// @Produce json
// @Param request body dto.RegisterMovementRequest true "Movement data"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	mov, err := h.applier.Apply(c.Context(), stock.FromRequest(GetUserID(c), req))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stock.ToMovementResponse(mov))
}

// GetByID godoc
// @Summary Get one movement
// @Tags movements
// @Produce json
// @Param id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.queries.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UploadAttachment godoc
// @Summary Attach a file to a movement
// @Tags movements
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Movement ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/movements/{id}/attachments [post]
func (h *MovementHandler) UploadAttachment(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badBody(c)
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxAttachmentSize+1))
	if err != nil {
		return respondError(c, err)
	}
	if int64(len(data)) > maxAttachmentSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "TOO_LARGE", Message: "attachment exceeds size limit"})
	}
	resp, err := h.attachments.Upload(c.Params("id"), fh.Filename, fh.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListAttachments godoc
// @Summary List attachments of a movement
// @Tags movements
// @Produce json
// @Param id path string true "Movement ID"
// @Success 200 {array} dto.AttachmentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/movements/{id}/attachments [get]
func (h *MovementHandler) ListAttachments(c *fiber.Ctx) error {
	list, err := h.attachments.List(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// List godoc
// @Summary List movements
// @Tags movements
// @Produce json
// @Param search query string false "Search in document, supplier, description"
// @Param type query string false "Movement type filter"
// @Param status query string false "completed or pending"
// @Success 200 {object} dto.MovementListResponse
// @Security BearerAuth
// @Router /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	resp, err := h.queries.List(parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
