package stock

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// AttachmentUseCase stores files linked to movements: delivery notes, scans
// of the paper documents. Content goes to disk under a random name, metadata
// to the database.
type AttachmentUseCase struct {
	movRepo repository.MovementRepository
	attRepo repository.AttachmentRepository
	dir     string
}

// NewAttachmentUseCase builds the use case. dir is the attachment directory.
func NewAttachmentUseCase(movRepo repository.MovementRepository, attRepo repository.AttachmentRepository, dir string) *AttachmentUseCase {
	return &AttachmentUseCase{movRepo: movRepo, attRepo: attRepo, dir: dir}
}

// Upload saves the file content and records its metadata against the
// movement. The original filename is kept only in metadata; on disk the file
// gets a random name so uploads cannot collide or traverse paths.
func (uc *AttachmentUseCase) Upload(movementID, fileName, mimeType string, data []byte) (*dto.AttachmentResponse, error) {
	if fileName == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}

	id := uuid.New().String()
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(uc.dir, id+filepath.Ext(fileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	att := &entity.Attachment{
		ID:         id,
		MovementID: movementID,
		FileName:   filepath.Base(fileName),
		FilePath:   path,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		CreatedAt:  time.Now(),
	}
	if err := uc.attRepo.Create(att); err != nil {
		return nil, err
	}
	return toAttachmentResponse(att), nil
}

// List returns the attachments of one movement.
func (uc *AttachmentUseCase) List(movementID string) ([]dto.AttachmentResponse, error) {
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.attRepo.ListByMovement(movementID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttachmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAttachmentResponse(a))
	}
	return out, nil
}

func toAttachmentResponse(a *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:         a.ID,
		MovementID: a.MovementID,
		FileName:   a.FileName,
		MimeType:   a.MimeType,
		Size:       a.Size,
		CreatedAt:  a.CreatedAt,
	}
}
