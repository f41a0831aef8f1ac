package billing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// InvoicePDFUseCase renders invoice PDFs and caches them on disk. A file is
// generated once per invoice and served from disk afterwards; if the file
// went missing it is regenerated.
type InvoicePDFUseCase struct {
	invoices  *InvoiceUseCase
	generator PDFGenerator
	repo      repository.InvoiceRepository
	company   Company
	dir       string
}

// NewInvoicePDFUseCase builds the use case. dir is the PDF cache directory.
func NewInvoicePDFUseCase(invoices *InvoiceUseCase, generator PDFGenerator, repo repository.InvoiceRepository, company Company, dir string) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		invoices:  invoices,
		generator: generator,
		repo:      repo,
		company:   company,
		dir:       dir,
	}
}

// Render returns the PDF bytes and the download filename for an invoice.
func (uc *InvoicePDFUseCase) Render(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := uc.invoices.Entity(id)
	if err != nil {
		return nil, "", err
	}

	filename := NormalizeFilename(inv.Number) + ".pdf"
	if inv.FilePath != "" {
		if data, err := os.ReadFile(inv.FilePath); err == nil {
			return data, filename, nil
		}
		// Stale path, fall through and regenerate.
	}

	contractor, err := uc.invoices.Contractor(inv.ContractorID)
	if err != nil {
		return nil, "", err
	}
	lines, err := uc.invoices.Lines(inv)
	if err != nil {
		return nil, "", err
	}

	data, err := uc.generator.GenerateInvoicePDF(ctx, inv, uc.company, contractor, lines)
	if err != nil {
		return nil, "", err
	}

	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return nil, "", err
	}
	path := filepath.Join(uc.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, "", err
	}

	inv.FilePath = path
	inv.UpdatedAt = time.Now()
	if err := uc.repo.Update(inv); err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

// NormalizeFilename makes an invoice number safe for the filesystem and the
// Content-Disposition header: diacritics stripped, separators replaced.
func NormalizeFilename(number string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, number)
	if err != nil {
		stripped = number
	}
	var b strings.Builder
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == '/', r == '\\', r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "invoice"
	}
	return b.String()
}
