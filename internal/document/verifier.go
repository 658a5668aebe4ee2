package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// Verifier checks that an uploaded supporting document is a readable file
// before its record is marked verified. PDFs are opened with mupdf and must
// contain at least one page; image uploads (farm photos) only need to exist
// and be non-empty.
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a document verifier.
func NewVerifier(logger *zap.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// Verify validates the file at path. It returns nil when the file is
// acceptable for attachment.
func (v *Verifier) Verify(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("document file not found: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("document file is empty: %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return v.verifyPDF(path)
	}
	return nil
}

func (v *Verifier) verifyPDF(path string) error {
	doc, err := fitz.New(path)
	if err != nil {
		v.logger.Warn("Rejected unreadable PDF", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return fmt.Errorf("PDF has no pages: %s", path)
	}

	v.logger.Debug("Verified PDF document",
		zap.String("path", path),
		zap.Int("pages", doc.NumPage()))
	return nil
}
