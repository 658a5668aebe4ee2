package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const registrySheet = "Applications"

var registryHeader = []string{
	"Application Number", "Farmer ID", "Farm Name", "Province",
	"Status", "Status Description", "Expires At", "Created At",
}

// RegistryExporter writes the application registry spreadsheet used by the
// admin portal.
type RegistryExporter struct {
	outputDir string
	logger    *zap.Logger
}

// NewRegistryExporter creates a registry exporter writing into outputDir.
func NewRegistryExporter(outputDir string, logger *zap.Logger) *RegistryExporter {
	return &RegistryExporter{outputDir: outputDir, logger: logger}
}

// Export writes all applications to a timestamped xlsx file and returns its
// path.
func (e *RegistryExporter) Export(apps []*models.CertificationApplication) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registrySheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range registryHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(registrySheet, cell, title); err != nil {
			return "", err
		}
	}

	for row, app := range apps {
		description := ""
		if meta := domain.State(app.Status).Metadata(); meta != nil {
			description = meta.Description
		}
		expires := ""
		if app.ExpiresAt != nil {
			expires = app.ExpiresAt.Format("2006-01-02")
		}

		values := []interface{}{
			app.ApplicationNumber,
			app.FarmerID,
			app.FarmName,
			app.Province,
			app.Status,
			description,
			expires,
			app.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(registrySheet, cell, value); err != nil {
				return "", err
			}
		}
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save export: %w", err)
	}

	e.logger.Info("Exported application registry",
		zap.String("path", path),
		zap.Int("count", len(apps)))
	return path, nil
}
