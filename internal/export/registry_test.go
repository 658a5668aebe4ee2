package export

import (
	"testing"
	"time"

	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestRegistryExporter_Export(t *testing.T) {
	exporter := NewRegistryExporter(t.TempDir(), zap.NewNop())

	expires := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	apps := []*models.CertificationApplication{
		{
			ApplicationNumber: "GACP-EXPORT-1",
			FarmerID:          "1101702071712",
			FarmName:          "Baan Suan",
			Province:          "Chiang Mai",
			Status:            domain.StateUnderReview.String(),
			ExpiresAt:         &expires,
			CreatedAt:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ApplicationNumber: "GACP-EXPORT-2",
			FarmerID:          "1101702071712",
			FarmName:          "Rai Mae Fah",
			Status:            domain.StateCertificateIssued.String(),
			CreatedAt:         time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	path, err := exporter.Export(apps)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(registrySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, registryHeader, rows[0])
	assert.Equal(t, "GACP-EXPORT-1", rows[1][0])
	assert.Equal(t, domain.StateUnderReview.String(), rows[1][4])
	assert.Equal(t, "2026-10-01", rows[1][6])
	assert.Equal(t, "GACP-EXPORT-2", rows[2][0])
	assert.Equal(t, domain.StateCertificateIssued.String(), rows[2][4])
}

func TestRegistryExporter_ExportEmpty(t *testing.T) {
	exporter := NewRegistryExporter(t.TempDir(), zap.NewNop())

	path, err := exporter.Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(registrySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, registryHeader, rows[0])
}
