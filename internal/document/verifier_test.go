package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVerifier_MissingFile(t *testing.T) {
	v := NewVerifier(zap.NewNop())

	err := v.Verify(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestVerifier_EmptyFile(t *testing.T) {
	v := NewVerifier(zap.NewNop())

	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	err := v.Verify(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestVerifier_NonPDFOnlyNeedsContent(t *testing.T) {
	v := NewVerifier(zap.NewNop())

	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0}, 0644))

	assert.NoError(t, v.Verify(path))
}

func TestVerifier_UnreadablePDF(t *testing.T) {
	v := NewVerifier(zap.NewNop())

	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

	err := v.Verify(path)
	require.Error(t, err)
}
