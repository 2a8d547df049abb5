package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrascripts/gallery/internal/storage"
)

func TestSaveAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	files := NewLocalFilesStorage(dir, ".jsonl")
	ctx := context.Background()

	require.NoError(t, files.Save(ctx, "snapshot", strings.NewReader("first")))
	require.NoError(t, files.Save(ctx, "snapshot", strings.NewReader("second")))

	raw, err := os.ReadFile(filepath.Join(dir, "snapshot.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(raw))

	r, err := files.Open(ctx, "snapshot")
	require.NoError(t, err)
	defer r.Close()
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "second", string(body))
}

func TestOpenMissing(t *testing.T) {
	files := NewLocalFilesStorage(t.TempDir(), "")

	_, err := files.Open(context.Background(), "nope.toml")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
