package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawwatch/lawwatch/internal/notice"
)

func TestWriteAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "documents.json")
	updated := time.Date(2024, 6, 10, 3, 30, 0, 0, time.UTC)

	ds := New([]notice.Document{
		{Year: "113", Serial: "12", Subject: "建築技術規則修正", Attachments: []notice.Link{}, RelatedLinks: []notice.Link{}},
	}, 240, updated)

	require.NoError(t, Write(path, ds))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 240, loaded.TotalRecords)
	assert.True(t, loaded.UpdatedAt.Equal(updated))
	require.Len(t, loaded.Documents, 1)
	assert.Equal(t, "建築技術規則修正", loaded.Documents[0].Subject)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	ds := New(nil, 0, time.Now())
	assert.NotNil(t, ds.Documents, "documents must serialize as [], not null")
	assert.Zero(t, ds.TotalRecords)

	ds = New(make([]notice.Document, 3), 0, time.Now())
	assert.Equal(t, 3, ds.TotalRecords, "total falls back to the document count")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
