package media

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef(t *testing.T) {
	ref := NewRef()

	_, ok := ref.Load()
	assert.False(t, ok, "new ref is empty")

	el := NewElement("/media/clip.wav")
	defer el.Close()

	ref.Set(el)
	got, ok := ref.Load()
	require.True(t, ok)
	assert.Same(t, el, got)

	ref.Clear()
	_, ok = ref.Load()
	assert.False(t, ok)
}

func TestReadMetadataFallsBackToFileName(t *testing.T) {
	path := writeSilence(t, 100*time.Millisecond)

	md, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(path), md.Title)
	assert.Empty(t, md.Artist)
}

func TestReadMetadataMissingFile(t *testing.T) {
	_, err := ReadMetadata(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}
