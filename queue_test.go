package imageredux

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueAddDeduplicates(t *testing.T) {
	q := NewQueue()

	first := q.Add("/pics/a.png")
	require.NotNil(t, first)
	assert.Nil(t, q.Add("/pics/a.png"))
	assert.NotNil(t, q.Add("/pics/b.png"))
	assert.Equal(t, 2, q.Len())
	assert.Same(t, first, q.At(0))
}

func TestQueueRemoveAt(t *testing.T) {
	q := NewQueue()
	q.Add("/pics/a.png")
	q.Add("/pics/b.png")
	q.Add("/pics/c.png")

	q.RemoveAt(1)
	require.Equal(t, 2, q.Len())
	assert.Equal(t, "/pics/a.png", q.At(0).SourcePath)
	assert.Equal(t, "/pics/c.png", q.At(1).SourcePath)

	// out of range is ignored
	q.RemoveAt(-1)
	q.RemoveAt(5)
	assert.Equal(t, 2, q.Len())
}

func TestQueuePending(t *testing.T) {
	q := NewQueue()
	q.Add("/pics/a.png")
	q.Add("/pics/b.png")
	q.Add("/pics/c.png")
	q.At(1).Processed = true

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "/pics/a.png", pending[0].SourcePath)
	assert.Equal(t, "/pics/c.png", pending[1].SourcePath)
}

func TestQueueClear(t *testing.T) {
	q := NewQueue()
	q.Add("/pics/a.png")
	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Pending())
}

func TestIsImagePath(t *testing.T) {
	assert.True(t, IsImagePath("photo.jpg"))
	assert.True(t, IsImagePath("photo.JPEG"))
	assert.True(t, IsImagePath("photo.png"))
	assert.True(t, IsImagePath("photo.webp"))
	assert.False(t, IsImagePath("notes.txt"))
	assert.False(t, IsImagePath("archive.zip"))
	assert.False(t, IsImagePath("photo"))
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.png", "a.jpg", "nested/c.jpeg", "skip.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	images, err := ListImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "nested", "c.jpeg"),
	}, images)
}
