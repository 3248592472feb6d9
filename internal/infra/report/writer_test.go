package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digestDate = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func TestWriteDigest(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	path, err := store.WriteDigest(digestDate, "# News for Friday, March 15, 2024\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-03-15_feed-summaries.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# News for Friday, March 15, 2024\n", string(content))
}

func TestWriteDigestCreatesOutputFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "digests")
	store := NewFileStore(dir)

	path, err := store.WriteDigest(digestDate, "# News\n")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestAudioPathMatchesDigestStem(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	assert.Equal(t,
		filepath.Join(dir, "2024-03-15_feed-summaries.mp3"),
		store.AudioPath(digestDate, "mp3"))
	assert.Equal(t,
		filepath.Join(dir, "2024-03-15_feed-summaries.wav"),
		store.AudioPath(digestDate, "wav"))
}

func TestAppendAudioLink(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	digestPath, err := store.WriteDigest(digestDate, "# News for Friday, March 15, 2024\n")
	require.NoError(t, err)
	audioPath := store.AudioPath(digestDate, "mp3")

	require.NoError(t, store.AppendAudioLink(digestPath, audioPath))

	content, err := os.ReadFile(digestPath)
	require.NoError(t, err)
	assert.Equal(t,
		"# News for Friday, March 15, 2024\n\n[Listen to the audio version](2024-03-15_feed-summaries.mp3)\n",
		string(content))
}

func TestAppendAudioLinkMissingDigest(t *testing.T) {
	store := NewFileStore(t.TempDir())

	err := store.AppendAudioLink(filepath.Join(t.TempDir(), "missing.md"), "audio.mp3")
	assert.Error(t, err)
}
