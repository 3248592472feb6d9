// Package report persists digest artifacts as dated files in the configured
// output folder.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// baseName is the shared stem of all artifacts for one day; only the
// extension differs between the markdown digest and its audio rendering.
const baseName = "feed-summaries"

// FileStore writes digest artifacts into a single output directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on the first write, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// WriteDigest writes the digest markdown for the given date and returns the
// path of the written file.
func (s *FileStore) WriteDigest(date time.Time, markdown string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}

	path := s.digestPath(date)
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("write digest: %w", err)
	}

	slog.Info("wrote digest", slog.String("path", path))
	return path, nil
}

// AudioPath returns where the audio rendering for the given date belongs,
// using the same date-stamped stem as the digest.
func (s *FileStore) AudioPath(date time.Time, format string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.%s", date.Format("2006-01-02"), baseName, format))
}

// AppendAudioLink appends a markdown link to the audio file at the end of an
// already written digest. The link target is the bare file name so the digest
// stays valid when the output folder is moved or synced elsewhere.
func (s *FileStore) AppendAudioLink(digestPath, audioPath string) error {
	f, err := os.OpenFile(digestPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open digest for append: %w", err)
	}
	defer func() { _ = f.Close() }()

	link := fmt.Sprintf("\n[Listen to the audio version](%s)\n", filepath.Base(audioPath))
	if _, err := f.WriteString(link); err != nil {
		return fmt.Errorf("append audio link: %w", err)
	}
	return nil
}

func (s *FileStore) digestPath(date time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.md", date.Format("2006-01-02"), baseName))
}
