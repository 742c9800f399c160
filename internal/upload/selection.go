// Package upload selects image files and sends them to the listing service one at a time.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"spacia-portal/internal/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMaxFileBytes is the per-image limit advertised on the add form.
const DefaultMaxFileBytes int64 = 10 << 20

// Selector turns local files or form uploads into pending files.
type Selector struct {
	MaxBytes int64
}

func NewSelector(maxBytes int64) *Selector {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	return &Selector{MaxBytes: maxBytes}
}

// FromPath selects a file on disk. The preview URL is a file:// URL.
func (s *Selector) FromPath(path string) (models.PendingFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return models.PendingFile{}, fmt.Errorf("failed to resolve %s: %v", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return models.PendingFile{}, fmt.Errorf("failed to stat %s: %v", path, err)
	}
	if info.IsDir() {
		return models.PendingFile{}, fmt.Errorf("%s is a directory", path)
	}
	open := func() (io.ReadCloser, error) { return os.Open(abs) }
	return s.pending(filepath.Base(abs), info.Size(), (&url.URL{Scheme: "file", Path: abs}).String(), open)
}

// FromMultipart selects a file posted to the portal.
func (s *Selector) FromMultipart(header *multipart.FileHeader) (models.PendingFile, error) {
	open := func() (io.ReadCloser, error) { return header.Open() }
	return s.pending(header.Filename, header.Size, "", open)
}

func (s *Selector) pending(name string, size int64, preview string, open func() (io.ReadCloser, error)) (models.PendingFile, error) {
	if size > s.MaxBytes {
		return models.PendingFile{}, fmt.Errorf("%s is %d bytes, larger than the %d byte limit", name, size, s.MaxBytes)
	}

	content, err := open()
	if err != nil {
		return models.PendingFile{}, fmt.Errorf("failed to open %s: %v", name, err)
	}
	mtype, err := mimetype.DetectReader(content)
	content.Close()
	if err != nil {
		return models.PendingFile{}, fmt.Errorf("failed to read %s: %v", name, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return models.PendingFile{}, fmt.Errorf("%s is %s, not an image", name, mtype.String())
	}

	id := uuid.NewString()
	if preview == "" {
		preview = "upload://" + id + "/" + url.PathEscape(name)
	}
	return models.PendingFile{
		ID:          id,
		Name:        name,
		ContentType: mtype.String(),
		Size:        size,
		PreviewURL:  preview,
		Open:        open,
	}, nil
}

// Selection is the ordered list of files picked for a submission.
type Selection struct {
	mu    sync.Mutex
	files []models.PendingFile
}

// Add appends files in the order given.
func (s *Selection) Add(files ...models.PendingFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, files...)
}

// Remove drops the file with the given id. Unknown ids are ignored.
func (s *Selection) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.files {
		if f.ID == id {
			s.files = append(s.files[:i:i], s.files[i+1:]...)
			return
		}
	}
}

// Files returns a copy of the selection in order.
func (s *Selection) Files() []models.PendingFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PendingFile(nil), s.files...)
}
