// Package preview keeps the rendered preview of the selected image on disk so
// it can be opened in an external viewer. At most one preview file exists at
// a time: publishing a new one or releasing removes the previous file.
package preview

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophtimecard/internal/filex"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
	"github.com/google/uuid"
)

type Store struct {
	dir string

	mu      sync.Mutex
	current string
}

// NewStore returns a store writing into dir, created on first use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Publish writes img as the current preview and releases the previous one.
// It returns the path of the new file.
func (s *Store) Publish(img rotation.Image) (string, error) {
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + extension(img)
	p := filepath.Join(dir, name)
	if err := filex.WriteFileAtomic(p, img.Data, 0o600); err != nil {
		return "", fmt.Errorf("write preview: %w", err)
	}

	s.mu.Lock()
	prev := s.current
	s.current = p
	s.mu.Unlock()

	if err := filex.RemoveIfExists(prev); err != nil {
		return p, fmt.Errorf("release previous preview: %w", err)
	}
	return p, nil
}

// Current is the path of the live preview, or empty.
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Release removes the live preview, if any.
func (s *Store) Release() error {
	s.mu.Lock()
	prev := s.current
	s.current = ""
	s.mu.Unlock()

	return filex.RemoveIfExists(prev)
}

func extension(img rotation.Image) string {
	if ext := filepath.Ext(img.Filename); ext != "" {
		return strings.ToLower(ext)
	}
	if _, sub, ok := strings.Cut(img.MIMEType, "/"); ok && sub != "" {
		return "." + sub
	}
	return ".img"
}
