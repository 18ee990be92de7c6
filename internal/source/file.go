package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads a table from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: filepath.Clean(path)}
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return data, nil
}

// Describe implements Source.
func (s *FileSource) Describe() string {
	return s.path
}

// WatchPath implements Source.
func (s *FileSource) WatchPath() string {
	return s.path
}
