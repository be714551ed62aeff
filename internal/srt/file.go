package srt

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSystem is the byte-level storage the package reads from and writes to.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileSystem reads and writes the local disk.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile creates missing parent directories before writing.
func (OSFileSystem) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Open parses the SRT file at path.
func Open(path string) (*Subtitles, error) {
	return Load(OSFileSystem{}, path)
}

func Load(fsys FileSystem, path string) (*Subtitles, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SRT file: %w", err)
	}
	subs, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return subs, nil
}

// Save writes the rendered subtitles to path.
func (s *Subtitles) Save(path string) error {
	return s.SaveTo(OSFileSystem{}, path)
}

func (s *Subtitles) SaveTo(fsys FileSystem, path string) error {
	if err := fsys.WriteFile(path, []byte(Render(s))); err != nil {
		return fmt.Errorf("failed to write SRT file: %w", err)
	}
	return nil
}
