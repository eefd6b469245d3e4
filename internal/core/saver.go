package core

import (
	"fmt"
	"path/filepath"

	"github.com/inovacc/petgallery/internal/common"
	"github.com/inovacc/petgallery/internal/encoding"
)

// DirSaver writes exported files into Dir, creating it when needed
type DirSaver struct {
	Dir string
}

// Save writes data as name inside the directory and returns the written path.
// An existing file with the same name is overwritten.
func (s DirSaver) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	if !encoding.DirExists(dir) {
		if err := encoding.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("save %s: %w", name, err)
		}
	}

	path := filepath.Join(dir, common.SafeFileName(name))

	if err := encoding.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}

	return path, nil
}
