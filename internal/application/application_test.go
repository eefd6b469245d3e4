package application

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogFile(t *testing.T) {
	path := DefaultLogFile()

	assert.Equal(t, LogFileName, filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}

func TestGetApplicationDirectory(t *testing.T) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		t.Skipf("no config directory available: %v", err)
	}

	assert.Equal(t, AppName, filepath.Base(dir))
}
