package storage

import (
	"os"
	"path/filepath"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
)

// writeOutput replaces dir/sensors_lastperiod.json with body. There is no
// locking: concurrent pulls into the same dir are last-writer-wins.
func writeOutput(dir string, body []byte) (string, error) {
	path := filepath.Join(dir, models.OutputFileName)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", &OutputError{Path: path, Err: err}
	}
	return path, nil
}
