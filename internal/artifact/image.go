// Package artifact writes files produced by the example runs.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const imagePrefix = "smilesImage_"

// ImageFileName returns smilesImage_<YYYY-MM-DD>.svg for the local date of now.
func ImageFileName(now time.Time) string {
	return imagePrefix + now.Format("2006-01-02") + ".svg"
}

// SaveImage writes data to dir/ImageFileName(now) and returns the path. An
// existing file of the same name is replaced.
func SaveImage(dir string, now time.Time, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, ImageFileName(now))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open image file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return path, nil
}
