// Package artifact assembles rendered page bitmaps into finished documents.
package artifact

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// SizeMB returns the size of a file in megabytes.
func SizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat artifact: %w", err)
	}
	return float64(info.Size()) / (1024 * 1024), nil
}

// WritePageImages encodes bitmaps as PNG files in dir, named so their
// lexical order matches page order. Returns the ordered paths.
func WritePageImages(dir string, imgs []image.Image) ([]string, error) {
	paths := make([]string, 0, len(imgs))
	for i, img := range imgs {
		path := filepath.Join(dir, fmt.Sprintf("page_%04d.png", i+1))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create page image: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("failed to write page %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// BuildPDF assembles page images into a PDF at outPath. Each image becomes
// one full-bleed page; dpi sets the page size relative to the image pixels
// so the output reports the resolution it was rendered at.
func BuildPDF(imgPaths []string, dpi int, outPath string) error {
	if len(imgPaths) == 0 {
		return fmt.Errorf("no page images to assemble")
	}

	imp, err := api.Import(fmt.Sprintf("pos:full, dpi:%d", dpi), types.POINTS)
	if err != nil {
		return fmt.Errorf("invalid import configuration: %w", err)
	}

	if err := api.ImportImagesFile(imgPaths, outPath, imp, nil); err != nil {
		return fmt.Errorf("failed to assemble PDF: %w", err)
	}
	return nil
}
