package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jackzampolin/pdfzip/internal/document"
)

// PopplerRenderer rasterizes pages by shelling out to pdftoppm (poppler-utils).
// Slower than the fitz backend but useful where CGo/MuPDF is unavailable.
type PopplerRenderer struct{}

// Available reports whether pdftoppm is on PATH.
func (r *PopplerRenderer) Available() bool {
	_, err := exec.LookPath("pdftoppm")
	return err == nil
}

// RenderPage rasterizes page (0-indexed) at the given DPI.
func (r *PopplerRenderer) RenderPage(ctx context.Context, doc *document.Handle, page int, dpi float64) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "pdfzip-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")

	// pdftoppm pages are 1-indexed.
	// -singlefile: don't add a page number suffix to the output.
	pageStr := fmt.Sprintf("%d", page+1)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", fmt.Sprintf("%d", int(dpi)),
		"-singlefile",
		doc.Path(),
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	srcPath := outputPrefix + ".png"
	f, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page: %w", err)
	}
	return img, nil
}
