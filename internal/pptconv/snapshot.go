package pptconv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gopresentation "github.com/VantageDataChat/GoPPT"

	"github.com/jackzampolin/pdfzip/internal/artifact"
)

// SnapshotConverter renders each slide to a bitmap in-process and
// assembles the bitmaps into a PDF. No external tools required; styling
// survives as pixels, but text is no longer selectable.
type SnapshotConverter struct {
	// DPI reported by the assembled PDF pages.
	DPI int
}

func (s *SnapshotConverter) Name() string { return "slide-snapshot" }

func (s *SnapshotConverter) Hint() string { return "" }

// Available is always true; render failures surface as soft Convert errors.
func (s *SnapshotConverter) Available() bool { return true }

func (s *SnapshotConverter) Convert(ctx context.Context, inPath, outPath string) error {
	reader, err := gopresentation.NewReader(gopresentation.ReaderPowerPoint2007)
	if err != nil {
		return fmt.Errorf("failed to create deck reader: %w", err)
	}
	pres, err := reader.Read(inPath)
	if err != nil {
		return fmt.Errorf("failed to read deck: %w", err)
	}

	n := pres.GetSlideCount()
	if n == 0 {
		return fmt.Errorf("deck has no slides")
	}

	tmpDir, err := os.MkdirTemp("", "pdfzip-snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	opts := gopresentation.DefaultRenderOptions()
	opts.Width = 1920

	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		slidePath := filepath.Join(tmpDir, fmt.Sprintf("slide_%04d.png", i+1))
		if err := pres.SaveSlideAsImage(i, slidePath, opts); err != nil {
			return fmt.Errorf("failed to render slide %d: %w", i+1, err)
		}
		paths = append(paths, slidePath)
	}

	dpi := s.DPI
	if dpi <= 0 {
		dpi = 150
	}
	return artifact.BuildPDF(paths, dpi, outPath)
}
