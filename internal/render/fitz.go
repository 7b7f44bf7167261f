package render

import (
	"context"
	"fmt"
	"image"

	"github.com/jackzampolin/pdfzip/internal/document"
)

// FitzRenderer rasterizes pages in-process via MuPDF.
type FitzRenderer struct{}

// RenderPage rasterizes page (0-indexed) at the given DPI.
func (r *FitzRenderer) RenderPage(ctx context.Context, doc *document.Handle, page int, dpi float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := doc.Fitz().ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("unable to render page %d: %w", page+1, err)
	}
	return img, nil
}
