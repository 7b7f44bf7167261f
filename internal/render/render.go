// Package render rasterizes single PDF pages at a requested DPI.
package render

import (
	"context"
	"fmt"
	"image"

	"github.com/jackzampolin/pdfzip/internal/document"
)

// PageRenderer renders one page of an open document to a bitmap.
type PageRenderer interface {
	// RenderPage rasterizes page (0-indexed) at the given DPI.
	RenderPage(ctx context.Context, doc *document.Handle, page int, dpi float64) (image.Image, error)
}

// Backend names a rendering implementation.
type Backend string

const (
	// BackendFitz renders in-process via MuPDF (go-fitz, CGo).
	BackendFitz Backend = "fitz"

	// BackendPoppler shells out to pdftoppm (poppler-utils).
	BackendPoppler Backend = "poppler"
)

// New creates a page renderer for the named backend.
func New(backend string) (PageRenderer, error) {
	switch Backend(backend) {
	case BackendFitz, "":
		return &FitzRenderer{}, nil
	case BackendPoppler:
		return &PopplerRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown renderer backend: %q", backend)
	}
}
