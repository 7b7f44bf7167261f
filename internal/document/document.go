// Package document provides read access to source documents.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrUnsupportedType is returned for inputs that are neither PDF nor PPTX.
var ErrUnsupportedType = errors.New("unsupported file type")

// Type identifies a supported document format.
type Type string

const (
	TypePDF     Type = ".pdf"
	TypePPTX    Type = ".pptx"
	TypeUnknown Type = ""
)

// DetectType identifies a document by its file extension.
func DetectType(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return TypePDF
	case ".pptx":
		return TypePPTX
	default:
		return TypeUnknown
	}
}

// SupportedInputTypes lists the extensions pdfzip accepts.
func SupportedInputTypes() []string {
	return []string{string(TypePDF), string(TypePPTX)}
}

// Handle is an open PDF with a fixed page count and per-page dimensions
// in points (1/72 inch). The opener owns it and must Close it exactly once.
type Handle struct {
	path      string
	doc       *fitz.Document
	pageCount int
	dims      []types.Dim
	sizeBytes int64
	closed    bool
}

// Open opens a PDF for rendering and inspection.
func Open(path string) (*Handle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	if DetectType(path) != TypePDF {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("could not open PDF %s: %w", path, err)
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("could not read page dimensions for %s: %w", path, err)
	}

	return &Handle{
		path:      path,
		doc:       doc,
		pageCount: doc.NumPage(),
		dims:      dims,
		sizeBytes: info.Size(),
	}, nil
}

// Close releases the underlying document. Safe to call once; subsequent
// calls are no-ops.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.doc.Close()
}

// Path returns the source file path.
func (h *Handle) Path() string { return h.path }

// PageCount returns the number of pages.
func (h *Handle) PageCount() int { return h.pageCount }

// PageDim returns the bounding box of page i (0-indexed) in points.
// Falls back to the first page's box when pdfcpu reported fewer dims
// than fitz reported pages.
func (h *Handle) PageDim(i int) (width, height float64) {
	if i < 0 || i >= len(h.dims) {
		if len(h.dims) == 0 {
			return 612, 792 // US Letter
		}
		i = 0
	}
	return h.dims[i].Width, h.dims[i].Height
}

// SizeMB returns the source file size in megabytes.
func (h *Handle) SizeMB() float64 {
	return float64(h.sizeBytes) / (1024 * 1024)
}

// Fitz exposes the underlying MuPDF document for renderers.
func (h *Handle) Fitz() *fitz.Document { return h.doc }
