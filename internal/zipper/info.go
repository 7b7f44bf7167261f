package zipper

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackzampolin/pdfzip/internal/document"
	"github.com/jackzampolin/pdfzip/internal/pptconv"
)

// Info summarizes a document for display.
type Info struct {
	Path         string  `json:"path" yaml:"path"`
	Type         string  `json:"type" yaml:"type"`
	SizeMB       float64 `json:"size_mb" yaml:"size_mb"`
	Pages        int     `json:"pages" yaml:"pages"`
	PageWidthPt  float64 `json:"page_width_pt,omitempty" yaml:"page_width_pt,omitempty"`
	PageHeightPt float64 `json:"page_height_pt,omitempty" yaml:"page_height_pt,omitempty"`
}

// Inspect reports size, page count and page geometry for a PDF, or size
// and slide count for a deck.
func Inspect(path string) (*Info, error) {
	switch document.DetectType(path) {
	case document.TypePDF:
		doc, err := document.Open(path)
		if err != nil {
			return nil, err
		}
		defer doc.Close()

		w, h := doc.PageDim(0)
		return &Info{
			Path:         path,
			Type:         "pdf",
			SizeMB:       doc.SizeMB(),
			Pages:        doc.PageCount(),
			PageWidthPt:  w,
			PageHeightPt: h,
		}, nil

	case document.TypePPTX:
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		slides, err := pptconv.ExtractSlideTexts(path)
		if err != nil {
			return nil, fmt.Errorf("could not read deck %s: %w", path, err)
		}
		return &Info{
			Path:   path,
			Type:   "pptx",
			SizeMB: float64(info.Size()) / (1024 * 1024),
			Pages:  len(slides),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", document.ErrUnsupportedType, filepath.Ext(path))
	}
}
