package pptconv

import (
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// FidelityNotice is stamped on every page produced by the text fallback
// so nobody mistakes the output for a faithful conversion.
const FidelityNotice = "Reduced-fidelity conversion: text content only"

// TextFallbackConverter is the strictly degraded last resort: it writes
// one simple page per slide containing only that slide's text shapes.
// It needs no external tools, which makes the chain total.
type TextFallbackConverter struct{}

func (t *TextFallbackConverter) Name() string { return "text-reconstruction" }

func (t *TextFallbackConverter) Hint() string { return "" }

func (t *TextFallbackConverter) Available() bool { return true }

func (t *TextFallbackConverter) Convert(ctx context.Context, inPath, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slides, err := ExtractSlideTexts(inPath)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(54, 54, 54)

	for _, slide := range slides {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()

		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 12, fmt.Sprintf("%s (slide %d)", FidelityNotice, slide.Number), "", 1, "R", false, 0, "")
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "", 14)
		pdf.SetTextColor(0, 0, 0)
		if len(slide.Lines) == 0 {
			pdf.SetFont("Helvetica", "I", 12)
			pdf.SetTextColor(96, 96, 96)
			pdf.MultiCell(0, 18, "(no text content on this slide)", "", "L", false)
			continue
		}
		for _, line := range slide.Lines {
			pdf.MultiCell(0, 18, line, "", "L", false)
			pdf.Ln(4)
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write reconstructed PDF: %w", err)
	}
	return nil
}
