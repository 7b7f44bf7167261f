package zipper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackzampolin/pdfzip/internal/artifact"
	"github.com/jackzampolin/pdfzip/internal/config"
	"github.com/jackzampolin/pdfzip/internal/document"
	"github.com/jackzampolin/pdfzip/internal/home"
)

// ConvertToDeckRequest contains the parameters for a PDF to deck conversion.
type ConvertToDeckRequest struct {
	InputPath  string       // PDF input
	OutputPath string       // optional, defaults to "<stem>.pptx"
	DPI        int          // optional, defaults from config
	Logger     *slog.Logger // optional logger for progress updates
}

// ConvertToDeckResult describes the deck a conversion produced.
type ConvertToDeckResult struct {
	OutputPath   string  `json:"output_path" yaml:"output_path"`
	OutputSizeMB float64 `json:"output_size_mb" yaml:"output_size_mb"`
	Slides       int     `json:"slides" yaml:"slides"`
	DPI          int     `json:"dpi" yaml:"dpi"`
}

// ConvertToDeck renders each page of a PDF and emits a deck with one
// full-bleed image slide per page, sized to the source page geometry.
func ConvertToDeck(ctx context.Context, cfg *config.Config, homeDir *home.Dir, req ConvertToDeckRequest) (*ConvertToDeckResult, error) {
	log := resolveLogger(req.Logger)

	dpi := req.DPI
	if dpi <= 0 {
		dpi = cfg.Defaults.DPI
	}

	outPath := req.OutputPath
	if outPath == "" {
		outPath = deriveOutputPath(req.InputPath, "", string(document.TypePPTX))
	}
	inType, outType, err := validatePaths(req.InputPath, outPath)
	if err != nil {
		return nil, err
	}
	if inType != document.TypePDF {
		return nil, fmt.Errorf("deck conversion needs a PDF input, got %s", inType)
	}
	if outType != document.TypePPTX {
		return nil, fmt.Errorf("deck conversion output must end in %s, got %s", document.TypePPTX, outType)
	}

	doc, err := document.Open(req.InputPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	log.Info("converting to deck", "input", req.InputPath, "output", outPath,
		"pages", doc.PageCount(), "dpi", dpi)

	ws, err := newWorkspace(homeDir, "convert")
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	engine, err := newEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	res, err := engine.RenderDeck(ctx, doc, float64(dpi), ws)
	if err != nil {
		return nil, err
	}

	if err := ws.Keep(res.Path, outPath); err != nil {
		return nil, err
	}

	log.Info("conversion complete", "output", outPath, "size_mb", fmt.Sprintf("%.2f", res.SizeMB))

	return &ConvertToDeckResult{
		OutputPath:   outPath,
		OutputSizeMB: res.SizeMB,
		Slides:       doc.PageCount(),
		DPI:          dpi,
	}, nil
}

// DeckToPDFRequest contains the parameters for a deck to PDF conversion.
type DeckToPDFRequest struct {
	InputPath  string       // PPTX input
	OutputPath string       // optional, defaults to "<stem>.pdf"
	Logger     *slog.Logger // optional logger for progress updates
}

// DeckToPDFResult describes the PDF a deck conversion produced.
type DeckToPDFResult struct {
	OutputPath   string  `json:"output_path" yaml:"output_path"`
	OutputSizeMB float64 `json:"output_size_mb" yaml:"output_size_mb"`
	Strategy     string  `json:"strategy" yaml:"strategy"`
}

// DeckToPDF converts a deck into a PDF using the first working strategy in
// the conversion chain, preserving fidelity wherever the host allows.
func DeckToPDF(ctx context.Context, cfg *config.Config, homeDir *home.Dir, req DeckToPDFRequest) (*DeckToPDFResult, error) {
	log := resolveLogger(req.Logger)

	outPath := req.OutputPath
	if outPath == "" {
		outPath = deriveOutputPath(req.InputPath, "", string(document.TypePDF))
	}
	inType, outType, err := validatePaths(req.InputPath, outPath)
	if err != nil {
		return nil, err
	}
	if inType != document.TypePPTX {
		return nil, fmt.Errorf("deck to PDF conversion needs a %s input, got %s", document.TypePPTX, inType)
	}
	if outType != document.TypePDF {
		return nil, fmt.Errorf("deck to PDF output must end in %s, got %s", document.TypePDF, outType)
	}

	log.Info("converting deck to PDF", "input", req.InputPath, "output", outPath)

	ws, err := newWorkspace(homeDir, "deck2pdf")
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	pdfPath, strategy, err := deckToIntermediatePDF(ctx, newChain(cfg, log), req.InputPath, ws)
	if err != nil {
		return nil, err
	}

	sizeMB, err := artifact.SizeMB(pdfPath)
	if err != nil {
		return nil, err
	}
	if err := ws.Keep(pdfPath, outPath); err != nil {
		return nil, err
	}

	if strings.Contains(strategy, "text") {
		log.Warn("output was reconstructed from text only, styling was lost", "strategy", strategy)
	}
	log.Info("conversion complete", "output", outPath, "strategy", strategy,
		"size_mb", fmt.Sprintf("%.2f", sizeMB))

	return &DeckToPDFResult{
		OutputPath:   outPath,
		OutputSizeMB: sizeMB,
		Strategy:     strategy,
	}, nil
}
