package zipper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/pdfzip/internal/config"
	"github.com/jackzampolin/pdfzip/internal/document"
	"github.com/jackzampolin/pdfzip/internal/home"
	"github.com/jackzampolin/pdfzip/internal/search"
)

// CompressRequest contains the parameters for a fixed-DPI compression.
type CompressRequest struct {
	InputPath  string       // PDF or PPTX input
	OutputPath string       // optional, defaults to "<stem>_compressed<input ext>"
	DPI        int          // optional, defaults from config
	Logger     *slog.Logger // optional logger for progress updates
}

// CompressResult describes the artifact a fixed-DPI compression produced.
type CompressResult struct {
	OutputPath   string  `json:"output_path" yaml:"output_path"`
	InputSizeMB  float64 `json:"input_size_mb" yaml:"input_size_mb"`
	OutputSizeMB float64 `json:"output_size_mb" yaml:"output_size_mb"`
	DPI          int     `json:"dpi" yaml:"dpi"`
	// Strategy names the deck conversion strategy, set only for deck input.
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// Compress re-renders the input at a caller-chosen DPI, without any size
// search. Deck inputs pass through the conversion chain first; the output
// format follows the output path's extension.
func Compress(ctx context.Context, cfg *config.Config, homeDir *home.Dir, req CompressRequest) (*CompressResult, error) {
	log := resolveLogger(req.Logger)

	dpi := req.DPI
	if dpi <= 0 {
		dpi = cfg.Defaults.DPI
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %d", dpi)
	}

	outPath := req.OutputPath
	if outPath == "" {
		outPath = deriveOutputPath(req.InputPath, "_compressed", string(document.DetectType(req.InputPath)))
	}
	inType, outType, err := validatePaths(req.InputPath, outPath)
	if err != nil {
		return nil, err
	}

	inSizeMB, err := inputSizeMB(req.InputPath)
	if err != nil {
		return nil, err
	}

	log.Info("starting compression", "input", req.InputPath, "output", outPath, "dpi", dpi)

	ws, err := newWorkspace(homeDir, "compress")
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	srcPDF := req.InputPath
	strategy := ""
	if inType == document.TypePPTX {
		srcPDF, strategy, err = deckToIntermediatePDF(ctx, newChain(cfg, log), req.InputPath, ws)
		if err != nil {
			return nil, err
		}
	}

	doc, err := document.Open(srcPDF)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	engine, err := newEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	var res *search.Result
	if outType == document.TypePPTX {
		res, err = engine.RenderDeck(ctx, doc, float64(dpi), ws)
	} else {
		res, err = engine.RenderPDF(ctx, doc, float64(dpi), ws)
	}
	if err != nil {
		return nil, err
	}

	if err := ws.Keep(res.Path, outPath); err != nil {
		return nil, err
	}

	log.Info("compression complete", "output", outPath, "size_mb", fmt.Sprintf("%.2f", res.SizeMB))

	return &CompressResult{
		OutputPath:   outPath,
		InputSizeMB:  inSizeMB,
		OutputSizeMB: res.SizeMB,
		DPI:          dpi,
		Strategy:     strategy,
	}, nil
}
