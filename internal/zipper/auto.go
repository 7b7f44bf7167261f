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

// AutoCompressRequest contains the parameters for a target-size compression.
type AutoCompressRequest struct {
	InputPath  string       // PDF or PPTX input
	OutputPath string       // optional, defaults to "<stem>_compressed<input ext>"
	TargetMB   float64      // optional, defaults from config
	Logger     *slog.Logger // optional logger for progress updates
}

// AutoCompressResult describes the artifact an auto-compression produced.
type AutoCompressResult struct {
	OutputPath   string  `json:"output_path" yaml:"output_path"`
	InputSizeMB  float64 `json:"input_size_mb" yaml:"input_size_mb"`
	OutputSizeMB float64 `json:"output_size_mb" yaml:"output_size_mb"`
	TargetMB     float64 `json:"target_mb" yaml:"target_mb"`
	DPI          int     `json:"dpi,omitempty" yaml:"dpi,omitempty"`
	Iterations   int     `json:"iterations" yaml:"iterations"`
	// Strategy names the deck conversion strategy, set only for deck input.
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	// PassThrough is true when the input already met the target and was
	// copied verbatim.
	PassThrough bool `json:"pass_through" yaml:"pass_through"`
}

// AutoCompress searches for the DPI whose output lands within tolerance of
// the target size. The input and output formats are independent: a PDF can
// come out as a deck and vice versa. An input already at or under target
// with an unchanged format is copied through untouched.
func AutoCompress(ctx context.Context, cfg *config.Config, homeDir *home.Dir, req AutoCompressRequest) (*AutoCompressResult, error) {
	log := resolveLogger(req.Logger)

	target := req.TargetMB
	if target <= 0 {
		target = cfg.Defaults.TargetSizeMB
	}
	if target <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %.2f", target)
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

	log.Info("starting auto-compression",
		"input", req.InputPath, "output", outPath,
		"size_mb", fmt.Sprintf("%.2f", inSizeMB), "target_mb", target)

	ws, err := newWorkspace(homeDir, "auto")
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	// An input already small enough needs no lossy rebuild, as long as the
	// requested format matches.
	if inType == outType && inSizeMB <= target {
		log.Info("input already meets target, copying through")
		if err := copyThrough(ws, req.InputPath, outPath); err != nil {
			return nil, err
		}
		return &AutoCompressResult{
			OutputPath:   outPath,
			InputSizeMB:  inSizeMB,
			OutputSizeMB: inSizeMB,
			TargetMB:     target,
			PassThrough:  true,
		}, nil
	}

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
		res, err = engine.RunDeck(ctx, doc, target, ws)
	} else {
		res, err = engine.Run(ctx, doc, target, ws)
	}
	if err != nil {
		return nil, err
	}

	if err := ws.Keep(res.Path, outPath); err != nil {
		return nil, err
	}

	log.Info("auto-compression complete",
		"output", outPath, "size_mb", fmt.Sprintf("%.2f", res.SizeMB), "dpi", int(res.DPI))

	return &AutoCompressResult{
		OutputPath:   outPath,
		InputSizeMB:  inSizeMB,
		OutputSizeMB: res.SizeMB,
		TargetMB:     target,
		DPI:          int(res.DPI),
		Iterations:   res.Iterations,
		Strategy:     strategy,
	}, nil
}
