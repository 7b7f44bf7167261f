// Package zipper implements the top-level compression and conversion
// operations. Each operation takes a Request, resolves defaults from
// config, allocates a scratch workspace under the home directory, and
// moves exactly one finished artifact to the requested output path.
package zipper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackzampolin/pdfzip/internal/config"
	"github.com/jackzampolin/pdfzip/internal/document"
	"github.com/jackzampolin/pdfzip/internal/home"
	"github.com/jackzampolin/pdfzip/internal/pptconv"
	"github.com/jackzampolin/pdfzip/internal/render"
	"github.com/jackzampolin/pdfzip/internal/search"
	"github.com/jackzampolin/pdfzip/internal/workspace"
)

func resolveLogger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

// newEngine builds a search engine from configuration.
func newEngine(cfg *config.Config, log *slog.Logger) (*search.Engine, error) {
	renderer, err := render.New(cfg.Renderer.Backend)
	if err != nil {
		return nil, err
	}
	return &search.Engine{
		Renderer:      renderer,
		Log:           log,
		Tolerance:     cfg.Search.Tolerance,
		MaxIterations: cfg.Search.MaxIterations,
		MinDPI:        cfg.Search.MinDPI,
		MaxDPI:        cfg.Search.MaxDPI,
		TrialTimeout:  cfg.Search.TrialTimeout,
	}, nil
}

// newChain builds the deck conversion chain from configuration.
func newChain(cfg *config.Config, log *slog.Logger) *pptconv.Chain {
	return pptconv.NewChain(pptconv.Options{
		ToolTimeout:       cfg.Convert.ToolTimeout,
		SofficePath:       cfg.Convert.SofficePath,
		UnoconvPath:       cfg.Convert.UnoconvPath,
		DisableAutomation: cfg.Convert.DisableAutomation,
		SnapshotDPI:       cfg.Defaults.DPI,
	}, log)
}

// newWorkspace allocates a trial workspace under the home scratch
// directory.
func newWorkspace(homeDir *home.Dir, label string) (*workspace.Workspace, error) {
	if err := homeDir.EnsureExists(); err != nil {
		return nil, err
	}
	return workspace.New(homeDir.ScratchPath(), label)
}

// deckToIntermediatePDF converts a deck input into a scratch PDF inside
// ws, returning the PDF path and the name of the strategy that produced it.
func deckToIntermediatePDF(ctx context.Context, chain *pptconv.Chain, inPath string, ws *workspace.Workspace) (string, string, error) {
	pdfPath := ws.File(".pdf")
	strategy, err := chain.Run(ctx, inPath, pdfPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert deck to PDF: %w", err)
	}
	return pdfPath, strategy, nil
}

// deriveOutputPath names the output next to the input: "<stem><suffix><ext>".
func deriveOutputPath(inPath, suffix, ext string) string {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inPath), stem+suffix+ext)
}

// validatePaths rejects unsupported formats and in-place overwrites.
func validatePaths(inPath, outPath string) (in, out document.Type, err error) {
	in = document.DetectType(inPath)
	if in == document.TypeUnknown {
		return "", "", fmt.Errorf("%w: %s (supported: %s)",
			document.ErrUnsupportedType, filepath.Ext(inPath), strings.Join(document.SupportedInputTypes(), ", "))
	}
	out = document.DetectType(outPath)
	if out == document.TypeUnknown {
		return "", "", fmt.Errorf("%w: %s (supported: %s)",
			document.ErrUnsupportedType, filepath.Ext(outPath), strings.Join(document.SupportedInputTypes(), ", "))
	}
	inAbs, _ := filepath.Abs(inPath)
	outAbs, _ := filepath.Abs(outPath)
	if inAbs == outAbs {
		return "", "", fmt.Errorf("input and output are the same file: %s", inPath)
	}
	return in, out, nil
}

// copyThrough copies the input into the workspace and keeps it at dest,
// so dest appears atomically like any other artifact.
func copyThrough(ws *workspace.Workspace, src, dest string) error {
	tmp := ws.File(filepath.Ext(src))

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create scratch copy: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy input: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to copy input: %w", err)
	}

	return ws.Keep(tmp, dest)
}

// inputSizeMB stats the input file.
func inputSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("input file not found: %s", path)
	}
	return float64(info.Size()) / (1024 * 1024), nil
}
