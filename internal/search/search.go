// Package search finds a rendering DPI whose output artifact lands close
// to a caller-specified size.
//
// The engine bisects DPI over a bounded range, assuming artifact size is
// monotonically non-decreasing in DPI. That assumption is a heuristic, not
// a guarantee (pathological inputs such as mostly-blank pages can violate
// it), so the engine keeps an explicit best-so-far rather than deriving the
// answer from the final bounds.
package search

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/jackzampolin/pdfzip/internal/artifact"
	"github.com/jackzampolin/pdfzip/internal/budget"
	"github.com/jackzampolin/pdfzip/internal/document"
	"github.com/jackzampolin/pdfzip/internal/render"
	"github.com/jackzampolin/pdfzip/internal/workspace"
)

// ErrNoCandidate is returned when no trial produced an artifact.
var ErrNoCandidate = errors.New("no candidate artifact could be produced")

const (
	// DefaultMinDPI and DefaultMaxDPI bound the search domain.
	DefaultMinDPI = 30
	DefaultMaxDPI = 300

	// DefaultMaxIterations caps the number of bisection trials, bounding
	// the number of expensive render passes regardless of document size.
	DefaultMaxIterations = 7

	// DefaultTolerance is the acceptable relative deviation from target.
	DefaultTolerance = 0.05
)

// Engine runs target-size DPI searches.
type Engine struct {
	Renderer render.PageRenderer
	Log      *slog.Logger

	// Optional overrides; zero values select the defaults above.
	Tolerance     float64
	MaxIterations int
	MinDPI        float64
	MaxDPI        float64

	// TrialTimeout bounds one render+build trial. Zero disables it.
	TrialTimeout time.Duration
}

// Result describes the winning trial of a search.
type Result struct {
	// DPI that produced the artifact.
	DPI float64
	// Path of the artifact inside the trial workspace. Ownership passes to
	// the caller, typically via workspace.Keep.
	Path string
	// SizeMB of the artifact.
	SizeMB float64
	// Iterations actually run.
	Iterations int
}

// trialFunc materializes one candidate artifact at the given DPI and
// reports its path and size. The path must live inside the workspace so
// losing trials can be deleted.
type trialFunc func(ctx context.Context, dpi float64) (path string, sizeMB float64, err error)

// state tracks bisection bounds and the best trial so far. The best
// artifact's payload is retained at update time so the engine almost never
// needs a wasted re-render at the end.
type state struct {
	low, high float64
	bestDPI   float64
	bestPath  string
	bestSize  float64
}

// setBest records a new best trial, releasing the previous best payload so
// at most one retained artifact exists at any time.
func (s *state) setBest(ws *workspace.Workspace, dpi float64, path string, sizeMB float64) {
	if s.bestPath != "" && s.bestPath != path {
		ws.Remove(s.bestPath)
	}
	s.bestDPI = dpi
	s.bestPath = path
	s.bestSize = sizeMB
}

// Run searches for a DPI producing a PDF artifact within tolerance of
// targetMB. The caller owns doc and closes it; the returned artifact lives
// in ws until kept.
func (e *Engine) Run(ctx context.Context, doc *document.Handle, targetMB float64, ws *workspace.Workspace) (*Result, error) {
	return e.search(ctx, targetMB, ws, func(ctx context.Context, dpi float64) (string, float64, error) {
		return e.producePDF(ctx, doc, dpi, ws)
	})
}

// RunDeck is the nested-target variant: DPI still tunes the rendered PDF,
// but the measured quantity is the size of the slide deck derived from it.
// Each trial materializes both artifacts and discards the intermediate PDF
// immediately, keeping outstanding scratch at O(1).
func (e *Engine) RunDeck(ctx context.Context, doc *document.Handle, targetMB float64, ws *workspace.Workspace) (*Result, error) {
	return e.search(ctx, targetMB, ws, e.deckTrial(doc, ws))
}

// RenderPDF materializes a single PDF artifact at a fixed DPI, bypassing
// the search loop. Iterations is zero in the result.
func (e *Engine) RenderPDF(ctx context.Context, doc *document.Handle, dpi float64, ws *workspace.Workspace) (*Result, error) {
	path, sizeMB, err := e.runTrial(ctx, dpi, func(ctx context.Context, dpi float64) (string, float64, error) {
		return e.producePDF(ctx, doc, dpi, ws)
	})
	if err != nil {
		return nil, err
	}
	return &Result{DPI: dpi, Path: path, SizeMB: sizeMB}, nil
}

// RenderDeck materializes a slide deck at a fixed DPI, bypassing the
// search loop.
func (e *Engine) RenderDeck(ctx context.Context, doc *document.Handle, dpi float64, ws *workspace.Workspace) (*Result, error) {
	path, sizeMB, err := e.runTrial(ctx, dpi, e.deckTrial(doc, ws))
	if err != nil {
		return nil, err
	}
	return &Result{DPI: dpi, Path: path, SizeMB: sizeMB}, nil
}

// deckTrial builds the render-PDF-then-deck trial for one document.
func (e *Engine) deckTrial(doc *document.Handle, ws *workspace.Workspace) trialFunc {
	quality := budget.Quality(doc.PageCount())
	pageW, pageH := doc.PageDim(0)

	return func(ctx context.Context, dpi float64) (string, float64, error) {
		imgs, err := e.renderPages(ctx, doc, dpi)
		if err != nil {
			return "", 0, err
		}

		pdfPath, _, err := e.assemblePDF(imgs, dpi, ws)
		if err != nil {
			return "", 0, err
		}
		// The intermediate document only exists to prove the trial is
		// realizable as a PDF; the deck is what gets measured.
		defer ws.Remove(pdfPath)

		deckPath := ws.File(".pptx")
		if err := artifact.BuildDeck(imgs, pageW, pageH, quality, deckPath); err != nil {
			ws.Remove(deckPath)
			return "", 0, err
		}
		sizeMB, err := artifact.SizeMB(deckPath)
		if err != nil {
			ws.Remove(deckPath)
			return "", 0, err
		}
		return deckPath, sizeMB, nil
	}
}

func (e *Engine) search(ctx context.Context, targetMB float64, ws *workspace.Workspace, produce trialFunc) (*Result, error) {
	log := e.logger()
	st := state{low: e.minDPI(), high: e.maxDPI(), bestDPI: e.minDPI()}
	maxIter := e.maxIterations()

	log.Info("starting DPI search", "target_mb", targetMB, "tolerance", e.tolerance(), "max_iterations", maxIter)

	iterations := 0
	for i := 0; i < maxIter; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		guess := (st.low + st.high) / 2
		if guess < st.low+1 {
			log.Debug("search converged to integer resolution", "dpi", int(st.low))
			break
		}
		iterations++

		log.Info("trial", "attempt", iterations, "max", maxIter, "dpi", int(guess))

		path, sizeMB, err := e.runTrial(ctx, guess, produce)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Assume failure correlates with excessive resource use at
			// high DPI, never with low DPI.
			log.Warn("trial failed, searching lower", "dpi", int(guess), "error", err)
			st.high = guess
			continue
		}

		log.Info("trial produced artifact", "dpi", int(guess), "size_mb", fmt.Sprintf("%.2f", sizeMB))

		if math.Abs(sizeMB-targetMB)/targetMB <= e.tolerance() {
			st.setBest(ws, guess, path, sizeMB)
			log.Info("result within tolerance, search finished", "dpi", int(guess))
			break
		}

		if sizeMB > targetMB {
			ws.Remove(path)
			st.high = guess
		} else {
			// Prefer the largest DPI not exceeding target: quality over
			// undershoot when no exact match exists.
			st.low = guess
			st.setBest(ws, guess, path, sizeMB)
		}
	}

	if st.bestPath == "" {
		// Every trial overshot or failed; produce a final artifact at the
		// best (lowest viable) DPI so the search still returns something.
		log.Info("no retained trial, regenerating at best DPI", "dpi", int(st.bestDPI))
		path, sizeMB, err := e.runTrial(ctx, st.bestDPI, produce)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: final render at DPI %d failed: %v", ErrNoCandidate, int(st.bestDPI), err)
		}
		st.bestPath = path
		st.bestSize = sizeMB
	}

	log.Info("search complete", "dpi", int(st.bestDPI), "size_mb", fmt.Sprintf("%.2f", st.bestSize), "iterations", iterations)

	return &Result{
		DPI:        st.bestDPI,
		Path:       st.bestPath,
		SizeMB:     st.bestSize,
		Iterations: iterations,
	}, nil
}

// runTrial applies the per-trial deadline around one produce call.
func (e *Engine) runTrial(ctx context.Context, dpi float64, produce trialFunc) (string, float64, error) {
	if e.TrialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.TrialTimeout)
		defer cancel()
	}
	return produce(ctx, dpi)
}

// renderPages rasterizes every page at the given DPI. A failing page is
// skipped with a warning; partial documents are acceptable outputs. An
// error is returned only when context is done or zero pages rendered.
func (e *Engine) renderPages(ctx context.Context, doc *document.Handle, dpi float64) ([]image.Image, error) {
	log := e.logger()
	total := doc.PageCount()
	log.Debug("rendering pages", "pages", total, "dpi", int(dpi))

	imgs := make([]image.Image, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := e.Renderer.RenderPage(ctx, doc, i, dpi)
		if err != nil {
			log.Warn("error processing page, skipped", "page", i+1, "error", err)
			continue
		}
		imgs = append(imgs, img)
		if (i+1)%10 == 0 || i+1 == total {
			log.Debug("converted pages", "done", i+1, "total", total)
		}
	}

	if len(imgs) == 0 {
		return nil, fmt.Errorf("no images were generated from the document")
	}
	return imgs, nil
}

// assemblePDF writes bitmaps into a scratch PDF and measures it. The
// intermediate page images are deleted before returning.
func (e *Engine) assemblePDF(imgs []image.Image, dpi float64, ws *workspace.Workspace) (string, float64, error) {
	dir, err := ws.Dir()
	if err != nil {
		return "", 0, err
	}
	defer ws.Remove(dir)

	paths, err := artifact.WritePageImages(dir, imgs)
	if err != nil {
		return "", 0, err
	}

	pdfPath := ws.File(".pdf")
	if err := artifact.BuildPDF(paths, int(dpi), pdfPath); err != nil {
		ws.Remove(pdfPath)
		return "", 0, err
	}

	sizeMB, err := artifact.SizeMB(pdfPath)
	if err != nil {
		ws.Remove(pdfPath)
		return "", 0, err
	}
	return pdfPath, sizeMB, nil
}

func (e *Engine) producePDF(ctx context.Context, doc *document.Handle, dpi float64, ws *workspace.Workspace) (string, float64, error) {
	imgs, err := e.renderPages(ctx, doc, dpi)
	if err != nil {
		return "", 0, err
	}
	return e.assemblePDF(imgs, dpi, ws)
}

func (e *Engine) logger() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}

func (e *Engine) tolerance() float64 {
	if e.Tolerance > 0 {
		return e.Tolerance
	}
	return DefaultTolerance
}

func (e *Engine) maxIterations() int {
	if e.MaxIterations > 0 {
		return e.MaxIterations
	}
	return DefaultMaxIterations
}

func (e *Engine) minDPI() float64 {
	if e.MinDPI > 0 {
		return e.MinDPI
	}
	return DefaultMinDPI
}

func (e *Engine) maxDPI() float64 {
	if e.MaxDPI > 0 {
		return e.MaxDPI
	}
	return DefaultMaxDPI
}
