// Package pptconv converts slide decks to paginated PDF documents.
//
// Host environments vary in which conversion tools are installed, so the
// package runs an ordered list of strategies behind one Converter
// interface and accepts the first success. Every strategy failure is soft;
// the chain only reports a hard failure when the final in-process fallback
// also produces nothing.
package pptconv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrAllStrategiesFailed is returned when the whole chain is exhausted.
var ErrAllStrategiesFailed = errors.New("all conversion strategies failed")

// DefaultToolTimeout bounds each external converter invocation.
const DefaultToolTimeout = 60 * time.Second

// Converter is one PPTX to PDF conversion strategy.
type Converter interface {
	// Name identifies the strategy in logs and doctor output.
	Name() string
	// Available reports whether the strategy can run on this host.
	Available() bool
	// Convert produces a PDF at outPath from the deck at inPath.
	Convert(ctx context.Context, inPath, outPath string) error
	// Hint describes how to install the strategy's tool, empty for
	// in-process strategies.
	Hint() string
}

// Options configures chain construction.
type Options struct {
	// ToolTimeout bounds each external invocation. Zero selects the default.
	ToolTimeout time.Duration
	// SofficePath and UnoconvPath override binary discovery via PATH.
	SofficePath string
	UnoconvPath string
	// DisableAutomation skips the native OS automation strategy.
	DisableAutomation bool
	// SnapshotDPI sets the resolution of the in-process slide snapshot
	// strategy's output pages.
	SnapshotDPI int
}

// Chain is an ordered list of conversion strategies.
type Chain struct {
	converters []Converter
	log        *slog.Logger
}

// NewChain builds the standard strategy order: native OS automation,
// LibreOffice, unoconv, in-process slide snapshot, and finally text
// reconstruction. The last two need no external tools, so the chain as a
// whole is total.
func NewChain(opts Options, log *slog.Logger) *Chain {
	if log == nil {
		log = slog.Default()
	}
	timeout := opts.ToolTimeout
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}

	var convs []Converter
	if !opts.DisableAutomation {
		convs = append(convs, &AutomationConverter{Timeout: timeout})
	}
	convs = append(convs,
		&SofficeConverter{Path: opts.SofficePath, Timeout: timeout},
		&UnoconvConverter{Path: opts.UnoconvPath, Timeout: timeout},
		&SnapshotConverter{DPI: opts.SnapshotDPI},
		&TextFallbackConverter{},
	)

	return &Chain{converters: convs, log: log}
}

// NewChainWith builds a chain from an explicit converter list.
func NewChainWith(log *slog.Logger, convs ...Converter) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{converters: convs, log: log}
}

// Run converts the deck at inPath into a PDF at outPath, returning the
// name of the strategy that succeeded. Success means the strategy returned
// cleanly AND the destination now exists with nonzero size.
func (c *Chain) Run(ctx context.Context, inPath, outPath string) (string, error) {
	if _, err := os.Stat(inPath); err != nil {
		return "", fmt.Errorf("input file not found: %s", inPath)
	}

	for _, conv := range c.converters {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !conv.Available() {
			c.log.Debug("strategy unavailable, skipping", "strategy", conv.Name())
			continue
		}

		c.log.Info("trying conversion strategy", "strategy", conv.Name())
		if err := conv.Convert(ctx, inPath, outPath); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			c.log.Warn("strategy failed, trying next", "strategy", conv.Name(), "error", err)
			continue
		}

		info, err := os.Stat(outPath)
		if err != nil || info.Size() == 0 {
			c.log.Warn("strategy produced no output, trying next", "strategy", conv.Name())
			_ = os.Remove(outPath)
			continue
		}

		c.log.Info("conversion succeeded", "strategy", conv.Name())
		return conv.Name(), nil
	}

	return "", ErrAllStrategiesFailed
}

// ToolStatus reports one strategy's availability for doctor output.
type ToolStatus struct {
	Name      string `json:"name" yaml:"name"`
	Available bool   `json:"available" yaml:"available"`
	Hint      string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Probe checks every strategy's availability concurrently.
func (c *Chain) Probe(ctx context.Context) ([]ToolStatus, error) {
	statuses := make([]ToolStatus, len(c.converters))

	g, _ := errgroup.WithContext(ctx)
	for i, conv := range c.converters {
		g.Go(func() error {
			statuses[i] = ToolStatus{
				Name:      conv.Name(),
				Available: conv.Available(),
			}
			if !statuses[i].Available {
				statuses[i].Hint = conv.Hint()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}
