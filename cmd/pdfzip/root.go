package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfzip/internal/api"
	"github.com/jackzampolin/pdfzip/internal/config"
	"github.com/jackzampolin/pdfzip/internal/home"
	"github.com/jackzampolin/pdfzip/version"
)

var (
	cfgFile      string
	homeDirFlag  string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfzip",
	Short: "Compress PDFs and slide decks to a target file size",
	Long: `pdfzip shrinks PDF and PPTX files by re-rendering their pages at a
reduced resolution.

Instead of asking for a DPI, you ask for a file size: pdfzip bisects the
resolution range and keeps the best result within tolerance of the target.
Input and output formats are independent, so a PDF can come out as a deck
of image slides and a deck can come out as a PDF.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pdfzip/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDirFlag, "home", "", "pdfzip home directory (default: ~/.pdfzip)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// getHome returns the home directory manager.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDirFlag)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	return h, nil
}

// getConfig loads configuration from file, environment and defaults.
func getConfig() (*config.Config, error) {
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	return mgr.Get(), nil
}

// getLogger builds the CLI logger. Progress goes to stderr so structured
// command output on stdout stays parseable.
func getLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
