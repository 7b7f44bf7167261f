package pptconv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// SofficeConverter converts decks via headless LibreOffice.
type SofficeConverter struct {
	// Path overrides PATH discovery of the soffice binary.
	Path    string
	Timeout time.Duration
}

func (s *SofficeConverter) Name() string { return "libreoffice" }

func (s *SofficeConverter) Hint() string {
	return "install LibreOffice: https://www.libreoffice.org/ (macOS: brew install --cask libreoffice, Ubuntu: apt install libreoffice)"
}

func (s *SofficeConverter) binary() string {
	if s.Path != "" {
		return s.Path
	}
	return "soffice"
}

func (s *SofficeConverter) Available() bool {
	if s.Path != "" {
		_, err := os.Stat(s.Path)
		return err == nil
	}
	_, err := exec.LookPath("soffice")
	return err == nil
}

// Convert runs soffice --convert-to pdf into a scratch directory and moves
// the result to outPath. The invocation is retried once: a concurrent
// LibreOffice instance holding the user profile lock makes first attempts
// fail with a nonzero exit.
func (s *SofficeConverter) Convert(ctx context.Context, inPath, outPath string) error {
	tmpDir, err := os.MkdirTemp("", "pdfzip-soffice-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	err = retry.Do(
		func() error {
			tctx, cancel := context.WithTimeout(ctx, s.Timeout)
			defer cancel()

			cmd := exec.CommandContext(tctx, s.binary(),
				"--headless",
				"--convert-to", "pdf",
				"--outdir", tmpDir,
				inPath,
			)
			output, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("soffice failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}

	// soffice names the output after the input stem.
	stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	produced := filepath.Join(tmpDir, stem+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("soffice did not create expected output: %w", err)
	}
	return moveFile(produced, outPath)
}
