package pptconv

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// UnoconvConverter converts decks via the unoconv CLI.
type UnoconvConverter struct {
	// Path overrides PATH discovery of the unoconv binary.
	Path    string
	Timeout time.Duration
}

func (u *UnoconvConverter) Name() string { return "unoconv" }

func (u *UnoconvConverter) Hint() string {
	return "install unoconv: pip install unoconv (requires LibreOffice)"
}

func (u *UnoconvConverter) binary() string {
	if u.Path != "" {
		return u.Path
	}
	return "unoconv"
}

func (u *UnoconvConverter) Available() bool {
	if u.Path != "" {
		_, err := os.Stat(u.Path)
		return err == nil
	}
	_, err := exec.LookPath("unoconv")
	return err == nil
}

func (u *UnoconvConverter) Convert(ctx context.Context, inPath, outPath string) error {
	tctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	cmd := exec.CommandContext(tctx, u.binary(), "-f", "pdf", "-o", outPath, inPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("unoconv failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// moveFile renames src to dst, copying across filesystems when rename
// fails. dst appears only once fully written.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open produced file: %w", err)
	}
	defer in.Close()

	tmp := dst + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to copy produced file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move produced file into place: %w", err)
	}
	_ = os.Remove(src)
	return nil
}
