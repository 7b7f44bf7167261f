package pptconv

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// AutomationConverter drives PowerPoint through macOS osascript. It
// preserves full styling but only works where both osascript and the
// PowerPoint application exist; anywhere else it reports unavailable and
// the chain moves on.
type AutomationConverter struct {
	Timeout time.Duration
}

func (a *AutomationConverter) Name() string { return "os-automation" }

func (a *AutomationConverter) Hint() string {
	return "native automation needs macOS with Microsoft PowerPoint installed"
}

func (a *AutomationConverter) Available() bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (a *AutomationConverter) Convert(ctx context.Context, inPath, outPath string) error {
	tctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	script := fmt.Sprintf(`tell application "Microsoft PowerPoint"
	open (POSIX file %q)
	set pres to active presentation
	save pres in (POSIX file %q) as save as PDF
	close pres saving no
end tell`, inPath, outPath)

	cmd := exec.CommandContext(tctx, "osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}
	return nil
}
