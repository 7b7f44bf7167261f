package pptconv

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

type stubConverter struct {
	name      string
	available bool
	convert   func(ctx context.Context, in, out string) error
	calls     int
}

func (s *stubConverter) Name() string    { return s.name }
func (s *stubConverter) Hint() string    { return "install " + s.name }
func (s *stubConverter) Available() bool { return s.available }
func (s *stubConverter) Convert(ctx context.Context, in, out string) error {
	s.calls++
	return s.convert(ctx, in, out)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeOutput(out string) error {
	return os.WriteFile(out, []byte("%PDF-1.4 fake"), 0o644)
}

func testInput(t *testing.T) string {
	t.Helper()
	in := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(in, []byte("zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	return in
}

func TestChain_FirstSuccessWins(t *testing.T) {
	in := testInput(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	first := &stubConverter{name: "first", available: true, convert: func(ctx context.Context, in, out string) error {
		return writeOutput(out)
	}}
	second := &stubConverter{name: "second", available: true, convert: func(ctx context.Context, in, out string) error {
		t.Fatal("second strategy should not run")
		return nil
	}}

	chain := NewChainWith(discardLogger(), first, second)
	strategy, err := chain.Run(context.Background(), in, out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strategy != "first" {
		t.Errorf("expected strategy first, got %s", strategy)
	}
}

func TestChain_SoftFailureFallsThrough(t *testing.T) {
	in := testInput(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	failing := &stubConverter{name: "failing", available: true, convert: func(ctx context.Context, in, out string) error {
		return fmt.Errorf("tool exploded")
	}}
	fallback := &stubConverter{name: "fallback", available: true, convert: func(ctx context.Context, in, out string) error {
		return writeOutput(out)
	}}

	chain := NewChainWith(discardLogger(), failing, fallback)
	strategy, err := chain.Run(context.Background(), in, out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strategy != "fallback" {
		t.Errorf("expected fallback to win, got %s", strategy)
	}
	if failing.calls != 1 {
		t.Errorf("failing strategy should have been tried once, got %d", failing.calls)
	}
}

func TestChain_SkipsUnavailable(t *testing.T) {
	in := testInput(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	missing := &stubConverter{name: "missing", available: false, convert: func(ctx context.Context, in, out string) error {
		t.Fatal("unavailable strategy must not run")
		return nil
	}}
	present := &stubConverter{name: "present", available: true, convert: func(ctx context.Context, in, out string) error {
		return writeOutput(out)
	}}

	chain := NewChainWith(discardLogger(), missing, present)
	strategy, err := chain.Run(context.Background(), in, out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strategy != "present" {
		t.Errorf("expected present, got %s", strategy)
	}
}

func TestChain_EmptyOutputIsSoftFailure(t *testing.T) {
	in := testInput(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	// Exits cleanly but writes nothing: must not count as success.
	liar := &stubConverter{name: "liar", available: true, convert: func(ctx context.Context, in, out string) error {
		return nil
	}}
	honest := &stubConverter{name: "honest", available: true, convert: func(ctx context.Context, in, out string) error {
		return writeOutput(out)
	}}

	chain := NewChainWith(discardLogger(), liar, honest)
	strategy, err := chain.Run(context.Background(), in, out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strategy != "honest" {
		t.Errorf("expected honest, got %s", strategy)
	}
}

func TestChain_Exhausted(t *testing.T) {
	in := testInput(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	a := &stubConverter{name: "a", available: true, convert: func(ctx context.Context, in, out string) error {
		return fmt.Errorf("nope")
	}}
	b := &stubConverter{name: "b", available: false, convert: func(ctx context.Context, in, out string) error {
		return nil
	}}

	chain := NewChainWith(discardLogger(), a, b)
	_, err := chain.Run(context.Background(), in, out)
	if !errors.Is(err, ErrAllStrategiesFailed) {
		t.Errorf("expected ErrAllStrategiesFailed, got %v", err)
	}
}

func TestChain_MissingInput(t *testing.T) {
	chain := NewChainWith(discardLogger())
	_, err := chain.Run(context.Background(), "no-such-deck.pptx", "out.pdf")
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestChain_Cancellation(t *testing.T) {
	in := testInput(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &stubConverter{name: "never", available: true, convert: func(ctx context.Context, in, out string) error {
		t.Fatal("strategy must not run after cancellation")
		return nil
	}}

	chain := NewChainWith(discardLogger(), conv)
	_, err := chain.Run(ctx, in, out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestChain_DefaultOrder(t *testing.T) {
	chain := NewChain(Options{}, discardLogger())

	var names []string
	for _, c := range chain.converters {
		names = append(names, c.Name())
	}
	want := []string{"os-automation", "libreoffice", "unoconv", "slide-snapshot", "text-reconstruction"}
	if len(names) != len(want) {
		t.Fatalf("expected %d strategies, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("strategy %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	t.Run("automation disabled", func(t *testing.T) {
		chain := NewChain(Options{DisableAutomation: true}, discardLogger())
		if chain.converters[0].Name() != "libreoffice" {
			t.Errorf("expected libreoffice first, got %s", chain.converters[0].Name())
		}
	})

	t.Run("chain is total without external tools", func(t *testing.T) {
		// The last two strategies are in-process and always available.
		n := len(chain.converters)
		if !chain.converters[n-1].Available() || !chain.converters[n-2].Available() {
			t.Error("in-process strategies must always be available")
		}
	})
}

func TestProbe(t *testing.T) {
	a := &stubConverter{name: "a", available: true}
	b := &stubConverter{name: "b", available: false}

	chain := NewChainWith(discardLogger(), a, b)
	statuses, err := chain.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || statuses[0].Name != "a" {
		t.Errorf("unexpected status for a: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Hint == "" {
		t.Errorf("unavailable tool should carry a hint: %+v", statuses[1])
	}
}

// writeTestDeck builds a minimal PPTX zip containing only slide parts.
func writeTestDeck(t *testing.T, path string, slides map[int][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)

	for num, lines := range slides {
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", num))
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(w, `<?xml version="1.0"?><p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>`)
		for _, line := range lines {
			fmt.Fprintf(w, `<p:sp><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, line)
		}
		io.WriteString(w, `</p:spTree></p:cSld></p:sld>`)
	}

	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractSlideTexts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	writeTestDeck(t, path, map[int][]string{
		2: {"Second slide"},
		1: {"Title", "Body text"},
		10: {"Tenth slide"},
	})

	slides, err := ExtractSlideTexts(path)
	if err != nil {
		t.Fatalf("ExtractSlideTexts failed: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}

	// Numeric order, not lexical (slide10 after slide2).
	if slides[0].Number != 1 || slides[1].Number != 2 || slides[2].Number != 10 {
		t.Errorf("slides out of order: %d, %d, %d", slides[0].Number, slides[1].Number, slides[2].Number)
	}
	if len(slides[0].Lines) != 2 || slides[0].Lines[0] != "Title" {
		t.Errorf("unexpected slide 1 content: %v", slides[0].Lines)
	}
	if slides[2].Lines[0] != "Tenth slide" {
		t.Errorf("unexpected slide 10 content: %v", slides[2].Lines)
	}
}

func TestExtractSlideTexts_RunsJoinedPerParagraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("ppt/slides/slide1.xml")
	// Two runs in one paragraph: "Hello, " + "world".
	io.WriteString(w, `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>Hello, </a:t></a:r><a:r><a:t>world</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`)
	zw.Close()
	f.Close()

	slides, err := ExtractSlideTexts(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(slides[0].Lines) != 1 || slides[0].Lines[0] != "Hello, world" {
		t.Errorf("runs not joined per paragraph: %v", slides[0].Lines)
	}
}

func TestTextFallback_Convert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "deck.pptx")
	out := filepath.Join(dir, "out.pdf")
	writeTestDeck(t, in, map[int][]string{
		1: {"Quarterly results", "Revenue up 12%"},
		2: {},
	})

	conv := &TextFallbackConverter{}
	if !conv.Available() {
		t.Fatal("text fallback must always be available")
	}
	if err := conv.Convert(context.Background(), in, out); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("output is empty")
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("output is not a PDF (magic: %q)", data[:5])
	}
}

func TestTextFallback_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "not-a-deck.pptx")
	if err := os.WriteFile(in, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv := &TextFallbackConverter{}
	if err := conv.Convert(context.Background(), in, filepath.Join(dir, "out.pdf")); err == nil {
		t.Error("expected error for non-zip input")
	}
}
