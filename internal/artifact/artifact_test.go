package artifact

import (
	"archive/zip"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestSizeMB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	if err := os.WriteFile(path, make([]byte, 1024*1024), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := SizeMB(path)
	if err != nil {
		t.Fatalf("SizeMB failed: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 MB, got %v", got)
	}

	if _, err := SizeMB(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWritePageImages(t *testing.T) {
	dir := t.TempDir()
	imgs := []image.Image{testImage(10, 10), testImage(10, 10), testImage(10, 10)}

	paths, err := WritePageImages(dir, imgs)
	if err != nil {
		t.Fatalf("WritePageImages failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(paths))
	}
	for i, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("page image %d missing: %v", i+1, err)
		}
	}
	// Lexical order matches page order.
	if !(paths[0] < paths[1] && paths[1] < paths[2]) {
		t.Error("page image paths not lexically ordered")
	}
}

func TestBuildPDF_NoImages(t *testing.T) {
	err := BuildPDF(nil, 150, filepath.Join(t.TempDir(), "out.pdf"))
	if err == nil {
		t.Error("expected error for zero page images")
	}
}

func TestBuildDeck(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "deck.pptx")
	imgs := []image.Image{testImage(100, 75), testImage(100, 75)}

	if err := BuildDeck(imgs, 612, 459, 80, outPath); err != nil {
		t.Fatalf("BuildDeck failed: %v", err)
	}

	zr, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("deck is not a readable zip: %v", err)
	}
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/slides/_rels/slide2.xml.rels",
		"ppt/media/image1.jpeg",
		"ppt/media/image2.jpeg",
	}
	for _, name := range required {
		if !names[name] {
			t.Errorf("deck missing part %s", name)
		}
	}
	if names["ppt/slides/slide3.xml"] {
		t.Error("deck has more slides than input images")
	}
}

func TestBuildDeck_SlideSize(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "deck.pptx")
	if err := BuildDeck([]image.Image{testImage(10, 10)}, 720, 540, 80, outPath); err != nil {
		t.Fatalf("BuildDeck failed: %v", err)
	}

	zr, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "ppt/presentation.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)

		// 720pt x 540pt => 9144000 x 6858000 EMU.
		if !strings.Contains(content, `cx="9144000"`) || !strings.Contains(content, `cy="6858000"`) {
			t.Errorf("unexpected slide size in presentation.xml: %s", content)
		}
		return
	}
	t.Fatal("presentation.xml not found")
}

func TestBuildDeck_NoImages(t *testing.T) {
	if err := BuildDeck(nil, 612, 792, 80, filepath.Join(t.TempDir(), "d.pptx")); err == nil {
		t.Error("expected error for zero slide images")
	}
}

func TestBuildDeck_QualityShrinksSize(t *testing.T) {
	dir := t.TempDir()
	imgs := []image.Image{testImage(400, 300)}

	hiPath := filepath.Join(dir, "hi.pptx")
	loPath := filepath.Join(dir, "lo.pptx")
	if err := BuildDeck(imgs, 612, 459, 90, hiPath); err != nil {
		t.Fatal(err)
	}
	if err := BuildDeck(imgs, 612, 459, 20, loPath); err != nil {
		t.Fatal(err)
	}

	hi, err := SizeMB(hiPath)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := SizeMB(loPath)
	if err != nil {
		t.Fatal(err)
	}
	if lo >= hi {
		t.Errorf("lower quality should shrink deck: hi=%v lo=%v", hi, lo)
	}
}
