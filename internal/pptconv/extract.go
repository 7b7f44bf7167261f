package pptconv

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// SlideText holds the textual shape content of one slide, one entry per
// text run group (paragraph-ish granularity is good enough for the
// reduced-fidelity fallback).
type SlideText struct {
	Number int
	Lines  []string
}

// ExtractSlideTexts pulls the text runs out of every slide in a PPTX,
// ordered by slide number. Images, layout and styling are ignored.
func ExtractSlideTexts(path string) ([]SlideText, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck: %w", err)
	}
	defer zr.Close()

	var slides []SlideText
	for _, f := range zr.File {
		m := slidePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open slide part %s: %w", f.Name, err)
		}
		lines, err := extractTextRuns(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse slide part %s: %w", f.Name, err)
		}

		slides = append(slides, SlideText{Number: num, Lines: lines})
	}

	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides found in deck")
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].Number < slides[j].Number })
	return slides, nil
}

// extractTextRuns scans slide XML for DrawingML <a:t> runs. Runs within
// one paragraph (<a:p>) are joined into a single line.
func extractTextRuns(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var lines []string
	var current strings.Builder
	inText := false
	inParagraph := false

	flush := func() {
		line := strings.TrimSpace(current.String())
		if line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					flush()
				}
				inParagraph = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	flush()

	return lines, nil
}
