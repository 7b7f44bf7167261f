package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfzip/internal/api"
	"github.com/jackzampolin/pdfzip/internal/document"
	"github.com/jackzampolin/pdfzip/internal/zipper"
)

var convertDPI int

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output]",
	Short: "Convert between PDF and PPTX",
	Long: `Convert a PDF into a deck of image slides, or a deck into a PDF.

The direction follows the input format: a PDF input produces a PPTX with
one full-bleed slide per page, a PPTX input produces a PDF using the best
available conversion tool (PowerPoint automation, LibreOffice, unoconv,
or an in-process fallback).

Examples:
  pdfzip convert report.pdf                # report.pptx
  pdfzip convert report.pdf deck.pptx --dpi 200
  pdfzip convert slides.pptx               # slides.pdf`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		outPath := ""
		if len(args) > 1 {
			outPath = args[1]
		}

		switch document.DetectType(args[0]) {
		case document.TypePDF:
			res, err := zipper.ConvertToDeck(cmd.Context(), cfg, h, zipper.ConvertToDeckRequest{
				InputPath:  args[0],
				OutputPath: outPath,
				DPI:        convertDPI,
				Logger:     getLogger(),
			})
			if err != nil {
				return err
			}
			return api.Output(res)

		case document.TypePPTX:
			res, err := zipper.DeckToPDF(cmd.Context(), cfg, h, zipper.DeckToPDFRequest{
				InputPath:  args[0],
				OutputPath: outPath,
				Logger:     getLogger(),
			})
			if err != nil {
				return err
			}
			return api.Output(res)

		default:
			return fmt.Errorf("%w: %s", document.ErrUnsupportedType, filepath.Ext(args[0]))
		}
	},
}

func init() {
	convertCmd.Flags().IntVar(&convertDPI, "dpi", 0, "render resolution for PDF to deck conversion (default: from config)")
	rootCmd.AddCommand(convertCmd)
}
