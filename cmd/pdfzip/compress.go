package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfzip/internal/api"
	"github.com/jackzampolin/pdfzip/internal/zipper"
)

var (
	compressDPI int
	autoTarget  float64
)

var compressCmd = &cobra.Command{
	Use:     "compress <input> [output]",
	Aliases: []string{"cp"},
	Short:   "Compress a file by re-rendering it at a fixed DPI",
	Long: `Compress a PDF or PPTX by re-rendering every page at the given DPI.

The output format follows the output path's extension, so a .pptx output
turns the pages into image slides. PPTX inputs are converted to PDF first
using the best available conversion tool.

Examples:
  pdfzip compress report.pdf                       # report_compressed.pdf at default DPI
  pdfzip compress report.pdf small.pdf --dpi 72
  pdfzip compress slides.pptx slides.pdf`,
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

		req := zipper.CompressRequest{
			InputPath: args[0],
			DPI:       compressDPI,
			Logger:    getLogger(),
		}
		if len(args) > 1 {
			req.OutputPath = args[1]
		}

		res, err := zipper.Compress(cmd.Context(), cfg, h, req)
		if err != nil {
			return err
		}
		return api.Output(res)
	},
}

var autoCmd = &cobra.Command{
	Use:     "auto <input> [output]",
	Aliases: []string{"ac"},
	Short:   "Compress a file to a target size",
	Long: `Compress a PDF or PPTX so the output lands close to a target size.

pdfzip searches the DPI range for the resolution whose output best matches
the target, preferring the highest DPI that does not overshoot. Inputs
already at or under the target are copied through untouched when the
format stays the same.

Examples:
  pdfzip auto report.pdf --target 5             # ~5 MB PDF
  pdfzip auto report.pdf slides.pptx --target 10  # ~10 MB deck
  pdfzip auto slides.pptx small.pdf --target 2`,
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

		req := zipper.AutoCompressRequest{
			InputPath: args[0],
			TargetMB:  autoTarget,
			Logger:    getLogger(),
		}
		if len(args) > 1 {
			req.OutputPath = args[1]
		}

		res, err := zipper.AutoCompress(cmd.Context(), cfg, h, req)
		if err != nil {
			return err
		}
		return api.Output(res)
	},
}

func init() {
	compressCmd.Flags().IntVar(&compressDPI, "dpi", 0, "render resolution (default: from config)")
	autoCmd.Flags().Float64VarP(&autoTarget, "target", "t", 0, "target size in MB (default: from config)")

	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(autoCmd)
}
