package main

import (
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfzip/internal/api"
	"github.com/jackzampolin/pdfzip/internal/pptconv"
)

// doctorReport summarizes which optional tools this host can use.
type doctorReport struct {
	Converters []pptconv.ToolStatus `json:"converters" yaml:"converters"`
	Renderers  []pptconv.ToolStatus `json:"renderers" yaml:"renderers"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which conversion and rendering tools are available",
	Long: `Check which optional external tools are installed.

pdfzip works without any of them: rendering falls back to the built-in
MuPDF backend and deck conversion falls back to in-process strategies.
Installing LibreOffice or poppler-utils improves fidelity and gives the
conversion chain more options.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		chain := pptconv.NewChain(pptconv.Options{
			ToolTimeout:       cfg.Convert.ToolTimeout,
			SofficePath:       cfg.Convert.SofficePath,
			UnoconvPath:       cfg.Convert.UnoconvPath,
			DisableAutomation: cfg.Convert.DisableAutomation,
		}, getLogger())

		converters, err := chain.Probe(cmd.Context())
		if err != nil {
			return err
		}

		report := doctorReport{
			Converters: converters,
			Renderers: []pptconv.ToolStatus{
				{Name: "fitz", Available: true},
				probeBinary("poppler", "pdftoppm", "install poppler-utils to enable the poppler renderer backend"),
			},
		}
		return api.Output(report)
	},
}

func probeBinary(name, binary, hint string) pptconv.ToolStatus {
	status := pptconv.ToolStatus{Name: name}
	if _, err := exec.LookPath(binary); err == nil {
		status.Available = true
	} else {
		status.Hint = hint
	}
	return status
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
