package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfzip/internal/api"
	"github.com/jackzampolin/pdfzip/internal/zipper"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show size and page information for a PDF or PPTX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := zipper.Inspect(args[0])
		if err != nil {
			return err
		}
		return api.Output(info)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
