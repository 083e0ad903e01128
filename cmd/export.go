package cmd

import (
	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/spf13/cobra"
)

// exportCmd is for exporting dorado's BAM to FASTQ
var exportCmd = &cobra.Command{
	Use:                        "export",
	Short:                      "Export a dorado duplex BAM to FASTQ",
	RunE:                       duplex.ExportCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
Export the reads of a 'dorado duplex' BAM to FASTQ. Reads are split by their
dx tag: duplex reads (dx:i:1) go to --duplex, simplex reads (dx:i:0 and
dx:i:-1) to --simplex. Secondary and supplementary records are skipped.`,
}

// set flags
func init() {
	exportCmd.Flags().StringP("in", "i", "", "BAM written by dorado duplex (required)")
	exportCmd.Flags().String("duplex", "", "output FASTQ for duplex reads")
	exportCmd.Flags().String("simplex", "", "output FASTQ for simplex reads")

	RootCmd.AddCommand(exportCmd)
}
