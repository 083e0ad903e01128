package cmd

import (
	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/spf13/cobra"
)

// samplesCmd is for writing the manifest of samples, pores and runs
var samplesCmd = &cobra.Command{
	Use:                        "samples",
	Short:                      "Write a YAML manifest of the sequencing runs",
	RunE:                       duplex.SamplesCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
Walk the data directory, laid out as {sample}/{group}/{pore}/{run}/fast5_*,
and write each sample's runs, grouped by pore, to a YAML file:

  HG002:
      pores:
          R9.4.1:
              - run_01`,
}

// set flags
func init() {
	samplesCmd.Flags().String("data-dir", "", "root of the sequencing data (default from settings, \"_data\")")
	samplesCmd.Flags().StringP("out", "o", "", "output YAML file (default from settings, \"samples.yaml\")")
	samplesCmd.Flags().String("marker", "", "substring marking run signal directories (default from settings, \"fast5\")")

	RootCmd.AddCommand(samplesCmd)
}
