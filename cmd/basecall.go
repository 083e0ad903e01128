package cmd

import (
	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/spf13/cobra"
)

// basecallCmd is for basecalling duplex pairs with dorado or guppy and
// merging the resulting reads
var basecallCmd = &cobra.Command{
	Use:                        "basecall",
	Short:                      "Basecall duplex pairs and merge the reads",
	RunE:                       duplex.BasecallCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
Basecall the pairs found by 'duplexcall pairs' and merge the resulting FASTQ files.

The pore type selects the basecaller. R10.4.1 reads are basecalled with
'dorado duplex', whose BAM is exported to FASTQ (duplex reads to the duplex
directory, simplex reads to --simplex-dir if set). Other pores go through
guppy_basecaller_duplex in two iterations: distant pairs from --pod5-dir,
then split pairs from the POD5s 'duplex_tools split_pairs' wrote to
--duplex-data.

Merged reads are written to --merged-dir as distant_merged.fastq,
split_merged.fastq (guppy only) and all_merged.fastq.`,
	Example: "  duplexcall basecall --pod5-dir pod5 --duplex-data duplex_data -o basecalled_duplex --merged-dir merged --pore R9.4.1 -t 8",
}

// set flags
func init() {
	basecallCmd.Flags().String("pod5-dir", "", "directory containing pod5 files (required)")
	basecallCmd.Flags().String("duplex-data", "", "directory containing the pair lists and split POD5s (required)")
	basecallCmd.Flags().String("simplex-dir", "", "directory for basecalled simplex read files (dorado only)")
	basecallCmd.Flags().StringP("duplex-dir", "o", "", "root directory for output files (required)")
	basecallCmd.Flags().String("merged-dir", "", "directory for merged data outputting (required)")
	basecallCmd.Flags().String("pore", "", "pore type used for sequencing (default from settings, \"R9.4.1\")")
	basecallCmd.Flags().IntP("threads", "t", 4, "CPU threads number (default from settings)")

	RootCmd.AddCommand(basecallCmd)
}
