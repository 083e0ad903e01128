package cmd

import (
	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/spf13/cobra"
)

// mergeCmd is for merging the outputs of an earlier basecalling run
var mergeCmd = &cobra.Command{
	Use:                        "merge",
	Short:                      "Merge basecalled duplex reads",
	RunE:                       duplex.MergeCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
Merge the FASTQ files under --duplex-dir/distant and --duplex-dir/split into
duplex-distant_merged.fastq, duplex-split_merged.fastq and
duplex-all_merged.fastq in --merged-dir. Earlier merges are replaced.`,
	Example: "  duplexcall merge --duplex-data duplex_data -o basecalled_duplex --merged-dir merged --ids",
}

// set flags
func init() {
	mergeCmd.Flags().String("duplex-data", "", "directory containing duplex info (required)")
	mergeCmd.Flags().StringP("duplex-dir", "o", "", "root directory of the basecaller outputs (required)")
	mergeCmd.Flags().String("merged-dir", "", "directory for merged data outputting (required)")
	mergeCmd.Flags().Bool("ids", false, "also write the merged read ids to duplex-all_merged.ids.txt")

	RootCmd.AddCommand(mergeCmd)
}
