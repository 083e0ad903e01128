package cmd

import (
	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/spf13/cobra"
)

// pairsCmd is for finding duplex pairs in a simplex BAM
var pairsCmd = &cobra.Command{
	Use:                        "pairs",
	Short:                      "Find duplex pairs with duplex_tools",
	RunE:                       duplex.PairsCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
Search a simplex basecalled BAM for duplex pairs.

'duplex_tools pair' writes the distant pairs (pair_ids_filtered.txt) to
--out-dir. 'duplex_tools split_pairs' then splits concatenated reads into
--out-dir/pod5s_splitduplex and their pair lists are concatenated into
--out-dir/split_duplex_pair_ids.txt. --in-dir must hold exactly one BAM.`,
	Aliases: []string{"find"},
	Example: "  duplexcall pairs --in-dir simplex --pod5s pod5 --out-dir duplex_data -t 8",
}

// set flags
func init() {
	pairsCmd.Flags().String("out-dir", "", "output directory for results (required)")
	pairsCmd.Flags().String("in-dir", "", "input directory containing BAM files (required)")
	pairsCmd.Flags().String("pod5s", "", "directory containing POD5 files (required)")
	pairsCmd.Flags().IntP("threads", "t", 1, "number of threads to use")

	RootCmd.AddCommand(pairsCmd)
}
