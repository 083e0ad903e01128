package duplex

import (
	"path/filepath"

	"github.com/asan-emirsaleh/duplex-basecall/internal/fastq"
	"github.com/asan-emirsaleh/duplex-basecall/internal/merge"
)

// MergeOptions are the inputs and outputs for merging basecalled reads
// without running a basecaller.
type MergeOptions struct {
	// DuplexData holds the pair lists from FindPairs
	DuplexData string

	// DuplexDir is the root of earlier basecaller outputs
	DuplexDir string

	// MergedDir receives the merged FASTQ files
	MergedDir string

	// IDs writes the read ids of the merged reads to a text file
	IDs bool
}

// Merge re-merges the distant and split outputs of an earlier basecalling
// run into the duplex-*_merged.fastq files in MergedDir.
func (w *Workflow) Merge(o MergeOptions) error {
	distantOut := filepath.Join(o.DuplexDir, DistantDir)
	distantMerged := filepath.Join(o.MergedDir, "duplex-distant_merged.fastq")
	allMerged := filepath.Join(o.MergedDir, "duplex-all_merged.fastq")

	if err := merge.RemovePrevious(w.Console, allMerged); err != nil {
		return err
	}
	if _, err := merge.Outputs(w.Console, distantOut, distantMerged, allMerged); err != nil {
		return err
	}

	// splitting and processing concatenated duplex reads
	w.Console.Sectionf("Merging split pairs")

	splitOut := filepath.Join(o.DuplexDir, SplitOutDir)
	splitPairs := filepath.Join(o.DuplexData, SplitPairsFile)
	splitMerged := filepath.Join(o.MergedDir, "duplex-split_merged.fastq")

	if err := requireFile(splitPairs, "Split pairs file not found"); err != nil {
		return err
	}
	if _, err := merge.Outputs(w.Console, splitOut, splitMerged, allMerged); err != nil {
		return err
	}

	if o.IDs {
		ids := filepath.Join(o.MergedDir, "duplex-all_merged.ids.txt")
		n, err := fastq.WriteIDsFile(allMerged, ids)
		if err != nil {
			return err
		}
		w.Console.Printf("%d read ids written to %s", n, ids)
	}

	w.Console.Successf("Duplex reads were merged successfully!")
	return nil
}
