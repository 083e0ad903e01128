package duplex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/asan-emirsaleh/duplex-basecall/internal/merge"
	"github.com/asan-emirsaleh/duplex-basecall/internal/run"
	"github.com/pkg/errors"
)

// PairsOptions are the inputs and outputs for finding duplex pairs.
type PairsOptions struct {
	// OutDir receives the pair lists and split POD5s. Created if missing
	OutDir string

	// InDir holds the simplex basecalled BAM. Exactly one is expected
	InDir string

	// Pod5s is the directory of raw signal files
	Pod5s string

	// Threads passed to duplex_tools
	Threads int
}

// FindPairs finds duplex pairs in a simplex BAM with duplex_tools. It
// writes the distant pairs list (PairsFile) and, after splitting
// concatenated reads, the split pairs list (SplitPairsFile) to OutDir.
func (w *Workflow) FindPairs(ctx context.Context, o PairsOptions) error {
	w.Console.Noticef("Searching for duplex reads...")

	if err := os.MkdirAll(o.OutDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", o.OutDir)
	}

	bam, err := singleBAM(o.InDir)
	if err != nil {
		return err
	}
	w.Console.Printf("Processing %s...", bam)

	threads := o.Threads
	if threads < 1 {
		threads = 1
	}

	w.Console.Printf("Looking for pairs...")
	err = w.Runner.Run(ctx, run.Command{
		Name: w.Conf.Binaries.DuplexTools,
		Args: []string{
			"pair",
			"--threads", strconv.Itoa(threads),
			"--output_dir", o.OutDir,
			bam,
		},
	})
	if err != nil {
		return err
	}

	w.Console.Printf("Splitting pairs...")
	split := filepath.Join(o.OutDir, SplitDir)
	if err := os.RemoveAll(split); err != nil {
		return errors.Wrapf(err, "failed to remove previous %s", split)
	}

	err = w.Runner.Run(ctx, run.Command{
		Name: w.Conf.Binaries.DuplexTools,
		Args: []string{
			"split_pairs",
			"--threads", strconv.Itoa(threads),
			bam,
			o.Pod5s,
			split + string(filepath.Separator),
		},
	})
	if err != nil {
		return err
	}

	// concatenate pair IDs into a new file
	n, err := merge.Concat(split, "*_pair_ids.txt", filepath.Join(o.OutDir, SplitPairsFile))
	if err != nil {
		return err
	}
	w.Console.Printf("%d split pair lists concatenated", n)

	w.Console.Successf("Processing complete!")
	return nil
}

// singleBAM returns the one BAM file in dir.
func singleBAM(dir string) (string, error) {
	bams, err := merge.Glob(dir, "*.bam")
	if err != nil {
		return "", err
	}

	switch len(bams) {
	case 0:
		return "", &ParamError{Msg: fmt.Sprintf("No BAM files found in %s", dir)}
	case 1:
		return bams[0], nil
	default:
		return "", &ParamError{Msg: fmt.Sprintf(
			"Multiple BAM files found in %s. Please provide a directory with only one BAM file.",
			dir,
		)}
	}
}
