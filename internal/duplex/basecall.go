package duplex

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/asan-emirsaleh/duplex-basecall/config"
	"github.com/asan-emirsaleh/duplex-basecall/internal/bamfq"
	"github.com/asan-emirsaleh/duplex-basecall/internal/merge"
	"github.com/asan-emirsaleh/duplex-basecall/internal/run"
	"github.com/pkg/errors"
)

// BasecallOptions are the inputs and outputs of a basecalling run.
type BasecallOptions struct {
	// Pod5Dir holds the raw signal files
	Pod5Dir string

	// DuplexData holds the pair lists and split POD5s from FindPairs
	DuplexData string

	// SimplexDir receives simplex reads exported from dorado's BAM. Optional
	SimplexDir string

	// DuplexDir is the root of the basecaller outputs
	DuplexDir string

	// MergedDir receives the merged FASTQ files
	MergedDir string

	// Pore type the reads were sequenced with. Empty for the default
	Pore string

	// Threads passed to the basecaller. Zero for the default
	Threads int
}

// basecallPaths are the files and directories of a basecalling run.
type basecallPaths struct {
	distantOut    string
	pairs         string
	distantMerged string
	allMerged     string

	splitIn     string
	splitOut    string
	splitPairs  string
	splitMerged string
}

func newBasecallPaths(o BasecallOptions) basecallPaths {
	return basecallPaths{
		distantOut:    filepath.Join(o.DuplexDir, DistantDir),
		pairs:         filepath.Join(o.DuplexData, PairsFile),
		distantMerged: filepath.Join(o.MergedDir, "distant_merged.fastq"),
		allMerged:     filepath.Join(o.MergedDir, "all_merged.fastq"),

		splitIn:     filepath.Join(o.DuplexData, SplitDir),
		splitOut:    filepath.Join(o.DuplexDir, SplitOutDir),
		splitPairs:  filepath.Join(o.DuplexData, SplitPairsFile),
		splitMerged: filepath.Join(o.MergedDir, "split_merged.fastq"),
	}
}

// Basecall runs duplex basecalling for the pore's basecaller and merges
// the outputs into MergedDir.
//
// For dorado pores, distant pairs are basecalled to a BAM that's exported
// to FASTQ before merging. For guppy pores there are two iterations:
//  1. distant pairs, from the pod5 directory
//  2. split pairs, from the POD5s duplex_tools split from concatenated reads
func (w *Workflow) Basecall(ctx context.Context, o BasecallOptions) error {
	pore, err := w.Conf.Pore(o.Pore)
	if err != nil {
		return &ParamError{Msg: err.Error()}
	}

	threads := o.Threads
	if threads < 1 {
		threads = w.Conf.Threads
	}
	if threads < 1 {
		threads = 4
	}

	p := newBasecallPaths(o)
	if err := merge.RemovePrevious(w.Console, p.allMerged); err != nil {
		return err
	}

	if pore.Basecaller == config.Dorado {
		err = w.doradoPipeline(ctx, o, p, pore, threads)
	} else {
		err = w.guppyPipeline(ctx, p, o.Pod5Dir, pore, threads)
	}
	if err != nil {
		return err
	}

	w.Console.Successf("Duplex reads were basecalled successfully!")
	return nil
}

// doradoPipeline basecalls the distant pairs with dorado, exports the
// BAM it writes to FASTQ, and merges the duplex reads.
func (w *Workflow) doradoPipeline(ctx context.Context, o BasecallOptions, p basecallPaths, pore config.PoreConfig, threads int) error {
	if err := requireFile(p.pairs, "Pairs file not found"); err != nil {
		return err
	}

	duplexOut := filepath.Join(p.distantOut, "duplex")
	if err := os.MkdirAll(duplexOut, 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", duplexOut)
	}

	calls := filepath.Join(p.distantOut, "calls.bam")
	if err := w.runDorado(ctx, o.Pod5Dir, calls, p.pairs, pore.Model, threads); err != nil {
		return err
	}

	simplex := ""
	if o.SimplexDir != "" {
		simplex = filepath.Join(o.SimplexDir, "calls.fastq")
	}
	w.Console.Noticef("Exporting FASTQ from %s...", calls)
	counts, err := bamfq.ExportFile(calls, filepath.Join(duplexOut, "calls.fastq"), simplex)
	if err != nil {
		return err
	}
	w.Console.Printf(
		"%d duplex reads, %d simplex reads (%d with duplex offspring)",
		counts.Duplex,
		counts.Simplex+counts.Parent,
		counts.Parent,
	)

	_, err = merge.Outputs(w.Console, p.distantOut, p.distantMerged, p.allMerged)
	return err
}

// guppyPipeline runs the legacy guppy duplex workflow in two iterations.
func (w *Workflow) guppyPipeline(ctx context.Context, p basecallPaths, pod5Dir string, pore config.PoreConfig, threads int) error {
	// Iteration 1
	// processing standalone duplex reads
	w.Console.Sectionf("Starting Iteration 1: Distant pairs")
	w.Console.Printf("processing standalone distant reads...")

	if err := requireFile(p.pairs, "Pairs file not found"); err != nil {
		return err
	}
	if err := w.runGuppy(ctx, pod5Dir, p.distantOut, p.pairs, pore.Model, threads); err != nil {
		return err
	}
	if _, err := merge.Outputs(w.Console, p.distantOut, p.distantMerged, p.allMerged); err != nil {
		return err
	}

	// Iteration 2
	// splitting and processing concatenated duplex reads
	w.Console.Sectionf("Starting Iteration 2: Split pairs")
	w.Console.Printf("splitting and processing concatenated reads...")

	if err := requireFile(p.splitPairs, "Split pairs file not found"); err != nil {
		return err
	}
	if err := w.runGuppy(ctx, p.splitIn, p.splitOut, p.splitPairs, pore.Model, threads); err != nil {
		return err
	}
	_, err := merge.Outputs(w.Console, p.splitOut, p.splitMerged, p.allMerged)
	return err
}

// runDorado calls `dorado duplex`, which writes its BAM to stdout. A
// failed run leaves no BAM behind.
func (w *Workflow) runDorado(ctx context.Context, in, out, pairs, model string, threads int) error {
	w.Console.Headerf("Running Dorado duplex basecalling...")

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", out)
	}
	bw := bufio.NewWriter(f)

	err = w.Runner.Run(ctx, run.Command{
		Name: w.Conf.Binaries.Dorado,
		Args: []string{
			"duplex",
			"--threads", strconv.Itoa(threads),
			"--device", w.Conf.Device,
			"--pairs", pairs,
			model,
			in,
		},
		Stdout: bw,
	})
	if err == nil {
		err = errors.Wrapf(bw.Flush(), "failed to write %s", out)
	}
	if cerr := f.Close(); err == nil {
		err = errors.Wrapf(cerr, "failed to close %s", out)
	}
	if err != nil {
		os.Remove(out)
		return err
	}
	return nil
}

// runGuppy calls guppy_basecaller_duplex on the pairs listed in pairs.
func (w *Workflow) runGuppy(ctx context.Context, in, out, pairs, model string, threads int) error {
	w.Console.Headerf("Running Guppy duplex basecalling...")

	return w.Runner.Run(ctx, run.Command{
		Name: w.Conf.Binaries.Guppy,
		Args: []string{
			"-i", in,
			"-s", out,
			"-x", w.Conf.Device,
			"-c", model,
			"--threads", strconv.Itoa(threads),
			"--duplex_pairing_mode", "from_pair_list",
			"--duplex_pairing_file", pairs,
		},
	})
}
