// Package duplex runs the duplex basecalling workflows: finding read
// pairs with duplex_tools, basecalling them with dorado or guppy, and
// merging the resulting FASTQ files.
package duplex

import (
	"github.com/asan-emirsaleh/duplex-basecall/config"
	"github.com/asan-emirsaleh/duplex-basecall/internal/console"
	"github.com/asan-emirsaleh/duplex-basecall/internal/run"
)

// File and directory names shared between the workflows.
const (
	// PairsFile is written by `duplex_tools pair` and lists distant pairs
	PairsFile = "pair_ids_filtered.txt"

	// SplitPairsFile lists the pairs found by `duplex_tools split_pairs`
	SplitPairsFile = "split_duplex_pair_ids.txt"

	// SplitDir holds the POD5s of split concatenated reads
	SplitDir = "pod5s_splitduplex"

	// DistantDir is the basecaller output for distant pairs
	DistantDir = "distant"

	// SplitOutDir is the basecaller output for split pairs
	SplitOutDir = "split"
)

// Workflow bundles what every workflow needs: settings, a way to run
// external binaries and somewhere to report progress.
type Workflow struct {
	Conf    *config.Config
	Runner  run.Runner
	Console *console.Console
}

// New returns a Workflow that runs binaries as subprocesses.
func New(conf *config.Config, c *console.Console) *Workflow {
	return &Workflow{
		Conf:    conf,
		Runner:  run.NewExec(c),
		Console: c,
	}
}
