package duplex

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/asan-emirsaleh/duplex-basecall/config"
	"github.com/asan-emirsaleh/duplex-basecall/internal/bamfq"
	"github.com/asan-emirsaleh/duplex-basecall/internal/console"
	"github.com/asan-emirsaleh/duplex-basecall/internal/run"
	"github.com/asan-emirsaleh/duplex-basecall/internal/samples"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// missing reports the executables that aren't on $PATH.
var missing = run.Missing

// newWorkflow creates a Workflow from viper's settings that logs to the
// command's stderr.
func newWorkflow(cmd *cobra.Command) (*Workflow, error) {
	conf, err := config.New()
	if err != nil {
		return nil, err
	}
	return New(conf, console.New(cmd.ErrOrStderr())), nil
}

// requireBinaries returns an error naming the executables not on $PATH.
func requireBinaries(names ...string) error {
	if m := missing(names...); len(m) > 0 {
		return errors.Errorf("executables not found on $PATH: %v (see 'duplexcall check')", m)
	}
	return nil
}

// BasecallCmd accepts a cobra.Command with flags for basecalling duplex
// pairs and merging the resulting reads.
func BasecallCmd(cmd *cobra.Command, args []string) error {
	w, err := newWorkflow(cmd)
	if err != nil {
		return err
	}

	o, err := parseBasecallFlags(cmd, w.Conf)
	if err != nil {
		return err
	}

	pore, err := w.Conf.Pore(o.Pore)
	if err != nil {
		return &ParamError{Msg: err.Error()}
	}
	if err := requireBinaries(w.Conf.Binary(pore.Basecaller)); err != nil {
		return err
	}

	return w.Basecall(cmd.Context(), o)
}

// parseBasecallFlags gathers the directories, pore and threads of
// `duplexcall basecall`. Unset pore and threads fall back to the settings.
func parseBasecallFlags(cmd *cobra.Command, conf *config.Config) (o BasecallOptions, err error) {
	flags := cmd.Flags()

	dirs := []struct {
		flag     string
		dst      *string
		optional bool
	}{
		{"pod5-dir", &o.Pod5Dir, false},
		{"duplex-data", &o.DuplexData, false},
		{"simplex-dir", &o.SimplexDir, true},
		{"duplex-dir", &o.DuplexDir, false},
		{"merged-dir", &o.MergedDir, false},
	}
	for _, d := range dirs {
		if *d.dst, err = flags.GetString(d.flag); err != nil {
			return o, err
		}
		if d.optional && *d.dst == "" {
			continue
		}
		if err = requireDir(*d.dst, d.flag); err != nil {
			return o, err
		}
	}

	if o.Pore, err = flags.GetString("pore"); err != nil {
		return o, err
	}
	if o.Pore == "" {
		o.Pore = conf.DefaultPore
	}

	if o.Threads, err = flags.GetInt("threads"); err != nil {
		return o, err
	}
	if !flags.Changed("threads") {
		o.Threads = conf.Threads
	}
	if o.Threads < 1 {
		return o, &ParamError{Msg: fmt.Sprintf("--threads must be positive, got %d", o.Threads)}
	}

	return o, nil
}

// PairsCmd accepts a cobra.Command with flags for finding duplex pairs.
func PairsCmd(cmd *cobra.Command, args []string) error {
	w, err := newWorkflow(cmd)
	if err != nil {
		return err
	}

	o, err := parsePairsFlags(cmd)
	if err != nil {
		return err
	}
	if err := requireBinaries(w.Conf.Binaries.DuplexTools); err != nil {
		return err
	}

	return w.FindPairs(cmd.Context(), o)
}

func parsePairsFlags(cmd *cobra.Command) (o PairsOptions, err error) {
	flags := cmd.Flags()

	if o.OutDir, err = flags.GetString("out-dir"); err != nil {
		return
	}
	if o.OutDir == "" {
		return o, &ParamError{Msg: "--out-dir is required"}
	}
	if o.InDir, err = flags.GetString("in-dir"); err != nil {
		return
	}
	if err = requireDir(o.InDir, "in-dir"); err != nil {
		return
	}
	if o.Pod5s, err = flags.GetString("pod5s"); err != nil {
		return
	}
	if err = requireDir(o.Pod5s, "pod5s"); err != nil {
		return
	}
	if o.Threads, err = flags.GetInt("threads"); err != nil {
		return
	}
	if o.Threads < 1 {
		return o, &ParamError{Msg: fmt.Sprintf("--threads must be positive, got %d", o.Threads)}
	}
	return o, nil
}

// MergeCmd accepts a cobra.Command with flags for merging the outputs of
// an earlier basecalling run.
func MergeCmd(cmd *cobra.Command, args []string) error {
	w, err := newWorkflow(cmd)
	if err != nil {
		return err
	}

	o, err := parseMergeFlags(cmd)
	if err != nil {
		return err
	}

	return w.Merge(o)
}

func parseMergeFlags(cmd *cobra.Command) (o MergeOptions, err error) {
	flags := cmd.Flags()

	for flag, dst := range map[string]*string{
		"duplex-data": &o.DuplexData,
		"duplex-dir":  &o.DuplexDir,
		"merged-dir":  &o.MergedDir,
	} {
		if *dst, err = flags.GetString(flag); err != nil {
			return
		}
		if err = requireDir(*dst, flag); err != nil {
			return
		}
	}

	o.IDs, err = flags.GetBool("ids")
	return
}

// SamplesCmd writes the YAML manifest of the runs under the data directory.
func SamplesCmd(cmd *cobra.Command, args []string) error {
	w, err := newWorkflow(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	dataDir, _ := flags.GetString("data-dir")
	if dataDir == "" {
		dataDir = w.Conf.Samples.DataDir
	}
	out, _ := flags.GetString("out")
	if out == "" {
		out = w.Conf.Samples.Output
	}
	marker, _ := flags.GetString("marker")
	if marker == "" {
		marker = w.Conf.Samples.Marker
	}

	if err := requireDir(dataDir, "data-dir"); err != nil {
		return err
	}

	manifest, err := samples.Walk(dataDir, marker)
	if err != nil {
		return err
	}
	if err := samples.Write(out, manifest); err != nil {
		return err
	}

	w.Console.Successf("Samples information saved to %s (%d samples, %d runs)", out, len(manifest), manifest.Runs())
	return nil
}

// ExportCmd exports a dorado BAM to duplex and simplex FASTQ files.
func ExportCmd(cmd *cobra.Command, args []string) error {
	w, err := newWorkflow(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	in, _ := flags.GetString("in")
	if in == "" {
		return &ParamError{Msg: "--in is required"}
	}
	if err := requireFile(in, "BAM file not found"); err != nil {
		return err
	}
	duplexOut, _ := flags.GetString("duplex")
	simplexOut, _ := flags.GetString("simplex")
	if duplexOut == "" && simplexOut == "" {
		return &ParamError{Msg: "at least one of --duplex or --simplex is required"}
	}

	for _, out := range []string{duplexOut, simplexOut} {
		if out == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", out)
		}
	}

	counts, err := bamfq.ExportFile(in, duplexOut, simplexOut)
	if err != nil {
		return err
	}

	w.Console.Successf(
		"Exported %d reads: %d duplex, %d simplex, %d simplex with duplex offspring (%d skipped)",
		counts.Total(),
		counts.Duplex,
		counts.Simplex,
		counts.Parent,
		counts.Skipped,
	)
	return nil
}

// CheckCmd lists the configured executables and whether each can be
// found. It fails if any is missing.
func CheckCmd(cmd *cobra.Command, args []string) error {
	conf, err := config.New()
	if err != nil {
		return err
	}

	bins := []struct{ tool, name string }{
		{"dorado", conf.Binaries.Dorado},
		{"guppy", conf.Binaries.Guppy},
		{"duplex_tools", conf.Binaries.DuplexTools},
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "tool\texecutable\tfound\n")

	var notFound []string
	for _, b := range bins {
		found := "Y"
		if len(missing(b.name)) > 0 {
			found = " "
			notFound = append(notFound, b.name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.tool, b.name, found)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(notFound) > 0 {
		return errors.Errorf("executables not found on $PATH: %v", notFound)
	}
	return nil
}
