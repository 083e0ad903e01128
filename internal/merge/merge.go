// Package merge concatenates basecaller outputs into merged files.
package merge

import (
	"io"
	"os"
	"path/filepath"

	"github.com/asan-emirsaleh/duplex-basecall/internal/console"
	"github.com/asan-emirsaleh/duplex-basecall/internal/fastq"
	"github.com/pkg/errors"
)

// Summary describes a finished merge.
type Summary struct {
	// Files that were concatenated, in order
	Files []string

	// Bytes written to each destination
	Bytes int64
}

// RemovePrevious removes a file that was merged before, so a new merge
// doesn't duplicate its contents via concatenation. A missing file is
// not an error.
func RemovePrevious(c *console.Console, path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to remove previously merged file %s", path)
	}

	c.Noticef("Merged file %s existed before and was removed.", path)
	return nil
}

// Glob returns the entries of dir whose names match pattern, in lexical
// order. Unlike filepath.Glob, dir is taken literally: a run directory
// named "run[1]" is listed, not matched. A missing dir has no entries.
func Glob(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, e := range entries {
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	return matches, nil
}

// Sources returns the FASTQ files, plain or gzipped, one directory below
// dir (the pass/fail layout of the basecallers' output), in lexical order.
func Sources(dir string) ([]string, error) {
	subdirs, err := Glob(dir, "*")
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, sub := range subdirs {
		if info, err := os.Stat(sub); err != nil || !info.IsDir() {
			continue
		}
		candidates, err := Glob(sub, "*")
		if err != nil {
			return nil, err
		}
		for _, path := range candidates {
			if !fastq.IsFASTQ(path) {
				continue
			}
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				continue
			}
			sources = append(sources, path)
		}
	}
	return sources, nil
}

// Outputs appends every FASTQ under sourceDir (see Sources) to both
// destination and destinationMerged. destination is removed first.
// destinationMerged is only appended to: it collects the outputs of
// several merges and is the caller's to remove.
func Outputs(c *console.Console, sourceDir, destination, destinationMerged string) (Summary, error) {
	c.Noticef("Merging outputs...")

	if err := RemovePrevious(c, destination); err != nil {
		return Summary{}, err
	}

	sources, err := Sources(sourceDir)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "failed to list outputs in %s", sourceDir)
	}
	if len(sources) == 0 {
		c.Noticef("No FASTQ outputs found in %s", sourceDir)
	}

	dest, err := openAppend(destination)
	if err != nil {
		return Summary{}, err
	}
	defer dest.Close()

	merged, err := openAppend(destinationMerged)
	if err != nil {
		return Summary{}, err
	}
	defer merged.Close()

	summary := Summary{}
	w := io.MultiWriter(dest, merged)
	for _, source := range sources {
		c.Printf("concatenating %s...", source)

		n, err := appendFile(w, source)
		if err != nil {
			return summary, err
		}
		summary.Files = append(summary.Files, source)
		summary.Bytes += n
	}

	if err := dest.Close(); err != nil {
		return summary, errors.Wrapf(err, "failed to close %s", destination)
	}
	if err := merged.Close(); err != nil {
		return summary, errors.Wrapf(err, "failed to close %s", destinationMerged)
	}

	c.Successf("Outputs have been merged.")
	return summary, nil
}

// Concat writes the files in dir matching pattern, in lexical order, into
// a new (or truncated) file at destination. It returns the number of files.
func Concat(dir, pattern, destination string) (int, error) {
	sources, err := Glob(dir, pattern)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to list %s in %s", pattern, dir)
	}

	out, err := os.Create(destination)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create %s", destination)
	}
	defer out.Close()

	for _, source := range sources {
		if _, err := appendFile(out, source); err != nil {
			return 0, err
		}
	}

	return len(sources), errors.Wrapf(out.Close(), "failed to close %s", destination)
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s for merging", path)
	}
	return f, nil
}

// appendFile copies the (decompressed) contents of the file at path to w.
func appendFile(w io.Writer, path string) (int64, error) {
	var r io.ReadCloser
	var err error
	if fastq.IsFASTQ(path) {
		r, err = fastq.Open(path)
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %s", path)
	}
	defer r.Close()

	n, err := io.Copy(w, r)
	return n, errors.Wrapf(err, "failed to concatenate %s", path)
}
