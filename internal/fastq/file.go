package fastq

import (
	"bufio"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

// IsFASTQ reports whether path names a plain or gzipped FASTQ file.
func IsFASTQ(path string) bool {
	p := strings.ToLower(path)
	for _, ext := range []string{".fastq", ".fq", ".fastq.gz", ".fq.gz"} {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

type file struct {
	io.Reader
	closers []io.Closer
}

func (f *file) Close() (err error) {
	for i := len(f.closers) - 1; i >= 0; i-- {
		if cerr := f.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return
}

// Open opens a FASTQ file for reading. Files ending in .gz are
// decompressed as they're read.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}

	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "failed to decompress %s", path)
	}
	return &file{Reader: gz, closers: []io.Closer{f, gz}}, nil
}

// Count returns the number of reads in r.
func Count(r io.Reader) (n int, err error) {
	fr := NewReader(r)
	for {
		if _, err = fr.Read(); err != nil {
			break
		}
		n++
	}
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// WriteIDs writes the name of every read in r to w, one per line, and
// returns the number of reads.
func WriteIDs(r io.Reader, w io.Writer) (n int, err error) {
	fr := NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		read, err := fr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if _, err = bw.WriteString(Name(&read) + "\n"); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// WriteIDsFile writes the names of the reads in the FASTQ at in to a
// new text file at out.
func WriteIDsFile(in, out string) (int, error) {
	r, err := Open(in)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	w, err := os.Create(out)
	if err != nil {
		return 0, err
	}

	n, err := WriteIDs(r, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return n, errors.Wrapf(err, "failed to write read ids of %s", in)
}
