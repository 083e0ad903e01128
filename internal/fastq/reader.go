// Package fastq reads the FASTQ files produced by the basecallers into
// grailbio's fastq.Read records.
package fastq

import (
	"bufio"
	"io"
	"strings"

	gfastq "github.com/grailbio/bio/encoding/fastq"
)

// Reader reads FASTQ records of any length. gfastq.Scanner is bounded by
// bufio.Scanner's 64KiB token limit, which ultra-long reads exceed.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader of the raw FASTQ data in r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1<<16)}
}

// Read returns the next record. At the end of the stream it returns
// io.EOF. A truncated record is gfastq.ErrShort and a record without
// its '@' or '+' line markers is gfastq.ErrInvalid.
func (r *Reader) Read() (read gfastq.Read, err error) {
	if read.ID, err = r.line(); err != nil {
		return read, err
	}
	if !strings.HasPrefix(read.ID, "@") {
		return read, gfastq.ErrInvalid
	}

	for _, field := range []*string{&read.Seq, &read.Unk, &read.Qual} {
		*field, err = r.line()
		if err == io.EOF {
			return read, gfastq.ErrShort
		}
		if err != nil {
			return read, err
		}
	}
	if !strings.HasPrefix(read.Unk, "+") {
		return read, gfastq.ErrInvalid
	}
	return read, nil
}

// line returns the next line without its terminator. A last line
// without a newline is still a line.
func (r *Reader) line() (string, error) {
	s, err := r.r.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// Name is the read's identifier: the ID line without its '@' and
// without anything after the first whitespace.
func Name(r *gfastq.Read) string {
	id := strings.TrimPrefix(r.ID, "@")
	if i := strings.IndexAny(id, " \t"); i >= 0 {
		return id[:i]
	}
	return id
}
