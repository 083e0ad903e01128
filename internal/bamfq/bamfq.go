// Package bamfq exports the unaligned BAM written by dorado duplex to
// FASTQ, routing duplex and simplex reads to separate outputs.
package bamfq

import (
	"bufio"
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	gfastq "github.com/grailbio/bio/encoding/fastq"
	"github.com/pkg/errors"
)

// Class is the kind of read a BAM record holds, from dorado's dx tag.
type Class int

const (
	// Simplex is a read basecalled from a single strand (dx:i:0).
	Simplex Class = iota

	// Duplex is a read basecalled from a template/complement pair (dx:i:1).
	Duplex

	// Parent is a simplex read that has a duplex offspring (dx:i:-1).
	Parent
)

func (c Class) String() string {
	switch c {
	case Duplex:
		return "duplex"
	case Parent:
		return "simplex (duplex parent)"
	default:
		return "simplex"
	}
}

var dxTag = sam.NewTag("dx")

// Classify returns a record's Class. Records without a dx tag are simplex.
func Classify(r *sam.Record) Class {
	aux := r.AuxFields.Get(dxTag)
	if aux == nil {
		return Simplex
	}

	var dx int64
	switch v := aux.Value().(type) {
	case int8:
		dx = int64(v)
	case uint8:
		dx = int64(v)
	case int16:
		dx = int64(v)
	case uint16:
		dx = int64(v)
	case int32:
		dx = int64(v)
	case uint32:
		dx = int64(v)
	default:
		return Simplex
	}

	switch dx {
	case 1:
		return Duplex
	case -1:
		return Parent
	default:
		return Simplex
	}
}

// Counts are the number of records exported per class.
type Counts struct {
	Duplex  int
	Simplex int
	Parent  int

	// Skipped secondary and supplementary records
	Skipped int
}

// Total is the number of exported records.
func (c Counts) Total() int {
	return c.Duplex + c.Simplex + c.Parent
}

// Export reads the BAM stream r and writes duplex reads, as FASTQ, to
// duplex and simplex reads (with or without duplex offspring) to simplex.
// Either writer may be nil to drop that class.
func Export(r io.Reader, duplex, simplex io.Writer) (Counts, error) {
	br, err := bam.NewReader(r, 1)
	if err != nil {
		return Counts{}, errors.Wrap(err, "failed to read BAM")
	}
	defer br.Close()

	return export(br, duplex, simplex)
}

func export(br *bam.Reader, duplex, simplex io.Writer) (Counts, error) {
	var counts Counts

	var duplexW, simplexW *gfastq.Writer
	if duplex != nil {
		duplexW = gfastq.NewWriter(duplex)
	}
	if simplex != nil {
		simplexW = gfastq.NewWriter(simplex)
	}

	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return counts, errors.Wrap(err, "failed to read BAM record")
		}

		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			counts.Skipped++
			continue
		}

		w := simplexW
		switch Classify(rec) {
		case Duplex:
			counts.Duplex++
			w = duplexW
		case Parent:
			counts.Parent++
		default:
			counts.Simplex++
		}
		if w == nil {
			continue
		}

		read := ToRead(rec)
		if err := w.Write(&read); err != nil {
			return counts, errors.Wrapf(err, "failed to write read %s", rec.Name)
		}
	}

	return counts, nil
}

// ExportFile exports the BAM at in to FASTQ files at duplexPath and
// simplexPath. An empty path drops that class. Outputs are only created
// once the BAM header has been read, and are removed if the export fails.
func ExportFile(in, duplexPath, simplexPath string) (counts Counts, err error) {
	f, err := os.Open(in)
	if err != nil {
		return counts, errors.Wrapf(err, "failed to open BAM %s", in)
	}
	defer f.Close()

	br, err := bam.NewReader(bufio.NewReader(f), 1)
	if err != nil {
		return counts, errors.Wrapf(err, "failed to read BAM %s", in)
	}
	defer br.Close()

	var outputs []*output
	open := func(path string) (io.Writer, error) {
		if path == "" {
			return nil, nil
		}
		o, err := create(path)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, o)
		return o.w, nil
	}
	defer func() {
		for _, o := range outputs {
			if cerr := o.close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			for _, o := range outputs {
				os.Remove(o.f.Name())
			}
		}
	}()

	duplex, err := open(duplexPath)
	if err != nil {
		return counts, err
	}
	simplex, err := open(simplexPath)
	if err != nil {
		return counts, err
	}

	return export(br, duplex, simplex)
}

type output struct {
	f *os.File
	w *bufio.Writer
}

func create(path string) (*output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", path)
	}
	return &output{f: f, w: bufio.NewWriter(f)}, nil
}

func (o *output) close() error {
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return errors.Wrapf(err, "failed to write %s", o.f.Name())
	}
	return o.f.Close()
}

// ToRead converts a BAM record to a FASTQ read. Reverse strand records
// are reverse complemented back to the sequenced strand.
func ToRead(r *sam.Record) gfastq.Read {
	seq := r.Seq.Expand()
	qual := make([]byte, len(r.Qual))
	for i, q := range r.Qual {
		if q == 0xff {
			q = 0 // missing quality
		}
		qual[i] = q + 33
	}
	if len(qual) != len(seq) {
		qual = make([]byte, len(seq))
		for i := range qual {
			qual[i] = '!'
		}
	}

	if r.Flags&sam.Reverse != 0 {
		reverseComplement(seq)
		reverse(qual)
	}

	return gfastq.Read{
		ID:   "@" + r.Name,
		Seq:  string(seq),
		Unk:  "+",
		Qual: string(qual),
	}
}

var complement = [256]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'N': 'N',
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a', 'n': 'n',
	'R': 'Y', 'Y': 'R', 'K': 'M', 'M': 'K', 'S': 'S', 'W': 'W',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', '=': '=',
}

func reverseComplement(s []byte) {
	for i := range s {
		if c := complement[s[i]]; c != 0 {
			s[i] = c
		}
	}
	reverse(s)
}

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
