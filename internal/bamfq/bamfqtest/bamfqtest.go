// Package bamfqtest builds small unaligned BAMs, shaped like dorado's
// output, for tests.
package bamfqtest

import (
	"bytes"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"
)

// Record returns an unmapped record. qual holds phred scores (not +33).
// A nil dx leaves the record without a dx tag.
func Record(t *testing.T, name, seq string, qual []byte, dx *int8, flags sam.Flags) *sam.Record {
	t.Helper()

	var aux []sam.Aux
	if dx != nil {
		a, err := sam.NewAux(sam.NewTag("dx"), *dx)
		require.NoError(t, err)
		aux = append(aux, a)
	}

	rec, err := sam.NewRecord(name, nil, nil, -1, -1, 0, 0, nil, []byte(seq), qual, aux)
	require.NoError(t, err)
	rec.Flags = sam.Unmapped | flags
	return rec
}

// DX returns a pointer to a dx tag value.
func DX(v int8) *int8 {
	return &v
}

// BAM encodes records as a BAM file.
func BAM(t *testing.T, records ...*sam.Record) []byte {
	t.Helper()

	h, err := sam.NewHeader(nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := bam.NewWriter(&buf, h, 1)
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}
