package merge

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/asan-emirsaleh/duplex-basecall/internal/console"
	gzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	readA = "@a\nACGT\n+\n!!!!\n"
	readB = "@b\nGGCC\n+\nIIII\n"
	readC = "@c\nTTAA\n+\n5555\n"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	write(t, path, buf.String())
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRemovePrevious(t *testing.T) {
	var log bytes.Buffer
	c := console.New(&log)
	path := filepath.Join(t.TempDir(), "all_merged.fastq")

	require.NoError(t, RemovePrevious(c, path), "missing file isn't an error")
	assert.Empty(t, log.String())

	write(t, path, readA)
	require.NoError(t, RemovePrevious(c, path))
	assert.NoFileExists(t, path)
	assert.Contains(t, log.String(), path)
}

func TestOutputs(t *testing.T) {
	c := console.New(&bytes.Buffer{})
	dir := t.TempDir()
	source := filepath.Join(dir, "distant")
	write(t, filepath.Join(source, "pass", "fastq_runid_0.fastq"), readA)
	writeGzip(t, filepath.Join(source, "pass", "fastq_runid_1.fastq.gz"), readB)
	write(t, filepath.Join(source, "fail", "fastq_runid_0.fastq"), readC)
	write(t, filepath.Join(source, "sequencing_summary.txt"), "not merged")
	write(t, filepath.Join(source, "pass", "calls.bam"), "not merged")
	write(t, filepath.Join(source, "top_level.fastq"), "not merged")

	destination := filepath.Join(dir, "distant_merged.fastq")
	merged := filepath.Join(dir, "all_merged.fastq")

	// stale outputs of an earlier run
	write(t, destination, "stale")
	write(t, merged, readA)

	summary, err := Outputs(c, source, destination, merged)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(source, "fail", "fastq_runid_0.fastq"),
		filepath.Join(source, "pass", "fastq_runid_0.fastq"),
		filepath.Join(source, "pass", "fastq_runid_1.fastq.gz"),
	}, summary.Files)
	assert.Equal(t, int64(len(readC+readA+readB)), summary.Bytes)

	assert.Equal(t, readC+readA+readB, read(t, destination), "destination is replaced")
	assert.Equal(t, readA+readC+readA+readB, read(t, merged), "merged destination is appended to")
}

func TestOutputs_emptySource(t *testing.T) {
	c := console.New(&bytes.Buffer{})
	dir := t.TempDir()
	destination := filepath.Join(dir, "split_merged.fastq")
	merged := filepath.Join(dir, "all_merged.fastq")

	summary, err := Outputs(c, filepath.Join(dir, "split"), destination, merged)
	require.NoError(t, err)
	assert.Empty(t, summary.Files)
	assert.Equal(t, "", read(t, destination))
	assert.Equal(t, "", read(t, merged))
}

func TestConcat(t *testing.T) {
	dir := t.TempDir()
	split := filepath.Join(dir, "pod5s_splitduplex")
	write(t, filepath.Join(split, "a_pair_ids.txt"), "r1 r2\n")
	write(t, filepath.Join(split, "b_pair_ids.txt"), "r3 r4\n")
	write(t, filepath.Join(split, "b_split.pod5"), "signal")

	out := filepath.Join(dir, "split_duplex_pair_ids.txt")
	write(t, out, "stale\n")

	n, err := Concat(split, "*_pair_ids.txt", out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "r1 r2\nr3 r4\n", read(t, out))
}

func TestGlob(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run[1]")
	write(t, filepath.Join(dir, "a.bam"), "bam")
	write(t, filepath.Join(dir, "b.bam"), "bam")
	write(t, filepath.Join(dir, "b.bam.bai"), "index")

	tests := []struct {
		name    string
		dir     string
		pattern string
		want    []string
		wantErr bool
	}{
		{"literal dir", dir, "*.bam", []string{filepath.Join(dir, "a.bam"), filepath.Join(dir, "b.bam")}, false},
		{"no match", dir, "*.pod5", nil, false},
		{"missing dir", filepath.Join(dir, "missing"), "*.bam", nil, false},
		{"bad pattern", dir, "[", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Glob(tt.dir, tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputs_bracketsInPath(t *testing.T) {
	c := console.New(&bytes.Buffer{})
	dir := filepath.Join(t.TempDir(), "run[1]")
	source := filepath.Join(dir, "distant")
	write(t, filepath.Join(source, "pass", "a.fastq"), readA)

	destination := filepath.Join(dir, "distant_merged.fastq")
	merged := filepath.Join(dir, "all_merged.fastq")

	summary, err := Outputs(c, source, destination, merged)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(source, "pass", "a.fastq")}, summary.Files)
	assert.Equal(t, readA, read(t, merged))
}
