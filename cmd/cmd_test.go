package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/asan-emirsaleh/duplex-basecall/internal/duplex"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_exitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"param", &duplex.ParamError{Msg: "--threads must be positive, got 0"}, 2},
		{"wrapped param", errors.Wrap(&duplex.ParamError{Msg: "bad pore"}, "basecall"), 2},
		{"file", &duplex.FileError{Path: "pod5", Hint: "Directory not found"}, 1},
		{"other", fmt.Errorf("exit status 3"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func Test_underscores(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("pod5-dir", "", "")
	flags.SetNormalizeFunc(underscores)

	require.NoError(t, flags.Parse([]string{"--pod5_dir", "pod5"}))
	got, err := flags.GetString("pod5-dir")
	require.NoError(t, err)
	assert.Equal(t, "pod5", got)
}

func Test_filePrepender(t *testing.T) {
	assert.Contains(t, filePrepender("docs/duplexcall.md"), "permalink: /")
	assert.Contains(t, filePrepender("docs/duplexcall_merge.md"), "parent: duplexcall\nnav_order: 2")
	assert.Empty(t, filePrepender("docs/duplexcall_completion.md"))

	assert.Equal(t, "/", linkHandler("duplexcall.md"))
	assert.Equal(t, "duplexcall_pairs", linkHandler("duplexcall_pairs.md"))
}

func TestRootCmd_samples(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data", "HG002", "ont", "R10.4.1", "run_02", "fast5_pass"), 0755))
	out := filepath.Join(root, "samples.yaml")

	var stderr bytes.Buffer
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs([]string{"samples", "--no-color", "--data_dir", filepath.Join(root, "data"), "-o", out})
	defer RootCmd.SetArgs(nil)

	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, stderr.String(), "Samples information saved to "+out)

	contents, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "R10.4.1")
	assert.Contains(t, string(contents), "run_02")
}

func TestRootCmd_paramErrors(t *testing.T) {
	defer RootCmd.SetArgs(nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing directories", []string{"basecall", "--no-color"}, "--pod5-dir is required"},
		{"missing BAM", []string{"export", "--no-color"}, "--in is required"},
		{"unknown flag", []string{"pairs", "--bogus-flag"}, "unknown flag: --bogus-flag"},
		{"bad value", []string{"basecall", "--threads", "x"}, "invalid argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RootCmd.SetOut(&bytes.Buffer{})
			RootCmd.SetErr(&bytes.Buffer{})
			RootCmd.SetArgs(tt.args)

			err := RootCmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}
