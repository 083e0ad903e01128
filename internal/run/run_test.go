package run

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/asan-emirsaleh/duplex-basecall/internal/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_String(t *testing.T) {
	c := Command{Name: "duplex_tools", Args: []string{"pair", "--threads", "2", "calls.bam"}}
	assert.Equal(t, "duplex_tools pair --threads 2 calls.bam", c.String())
}

func TestExec_Run(t *testing.T) {
	console.SetColor(false)
	defer console.SetColor(true)

	tests := []struct {
		name       string
		cmd        Command
		wantErr    bool
		wantCode   int
		wantStderr string
		wantLog    string
	}{
		{
			"success",
			Command{Name: "sh", Args: []string{"-c", "exit 0"}},
			false,
			0,
			"",
			"Running command: sh -c exit 0\n",
		},
		{
			"non-zero exit",
			Command{Name: "sh", Args: []string{"-c", "echo 'bad pairs file' >&2; exit 3"}},
			true,
			3,
			"bad pairs file\n",
			"",
		},
		{
			"missing binary",
			Command{Name: "definitely-not-a-basecaller"},
			true,
			-1,
			"",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			e := NewExec(console.New(&log))

			err := e.Run(context.Background(), tt.cmd)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLog, log.String())
				return
			}

			var runErr *Error
			require.True(t, errors.As(err, &runErr))
			assert.Equal(t, tt.wantCode, runErr.ExitCode)
			assert.Equal(t, tt.wantStderr, runErr.Stderr)
			assert.NotContains(t, log.String(), "Error running command", "the failure is reported once, by the caller")
			if tt.wantStderr != "" {
				assert.Contains(t, log.String(), "Error output: "+tt.wantStderr)
			}
		})
	}
}

func TestExec_RunStdout(t *testing.T) {
	var log, out bytes.Buffer
	e := &Exec{Console: console.New(&log)}

	err := e.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "printf calls"}, Stdout: &out})
	require.NoError(t, err)
	assert.Equal(t, "calls", out.String())
	assert.Empty(t, log.String(), "commands aren't echoed when Echo is off")
}

func TestExec_RunCancelled(t *testing.T) {
	var log bytes.Buffer
	e := NewExec(console.New(&log))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	assert.Error(t, err)
}

func TestMissing(t *testing.T) {
	assert.Empty(t, Missing("sh"))
	assert.Equal(t, []string{"definitely-not-a-basecaller"}, Missing("sh", "definitely-not-a-basecaller"))
}
