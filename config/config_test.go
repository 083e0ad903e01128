// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, path string) *Config {
	t.Helper()
	require.NoError(t, Load(path))
	c, err := New()
	require.NoError(t, err)
	return c
}

func TestNew_defaults(t *testing.T) {
	c := loadConfig(t, "")

	assert.Equal(t, "cuda:0", c.Device)
	assert.Equal(t, 4, c.Threads)
	assert.Equal(t, "R9.4.1", c.DefaultPore)
	assert.Equal(t, "dorado", c.Binaries.Dorado)
	assert.Equal(t, "guppy_basecaller_duplex", c.Binaries.Guppy)
	assert.Equal(t, "duplex_tools", c.Binaries.DuplexTools)
	assert.Equal(t, "_data", c.Samples.DataDir)
	assert.Equal(t, "samples.yaml", c.Samples.Output)
	assert.Equal(t, "fast5", c.Samples.Marker)
	assert.Equal(t, []string{"R10.0", "R10.3", "R10.4.0", "R10.4.1", "R9.4.1"}, c.PoreNames())
}

func TestLoad_settingsFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("threads: 16\nbinaries:\n  dorado: /opt/dorado/bin/dorado\n"), 0644))

	c := loadConfig(t, settings)
	assert.Equal(t, 16, c.Threads)
	assert.Equal(t, "/opt/dorado/bin/dorado", c.Binaries.Dorado)
	assert.Equal(t, "guppy_basecaller_duplex", c.Binaries.Guppy, "unset keys keep their defaults")

	// reloading without the file restores the defaults
	c = loadConfig(t, "")
	assert.Equal(t, 4, c.Threads)
}

func TestLoad_missingSettingsFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_env(t *testing.T) {
	t.Setenv("DUPLEXCALL_DEVICE", "cpu")

	c := loadConfig(t, "")
	assert.Equal(t, "cpu", c.Device)
}

func TestConfig_Pore(t *testing.T) {
	c := loadConfig(t, "")

	tests := []struct {
		name       string
		pore       string
		wantName   string
		wantCaller Basecaller
		wantModel  string
		wantErr    bool
	}{
		{
			"default pore",
			"",
			"R9.4.1",
			Guppy,
			"dna_r9.4.1_450bps_sup.cfg",
			false,
		},
		{
			"case insensitive",
			"r10.4.1",
			"R10.4.1",
			Dorado,
			"dna_r10.4.1_e8.2_400bps_sup@v4.2.0",
			false,
		},
		{
			"pore without a model",
			"R10.3",
			"R10.3",
			Guppy,
			"",
			true,
		},
		{
			"unknown pore",
			"R11",
			"",
			"",
			"",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Pore(tt.pore)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantCaller, got.Basecaller)
			assert.Equal(t, tt.wantModel, got.Model)
		})
	}
}

func TestConfig_Binary(t *testing.T) {
	c := loadConfig(t, "")
	assert.Equal(t, "dorado", c.Binary(Dorado))
	assert.Equal(t, "guppy_basecaller_duplex", c.Binary(Guppy))
}
