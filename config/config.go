// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"bytes"
	_ "embed" // default settings
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Basecaller names the external tool that basecalls a pore's reads.
type Basecaller string

const (
	// Guppy is the legacy guppy_basecaller_duplex pipeline.
	Guppy Basecaller = "guppy"

	// Dorado is the dorado duplex pipeline.
	Dorado Basecaller = "dorado"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "DUPLEXCALL"

//go:embed settings.yaml
var defaultSettings []byte

// BinaryConfig holds the names (or paths) of the external executables.
type BinaryConfig struct {
	Dorado      string `mapstructure:"dorado"`
	Guppy       string `mapstructure:"guppy"`
	DuplexTools string `mapstructure:"duplex-tools"`
}

// PoreConfig maps a pore type to the basecaller and model used for it.
type PoreConfig struct {
	// Name of the pore, ex: "R10.4.1"
	Name string `mapstructure:"name"`

	// Basecaller used for reads from this pore
	Basecaller Basecaller `mapstructure:"basecaller"`

	// Model passed to the basecaller, a guppy .cfg or a dorado model name
	Model string `mapstructure:"model"`
}

// SamplesConfig is for the sample manifest.
type SamplesConfig struct {
	// DataDir is the root of the {sample}/{group}/{pore}/{run} tree
	DataDir string `mapstructure:"data-dir"`

	// Output is the path to the YAML manifest
	Output string `mapstructure:"output"`

	// Marker is the substring that marks a run's signal directories
	Marker string `mapstructure:"marker"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// Device passed to the basecallers, ex: "cuda:0"
	Device string `mapstructure:"device"`

	// Threads used when the command line doesn't set any
	Threads int `mapstructure:"threads"`

	// DefaultPore is used when the command line doesn't set one
	DefaultPore string `mapstructure:"pore"`

	Binaries BinaryConfig `mapstructure:"binaries"`

	Pores []PoreConfig `mapstructure:"pores"`

	Samples SamplesConfig `mapstructure:"samples"`
}

// Load reads the embedded default settings into viper and merges the
// settings file at path over them (if path is set). Environment variables
// with the DUPLEXCALL_ prefix take precedence over both.
func Load(path string) error {
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewReader(defaultSettings)); err != nil {
		return errors.Wrap(err, "failed to read default settings")
	}

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.MergeInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read settings file %s", path)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	return nil
}

// New returns a new Config struct populated by Viper settings
// (either from the embedded settings.yaml, a user settings file,
// or the environment)
func New() (*Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}
	return &c, nil
}

// PoreNames returns the names of all configured pores, sorted.
func (c *Config) PoreNames() []string {
	names := make([]string, 0, len(c.Pores))
	for _, p := range c.Pores {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Pore returns the settings for the pore with the given name. Names
// are matched case-insensitively; an empty name selects the default
// pore. A pore without a model can't be basecalled and is an error.
func (c *Config) Pore(name string) (PoreConfig, error) {
	if name == "" {
		name = c.DefaultPore
	}

	for _, p := range c.Pores {
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		if p.Model == "" {
			return p, errors.Errorf("no basecalling model is set for pore %s", p.Name)
		}
		if p.Basecaller != Guppy && p.Basecaller != Dorado {
			return p, errors.Errorf("unknown basecaller %q for pore %s", p.Basecaller, p.Name)
		}
		return p, nil
	}

	return PoreConfig{}, errors.Errorf(
		"unknown pore %q, expected one of: %s",
		name,
		strings.Join(c.PoreNames(), ", "),
	)
}

// Binary returns the configured executable for a basecaller.
func (c *Config) Binary(b Basecaller) string {
	if b == Dorado {
		return c.Binaries.Dorado
	}
	return c.Binaries.Guppy
}
