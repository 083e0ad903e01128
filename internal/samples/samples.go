// Package samples builds the YAML manifest of sequencing runs found under
// a data directory laid out as {sample}/{group}/{pore}/{run}/fast5_*.
package samples

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Sample lists a sample's runs by pore type.
type Sample struct {
	Pores map[string][]string `yaml:"pores"`
}

// Manifest maps sample names to their runs.
type Manifest map[string]*Sample

// Add records a run of sample on pore. Repeated runs are ignored.
func (m Manifest) Add(sample, pore, run string) {
	s, ok := m[sample]
	if !ok {
		s = &Sample{Pores: map[string][]string{}}
		m[sample] = s
	}
	for _, r := range s.Pores[pore] {
		if r == run {
			return
		}
	}
	s.Pores[pore] = append(s.Pores[pore], run)
}

// Runs returns the number of runs in the manifest.
func (m Manifest) Runs() (n int) {
	for _, s := range m {
		for _, runs := range s.Pores {
			n += len(runs)
		}
	}
	return
}

// Walk builds a Manifest from the directories under dataDir. A directory
// whose path contains marker and that lies at least four levels below
// dataDir contributes its first, third and fourth path elements as the
// sample, pore and run.
func Walk(dataDir, marker string) (Manifest, error) {
	m := Manifest{}

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dataDir, path)
		if err != nil || !strings.Contains(rel, marker) {
			return nil
		}

		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) < 4 {
			return nil
		}
		m.Add(parts[0], parts[2], parts[3])
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", dataDir)
	}

	return m, nil
}

// Marshal encodes the manifest as YAML.
func (m Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Write saves the manifest as YAML to path.
func Write(path string, m Manifest) error {
	b, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "failed to serialize samples")
	}
	return errors.Wrapf(os.WriteFile(path, b, 0644), "failed to write %s", path)
}

// Read loads a manifest written by Write.
func Read(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := Manifest{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return m, nil
}
