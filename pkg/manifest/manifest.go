package manifest

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
)

// Snapshot represents a generated set of PHP classes recorded in the manifest.
type Snapshot struct {
	Name    string   `yaml:"name" json:"name"`
	Version string   `yaml:"version" json:"version"`
	Profile string   `yaml:"profile" json:"profile"`
	Dir     string   `yaml:"dir" json:"dir"`
	Files   []string `yaml:"files" json:"files"`
}

// Manifest tracks the lifecycle of generated snapshots.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	return nil
}

// AddSnapshot records a snapshot, updating version pointers and de-duplicating
// existing entries that share the same name and version.
func (m *Manifest) AddSnapshot(s Snapshot) {
	if m.CurrentVersion != "" && m.CurrentVersion != s.Version {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = s.Version

	for i := range m.Snapshots {
		if m.Snapshots[i].Name == s.Name && m.Snapshots[i].Version == s.Version {
			m.Snapshots[i] = s
			return
		}
	}

	m.Snapshots = append(m.Snapshots, s)
}

// Snapshot returns the snapshot recorded for version, if present.
func (m *Manifest) Snapshot(version string) (Snapshot, bool) {
	for _, s := range m.Snapshots {
		if s.Version == version {
			return s, true
		}
	}
	return Snapshot{}, false
}

// SnapshotFiles returns the files associated with the provided version, if present.
func (m *Manifest) SnapshotFiles(version string) []string {
	s, _ := m.Snapshot(version)
	return s.Files
}
