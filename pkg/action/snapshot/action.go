package snapshot

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/phpmodelgen/pkg/action/generate"
	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/manifest"
	"github.com/cmmoran/phpmodelgen/pkg/parser"
)

// Generate writes a snapshot of the current PHP classes into
// <OutDir>/<version> and records it in the manifest.
func Generate(opts *parser.Options, manifestPath, snapshotName, snapshotVersion string) (*manifest.Snapshot, error) {
	if snapshotVersion == "" {
		return nil, errors.New("snapshot version is required")
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	o := *opts
	o.OutDir = filepath.Join(opts.OutDir, snapshotVersion)
	files, err := generate.Generate(&o)
	if err != nil {
		return nil, err
	}

	s := manifest.Snapshot{
		Name:    snapshotName,
		Version: snapshotVersion,
		Profile: o.Profile,
		Dir:     o.OutDir,
		Files:   files,
	}
	m.AddSnapshot(s)

	if err := m.Save(manifestPath); err != nil {
		return nil, err
	}

	return &s, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshots, and returns a textual diff of every class file that changed.
// Files present in only one snapshot diff against empty content.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", errors.New("no current/previous snapshots recorded")
	}

	current, ok := m.Snapshot(m.CurrentVersion)
	if !ok {
		return "", errors.Newf("snapshot %s not found in manifest", m.CurrentVersion)
	}
	previous, ok := m.Snapshot(m.PreviousVersion)
	if !ok {
		return "", errors.Newf("snapshot %s not found in manifest", m.PreviousVersion)
	}

	currentFiles, err := readFiles(current.Files)
	if err != nil {
		return "", errors.Wrap(err, "read current snapshot")
	}
	previousFiles, err := readFiles(previous.Files)
	if err != nil {
		return "", errors.Wrap(err, "read previous snapshot")
	}

	names := make([]string, 0, len(currentFiles)+len(previousFiles))
	for name := range currentFiles {
		names = append(names, name)
	}
	for name := range previousFiles {
		if _, ok := currentFiles[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		if diff := cmp.Diff(previousFiles[name], currentFiles[name]); diff != "" {
			sb.WriteString("--- " + name + "\n")
			sb.WriteString(diff)
		}
	}
	return sb.String(), nil
}

// readFiles maps the base name of every file to its content.
func readFiles(paths []string) (map[string]string, error) {
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		out[filepath.Base(p)] = string(data)
	}
	return out, nil
}
