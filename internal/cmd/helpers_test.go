package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/flowtests/internal/filelock"
)

// harness is a self-contained working tree: config, subject list, resource
// root and a fake transform script, all under one temp dir.
type harness struct {
	root       string
	configPath string
	artifacts  string
	report     string
	resources  string
	dbPath     string
}

const fakeTransform = `#!/bin/sh
echo "1 2 3 4"
echo "not a metric line"
touch 0_warped_a.png 0_out.png
`

func newHarness(t *testing.T, subjectList string) *harness {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}

	root := t.TempDir()
	h := &harness{
		root:       root,
		configPath: filepath.Join(root, "config.yaml"),
		artifacts:  filepath.Join(root, "flowtests"),
		report:     filepath.Join(root, "flowtests.html"),
		resources:  filepath.Join(root, "Applications"),
		dbPath:     filepath.Join(root, "history.db"),
	}

	transform := filepath.Join(root, "flow")
	require.NoError(t, os.WriteFile(transform, []byte(fakeTransform), 0755))

	subjects := filepath.Join(root, "flowtests.txt")
	require.NoError(t, os.WriteFile(subjects, []byte(subjectList), 0644))

	cfg := fmt.Sprintf(`subject_list: %s
artifacts_dir: %s
report_path: %s
transform_path: %s
resource_root: %s
timeout: 30s
log_dir: %s
history:
  db_path: %s
`, subjects, h.artifacts, h.report, transform, h.resources, filepath.Join(root, "logs"), h.dbPath)
	require.NoError(t, os.WriteFile(h.configPath, []byte(cfg), 0644))

	return h
}

// addResources creates the resource directory for app
func (h *harness) addResources(t *testing.T, app string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(h.resources, app, "Contents", "Resources"), 0755))
}

// execute runs the root command with args plus --config
func (h *harness) execute(args ...string) (string, error) {
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, "--config", h.configPath))
	err := cmd.Execute()
	return buf.String(), err
}

// newHeldLock takes the lock at path as another run would and returns the
// release func.
func newHeldLock(t *testing.T, path string) func() {
	t.Helper()
	lock := filelock.NewFileLock(path)
	locked, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	return func() { lock.Unlock() }
}
