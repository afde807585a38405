package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupWorkspace writes a config that keeps every path under a temp dir and
// returns the config path and the data dir.
func setupWorkspace(t *testing.T, backend string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	config := fmt.Sprintf("log_level: error\ndata_dir: %s\nstore:\n  backend: %s\n", dir, backend)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))
	return path, dir
}

func execute(configPath string, args ...string) (string, string, error) {
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

var createdPattern = regexp.MustCompile(`Created (\S+)`)

func createdID(t *testing.T, stdout string) string {
	t.Helper()
	m := createdPattern.FindStringSubmatch(stdout)
	require.Len(t, m, 2, "output: %s", stdout)
	return m[1]
}
