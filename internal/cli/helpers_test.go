package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args, capturing
// stdout and stderr.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeBoardFile writes YAML content to a temp file and returns its path.
func writeBoardFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const demoBoard = `name: demo
stickers:
  - id: dog
    data:
      color: brown
  - id: cat
    lower_id: dog
  - id: hamster
    lower_id: cat
`

const emptyBoard = `name: empty
stickers: []
`

const cyclicBoard = `name: loop
stickers:
  - id: dog
    lower_id: cat
  - id: cat
    lower_id: dog
`
