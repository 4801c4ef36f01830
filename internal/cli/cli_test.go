package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defsHCL = `
dataset {
  vertices = 2
  edges    = 3

  raw "edge" "weight" {
    type   = "float32"
    values = [1, 2, 3]
  }
}

column "edge" "doubledWeight" {
  type       = "float32"
  component  = "edge"
  depends_on = ["edge:weight"]
  value      = deps[0] * 2
}
`

func writeDefs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defs.hcl")
	require.NoError(t, os.WriteFile(path, []byte(defsHCL), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := NewRootCommand(&out, &logs)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(&bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, "colengine", cmd.Use)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
		assert.NotNil(t, sub.RunE, sub.Name())
	}
	for _, want := range []string{"eval", "graph", "export", "serve"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestEval(t *testing.T) {
	path := writeDefs(t)

	out, err := execute(t, "eval", "-c", "edge:doubledWeight", path)
	require.NoError(t, err)
	assert.Contains(t, out, "edge:doubledWeight")
	assert.Contains(t, out, "float32[2 4 6]")

	out, err = execute(t, "eval", "-c", "edge:doubledWeight", "--index", "1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "float32[4]")
}

func TestEval_Errors(t *testing.T) {
	path := writeDefs(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "unknown flag", args: []string{"eval", "--nope", path}, wantCode: 2},
		{name: "bad log level", args: []string{"eval", "--log-level", "loud", path}, wantCode: 2},
		{name: "nothing to load", args: []string{"eval"}, wantCode: 2},
		{name: "column and kind", args: []string{"eval", "-c", "edge:weight", "--kind", "edge", path}, wantCode: 2},
		{name: "bad identity", args: []string{"eval", "-c", "weight", path}, wantCode: 2},
		{name: "unknown column", args: []string{"eval", "-c", "edge:missing", path}},
		{name: "index out of range", args: []string{"eval", "-c", "edge:doubledWeight", "-i", "9", path}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			var exitErr *ExitError
			if tc.wantCode == 0 {
				assert.False(t, errors.As(err, &exitErr), "runtime failures are not usage errors")
				return
			}
			require.True(t, errors.As(err, &exitErr), "got %v", err)
			assert.Equal(t, tc.wantCode, exitErr.Code)
		})
	}
}

func TestGraph(t *testing.T) {
	out, err := execute(t, "graph", writeDefs(t))
	require.NoError(t, err)
	assert.Contains(t, out, "COLUMN")
	assert.Contains(t, out, "edge:doubledWeight")
	assert.Contains(t, out, "edge:weight")
	assert.Contains(t, out, "scalar")
	assert.Contains(t, out, "2 nodes, 1 edges")
}

func TestExport(t *testing.T) {
	path := writeDefs(t)
	dest := filepath.Join(t.TempDir(), "edges.arrow")

	out, err := execute(t, "export", "--kind", "edge", "-o", dest, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 columns")

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = execute(t, "export", path)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
}

func TestServe_RequiresPort(t *testing.T) {
	_, err := execute(t, "serve", writeDefs(t))
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
}
