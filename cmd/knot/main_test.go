package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runKnot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInvariantsCommand(t *testing.T) {
	out, err := runKnot(t, "invariants", "braid: 1 2 1 2", "gauss: 1 -3 2 -1 3 -2")
	require.NoError(t, err)

	assert.Contains(t, out, "braid: 1 2 1 2\n")
	assert.Contains(t, out, "  signature      -2\n")
	assert.Contains(t, out, "  alexander      t^2 - t + 1\n")
	assert.Contains(t, out, "  determinant    3\n")
	assert.Contains(t, out, "  alternating    true\n")
	assert.Contains(t, out, "  jones          n/a (")
}

func TestCanonizeCommand(t *testing.T) {
	out, err := runKnot(t, "canonize", "--dedupe",
		"pd: [1,7,2,6] [7,3,8,2] [3,11,4,10] [11,5,12,4] [14,5,1,6] [13,9,14,8] [12,9,13,10]",
		"ogc: -1 2 -3 4 5 1 -2 6 7 3 -4 -7 -6 -5 / - - - - + - +",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "canon,000001,n=7,"), lines[0])
	assert.Contains(t, lines[0], `braid="[1 -2 -2 3 2 -2 -2 -1 -2 -3 2]"`)

	_, err = runKnot(t, "canonize", "braid: 1 x")
	assert.Error(t, err)
}

func TestRenderDOT(t *testing.T) {
	out, err := runKnot(t, "render", "--dot", "braid: 1 1 1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph PD {"))
	assert.Equal(t, 6, strings.Count(out, " -> "))
}

func TestCatalogCommands(t *testing.T) {
	t.Setenv("KNOT_CATALOG_PATH", filepath.Join(t.TempDir(), "knots.db"))

	out, err := runKnot(t, "catalog", "add", "braid: 1 1 1", "braid: 1 2 1 2", "braid: 1 1 1")
	require.NoError(t, err)
	assert.Equal(t, "added 2 of 3 diagrams\n", out)

	out, err = runKnot(t, "catalog", "list", "--max", "3")
	require.NoError(t, err)
	assert.Equal(t, "catalog,000001,n=3,braid=\"braid: 1 1 1\",braid=\"[1 1 1]\"\n", out)
}

func TestCatalogRequiresPath(t *testing.T) {
	t.Setenv("KNOT_CATALOG_PATH", "")
	_, err := runKnot(t, "catalog", "list")
	assert.Error(t, err)
}
