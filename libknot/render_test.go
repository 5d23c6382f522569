package libknot_test

import (
	"strings"
	"testing"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDOT(t *testing.T) {
	dot, err := libknot.ToDOT(f8PD)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dot, "digraph PD {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `c1 [label="+\n[6,1,7,2]"];`)
	assert.Contains(t, dot, `c3 [label="-\n[8,4,1,3]"];`)

	// one edge per arc; arc 1 leaves c3 and enters c1 over the top
	assert.Equal(t, 8, strings.Count(dot, " -> "))
	assert.Contains(t, dot, `c3 -> c1 [label="1", color="#1f77b4", style=solid];`)
	assert.Contains(t, dot, `c1 -> c2 [label="2", color="#d62728", style=dashed];`)

	_, err = libknot.ToDOT(knot.PDCode{{1, 2, 3, 4}})
	assert.ErrorIs(t, err, knot.ErrStructural)
}
