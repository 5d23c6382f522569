package knot_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

func links(t *testing.T, notations ...string) []knot.Diagram {
	Xs := make([]knot.Diagram, len(notations))
	for i, notation := range notations {
		L, err := libknot.NewLinkFromString(notation)
		require.NoError(t, err)
		Xs[i] = L
	}
	return Xs
}

func TestStreamCanonizeAndPrint(t *testing.T) {
	Xs := links(t,
		"braid: 1 1 1",
		"braid: 1 1",
		"ogc: -1 2 -3 4 5 1 -2 6 7 3 -4 -7 -6 -5 / - - - - + - +",
		"gauss: 1 -3 2 -1 3 -2",
	)

	out := &bufCloser{}
	opts := knot.PrintOpts{
		Label: "canon",
		Braid: true,
	}
	n := knot.StreamDiagrams(Xs...).
		Canonize(1).
		Print(out, opts).
		PullAll()

	// the two-component closure and the handedness-free gauss code cannot be canonized
	assert.Equal(t, 2, n)
	assert.True(t, out.closed)
	assert.Equal(t,
		"canon,000001,n=3,braid=\"[1 1 1]\"\n"+
			"canon,000002,n=7,braid=\"[1 -2 -2 3 2 -2 -2 -1 -2 -3 2]\"\n",
		out.String())
}

func TestStreamDropDupes(t *testing.T) {
	set := libknot.NewDropDupes()
	defer set.Close()

	Xs := links(t,
		"ogc: 1 -2 3 -4 2 -1 4 -3 / + + - -",
		"braid: 1 1 1",
		"pd: [6,1,7,2] [2,5,3,6] [8,4,1,3] [4,8,5,7]",
		"braid: 1 1 1",
	)
	kept := knot.StreamDiagrams(Xs...).
		Canonize(3).
		AddTo(set).
		Collect()
	assert.Len(t, kept, 2)
}

func TestSelectFromStream(t *testing.T) {
	Xs := links(t,
		"braid: 1 1 1",
		"braid: 1 2 1 2",
		"pd: [1,7,2,6] [7,3,8,2] [3,11,4,10] [11,5,12,4] [14,5,1,6] [13,9,14,8] [12,9,13,10]",
	)

	sel := knot.DiagramSelector{MinCrossings: 4}
	hits := knot.StreamDiagrams(Xs...).SelectFromStream(sel).Collect()
	assert.Len(t, hits, 2)

	sel = knot.DiagramSelector{MaxCrossings: 10}
	hits = knot.StreamDiagrams(Xs...).SelectFromStream(sel).Collect()
	assert.Len(t, hits, 2)

	sel = knot.DiagramSelector{MaxMoves: 1}
	hits = knot.StreamDiagrams(Xs...).SelectFromStream(sel).Collect()
	require.Len(t, hits, 2)
	for _, X := range hits {
		assert.True(t, strings.HasPrefix(libknot.FormatEncoding(X.Encoding()), "braid:"))
	}

	assert.True(t, knot.DefaultDiagramSelector.SelectsCanonical(&knot.Canonical{}))
}

func TestSignAndCrossing(t *testing.T) {
	assert.Equal(t, knot.Negative, knot.SignOf(-7))
	assert.Equal(t, knot.Zero, knot.SignOf(0))
	assert.Equal(t, knot.Positive, knot.SignOf(3))
	assert.Equal(t, "-", knot.Negative.String())

	// with 2N = 8: [8,4,1,3] has its over strand leaving through slot 1
	c := knot.Crossing{8, 4, 1, 3}
	assert.Equal(t, knot.Negative, c.Sign(8))
	assert.Equal(t, [4]bool{true, false, false, true}, c.Entering(8))
	in, out := c.Over(8)
	assert.Equal(t, []int{3, 4}, []int{in, out})

	c = knot.Crossing{6, 1, 7, 2}
	assert.Equal(t, knot.Positive, c.Sign(8))
	in, out = c.Over(8)
	assert.Equal(t, []int{1, 2}, []int{in, out})

	// a single crossing wraps both strands
	assert.Equal(t, knot.Negative, knot.Crossing{2, 2, 1, 1}.Sign(2))
	assert.Equal(t, knot.Positive, knot.Crossing{2, 1, 1, 2}.Sign(2))

	pd := knot.PDCode{{2, 1, 1, 2}}
	dup := pd.Clone()
	dup[0][0] = 9
	assert.Equal(t, "[[2,1,1,2]]", pd.String())
	assert.Equal(t, 2, pd.MaxLabel())
}
