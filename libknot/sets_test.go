package libknot_test

import (
	"testing"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagramKey(t *testing.T) {
	for _, pd := range []knot.PDCode{f8PD, ex3CanonPD, {{2, 2, 1, 1}}, {}} {
		key, err := libknot.AppendDiagramKey([]byte{'D'}, pd)
		require.NoError(t, err)
		assert.Equal(t, byte('D'), key[0])
		assert.Equal(t, byte(len(pd)), key[1])

		back, err := libknot.ReadDiagramKey(key[1:])
		require.NoError(t, err)
		assert.Equal(t, pd, back)
	}

	small, err := libknot.AppendDiagramKey(nil, f8PD)
	require.NoError(t, err)
	large, err := libknot.AppendDiagramKey(nil, ex3CanonPD)
	require.NoError(t, err)
	assert.Less(t, string(small), string(large), "fewer crossings sort first")

	_, err = libknot.ReadDiagramKey(small[:len(small)-1])
	assert.ErrorIs(t, err, knot.ErrBadEncoding)
	_, err = libknot.ReadDiagramKey(append(small, 0))
	assert.ErrorIs(t, err, knot.ErrBadEncoding)
	_, err = libknot.ReadDiagramKey(nil)
	assert.ErrorIs(t, err, knot.ErrBadEncoding)

	_, err = libknot.AppendDiagramKey(nil, make(knot.PDCode, libknot.MaxKeyCrossings+1))
	assert.ErrorIs(t, err, knot.ErrTooManyCrossings)
}

func TestDropDupes(t *testing.T) {
	set := libknot.NewDropDupes()
	defer set.Close()

	add := func(notation string) bool {
		L, err := libknot.NewLinkFromString(notation)
		require.NoError(t, err)
		added, err := set.TryAddDiagram(L)
		require.NoError(t, err)
		return added
	}

	assert.True(t, add("ogc: 1 -2 3 -4 2 -1 4 -3 / + + - -"))
	assert.False(t, add("pd: [6,1,7,2] [2,5,3,6] [8,4,1,3] [4,8,5,7]"), "same canonical PD code")
	assert.True(t, add("braid: 1 1 1"))
	assert.True(t, add("pd: [1,7,2,6] [7,3,8,2] [3,11,4,10] [11,5,12,4] [14,5,1,6] [13,9,14,8] [12,9,13,10]"))
	assert.False(t, add("ogc: -1 2 -3 4 5 1 -2 6 7 3 -4 -7 -6 -5 / - - - - + - +"), "canonizes to the same diagram")

	set.Close()
	assert.True(t, add("braid: 1 1 1"), "closing empties the set")

	G, err := libknot.NewLink(knot.GaussCode{1, -3, 2, -1, 3, -2})
	require.NoError(t, err)
	_, err = set.TryAddDiagram(G)
	assert.ErrorIs(t, err, knot.ErrUnsupportedInput)
}
