package libknot_test

import (
	"testing"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ex3CanonPD = knot.PDCode{
		{1, 9, 2, 8}, {9, 3, 10, 2}, {5, 13, 6, 12}, {13, 7, 14, 6}, {22, 7, 1, 8}, {19, 11, 20, 10},
		{16, 11, 17, 12}, {18, 4, 19, 3}, {17, 4, 18, 5}, {21, 14, 22, 15}, {20, 16, 21, 15},
	}
	ex3CanonCircles = [][]int{
		{1, 9, 3, 19, 11, 17, 5, 13, 7},
		{2, 10, 20, 16, 12, 6, 14, 22, 8},
		{4, 18},
		{15, 21},
	}
)

func TestBadRegions(t *testing.T) {
	bad, err := libknot.BadRegions(f8PD)
	require.NoError(t, err)
	assert.Empty(t, bad)

	bad, err = libknot.BadRegions(ex3PD)
	require.NoError(t, err)
	require.Len(t, bad, 2)
	assert.Equal(t, [3]int{3, 13, int(knot.Negative)}, [3]int{bad[0].A, bad[0].B, int(bad[0].Sign)})
	assert.Equal(t, [3]int{5, 9, int(knot.Negative)}, [3]int{bad[1].A, bad[1].B, int(bad[1].Sign)})
	assert.Less(t, bad[0].Region, bad[1].Region)
}

func TestVogelMove(t *testing.T) {
	_, err := libknot.VogelMove(f8PD)
	assert.ErrorIs(t, err, knot.ErrNoMoveRequired)

	before := ex3PD.Clone()
	moved, err := libknot.VogelMove(ex3PD)
	require.NoError(t, err)
	assert.Equal(t, before, ex3PD, "input must not be modified")

	assert.Equal(t, knot.PDCode{
		{1, 9, 2, 8}, {9, 3, 10, 2}, {5, 13, 6, 12}, {13, 7, 14, 6}, {18, 7, 1, 8},
		{17, 11, 18, 10}, {14, 11, 15, 12}, {16, 4, 17, 3}, {15, 4, 16, 5},
	}, moved)
	require.NoError(t, libknot.ValidatePD(moved))

	bad, err := libknot.BadRegions(moved)
	require.NoError(t, err)
	require.Len(t, bad, 1)
	assert.Equal(t, 14, bad[0].A)
	assert.Equal(t, 18, bad[0].B)
	assert.Equal(t, knot.Positive, bad[0].Sign)
}

func TestCanonize(t *testing.T) {
	canon, err := libknot.Canonize(ex3PD, libknot.DefaultCanonizeOpts)
	require.NoError(t, err)
	assert.Equal(t, 2, canon.Moves)
	assert.Len(t, canon.PD, len(ex3PD)+2*canon.Moves)
	assert.Equal(t, ex3CanonPD, canon.PD)
	assert.Equal(t, ex3CanonCircles, canon.Circles)
	assert.Len(t, canon.Regions, len(canon.PD)+2)

	bad, err := libknot.BadRegions(canon.PD)
	require.NoError(t, err)
	assert.Empty(t, bad)

	again, err := libknot.Canonize(canon.PD, libknot.DefaultCanonizeOpts)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Moves)
	assert.Equal(t, canon.PD, again.PD)
	assert.Equal(t, canon.Circles, again.Circles)
	assert.Equal(t, canon.Regions, again.Regions)

	canon, err = libknot.Canonize(f8PD, libknot.DefaultCanonizeOpts)
	require.NoError(t, err)
	assert.Equal(t, 0, canon.Moves)
	assert.Equal(t, f8PD, canon.PD)

	_, err = libknot.Canonize(ex3PD, libknot.CanonizeOpts{MaxMoves: 1})
	assert.ErrorIs(t, err, knot.ErrMoveLimit)

	_, err = libknot.Canonize(knot.PDCode{{1, 2, 3, 4}}, libknot.DefaultCanonizeOpts)
	assert.ErrorIs(t, err, knot.ErrStructural)
}

func TestSeifertToBraid(t *testing.T) {
	w, err := libknot.SeifertToBraid(f8PD, libknot.DefaultCanonizeOpts)
	require.NoError(t, err)
	assert.Equal(t, knot.BraidWord{1, -2, 1, -2}, w)

	w, err = libknot.SeifertToBraid(ex3PD, libknot.DefaultCanonizeOpts)
	require.NoError(t, err)
	assert.Equal(t, knot.BraidWord{1, -2, -2, 3, 2, -2, -2, -1, -2, -3, 2}, w)
	assert.Len(t, w, len(ex3CanonPD))

	// the closure is a trefoil: t^3 (t^2 - t + 1)
	alex, err := libknot.AlexanderPolynomial(w)
	require.NoError(t, err)
	assert.Equal(t, libknot.Poly{0, 0, 0, 1, -1, 1}, alex)
	sig, err := libknot.Signature(w)
	require.NoError(t, err)
	assert.Equal(t, 2, sig)
}
