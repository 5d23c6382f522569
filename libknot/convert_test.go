package libknot_test

import (
	"testing"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	f8OGC = knot.OrientedGaussCode{
		Gauss: knot.GaussCode{1, -2, 3, -4, 2, -1, 4, -3},
		Signs: []knot.Sign{knot.Positive, knot.Positive, knot.Negative, knot.Negative},
	}
	f8PD = knot.PDCode{{6, 1, 7, 2}, {2, 5, 3, 6}, {8, 4, 1, 3}, {4, 8, 5, 7}}

	ex3OGC = knot.OrientedGaussCode{
		Gauss: knot.GaussCode{-1, 2, -3, 4, 5, 1, -2, 6, 7, 3, -4, -7, -6, -5},
		Signs: []knot.Sign{
			knot.Negative, knot.Negative, knot.Negative, knot.Negative,
			knot.Positive, knot.Negative, knot.Positive,
		},
	}
	ex3PD = knot.PDCode{
		{1, 7, 2, 6}, {7, 3, 8, 2}, {3, 11, 4, 10}, {11, 5, 12, 4}, {14, 5, 1, 6}, {13, 9, 14, 8}, {12, 9, 13, 10},
	}
)

func TestBraidConversions(t *testing.T) {
	cases := []struct {
		braid knot.BraidWord
		dt    knot.DTCode
		gauss knot.GaussCode
		pd    knot.PDCode
		ogc   knot.OrientedGaussCode
	}{
		{
			braid: knot.BraidWord{1, 2, 1, 2},
			dt:    knot.DTCode{4, -6, 8, -2},
			gauss: knot.GaussCode{1, 4, -2, -1, 3, 2, -4, -3},
			pd:    knot.PDCode{{4, 1, 5, 2}, {7, 2, 8, 3}, {8, 5, 1, 6}, {3, 6, 4, 7}},
			ogc: knot.OrientedGaussCode{
				Gauss: knot.GaussCode{1, 2, -3, -1, 4, 3, -2, -4},
				Signs: []knot.Sign{knot.Positive, knot.Positive, knot.Positive, knot.Positive},
			},
		},
		{
			braid: knot.BraidWord{1, 1, 1},
			dt:    knot.DTCode{4, 6, 2},
			gauss: knot.GaussCode{1, -3, 2, -1, 3, -2},
			pd:    knot.PDCode{{4, 1, 5, 2}, {2, 5, 3, 6}, {6, 3, 1, 4}},
			ogc: knot.OrientedGaussCode{
				Gauss: knot.GaussCode{1, -2, 3, -1, 2, -3},
				Signs: []knot.Sign{knot.Positive, knot.Positive, knot.Positive},
			},
		},
		{
			braid: knot.BraidWord{-1, 2, -1, 2},
			dt:    knot.DTCode{4, 6, 8, 2},
			pd:    knot.PDCode{{4, 2, 5, 1}, {2, 7, 3, 8}, {8, 6, 1, 5}, {6, 3, 7, 4}},
			ogc: knot.OrientedGaussCode{
				Gauss: knot.GaussCode{1, -2, 3, -1, 4, -3, 2, -4},
				Signs: []knot.Sign{knot.Negative, knot.Positive, knot.Positive, knot.Negative},
			},
		},
		{
			braid: knot.BraidWord{-1},
			pd:    knot.PDCode{{2, 2, 1, 1}},
			ogc: knot.OrientedGaussCode{
				Gauss: knot.GaussCode{1, -1},
				Signs: []knot.Sign{knot.Negative},
			},
		},
		{
			braid: knot.BraidWord{1},
			pd:    knot.PDCode{{2, 1, 1, 2}},
			ogc: knot.OrientedGaussCode{
				Gauss: knot.GaussCode{1, -1},
				Signs: []knot.Sign{knot.Positive},
			},
		},
	}

	for _, tc := range cases {
		t.Run(libknot.FormatEncoding(tc.braid), func(t *testing.T) {
			if tc.dt != nil {
				dt, err := libknot.BraidToDT(tc.braid)
				require.NoError(t, err)
				assert.Equal(t, tc.dt, dt)
			}
			if tc.gauss != nil {
				gauss, err := libknot.BraidToGauss(tc.braid)
				require.NoError(t, err)
				assert.Equal(t, tc.gauss, gauss)
			}

			pd, err := libknot.BraidToPD(tc.braid)
			require.NoError(t, err)
			assert.Equal(t, tc.pd, pd)
			require.NoError(t, libknot.ValidatePD(pd))

			ogc, err := libknot.PDToOGC(pd)
			require.NoError(t, err)
			assert.Equal(t, tc.ogc, ogc)

			// crossings come back in order of first visit rather than braid order
			back, err := libknot.OGCToPD(ogc)
			require.NoError(t, err)
			assert.ElementsMatch(t, pd, back)
		})
	}
}

func TestBraidConversionErrors(t *testing.T) {
	_, err := libknot.BraidToPD(knot.BraidWord{1, 1})
	assert.ErrorIs(t, err, knot.ErrMultiComponent)

	_, err = libknot.BraidToDT(knot.BraidWord{1, 3})
	assert.ErrorIs(t, err, knot.ErrMultiComponent)

	_, err = libknot.BraidToPD(knot.BraidWord{1, 0, 1})
	assert.ErrorIs(t, err, knot.ErrBadEncoding)
}

func TestDTGaussRoundTrip(t *testing.T) {
	for _, dt := range []knot.DTCode{
		{4, -6, 8, -2},
		{4, 6, 2},
		{4, 6, 8, 2},
		{6, 8, 10, 2, 4},
	} {
		gauss, err := libknot.DTToGauss(dt)
		require.NoError(t, err)
		assert.Len(t, gauss, 2*len(dt))

		back, err := libknot.GaussToDT(gauss)
		require.NoError(t, err)
		assert.Equal(t, dt, back)
	}

	_, err := libknot.DTToGauss(knot.DTCode{3, 6, 2})
	assert.ErrorIs(t, err, knot.ErrBadEncoding)

	_, err = libknot.DTToGauss(knot.DTCode{4, 4, 2})
	assert.ErrorIs(t, err, knot.ErrBadEncoding)

	_, err = libknot.GaussToDT(knot.GaussCode{1, -2, 3, -1})
	assert.ErrorIs(t, err, knot.ErrBadEncoding)
}

func TestOGCToPD(t *testing.T) {
	pd, err := libknot.OGCToPD(f8OGC)
	require.NoError(t, err)
	assert.Equal(t, f8PD, pd)

	pd, err = libknot.OGCToPD(ex3OGC)
	require.NoError(t, err)
	assert.Equal(t, ex3PD, pd)

	ogc, err := libknot.PDToOGC(ex3PD)
	require.NoError(t, err)
	assert.Equal(t, ex3OGC, ogc)

	gauss, err := libknot.PDToGauss(f8PD)
	require.NoError(t, err)
	assert.Equal(t, f8OGC.Gauss, gauss)
}

func TestValidatePD(t *testing.T) {
	assert.NoError(t, libknot.ValidatePD(f8PD))

	bad := f8PD.Clone()
	bad[0][0] = 5
	assert.ErrorIs(t, libknot.ValidatePD(bad), knot.ErrStructural)

	bad = f8PD.Clone()
	bad[3][2] = 9
	assert.ErrorIs(t, libknot.ValidatePD(bad), knot.ErrStructural)
}
