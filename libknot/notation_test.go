package libknot_test

import (
	"testing"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncoding(t *testing.T) {
	cases := []struct {
		notation  string
		enc       knot.Encoding
		formatted string
	}{
		{"braid: -1 3 1 3", knot.BraidWord{-1, 3, 1, 3}, "braid: -1 3 1 3"},
		{"braid: 1, 2, +1, 2", knot.BraidWord{1, 2, 1, 2}, "braid: 1 2 1 2"},
		{"gauss: 1 -3 2 -1 3 -2", knot.GaussCode{1, -3, 2, -1, 3, -2}, "gauss: 1 -3 2 -1 3 -2"},
		{"dt: 4 -6 8 -2", knot.DTCode{4, -6, 8, -2}, "dt: 4 -6 8 -2"},
		{"ogc: 1 -2 3 -4 2 -1 4 -3 / + + - -", f8OGC, "ogc: 1 -2 3 -4 2 -1 4 -3 / + + - -"},
		{"ogc: 1, -2, 3, -4, 2, -1, 4, -3 / +, +, -, -", f8OGC, "ogc: 1 -2 3 -4 2 -1 4 -3 / + + - -"},
		{"pd: [6,1,7,2] [2,5,3,6] [8,4,1,3] [4,8,5,7]", f8PD, "pd: [6,1,7,2] [2,5,3,6] [8,4,1,3] [4,8,5,7]"},
		{"pd: [6, 1, 7, 2], [2, 5, 3, 6], [8, 4, 1, 3], [4, 8, 5, 7]", f8PD, "pd: [6,1,7,2] [2,5,3,6] [8,4,1,3] [4,8,5,7]"},
	}
	for _, tc := range cases {
		enc, err := libknot.ParseEncoding(tc.notation)
		require.NoError(t, err, tc.notation)
		assert.Equal(t, tc.enc, enc, tc.notation)
		assert.Equal(t, tc.formatted, libknot.FormatEncoding(enc))

		again, err := libknot.ParseEncoding(libknot.FormatEncoding(enc))
		require.NoError(t, err)
		assert.Equal(t, enc, again)
	}

	for _, bad := range []string{
		"braid 1 2",
		"knot: 1 2",
		"pd: [1,2,3]",
		"ogc: 1 -1 / x",
	} {
		_, err := libknot.ParseEncoding(bad)
		assert.ErrorIs(t, err, knot.ErrBadEncoding, "%q", bad)
	}
}
