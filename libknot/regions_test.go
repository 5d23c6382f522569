package libknot_test

import (
	"testing"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCirclesAndRegions(t *testing.T) {
	cases := []struct {
		name    string
		pd      knot.PDCode
		circles [][]int
		regions [][]int
	}{
		{
			name:    "braid 1 2 1 2",
			pd:      knot.PDCode{{4, 1, 5, 2}, {7, 2, 8, 3}, {8, 5, 1, 6}, {3, 6, 4, 7}},
			circles: [][]int{{1, 5}, {2, 8, 6, 4}, {3, 7}},
			regions: [][]int{{1, 5}, {-1, 6, 4}, {2, 8, -5}, {-2, -4, 7}, {3, -6, -8}, {-3, -7}},
		},
		{
			name:    "braid 1 1 1",
			pd:      knot.PDCode{{4, 1, 5, 2}, {2, 5, 3, 6}, {6, 3, 1, 4}},
			circles: [][]int{{1, 5, 3}, {2, 6, 4}},
			regions: [][]int{{1, 5, 3}, {-1, 4}, {2, -5}, {-2, -4, -6}, {-3, 6}},
		},
		{
			name:    "braid -1 2 -1 2",
			pd:      knot.PDCode{{4, 2, 5, 1}, {2, 7, 3, 8}, {8, 6, 1, 5}, {6, 3, 7, 4}},
			circles: [][]int{{1, 5}, {2, 8, 6, 4}, {3, 7}},
			regions: [][]int{{1, -4, -6}, {-1, -5}, {2, -7, 4}, {-2, 5, -8}, {3, 7}, {-3, 8, 6}},
		},
		{
			name:    "braid -1",
			pd:      knot.PDCode{{2, 2, 1, 1}},
			circles: [][]int{{1}, {2}},
			regions: [][]int{{1, -2}, {-1}, {2}},
		},
		{
			name:    "braid 1",
			pd:      knot.PDCode{{2, 1, 1, 2}},
			circles: [][]int{{1}, {2}},
			regions: [][]int{{1}, {-1, 2}, {-2}},
		},
		{
			name:    "figure eight",
			pd:      f8PD,
			circles: [][]int{{1, 7, 5, 3}, {2, 6}, {4, 8}},
			regions: [][]int{{1, 7, -4}, {-1, -3, 6}, {2, -5, -7}, {-2, -6}, {3, -8, 5}, {4, 8}},
		},
		{
			name:    "ex3",
			pd:      ex3PD,
			circles: [][]int{{1, 7, 3, 11, 5}, {2, 8, 14, 6}, {4, 12, 10}, {9, 13}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			circles, err := libknot.SeifertCircles(tc.pd)
			require.NoError(t, err)
			assert.Equal(t, tc.circles, circles)

			regions, err := libknot.Regions(tc.pd)
			require.NoError(t, err)
			if tc.regions != nil {
				assert.Equal(t, tc.regions, regions)
			}

			// Euler characteristic of the sphere: V - E + F = N - 2N + (N+2)
			N := len(tc.pd)
			assert.Len(t, regions, N+2)

			seen := map[int]int{}
			for _, region := range regions {
				for _, x := range region {
					seen[x]++
				}
			}
			assert.Len(t, seen, 4*N)
			for x := 1; x <= 2*N; x++ {
				assert.Equal(t, 1, seen[x], "arc %d", x)
				assert.Equal(t, 1, seen[-x], "arc %d", -x)
			}
		})
	}
}

func TestRegionsRejectMalformedPD(t *testing.T) {
	bad := knot.PDCode{{1, 2, 3, 4}, {1, 2, 3, 4}}
	_, err := libknot.SeifertCircles(bad)
	assert.ErrorIs(t, err, knot.ErrStructural)

	_, err = libknot.Regions(bad)
	assert.ErrorIs(t, err, knot.ErrStructural)
}
