package libknot

import (
	"github.com/fine-structures/knots/knot"
)

// seifertSuccessors smooths every crossing along its orientation:
// the entering under arc continues to the leaving over arc and the entering over arc continues to the leaving under arc.
func seifertSuccessors(pd knot.PDCode) (*arcCycles, error) {
	M := pd.MaxLabel()
	ac := newArcCycles()
	for _, c := range pd {
		overIn, overOut := c.Over(M)
		if err := ac.Link(c[0], overOut); err != nil {
			return nil, err
		}
		if err := ac.Link(overIn, c[2]); err != nil {
			return nil, err
		}
	}

	labels := make([]int, M)
	for i := range labels {
		labels[i] = i + 1
	}
	if err := ac.ExpectKeys(labels); err != nil {
		return nil, err
	}
	return ac, nil
}

// SeifertCircles returns the Seifert circles of pd, each a cycle of arc labels.
// The circles partition 1..2N and are listed in order of their least arc label.
func SeifertCircles(pd knot.PDCode) ([][]int, error) {
	ac, err := seifertSuccessors(pd)
	if err != nil {
		return nil, err
	}
	return ac.Cycles()
}

// circleIndex maps each arc label to the index of the circle containing it.
func circleIndex(circles [][]int, maxLabel int) []int {
	idx := make([]int, maxLabel+1)
	for ci, circle := range circles {
		for _, x := range circle {
			idx[x] = ci
		}
	}
	return idx
}
