package libknot

import (
	"github.com/fine-structures/knots/knot"
)

// regionSuccessors links arcs by turning left at every crossing.
// An arc traversed along its orientation appears as +x and against it as -x.
func regionSuccessors(pd knot.PDCode) (*arcCycles, error) {
	M := pd.MaxLabel()
	ac := newArcCycles()
	for _, c := range pd {
		ent := c.Entering(M)
		for p := 0; p < 4; p++ {
			q := (p + 1) & 3

			arrive := -c[p]
			if ent[p] {
				arrive = c[p]
			}
			depart := c[q]
			if ent[q] {
				depart = -c[q]
			}
			if err := ac.Link(arrive, depart); err != nil {
				return nil, err
			}
		}
	}

	labels := make([]int, 0, 2*M)
	for x := 1; x <= M; x++ {
		labels = append(labels, x, -x)
	}
	if err := ac.ExpectKeys(labels); err != nil {
		return nil, err
	}
	return ac, nil
}

// Regions returns the regions of pd, each a cycle of signed arc labels.
// The regions partition ±1..±2N; a PD code for which this fails returns knot.ErrStructural.
func Regions(pd knot.PDCode) ([][]int, error) {
	ac, err := regionSuccessors(pd)
	if err != nil {
		return nil, err
	}
	return ac.Cycles()
}
