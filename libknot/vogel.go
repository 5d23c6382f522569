package libknot

import (
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// BadRegion is a region whose same-signed arcs lie on two different Seifert circles.
type BadRegion struct {
	Region int       // index into the region list
	A, B   int       // witness arcs, in region order, on different circles
	Sign   knot.Sign // sign the witness arcs carry within the region
}

// BadRegions returns the bad regions of pd in region order, recording at most one witness per region.
func BadRegions(pd knot.PDCode) ([]BadRegion, error) {
	circles, err := SeifertCircles(pd)
	if err != nil {
		return nil, err
	}
	regions, err := Regions(pd)
	if err != nil {
		return nil, err
	}
	return findBadRegions(circleIndex(circles, pd.MaxLabel()), regions), nil
}

func findBadRegions(circleOf []int, regions [][]int) []BadRegion {
	var bad []BadRegion
	for ri, region := range regions {
		for _, sign := range [2]knot.Sign{knot.Negative, knot.Positive} {
			if br, found := straddlingPair(circleOf, region, sign); found {
				br.Region = ri
				bad = append(bad, br)
				break
			}
		}
	}
	return bad
}

// straddlingPair looks for an arc of the given sign that is not on the circle of the first such arc.
func straddlingPair(circleOf []int, region []int, sign knot.Sign) (BadRegion, bool) {
	first := 0
	for _, x := range region {
		if knot.SignOf(x) != sign {
			continue
		}
		if first == 0 {
			first = abs(x)
		} else if circleOf[abs(x)] != circleOf[first] {
			return BadRegion{A: first, B: abs(x), Sign: sign}, true
		}
	}
	return BadRegion{}, false
}

// VogelMove removes the first bad region of pd by pulling the region's larger witness arc over its smaller one,
// adding two crossings.  If pd has no bad region, knot.ErrNoMoveRequired is returned.
//
// The returned PD code is newly allocated; pd is not modified.
func VogelMove(pd knot.PDCode) (knot.PDCode, error) {
	bad, err := BadRegions(pd)
	if err != nil {
		return nil, err
	}
	if len(bad) == 0 {
		return nil, knot.ErrNoMoveRequired
	}
	return applyVogelMove(pd, bad[0])
}

func applyVogelMove(pd knot.PDCode, br BadRegion) (knot.PDCode, error) {
	a, b := br.A, br.B
	if a > b {
		a, b = b, a
	}
	if a == b || a < 1 || b > pd.MaxLabel() {
		return nil, errors.Wrapf(knot.ErrStructural, "bad witness pair (%d, %d)", br.A, br.B)
	}

	// Arc a is split in two (a, a+1, a+2 after relabeling) and arc b in three (b+2, b+3, b+4).
	shift := func(x int) int {
		switch {
		case x < a:
			return x
		case x < b:
			return x + 2
		}
		return x + 4
	}
	relabel := func(x int, entering bool) int {
		switch x {
		case a:
			if entering {
				return a + 2
			}
			return a
		case b:
			if entering {
				return b + 4
			}
			return b + 2
		}
		return shift(x)
	}

	M := pd.MaxLabel()
	moved := make(knot.PDCode, 0, len(pd)+2)
	for _, c := range pd {
		ent := c.Entering(M)
		var cc knot.Crossing
		for p := 0; p < 4; p++ {
			cc[p] = relabel(c[p], ent[p])
		}
		moved = append(moved, cc)
	}

	// The strand of a passes over the strand of b twice; the first crossing takes the handedness of the witness.
	if br.Sign < 0 {
		moved = append(moved,
			knot.Crossing{b + 3, a + 1, b + 4, a},
			knot.Crossing{b + 2, a + 1, b + 3, a + 2},
		)
	} else {
		moved = append(moved,
			knot.Crossing{b + 3, a, b + 4, a + 1},
			knot.Crossing{b + 2, a + 2, b + 3, a + 1},
		)
	}
	return moved, nil
}
