package libknot

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// SeifertToBraid canonizes pd and reads a braid word off its Seifert circles.
func SeifertToBraid(pd knot.PDCode, opts CanonizeOpts) (knot.BraidWord, error) {
	canon, err := Canonize(pd, opts)
	if err != nil {
		return nil, err
	}
	return CanonicalToBraid(canon)
}

// CanonicalToBraid reads a braid word off a canonical diagram.
//
// The Seifert circles become braid strands: starting from a circle that bounds a region, circles are chained by
// crossing adjacency into strand positions.  Each strand is then walked from a cut point and every crossing is
// emitted once both strands it joins have reached it.
func CanonicalToBraid(canon *knot.Canonical) (knot.BraidWord, error) {
	pd := canon.PD
	N := len(pd)
	if N == 0 {
		return knot.BraidWord{}, nil
	}
	M := pd.MaxLabel()
	circles := canon.Circles
	circleOf := circleIndex(circles, M)

	order, err := strandOrder(pd, circles, canon.Regions, circleOf)
	if err != nil {
		return nil, err
	}
	k := len(order)

	enters, _, err := arcEntries(pd)
	if err != nil {
		return nil, err
	}
	seifert, err := seifertSuccessors(pd)
	if err != nil {
		return nil, err
	}

	joins := func(ci int, p int) bool {
		c := pd[ci]
		x, y := circleOf[c[0]], circleOf[c[2]]
		return (x == order[p] && y == order[p+1]) || (x == order[p+1] && y == order[p])
	}

	// Cut each strand so that strand p+1 starts at the first crossing strand p shares with it.
	cut := make([]int, k)
	cut[0] = circles[order[0]][0]
	for p := 0; p < k-1; p++ {
		arc := cut[p]
		steps := len(circles[order[p]])
		for !joins(enters[arc], p) {
			if steps--; steps == 0 {
				return nil, errors.Wrapf(knot.ErrNotBraided, "circles at strands %d and %d share no crossing", p, p+1)
			}
			arc = seifert.Next(arc)
		}
		c := pd[enters[arc]]
		ent := c.Entering(M)
		for q := 0; q < 4; q++ {
			if ent[q] && circleOf[c[q]] == order[p+1] {
				cut[p+1] = c[q]
			}
		}
	}

	at := cut
	emitted := make([]bool, N)
	word := make(knot.BraidWord, 0, N)
	for len(word) < N {
		p := 0
		for ; p < k-1; p++ {
			ci := enters[at[p]]
			if ci == enters[at[p+1]] && !emitted[ci] {
				break
			}
		}
		if p == k-1 {
			return nil, errors.Wrapf(knot.ErrNotBraided, "no crossing is ready after %d of %d generators", len(word), N)
		}
		ci := enters[at[p]]
		emitted[ci] = true
		word = append(word, (p+1)*int(pd[ci].Sign(M)))
		at[p] = seifert.Next(at[p])
		at[p+1] = seifert.Next(at[p+1])
	}
	return word, nil
}

// strandOrder chains the Seifert circles into a sequence of strand positions, starting with the first circle that
// coincides with a region.
func strandOrder(pd knot.PDCode, circles, regions [][]int, circleOf []int) ([]int, error) {
	start := -1
	for ci, circle := range circles {
		circleSet := labelSet(circle, false)
		for _, region := range regions {
			if sameSet(circleSet, labelSet(region, true)) {
				start = ci
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil, errors.Wrap(knot.ErrNotBraided, "no seifert circle bounds a region")
	}

	adj := make([]*treeset.Set, len(circles))
	for i := range adj {
		adj[i] = treeset.NewWith(utils.IntComparator)
	}
	for _, c := range pd {
		x, y := circleOf[c[0]], circleOf[c[2]]
		adj[x].Add(y)
		adj[y].Add(x)
	}

	order := make([]int, 1, len(circles))
	order[0] = start
	placed := make([]bool, len(circles))
	placed[start] = true
	for cur := start; len(order) < len(circles); {
		next := -1
		for _, v := range adj[cur].Values() {
			ci := v.(int)
			if placed[ci] {
				continue
			}
			if next >= 0 {
				return nil, errors.Wrapf(knot.ErrNotBraided, "circle %d neighbors both circle %d and %d", cur, next, ci)
			}
			next = ci
		}
		if next < 0 {
			return nil, errors.Wrapf(knot.ErrNotBraided, "circle %d ends the chain after %d of %d circles", cur, len(order), len(circles))
		}
		order = append(order, next)
		placed[next] = true
		cur = next
	}
	return order, nil
}
