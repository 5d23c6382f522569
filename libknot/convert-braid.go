package libknot

import (
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// braidSweep follows the closure of w as a single strand, numbering the two visits of every crossing.
//
// For crossing c, label[2c+1] receives the odd visit number and label[2c] the even one.  The even label is
// negated when that visit passes over, which is tracked by a type flag alternating at every visit.
// Fails with knot.ErrMultiComponent if the strand closes before visiting every crossing twice.
func braidSweep(w knot.BraidWord) ([]int, error) {
	N := len(w)
	label := make([]int, 2*N)

	str, next, typ, at := 1, 1, 0, 0
	for next <= 2*N {
		ci := -1
		for k := 0; k < N; k++ {
			i := (at + k) % N
			if g := abs(w[i]); g == str || g == str-1 {
				ci = i
				break
			}
		}
		if ci < 0 {
			return nil, errors.Wrapf(knot.ErrMultiComponent, "strand %d meets no crossing", str)
		}

		slot := 2*ci + next%2
		if label[slot] != 0 {
			return nil, errors.Wrapf(knot.ErrMultiComponent, "strand closed after %d of %d visits", next-1, 2*N)
		}
		label[slot] = next
		next++

		g := w[ci]
		leftToRight := abs(g) == str
		if typ == 0 {
			typ = 1
			if g > 0 {
				typ = -1
			}
		} else {
			typ = -typ
			if (leftToRight && g*typ > 0) || (!leftToRight && g*typ < 0) {
				if next%2 == 1 {
					label[2*ci] = -label[2*ci]
				}
			}
		}

		if leftToRight {
			str++
		} else {
			str--
		}
		at = ci + 1
	}
	return label, nil
}

// BraidToDT returns the DT code of the closure of w (knots only).
func BraidToDT(w knot.BraidWord) (knot.DTCode, error) {
	if err := checkBraidWord(w); err != nil {
		return nil, err
	}
	label, err := braidSweep(w)
	if err != nil {
		return nil, err
	}

	N := len(w)
	dt := make(knot.DTCode, N)
	for j := 0; j < N; j++ {
		odd := label[2*j+1]
		dt[(odd-1)/2] = label[2*j]
	}
	return dt, nil
}

// BraidToGauss returns the Gauss code of the closure of w (knots only).
func BraidToGauss(w knot.BraidWord) (knot.GaussCode, error) {
	dt, err := BraidToDT(w)
	if err != nil {
		return nil, err
	}
	return DTToGauss(dt)
}

// BraidToPD returns the PD code of the closure of w (knots only).
//
// A crossing whose under strand arrives on arc u and over strand on arc o becomes
// [u, o+1, u+1, o] for a negative generator and [u, o, u+1, o+1] for a positive one, where 2N+1 wraps to 1.
func BraidToPD(w knot.BraidWord) (knot.PDCode, error) {
	if err := checkBraidWord(w); err != nil {
		return nil, err
	}
	label, err := braidSweep(w)
	if err != nil {
		return nil, err
	}

	N := len(w)
	M := 2 * N
	wrap := func(x int) int {
		if x > M {
			return 1
		}
		return x
	}

	pd := make(knot.PDCode, N)
	for j, g := range w {
		even, odd := label[2*j], label[2*j+1]
		u, o := even, odd
		if even < 0 {
			u, o = odd, -even
		}
		if g < 0 {
			pd[j] = knot.Crossing{u, wrap(o + 1), wrap(u + 1), o}
		} else {
			pd[j] = knot.Crossing{u, o, wrap(u + 1), wrap(o + 1)}
		}
	}
	return pd, nil
}

func checkBraidWord(w knot.BraidWord) error {
	for i, g := range w {
		if g == 0 {
			return errors.Wrapf(knot.ErrBadEncoding, "braid generator %d is zero", i)
		}
	}
	return nil
}
