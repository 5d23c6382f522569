package libknot

import (
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// DTToGauss expands a DT code: crossing i is visited at 2i+1 and at |dt[i]|.
// A positive dt[i] means the even visit passes under; under-visits are negative in the Gauss code.
func DTToGauss(dt knot.DTCode) (knot.GaussCode, error) {
	N := len(dt)
	gauss := make(knot.GaussCode, 2*N)
	for i, even := range dt {
		e := abs(even)
		if e%2 != 0 || e < 2 || e > 2*N {
			return nil, errors.Wrapf(knot.ErrBadEncoding, "dt entry %d is not an even visit in 2..%d", even, 2*N)
		}
		if gauss[e-1] != 0 {
			return nil, errors.Wrapf(knot.ErrBadEncoding, "dt visit %d appears twice", e)
		}
		ID := i + 1
		if even > 0 {
			gauss[2*i] = ID
			gauss[e-1] = -ID
		} else {
			gauss[2*i] = -ID
			gauss[e-1] = ID
		}
	}
	return gauss, nil
}

// GaussToDT is the inverse of DTToGauss.
// Every crossing must be visited exactly twice, once at an odd and once at an even position.
func GaussToDT(gauss knot.GaussCode) (knot.DTCode, error) {
	if len(gauss)%2 != 0 {
		return nil, errors.Wrapf(knot.ErrBadEncoding, "gauss code has odd length %d", len(gauss))
	}
	visits, err := gaussVisits(gauss)
	if err != nil {
		return nil, err
	}

	dt := make(knot.DTCode, len(gauss)/2)
	for _, ID := range visits.order {
		v := visits.byID[ID]
		odd, even := v[0], v[1]
		if odd.pos%2 == 0 {
			odd, even = even, odd
		}
		if odd.pos%2 != 1 || even.pos%2 != 0 {
			return nil, errors.Wrapf(knot.ErrBadEncoding, "crossing %d is visited at %d and %d (not one odd and one even)", ID, v[0].pos, v[1].pos)
		}
		if even.over {
			dt[(odd.pos-1)/2] = -even.pos
		} else {
			dt[(odd.pos-1)/2] = even.pos
		}
	}
	return dt, nil
}

type gaussVisit struct {
	pos  int // 1-based traversal position
	over bool
}

type crossingVisits struct {
	order []int                 // crossing IDs in order of first appearance
	byID  map[int][2]gaussVisit // under/over visit pair per crossing
}

// gaussVisits groups the traversal positions of each crossing, requiring exactly one under- and one over-visit.
func gaussVisits(gauss knot.GaussCode) (crossingVisits, error) {
	cv := crossingVisits{
		byID: make(map[int][2]gaussVisit, len(gauss)/2),
	}
	count := make(map[int]int, len(gauss)/2)
	for i, x := range gauss {
		if x == 0 {
			return cv, errors.Wrapf(knot.ErrBadEncoding, "gauss entry %d is zero", i)
		}
		ID := abs(x)
		n := count[ID]
		if n == 2 {
			return cv, errors.Wrapf(knot.ErrBadEncoding, "crossing %d is visited more than twice", ID)
		}
		if n == 0 {
			cv.order = append(cv.order, ID)
		}
		v := cv.byID[ID]
		v[n] = gaussVisit{pos: i + 1, over: x > 0}
		cv.byID[ID] = v
		count[ID] = n + 1
	}
	for _, ID := range cv.order {
		v := cv.byID[ID]
		if count[ID] != 2 || v[0].over == v[1].over {
			return cv, errors.Wrapf(knot.ErrBadEncoding, "crossing %d needs exactly one under- and one over-visit", ID)
		}
	}
	return cv, nil
}

// OGCToPD converts an oriented Gauss code to a PD code.
//
// The k-th crossing to appear, under-visited at position u and over-visited at position o, becomes
// [u, o+1, u+1, o] when negative and [u, o, u+1, o+1] when positive, where 2N+1 wraps to 1.
func OGCToPD(ogc knot.OrientedGaussCode) (knot.PDCode, error) {
	visits, err := gaussVisits(ogc.Gauss)
	if err != nil {
		return nil, err
	}
	if len(visits.order) != len(ogc.Signs) {
		return nil, errors.Wrapf(knot.ErrBadEncoding, "%d crossings but %d signs", len(visits.order), len(ogc.Signs))
	}

	M := len(ogc.Gauss)
	wrap := func(x int) int {
		if x > M {
			return 1
		}
		return x
	}

	pd := make(knot.PDCode, len(ogc.Signs))
	for k, ID := range visits.order {
		v := visits.byID[ID]
		u, o := v[0].pos, v[1].pos
		if v[0].over {
			u, o = o, u
		}
		switch ogc.Signs[k] {
		case knot.Negative:
			pd[k] = knot.Crossing{u, wrap(o + 1), wrap(u + 1), o}
		case knot.Positive:
			pd[k] = knot.Crossing{u, o, wrap(u + 1), wrap(o + 1)}
		default:
			return nil, errors.Wrapf(knot.ErrBadEncoding, "crossing %d has no sign", ID)
		}
	}
	return pd, nil
}

// PDToOGC converts a PD code to an oriented Gauss code starting at arc 1.
// Arc i enters the i-th visited crossing, which is numbered in order of first appearance.
func PDToOGC(pd knot.PDCode) (knot.OrientedGaussCode, error) {
	var ogc knot.OrientedGaussCode
	if err := ValidatePD(pd); err != nil {
		return ogc, err
	}
	enters, under, err := arcEntries(pd)
	if err != nil {
		return ogc, err
	}

	M := pd.MaxLabel()
	IDs := make([]int, len(pd))
	ogc.Gauss = make(knot.GaussCode, M)
	ogc.Signs = make([]knot.Sign, 0, len(pd))
	for x := 1; x <= M; x++ {
		ci := enters[x]
		if IDs[ci] == 0 {
			ogc.Signs = append(ogc.Signs, pd[ci].Sign(M))
			IDs[ci] = len(ogc.Signs)
		}
		if under[x] {
			ogc.Gauss[x-1] = -IDs[ci]
		} else {
			ogc.Gauss[x-1] = IDs[ci]
		}
	}
	return ogc, nil
}

// PDToGauss returns the Gauss code of pd, starting at arc 1.
func PDToGauss(pd knot.PDCode) (knot.GaussCode, error) {
	ogc, err := PDToOGC(pd)
	if err != nil {
		return nil, err
	}
	return ogc.Gauss, nil
}
