package libknot

import (
	"math/big"
	"math/bits"

	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// MaxJonesCrossings bounds the 2^N state sum behind JonesPolynomial.
const MaxJonesCrossings = 24

// Signature returns the signature of the closure of w: the inertia of 2(S + S^T) for its Seifert matrix S.
//
// The symmetric form is diagonalized by simultaneous row and column operations over the rationals,
// so each pivot's sign counts one positive or negative eigenvalue.
func Signature(w knot.BraidWord) (int, error) {
	S, err := SeifertMatrix(w)
	if err != nil {
		return 0, err
	}
	n := len(S)
	a := make([][]*big.Rat, n)
	for i := range a {
		a[i] = make([]*big.Rat, n)
		for j := range a[i] {
			a[i][j] = big.NewRat(int64(2*(S[i][j]+S[j][i])), 1)
		}
	}

	sig := 0
	for k := 0; k < n; k++ {
		p := -1
		for i := k; i < n; i++ {
			if a[i][i].Sign() != 0 {
				p = i
				break
			}
		}
		if p < 0 {
			// no diagonal pivot left: fold a row with a nonzero off-diagonal entry into row k
			j := -1
			for c := k + 1; c < n; c++ {
				if a[k][c].Sign() != 0 {
					j = c
					break
				}
			}
			if j < 0 {
				continue
			}
			for c := 0; c < n; c++ {
				a[k][c].Add(a[k][c], a[j][c])
			}
			for r := 0; r < n; r++ {
				a[r][k].Add(a[r][k], a[r][j])
			}
		} else if p != k {
			a[k], a[p] = a[p], a[k]
			for r := 0; r < n; r++ {
				a[r][k], a[r][p] = a[r][p], a[r][k]
			}
		}

		piv := new(big.Rat).Set(a[k][k])
		sig += piv.Sign()

		f, t := new(big.Rat), new(big.Rat)
		for i := k + 1; i < n; i++ {
			f.Quo(a[i][k], piv)
			if f.Sign() == 0 {
				continue
			}
			for c := k; c < n; c++ {
				a[i][c].Sub(a[i][c], t.Mul(f, a[k][c]))
			}
			for r := k; r < n; r++ {
				a[r][i].Sub(a[r][i], t.Mul(f, a[r][k]))
			}
		}
	}
	return sig, nil
}

// AlexanderPolynomial returns det(S - t S^T) for the Seifert matrix S of the closure of w,
// computed by fraction-free (Bareiss) elimination over Z[t].
func AlexanderPolynomial(w knot.BraidWord) (Poly, error) {
	S, err := SeifertMatrix(w)
	if err != nil {
		return nil, err
	}
	n := len(S)
	if n == 0 {
		return Poly{1}, nil
	}

	M := make([][]Poly, n)
	for i := range M {
		M[i] = make([]Poly, n)
		for j := range M[i] {
			M[i][j] = Poly{int64(S[i][j]), int64(-S[j][i])}.trim()
		}
	}

	prev := Poly{1}
	sign := int64(1)
	for k := 0; k < n-1; k++ {
		if M[k][k].IsZero() {
			swap := -1
			for i := k + 1; i < n; i++ {
				if !M[i][k].IsZero() {
					swap = i
					break
				}
			}
			if swap < 0 {
				return Poly{}, nil
			}
			M[k], M[swap] = M[swap], M[k]
			sign = -sign
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				num := M[k][k].Mul(M[i][j]).Sub(M[i][k].Mul(M[k][j]))
				if M[i][j], err = num.DivExact(prev); err != nil {
					return nil, errors.Wrap(err, "alexander elimination")
				}
			}
		}
		prev = M[k][k]
	}
	return M[n-1][n-1].Scale(sign), nil
}

// KnotDeterminant returns |Δ(-1)| for the closure of w, which must be a knot.
func KnotDeterminant(w knot.BraidWord) (int64, error) {
	if err := checkKnot(w); err != nil {
		return 0, err
	}
	alex, err := AlexanderPolynomial(w)
	if err != nil {
		return 0, err
	}
	det := alex.Eval(-1)
	if det < 0 {
		det = -det
	}
	return det, nil
}

// ArfInvariant returns 0 if Δ(-1) is 1 or 7 mod 8, else 1.
func ArfInvariant(w knot.BraidWord) (int, error) {
	if err := checkKnot(w); err != nil {
		return 0, err
	}
	alex, err := AlexanderPolynomial(w)
	if err != nil {
		return 0, err
	}
	switch r := ((alex.Eval(-1) % 8) + 8) % 8; r {
	case 1, 7:
		return 0, nil
	default:
		return 1, nil
	}
}

// Writhe returns the sum of the crossing signs.
func Writhe(ogc knot.OrientedGaussCode) int {
	w := 0
	for _, s := range ogc.Signs {
		w += int(s)
	}
	return w
}

// IsAlternating reports whether the traversal alternates strictly between over- and under-crossings.
func IsAlternating(gauss knot.GaussCode) bool {
	for i := 1; i < len(gauss); i++ {
		if (gauss[i] > 0) == (gauss[i-1] > 0) {
			return false
		}
	}
	return true
}

// JonesPolynomial returns the normalized Kauffman bracket of an oriented Gauss code, as a Laurent polynomial in A.
//
// The bracket is a sum over all 2^N smoothings.  The loop count of each smoothing is read off the nullity over GF(2)
// of the diagram's trip matrix with the diagonal flipped at every B-smoothed crossing.
func JonesPolynomial(ogc knot.OrientedGaussCode) (Laurent, error) {
	visits, err := gaussVisits(ogc.Gauss)
	if err != nil {
		return Laurent{}, err
	}
	N := len(visits.order)
	if N != len(ogc.Signs) {
		return Laurent{}, errors.Wrapf(knot.ErrBadEncoding, "%d crossings but %d signs", N, len(ogc.Signs))
	}
	if N > MaxJonesCrossings {
		return Laurent{}, errors.Wrapf(knot.ErrTooManyCrossings, "%d crossings exceeds %d", N, MaxJonesCrossings)
	}
	if N == 0 {
		return monomial(0, 1), nil
	}

	// trip[e] has bit k set when crossing e is met an odd number of times from the first visit of crossing k
	// up to (not including) its second visit.
	trip := make([]uint64, N)
	for k, ID := range visits.order {
		v := visits.byID[ID]
		for pos := v[0].pos; pos < v[1].pos; pos++ {
			e := visits.index(abs(ogc.Gauss[pos-1]))
			trip[e] ^= 1 << k
		}
		trip[k] &^= 1 << k
		if ogc.Signs[k] == knot.Negative {
			trip[k] |= 1 << k
		}
	}

	loop := monomial(2, -1).Add(monomial(-2, -1))
	loopPow := make([]Laurent, N+1)
	loopPow[0] = monomial(0, 1)
	for i := 1; i <= N; i++ {
		loopPow[i] = loopPow[i-1].Mul(loop)
	}

	off := 3 * N
	acc := make([]int64, 6*N+1)
	rows := make([]uint64, N)
	for state := uint64(0); state < 1<<N; state++ {
		copy(rows, trip)
		for k := 0; k < N; k++ {
			if state&(1<<k) != 0 {
				rows[k] ^= 1 << k
			}
		}
		nB := bits.OnesCount64(state)
		term := loopPow[gf2Nullity(rows)]
		shift := (N - nB) - nB
		for i, c := range term.Coeffs {
			acc[term.Low+i+shift+off] += c
		}
	}
	bracket := Laurent{Low: -off, Coeffs: acc}.norm()

	w := Writhe(ogc)
	c := int64(1)
	if w%2 != 0 {
		c = -1
	}
	return bracket.Mul(monomial(-3*w, c)), nil
}

func (cv crossingVisits) index(ID int) int {
	for i, x := range cv.order {
		if x == ID {
			return i
		}
	}
	return -1
}

// gf2Nullity returns the dimension of the null space of a square GF(2) matrix given as row bitmasks.
// rows is consumed.
func gf2Nullity(rows []uint64) int {
	n := len(rows)
	rank := 0
	for c := 0; c < n && rank < n; c++ {
		bit := uint64(1) << c
		p := -1
		for r := rank; r < n; r++ {
			if rows[r]&bit != 0 {
				p = r
				break
			}
		}
		if p < 0 {
			continue
		}
		rows[rank], rows[p] = rows[p], rows[rank]
		for r := 0; r < n; r++ {
			if r != rank && rows[r]&bit != 0 {
				rows[r] ^= rows[rank]
			}
		}
		rank++
	}
	return n - rank
}
