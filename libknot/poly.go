package libknot

import (
	"strconv"
	"strings"

	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// Poly is an integer polynomial, Poly[i] being the coefficient of t^i.
// Trailing zeros are trimmed so the zero polynomial is empty.
type Poly []int64

func (p Poly) trim() Poly {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

func (p Poly) IsZero() bool {
	return len(p.trim()) == 0
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(p.trim()) - 1
}

func (p Poly) Add(q Poly) Poly {
	n := max(len(p), len(q))
	out := make(Poly, n)
	for i := range out {
		if i < len(p) {
			out[i] += p[i]
		}
		if i < len(q) {
			out[i] += q[i]
		}
	}
	return out.trim()
}

func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Scale(-1))
}

func (p Poly) Scale(c int64) Poly {
	out := make(Poly, len(p))
	for i, v := range p {
		out[i] = c * v
	}
	return out.trim()
}

func (p Poly) Mul(q Poly) Poly {
	p, q = p.trim(), q.trim()
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}
	out := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out.trim()
}

// DivExact returns p / q, failing if q does not divide p over the integers.
func (p Poly) DivExact(q Poly) (Poly, error) {
	rem, q := append(Poly{}, p.trim()...), q.trim()
	if len(q) == 0 {
		return nil, errors.New("polynomial division by zero")
	}
	if len(rem) < len(q) {
		if len(rem) == 0 {
			return Poly{}, nil
		}
		return nil, errors.Errorf("%v does not divide %v", q, p)
	}

	lead := q[len(q)-1]
	quo := make(Poly, len(rem)-len(q)+1)
	for len(rem) >= len(q) {
		top := rem[len(rem)-1]
		if top%lead != 0 {
			return nil, errors.Errorf("%v does not divide %v", q, p)
		}
		c := top / lead
		shift := len(rem) - len(q)
		quo[shift] = c
		for i, v := range q {
			rem[shift+i] -= c * v
		}
		rem = rem.trim()
	}
	if len(rem) != 0 {
		return nil, errors.Errorf("%v does not divide %v", q, p)
	}
	return quo.trim(), nil
}

// Eval returns p(t) by Horner's rule.
func (p Poly) Eval(t int64) int64 {
	var v int64
	for i := len(p) - 1; i >= 0; i-- {
		v = v*t + p[i]
	}
	return v
}

// String renders p highest power first, e.g. "t^2 - t + 1".
func (p Poly) String() string {
	return formatTerms(p.trim(), 0, "t")
}

// Laurent is a Laurent polynomial: Coeffs[i] is the coefficient of x^(Low+i).
type Laurent struct {
	Low    int
	Coeffs []int64
}

func monomial(exp int, c int64) Laurent {
	return Laurent{Low: exp, Coeffs: []int64{c}}
}

func (L Laurent) norm() Laurent {
	lo, hi := 0, len(L.Coeffs)
	for lo < hi && L.Coeffs[lo] == 0 {
		lo++
	}
	for hi > lo && L.Coeffs[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return Laurent{}
	}
	return Laurent{Low: L.Low + lo, Coeffs: L.Coeffs[lo:hi]}
}

func (L Laurent) High() int {
	return L.Low + len(L.Coeffs) - 1
}

func (L Laurent) Add(R Laurent) Laurent {
	L, R = L.norm(), R.norm()
	if len(L.Coeffs) == 0 {
		return R
	}
	if len(R.Coeffs) == 0 {
		return L
	}
	lo := min(L.Low, R.Low)
	out := Laurent{
		Low:    lo,
		Coeffs: make([]int64, max(L.High(), R.High())-lo+1),
	}
	for i, c := range L.Coeffs {
		out.Coeffs[L.Low-lo+i] += c
	}
	for i, c := range R.Coeffs {
		out.Coeffs[R.Low-lo+i] += c
	}
	return out.norm()
}

func (L Laurent) Mul(R Laurent) Laurent {
	L, R = L.norm(), R.norm()
	if len(L.Coeffs) == 0 || len(R.Coeffs) == 0 {
		return Laurent{}
	}
	out := Laurent{
		Low:    L.Low + R.Low,
		Coeffs: make([]int64, len(L.Coeffs)+len(R.Coeffs)-1),
	}
	for i, a := range L.Coeffs {
		for j, b := range R.Coeffs {
			out.Coeffs[i+j] += a * b
		}
	}
	return out.norm()
}

func (L Laurent) Pow(n int) Laurent {
	out := monomial(0, 1)
	for ; n > 0; n-- {
		out = out.Mul(L)
	}
	return out
}

// Coeff returns the coefficient of x^exp.
func (L Laurent) Coeff(exp int) int64 {
	i := exp - L.Low
	if i < 0 || i >= len(L.Coeffs) {
		return 0
	}
	return L.Coeffs[i]
}

// Terms maps each exponent with a nonzero coefficient to that coefficient.
func (L Laurent) Terms() map[int]int64 {
	terms := make(map[int]int64)
	for i, c := range L.Coeffs {
		if c != 0 {
			terms[L.Low+i] = c
		}
	}
	return terms
}

// Format renders L highest power first in the given variable, e.g. "A^8 - A^4 + 1 - A^-4 + A^-8".
func (L Laurent) Format(variable string) string {
	L = L.norm()
	return formatTerms(L.Coeffs, L.Low, variable)
}

func (L Laurent) String() string {
	return L.Format("A")
}

func formatTerms(coeffs []int64, low int, variable string) string {
	var b strings.Builder
	for i := len(coeffs) - 1; i >= 0; i-- {
		c := coeffs[i]
		if c == 0 {
			continue
		}
		exp := low + i
		mag := c
		if b.Len() == 0 {
			if c < 0 {
				b.WriteByte('-')
				mag = -c
			}
		} else if c < 0 {
			b.WriteString(" - ")
			mag = -c
		} else {
			b.WriteString(" + ")
		}
		if mag != 1 || exp == 0 {
			b.WriteString(strconv.FormatInt(mag, 10))
			if exp != 0 {
				b.WriteByte('*')
			}
		}
		switch exp {
		case 0:
		case 1:
			b.WriteString(variable)
		default:
			b.WriteString(variable)
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(exp))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// checkKnot fails with knot.ErrNotKnot unless the closure of w is a knot.
func checkKnot(w knot.BraidWord) error {
	if n := LinkNumber(w); n != 1 {
		return errors.Wrapf(knot.ErrNotKnot, "closure has %d components", n)
	}
	return nil
}
