package libknot

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// Matrix is a dense integer matrix indexed [row][col].
type Matrix [][]int

func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	cells := make([]int, rows*cols)
	for i := range m {
		m[i] = cells[i*cols : (i+1)*cols]
	}
	return m
}

func (m Matrix) Transpose() Matrix {
	if len(m) == 0 {
		return Matrix{}
	}
	t := NewMatrix(len(m[0]), len(m))
	for i, row := range m {
		for j, v := range row {
			t[j][i] = v
		}
	}
	return t
}

// BraidComponents splits w where a generator value is missing between the smallest and largest used,
// since strands on either side of such a gap never cross.  Order is preserved within each component.
func BraidComponents(w knot.BraidWord) ([]knot.BraidWord, error) {
	if len(w) == 0 {
		return nil, errors.Wrap(knot.ErrBadEncoding, "empty braid word has no components")
	}
	if err := checkBraidWord(w); err != nil {
		return nil, err
	}

	used := treeset.NewWith(utils.IntComparator)
	for _, g := range w {
		used.Add(abs(g))
	}
	vals := used.Values()
	lo, hi := vals[0].(int), vals[len(vals)-1].(int)

	// gaps[i] is the i-th missing generator value; a generator above k gaps lands in component k.
	var gaps []int
	for v := lo + 1; v < hi; v++ {
		if !used.Contains(v) {
			gaps = append(gaps, v)
		}
	}

	parts := make([]knot.BraidWord, len(gaps)+1)
	for _, g := range w {
		k := 0
		for k < len(gaps) && abs(g) > gaps[k] {
			k++
		}
		parts[k] = append(parts[k], g)
	}

	comps := parts[:0]
	for _, part := range parts {
		if len(part) > 0 {
			comps = append(comps, part)
		}
	}
	return comps, nil
}

// HomologyGenerators returns, for each position j of the flattened braid components except the last,
// the position of the next generator with the same magnitude, or 0 if there is none.
func HomologyGenerators(w knot.BraidWord) ([]int, error) {
	flat, err := flatComponents(w)
	if err != nil {
		return nil, err
	}
	return homologyGenerators(flat), nil
}

func flatComponents(w knot.BraidWord) (knot.BraidWord, error) {
	comps, err := BraidComponents(w)
	if err != nil {
		return nil, err
	}
	flat := make(knot.BraidWord, 0, len(w))
	for _, comp := range comps {
		flat = append(flat, comp...)
	}
	return flat, nil
}

func homologyGenerators(flat knot.BraidWord) []int {
	if len(flat) == 0 {
		return nil
	}
	hom := make([]int, len(flat)-1)
	for j := range hom {
		for i := j + 1; i < len(flat); i++ {
			if abs(flat[i]) == abs(flat[j]) {
				hom[j] = i
				break
			}
		}
	}
	return hom
}

// SeifertMatrix returns the Seifert matrix of the closure of w, one row and column per homology generator.
func SeifertMatrix(w knot.BraidWord) (Matrix, error) {
	x, err := flatComponents(w)
	if err != nil {
		return nil, err
	}
	h := homologyGenerators(x)
	n := len(h)
	A := NewMatrix(n, n)

	for i := 0; i < n; i++ {
		if h[i] == 0 {
			for k := 0; k < n; k++ {
				A[k][i] = 0
				A[i][k] = 0
			}
			continue
		}
		for j := i; j < n; j++ {
			switch {
			case i == j:
				A[i][j] = -int(knot.SignOf(x[i] + x[h[i]]))
			case h[i] > h[j], h[i] < j:
				A[i][j] = 0
				A[j][i] = 0
			case h[i] == j:
				if x[j] > 0 {
					A[i][j] = 0
					A[j][i] = 1
				} else {
					A[i][j] = -1
					A[j][i] = 0
				}
			case abs(abs(x[i])-abs(x[j])) > 1:
				A[i][j] = 0
			case abs(x[i])-abs(x[j]) == 1:
				A[i][j] = 0
				A[j][i] = -1
			case abs(x[j])-abs(x[i]) == 1:
				A[i][j] = 1
				A[j][i] = 0
			default:
				// i < j < h[i] with |x[i]| == |x[j]| cannot happen since h[i] is the next such index
				return nil, errors.Wrapf(knot.ErrStructural, "homology generators %d and %d overlap", i, j)
			}
		}
	}

	keep := make([]int, 0, n)
	for i, hi := range h {
		if hi != 0 {
			keep = append(keep, i)
		}
	}
	S := NewMatrix(len(keep), len(keep))
	for r, i := range keep {
		for c, j := range keep {
			S[r][c] = A[i][j]
		}
	}
	return S, nil
}

// NumStrands returns the strand count of the smallest braid group containing w.
func NumStrands(w knot.BraidWord) int {
	n := 0
	for _, g := range w {
		if abs(g) > n {
			n = abs(g)
		}
	}
	return n + 1
}

// LinkNumber returns the number of components of the closure of w on NumStrands(w) strands.
func LinkNumber(w knot.BraidWord) int {
	n := NumStrands(w)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	// perm[s] is where the strand starting at position s ends up
	for _, g := range w {
		a, b := abs(g)-1, abs(g)
		for s, at := range perm {
			switch at {
			case a:
				perm[s] = b
			case b:
				perm[s] = a
			}
		}
	}

	cycles := 0
	seen := make([]bool, n)
	for s := range perm {
		if seen[s] {
			continue
		}
		cycles++
		for t := s; !seen[t]; t = perm[t] {
			seen[t] = true
		}
	}
	return cycles
}

// IsKnot returns true if the closure of w has a single component.
func IsKnot(w knot.BraidWord) bool {
	return LinkNumber(w) == 1
}

// SmallestEquivalent shifts the generators of w so that the smallest magnitude is 1.
func SmallestEquivalent(w knot.BraidWord) knot.BraidWord {
	if len(w) == 0 {
		return knot.BraidWord{}
	}
	lo := abs(w[0])
	for _, g := range w {
		if abs(g) < lo {
			lo = abs(g)
		}
	}
	out := make(knot.BraidWord, len(w))
	for i, g := range w {
		if g > 0 {
			out[i] = g - lo + 1
		} else {
			out[i] = g + lo - 1
		}
	}
	return out
}

// Genus returns the genus of the closure of w, summed over its braid components:
// each component with t link components, length n, and q strands contributes ((2 - t) + n - q) / 2.
func Genus(w knot.BraidWord) (int, error) {
	if len(w) == 0 {
		return 0, nil
	}
	comps, err := BraidComponents(w)
	if err != nil {
		return 0, err
	}
	genus := 0
	for _, comp := range comps {
		s := SmallestEquivalent(comp)
		t := LinkNumber(s)
		q := NumStrands(s)
		genus += ((2 - t) + len(comp) - q) / 2
	}
	return genus, nil
}
