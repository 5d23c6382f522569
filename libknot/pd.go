package libknot

import (
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ValidatePD checks that every arc label 1..2N appears exactly twice in pd.
func ValidatePD(pd knot.PDCode) error {
	M := pd.MaxLabel()
	seen := make([]byte, M+1)
	for i, c := range pd {
		for _, x := range c {
			if x < 1 || x > M {
				return errors.Wrapf(knot.ErrStructural, "crossing %d: label %d outside 1..%d", i, x, M)
			}
			seen[x]++
			if seen[x] > 2 {
				return errors.Wrapf(knot.ErrStructural, "crossing %d: label %d appears more than twice", i, x)
			}
		}
	}
	for x := 1; x <= M; x++ {
		if seen[x] != 2 {
			return errors.Wrapf(knot.ErrStructural, "label %d appears %d times", x, seen[x])
		}
	}
	return nil
}

// arcEntries maps each arc label to the index of the crossing it enters.
// The second return value reports, per label, if it enters as the under strand.
func arcEntries(pd knot.PDCode) (enters []int, under []bool, err error) {
	M := pd.MaxLabel()
	enters = make([]int, M+1)
	under = make([]bool, M+1)
	for i := range enters {
		enters[i] = -1
	}
	for i, c := range pd {
		ent := c.Entering(M)
		for p := 0; p < 4; p++ {
			if !ent[p] {
				continue
			}
			x := c[p]
			if enters[x] >= 0 {
				return nil, nil, errors.Wrapf(knot.ErrStructural, "arc %d enters crossings %d and %d", x, enters[x], i)
			}
			enters[x] = i
			under[x] = p == 0
		}
	}
	for x := 1; x <= M; x++ {
		if enters[x] < 0 {
			return nil, nil, errors.Wrapf(knot.ErrStructural, "arc %d enters no crossing", x)
		}
	}
	return enters, under, nil
}
