package libknot

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// arcOrder orders signed arc labels as 1, -1, 2, -2, ...
func arcOrder(a, b interface{}) int {
	x, y := a.(int), b.(int)
	if d := abs(x) - abs(y); d != 0 {
		return d
	}
	return y - x
}

// arcCycles is a successor relation over (signed) arc labels whose cycles are enumerated in arcOrder.
type arcCycles struct {
	succ *treemap.Map
}

func newArcCycles() *arcCycles {
	return &arcCycles{
		succ: treemap.NewWith(arcOrder),
	}
}

// Link sets the successor of arc from.  Each arc may have only one successor.
func (ac *arcCycles) Link(from, to int) error {
	if prev, exists := ac.succ.Get(from); exists {
		return errors.Wrapf(knot.ErrStructural, "arc %d already continues to %d (not %d)", from, prev.(int), to)
	}
	ac.succ.Put(from, to)
	return nil
}

// Next returns the successor of the given arc.
func (ac *arcCycles) Next(arc int) int {
	to, _ := ac.succ.Get(arc)
	return to.(int)
}

// ExpectKeys verifies that the relation is defined on exactly the given labels.
func (ac *arcCycles) ExpectKeys(labels []int) error {
	if ac.succ.Size() != len(labels) {
		return errors.Wrapf(knot.ErrStructural, "%d arcs linked, expected %d", ac.succ.Size(), len(labels))
	}
	for _, x := range labels {
		if _, exists := ac.succ.Get(x); !exists {
			return errors.Wrapf(knot.ErrStructural, "arc %d has no successor", x)
		}
	}
	return nil
}

// Cycles returns the cycles of the relation, each starting from its least unvisited arc.
// Fails if the relation is not a permutation of its keys.
func (ac *arcCycles) Cycles() ([][]int, error) {
	visited := treeset.NewWith(arcOrder)
	var cycles [][]int

	it := ac.succ.Iterator()
	for it.Next() {
		start := it.Key().(int)
		if visited.Contains(start) {
			continue
		}

		var cycle []int
		arc := start
		for {
			visited.Add(arc)
			cycle = append(cycle, arc)
			to, _ := ac.succ.Get(arc)
			next := to.(int)
			if next == start {
				break
			}
			if _, isKey := ac.succ.Get(next); !isKey {
				return nil, errors.Wrapf(knot.ErrStructural, "arc %d continues to unknown arc %d", arc, next)
			}
			if visited.Contains(next) {
				return nil, errors.Wrapf(knot.ErrStructural, "arc %d is reached twice", next)
			}
			arc = next
		}
		cycles = append(cycles, cycle)
	}
	return cycles, nil
}

// labelSet returns the given labels (optionally made absolute) as an ordered set.
func labelSet(labels []int, absolute bool) *treeset.Set {
	set := treeset.NewWith(arcOrder)
	for _, x := range labels {
		if absolute {
			x = abs(x)
		}
		set.Add(x)
	}
	return set
}

func sameSet(a, b *treeset.Set) bool {
	return a.Size() == b.Size() && a.Contains(b.Values()...)
}
