package libknot

import (
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// CanonizeOpts bounds the Vogel move fixpoint loop.
type CanonizeOpts struct {
	MaxMoves int // safety bound on the number of Vogel moves
}

var DefaultCanonizeOpts = CanonizeOpts{
	MaxMoves: 1024,
}

// Canonize applies Vogel moves to pd until no bad region remains and returns the resulting diagram
// along with its freshly computed Seifert circles and regions.
func Canonize(pd knot.PDCode, opts CanonizeOpts) (*knot.Canonical, error) {
	if opts.MaxMoves <= 0 {
		opts.MaxMoves = DefaultCanonizeOpts.MaxMoves
	}
	if err := ValidatePD(pd); err != nil {
		return nil, err
	}

	cur := pd.Clone()
	moves := 0
	for {
		bad, err := BadRegions(cur)
		if err != nil {
			return nil, err
		}
		if len(bad) == 0 {
			break
		}
		if moves == opts.MaxMoves {
			return nil, errors.Wrapf(knot.ErrMoveLimit, "%d bad regions remain after %d moves", len(bad), moves)
		}

		klog.V(2).Infof("vogel move %d: %d crossings, %d bad regions, witness (%d, %d) sign %v", moves+1, len(cur), len(bad), bad[0].A, bad[0].B, bad[0].Sign)
		cur, err = applyVogelMove(cur, bad[0])
		if err != nil {
			return nil, err
		}
		moves++
	}

	canon := &knot.Canonical{
		PD:    cur,
		Moves: moves,
	}
	var err error
	if canon.Circles, err = SeifertCircles(cur); err != nil {
		return nil, err
	}
	if canon.Regions, err = Regions(cur); err != nil {
		return nil, err
	}
	return canon, nil
}
