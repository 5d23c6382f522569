package knot

import "errors"

// Errors
var (
	ErrUnsupportedInput = errors.New("conversion not defined for this encoding")
	ErrMultiComponent   = errors.New("braid closure has more than one component (knots only)")
	ErrStructural       = errors.New("inconsistent diagram structure")
	ErrNoMoveRequired   = errors.New("no move required")
	ErrMoveLimit        = errors.New("move limit exceeded before reaching a canonical diagram")
	ErrBadEncoding      = errors.New("bad knot encoding")
	ErrNotKnot          = errors.New("invariant is only defined for knots")
	ErrNotBraided       = errors.New("seifert circles do not form a braid")
	ErrBadCatalogParam  = errors.New("bad catalog param")
	ErrTooManyCrossings = errors.New("too many crossings")
	ErrReadOnly         = errors.New("catalog is in read-only mode")
)
