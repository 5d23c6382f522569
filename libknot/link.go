package libknot

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// Link is a knot diagram held in one source encoding, with the other encodings derived on demand.
//
// A Link is safe for concurrent use; derived encodings and the canonical diagram are computed at most once.
type Link struct {
	src      knot.Encoding
	canonize CanonizeOpts

	mu       sync.Mutex
	pd       knot.PDCode
	pdErr    error
	canon    *knot.Canonical
	canonErr error
	braid    knot.BraidWord
	braidErr error
}

// NewLink wraps the given encoding.  The encoding is not copied and should not be mutated afterward.
func NewLink(enc knot.Encoding) (*Link, error) {
	return NewLinkWithOpts(enc, DefaultCanonizeOpts)
}

func NewLinkWithOpts(enc knot.Encoding, opts CanonizeOpts) (*Link, error) {
	if enc == nil {
		return nil, errors.Wrap(knot.ErrBadEncoding, "nil encoding")
	}
	if err := checkEncoding(enc); err != nil {
		return nil, err
	}
	return &Link{
		src:      enc,
		canonize: opts,
	}, nil
}

// NewLinkFromCanonical wraps src along with an already computed canonical diagram, such as one read from a catalog.
func NewLinkFromCanonical(src knot.Encoding, canon *knot.Canonical) (*Link, error) {
	L, err := NewLink(src)
	if err != nil {
		return nil, err
	}
	L.canon = canon
	return L, nil
}

// NewLinkFromString parses notation such as "braid: 1 2 1 2" (see ParseEncoding).
func NewLinkFromString(notation string) (*Link, error) {
	enc, err := ParseEncoding(notation)
	if err != nil {
		return nil, err
	}
	return NewLink(enc)
}

func checkEncoding(enc knot.Encoding) error {
	switch src := enc.(type) {
	case knot.BraidWord:
		return checkBraidWord(src)
	case knot.GaussCode:
		_, err := gaussVisits(src)
		return err
	case knot.DTCode:
		_, err := DTToGauss(src)
		return err
	case knot.OrientedGaussCode:
		_, err := OGCToPD(src)
		return err
	case knot.PDCode:
		return ValidatePD(src)
	}
	return errors.Wrapf(knot.ErrBadEncoding, "unknown encoding %T", enc)
}

func (L *Link) Encoding() knot.Encoding {
	return L.src
}

func (L *Link) NumCrossings() int {
	switch src := L.src.(type) {
	case knot.BraidWord:
		return len(src)
	case knot.GaussCode:
		return len(src) / 2
	case knot.DTCode:
		return len(src)
	case knot.OrientedGaussCode:
		return src.NumCrossings()
	case knot.PDCode:
		return len(src)
	}
	return 0
}

func unsupported(from knot.Encoding, to knot.EncodingKind) error {
	return errors.Wrapf(knot.ErrUnsupportedInput, "%v code carries no crossing handedness to derive a %v code", from.Kind(), to)
}

// BraidWord returns the source braid word, or else the braid word read off the canonical diagram.
func (L *Link) BraidWord() (knot.BraidWord, error) {
	if w, ok := L.src.(knot.BraidWord); ok {
		return w, nil
	}
	canon, err := L.Canonical()
	if err != nil {
		return nil, err
	}

	L.mu.Lock()
	defer L.mu.Unlock()
	if L.braid == nil && L.braidErr == nil {
		L.braid, L.braidErr = CanonicalToBraid(canon)
	}
	return L.braid, L.braidErr
}

// PD returns the PD code of this diagram.
func (L *Link) PD() (knot.PDCode, error) {
	L.mu.Lock()
	defer L.mu.Unlock()
	if L.pd == nil && L.pdErr == nil {
		switch src := L.src.(type) {
		case knot.BraidWord:
			L.pd, L.pdErr = BraidToPD(src)
		case knot.OrientedGaussCode:
			L.pd, L.pdErr = OGCToPD(src)
		case knot.PDCode:
			L.pd = src
		default:
			L.pdErr = unsupported(src, knot.PDEncoding)
		}
	}
	return L.pd, L.pdErr
}

func (L *Link) OrientedGauss() (knot.OrientedGaussCode, error) {
	if ogc, ok := L.src.(knot.OrientedGaussCode); ok {
		return ogc, nil
	}
	pd, err := L.PD()
	if err != nil {
		return knot.OrientedGaussCode{}, err
	}
	return PDToOGC(pd)
}

func (L *Link) Gauss() (knot.GaussCode, error) {
	switch src := L.src.(type) {
	case knot.BraidWord:
		return BraidToGauss(src)
	case knot.GaussCode:
		return src, nil
	case knot.DTCode:
		return DTToGauss(src)
	case knot.OrientedGaussCode:
		return src.Gauss, nil
	case knot.PDCode:
		return PDToGauss(src)
	}
	return nil, unsupported(L.src, knot.GaussEncoding)
}

func (L *Link) DT() (knot.DTCode, error) {
	switch src := L.src.(type) {
	case knot.BraidWord:
		return BraidToDT(src)
	case knot.DTCode:
		return src, nil
	}
	gauss, err := L.Gauss()
	if err != nil {
		return nil, err
	}
	return GaussToDT(gauss)
}

func (L *Link) SeifertCircles() ([][]int, error) {
	pd, err := L.PD()
	if err != nil {
		return nil, err
	}
	return SeifertCircles(pd)
}

func (L *Link) Regions() ([][]int, error) {
	pd, err := L.PD()
	if err != nil {
		return nil, err
	}
	return Regions(pd)
}

func (L *Link) BadRegions() ([]BadRegion, error) {
	pd, err := L.PD()
	if err != nil {
		return nil, err
	}
	return BadRegions(pd)
}

// Canonical computes (and retains) the canonical diagram of this Link.
func (L *Link) Canonical() (*knot.Canonical, error) {
	L.mu.Lock()
	canon := L.canon
	L.mu.Unlock()
	if canon != nil {
		return canon, nil
	}

	pd, err := L.PD()
	if err != nil {
		return nil, err
	}

	L.mu.Lock()
	defer L.mu.Unlock()
	if L.canon == nil && L.canonErr == nil {
		L.canon, L.canonErr = Canonize(pd, L.canonize)
	}
	return L.canon, L.canonErr
}

func (L *Link) Writhe() (int, error) {
	ogc, err := L.OrientedGauss()
	if err != nil {
		return 0, err
	}
	return Writhe(ogc), nil
}

func (L *Link) IsAlternating() (bool, error) {
	gauss, err := L.Gauss()
	if err != nil {
		return false, err
	}
	return IsAlternating(gauss), nil
}

func (L *Link) IsKnot() (bool, error) {
	w, err := L.BraidWord()
	if err != nil {
		return false, err
	}
	return IsKnot(w), nil
}

func (L *Link) Genus() (int, error) {
	w, err := L.BraidWord()
	if err != nil {
		return 0, err
	}
	return Genus(w)
}

func (L *Link) Signature() (int, error) {
	w, err := L.BraidWord()
	if err != nil {
		return 0, err
	}
	return Signature(w)
}

func (L *Link) AlexanderPolynomial() (Poly, error) {
	w, err := L.BraidWord()
	if err != nil {
		return nil, err
	}
	return AlexanderPolynomial(w)
}

func (L *Link) KnotDeterminant() (int64, error) {
	w, err := L.BraidWord()
	if err != nil {
		return 0, err
	}
	return KnotDeterminant(w)
}

func (L *Link) ArfInvariant() (int, error) {
	w, err := L.BraidWord()
	if err != nil {
		return 0, err
	}
	return ArfInvariant(w)
}

func (L *Link) JonesPolynomial() (Laurent, error) {
	ogc, err := L.OrientedGauss()
	if err != nil {
		return Laurent{}, err
	}
	return JonesPolynomial(ogc)
}

func (L *Link) String() string {
	b := strings.Builder{}
	L.WriteAsString(&b, knot.PrintOpts{Source: true})
	return b.String()
}

// WriteAsString writes comma separated fields chosen by opts.  A field that cannot be derived is written as its error.
func (L *Link) WriteAsString(out io.Writer, opts knot.PrintOpts) {
	sep := ""
	field := func(name string, val interface{}, err error) {
		if err != nil {
			val = err
		}
		fmt.Fprintf(out, "%s%s=%q", sep, name, fmt.Sprint(val))
		sep = ","
	}

	fmt.Fprintf(out, "n=%d", L.NumCrossings())
	sep = ","

	if opts.Source {
		field(L.src.Kind().String(), FormatEncoding(L.src), nil)
	}
	if opts.PD || opts.Circles {
		canon, err := L.Canonical()
		if opts.PD {
			if err != nil {
				field("pd", nil, err)
			} else {
				field("pd", canon.PD, nil)
			}
		}
		if opts.Circles {
			if err != nil {
				field("circles", nil, err)
			} else {
				field("circles", canon.Circles, nil)
			}
		}
	}
	if opts.Braid {
		w, err := L.BraidWord()
		field("braid", w, err)
	}
	if opts.Invariants {
		sig, err := L.Signature()
		field("signature", sig, err)
		det, err := L.KnotDeterminant()
		field("determinant", det, err)
		jones, err := L.JonesPolynomial()
		field("jones", jones, err)
	}
}
