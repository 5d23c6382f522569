package libknot

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// NotationExpr is one encoding written out as "<kind>: <values>", for example:
//
//	braid: -1 3 1 3
//	gauss: 1 -2 3 -1 2 -3
//	dt: 4 6 2
//	ogc: 1 -2 3 -4 2 -1 4 -3 / + + - -
//	pd: [6,1,7,2] [2,5,3,6] [8,4,1,3] [4,8,5,7]
type NotationExpr struct {
	Braid *IntList  `  "braid" ":" @@`
	Gauss *IntList  `| "gauss" ":" @@`
	DT    *IntList  `| "dt" ":" @@`
	OGC   *OGCExpr  `| "ogc" ":" @@`
	PD    *PDTuples `| "pd" ":" @@`
}

type IntList struct {
	Values []*SignedInt `(@@ ","?)*`
}

type SignedInt struct {
	Neg bool `(@"-" | "+")?`
	Abs int  `@Int`
}

type OGCExpr struct {
	Gauss IntList  `@@ "/"`
	Signs []string `(@("+" | "-") ","?)*`
}

type PDTuples struct {
	Tuples []*PDTuple `(@@ ","?)*`
}

type PDTuple struct {
	Labels []int `"[" @Int "," @Int "," @Int "," @Int "]"`
}

var parseNotation = participle.MustBuild[NotationExpr]()

func (list *IntList) ints() []int {
	vals := make([]int, len(list.Values))
	for i, v := range list.Values {
		vals[i] = v.Abs
		if v.Neg {
			vals[i] = -v.Abs
		}
	}
	return vals
}

// ParseEncoding reads an encoding written in the notation produced by FormatEncoding.
func ParseEncoding(notation string) (knot.Encoding, error) {
	expr, err := parseNotation.ParseString("", notation)
	if err != nil {
		return nil, errors.Wrapf(knot.ErrBadEncoding, "%q: %v", notation, err)
	}

	switch {
	case expr.Braid != nil:
		return knot.BraidWord(expr.Braid.ints()), nil
	case expr.Gauss != nil:
		return knot.GaussCode(expr.Gauss.ints()), nil
	case expr.DT != nil:
		return knot.DTCode(expr.DT.ints()), nil
	case expr.OGC != nil:
		ogc := knot.OrientedGaussCode{
			Gauss: knot.GaussCode(expr.OGC.Gauss.ints()),
			Signs: make([]knot.Sign, len(expr.OGC.Signs)),
		}
		for i, s := range expr.OGC.Signs {
			if s == "-" {
				ogc.Signs[i] = knot.Negative
			} else {
				ogc.Signs[i] = knot.Positive
			}
		}
		return ogc, nil
	case expr.PD != nil:
		pd := make(knot.PDCode, len(expr.PD.Tuples))
		for i, tuple := range expr.PD.Tuples {
			copy(pd[i][:], tuple.Labels)
		}
		return pd, nil
	}
	return nil, errors.Wrapf(knot.ErrBadEncoding, "%q: no encoding", notation)
}

// FormatEncoding writes enc in the notation read by ParseEncoding.
func FormatEncoding(enc knot.Encoding) string {
	b := strings.Builder{}
	b.WriteString(enc.Kind().String())
	b.WriteByte(':')

	writeInts := func(vals []int) {
		for _, v := range vals {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(v))
		}
	}

	switch src := enc.(type) {
	case knot.BraidWord:
		writeInts(src)
	case knot.GaussCode:
		writeInts(src)
	case knot.DTCode:
		writeInts(src)
	case knot.OrientedGaussCode:
		writeInts(src.Gauss)
		b.WriteString(" /")
		for _, s := range src.Signs {
			b.WriteByte(' ')
			b.WriteString(s.String())
		}
	case knot.PDCode:
		for _, c := range src {
			b.WriteByte(' ')
			b.WriteString(c.String())
		}
	}
	return b.String()
}
