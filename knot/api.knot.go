package knot

import (
	"io"
)

// Sign is a three-way sign: -1, 0, or +1.
type Sign int8

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = +1
)

// EncodingKind identifies which variant an Encoding holds.
type EncodingKind int32

const (
	BraidEncoding EncodingKind = iota + 1
	GaussEncoding
	DTEncoding
	OrientedGaussEncoding
	PDEncoding
)

// Encoding is a sealed union over the five diagram encodings.
// Exactly one of BraidWord, GaussCode, DTCode, OrientedGaussCode, or PDCode is held.
type Encoding interface {
	Kind() EncodingKind
	isEncoding()
}

// BraidWord is a sequence of nonzero generators: |g| is the strand pair and sign(g) the crossing handedness.
type BraidWord []int

// GaussCode lists 2N signed crossing labels in traversal order (negative denotes an under-visit).
type GaussCode []int

// DTCode holds one signed even visit index per crossing (negative when that visit passes over).
type DTCode []int

// OrientedGaussCode is a GaussCode plus one handedness per crossing, in order of first appearance.
type OrientedGaussCode struct {
	Gauss GaussCode
	Signs []Sign
}

// Crossing is a PD tuple: slot 0 is the entering under arc, slot 2 its continuation, and slots 1 and 3 the over strand.
type Crossing [4]int

// PDCode is a planar diagram: one Crossing per crossing with arc labels 1..2N, each appearing exactly twice.
type PDCode []Crossing

// Canonical is a PD code with no bad regions, along with its Seifert circles and regions.
type Canonical struct {
	PD      PDCode
	Circles [][]int
	Regions [][]int
	Moves   int // number of Vogel moves applied to reach PD
}

// Diagram is a knot diagram that can be streamed, canonized, cataloged, and printed.
type Diagram interface {

	// Encoding returns the encoding this Diagram was created from.
	Encoding() Encoding

	// NumCrossings returns the crossing count of this Diagram's source encoding.
	NumCrossings() int

	// Canonical computes (and retains) the canonical diagram of this Diagram.
	Canonical() (*Canonical, error)

	// WriteAsString writes a human readable description of this Diagram.
	WriteAsString(out io.Writer, opts PrintOpts)
}

// OnDiagramHit is a channel used to return Diagrams meeting a set of selection criteria.
// Ownership of a Diagram travels through the channel.
type OnDiagramHit chan<- Diagram

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

type DiagramAdder interface {

	// Tries to add the canonical form of the given diagram.
	// If true is returned, no equivalent canonical diagram existed and it was added.
	TryAddDiagram(X Diagram) (bool, error)
}

// Catalog wraps a database of canonical diagrams.
type Catalog interface {
	DiagramAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumDiagrams returns the number of canonical diagrams in this catalog having the given crossing count.
	NumDiagrams(forCrossings int) int64

	// Select sends each cataloged Diagram meeting the selection criteria to onHit.
	Select(sel DiagramSelector, onHit OnDiagramHit) error

	Close() error
}

// DiagramSelector is an operator that either selects a given Diagram or not.
type DiagramSelector struct {
	MinCrossings int // lower bound on canonical crossing count
	MaxCrossings int // upper bound on canonical crossing count (0 denotes no bound)
	MaxMoves     int // upper bound on Vogel moves needed to canonize (0 denotes no bound)
}

// DefaultDiagramSelector selects everything.
var DefaultDiagramSelector = DiagramSelector{}

// PrintOpts specifies what is printed when printing a diagram
type PrintOpts struct {
	Label      string // Prefix label
	Source     bool   // If set, prints the source encoding
	PD         bool   // If set, prints the canonical PD code
	Braid      bool   // If set, prints the reconstructed braid word
	Circles    bool   // If set, prints the canonical Seifert circles
	Invariants bool   // If set, prints signature, determinant, and Jones polynomial when defined
}

var DefaultPrintOpts = PrintOpts{
	Source: true,
	Braid:  true,
}
