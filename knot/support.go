package knot

import (
	"strconv"
	"strings"
	"sync"
)

// SignOf returns the sign of x as -1, 0, or +1.
func SignOf(x int) Sign {
	switch {
	case x < 0:
		return Negative
	case x > 0:
		return Positive
	}
	return Zero
}

func (s Sign) String() string {
	switch s {
	case Negative:
		return "-"
	case Positive:
		return "+"
	}
	return "0"
}

func (w BraidWord) Kind() EncodingKind { return BraidEncoding }
func (g GaussCode) Kind() EncodingKind { return GaussEncoding }
func (dt DTCode) Kind() EncodingKind { return DTEncoding }
func (ogc OrientedGaussCode) Kind() EncodingKind { return OrientedGaussEncoding }
func (pd PDCode) Kind() EncodingKind { return PDEncoding }

func (BraidWord) isEncoding() {}
func (GaussCode) isEncoding() {}
func (DTCode) isEncoding() {}
func (OrientedGaussCode) isEncoding() {}
func (PDCode) isEncoding() {}

func (k EncodingKind) String() string {
	switch k {
	case BraidEncoding:
		return "braid"
	case GaussEncoding:
		return "gauss"
	case DTEncoding:
		return "dt"
	case OrientedGaussEncoding:
		return "ogc"
	case PDEncoding:
		return "pd"
	}
	return "unknown"
}

// NumCrossings returns the number of distinct crossings referenced.
func (ogc OrientedGaussCode) NumCrossings() int {
	return len(ogc.Signs)
}

// MaxLabel returns the largest arc label of a well-formed PD code (2N).
func (pd PDCode) MaxLabel() int {
	return 2 * len(pd)
}

// Clone returns a deep copy of this PD code.
func (pd PDCode) Clone() PDCode {
	dup := make(PDCode, len(pd))
	copy(dup, pd)
	return dup
}

// Sign returns the handedness of c within a diagram whose largest arc label is maxLabel.
//
// The over strand leaves through slot 1 when slot 1 holds the cyclic successor of slot 3; such a crossing is negative.
// With a single crossing (maxLabel == 2) both over labels succeed each other, so the over strand
// is known to enter on the slot repeating the label the under strand leaves on.
func (c Crossing) Sign(maxLabel int) Sign {
	var leavesAt1 bool
	if maxLabel > 2 {
		leavesAt1 = c[1] == c[3]+1 || (c[3] == maxLabel && c[1] == 1)
	} else {
		leavesAt1 = c[3] == c[2]
	}
	if leavesAt1 {
		return Negative
	}
	return Positive
}

// Entering reports which slots of c carry an arc entering c.
func (c Crossing) Entering(maxLabel int) [4]bool {
	if c.Sign(maxLabel) < 0 {
		return [4]bool{true, false, false, true}
	}
	return [4]bool{true, true, false, false}
}

// Over returns the entering and leaving arcs of the over strand.
func (c Crossing) Over(maxLabel int) (in, out int) {
	if c.Sign(maxLabel) < 0 {
		return c[3], c[1]
	}
	return c[1], c[3]
}

func (c Crossing) String() string {
	return "[" + joinInts(c[:], ",") + "]"
}

func (pd PDCode) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	for i, c := range pd {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}

func joinInts(vals []int, sep string) string {
	b := strings.Builder{}
	for i, v := range vals {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.closing
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closeOnce    sync.Once
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)

		ctx.mu.Lock()
		open := make([]Catalog, 0, len(ctx.openCatalogs))
		for cat := range ctx.openCatalogs {
			open = append(open, cat)
		}
		ctx.mu.Unlock()

		// Catalog.Close() calls DetachCatalog(), so don't hold the lock
		for _, cat := range open {
			go cat.Close()
		}
	})
}
