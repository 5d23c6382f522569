package knot

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/plan-systems/klog"
)

// DiagramStream is a stage of a diagram pipeline.
// Each stage owns its Outlet and closes it once its input drains.
type DiagramStream struct {
	Outlet chan Diagram
}

func NewDiagramStream() *DiagramStream {
	stream := &DiagramStream{
		Outlet: make(chan Diagram),
	}
	return stream
}

func newStage() *DiagramStream {
	return &DiagramStream{
		Outlet: make(chan Diagram, 1),
	}
}

// StreamDiagrams returns a stream that emits the given diagrams then closes.
func StreamDiagrams(Xs ...Diagram) *DiagramStream {
	next := NewDiagramStream()

	go func() {
		for _, X := range Xs {
			next.Outlet <- X
		}
		next.Close()
	}()

	return next
}

func (stream *DiagramStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *DiagramStream) PushDiagram(X Diagram) {
	stream.Outlet <- X
}

func (stream *DiagramStream) PullDiagram() Diagram {
	X := <-stream.Outlet
	return X
}

// PullAll drains the stream and returns how many diagrams came out of it.
func (stream *DiagramStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream into a slice.
func (stream *DiagramStream) Collect() []Diagram {
	var Xs []Diagram
	for X := range stream.Outlet {
		Xs = append(Xs, X)
	}
	return Xs
}

func (stream *DiagramStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *DiagramStream {

	next := newStage()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
			}
			buf.WriteByte(',')

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			X.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- X
		}
		out.Close()
		next.Close()
	}()

	return next
}

// AddTo forwards only the diagrams whose canonical form was newly added to target.
func (stream *DiagramStream) AddTo(target DiagramAdder) *DiagramStream {
	next := newStage()

	go func() {
		for X := range stream.Outlet {
			wasAdded, err := target.TryAddDiagram(X)
			if err != nil {
				klog.Warningf("dropping diagram %v: %v", X.Encoding(), err)
				continue
			}
			if wasAdded {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

// Canonize computes the canonical diagram of each incoming diagram using the given number of workers.
// Diagrams are independent, so with more than one worker the output order is not preserved.
func (stream *DiagramStream) Canonize(numWorkers int) *DiagramStream {
	if numWorkers < 1 {
		numWorkers = 1
	}
	next := newStage()

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for X := range stream.Outlet {
				if _, err := X.Canonical(); err != nil {
					klog.Warningf("dropping diagram %v: %v", X.Encoding(), err)
					continue
				}
				next.Outlet <- X
			}
		}()
	}

	go func() {
		wg.Wait()
		next.Close()
	}()

	return next
}

func SelectFromCatalog(cat Catalog, sel DiagramSelector) *DiagramStream {
	next := newStage()

	onHit := make(chan Diagram, 4)

	go func() {
		if err := cat.Select(sel, onHit); err != nil {
			klog.Warningf("catalog select failed: %v", err)
		}
		close(onHit)
	}()

	go func() {
		for X := range onHit {
			if sel.SelectsDiagram(X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

func (stream *DiagramStream) SelectFromStream(sel DiagramSelector) *DiagramStream {
	next := newStage()

	go func() {
		for X := range stream.Outlet {
			if sel.SelectsDiagram(X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

// SelectsDiagram returns true if the canonical form of X falls within this selector's bounds.
func (sel DiagramSelector) SelectsDiagram(X Diagram) bool {
	canon, err := X.Canonical()
	if err != nil {
		return false
	}
	return sel.SelectsCanonical(canon)
}

func (sel DiagramSelector) SelectsCanonical(canon *Canonical) bool {
	N := len(canon.PD)
	if N < sel.MinCrossings {
		return false
	}
	if sel.MaxCrossings > 0 && N > sel.MaxCrossings {
		return false
	}
	if sel.MaxMoves > 0 && canon.Moves > sel.MaxMoves {
		return false
	}
	return true
}
