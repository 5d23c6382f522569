package pyknot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/fine-structures/knots/libknot/catalog"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyLinkType          = py.NewType("Link", "a knot diagram held in one of the braid, gauss, dt, ogc, or pd encodings")
	pyDiagramStreamType = py.NewType("DiagramStream", "knot.DiagramStream")
	pyCatalogType       = py.NewType("Catalog", "knot.Catalog")
	pyWorkspaceType     = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyLink struct {
	*libknot.Link
}

func (L pyLink) Type() *py.Type {
	return pyLinkType
}

func (L pyLink) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	L.WriteAsString(&writer, knot.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (L pyLink) M__repr__() (py.Object, error) {
	return L.M__str__()
}

// raise maps a Go error onto the closest Python exception.
func raise(err error) error {
	switch {
	case errors.Is(err, knot.ErrBadEncoding), errors.Is(err, knot.ErrStructural):
		return py.ExceptionNewf(py.ValueError, "%v", err)
	case errors.Is(err, knot.ErrUnsupportedInput), errors.Is(err, knot.ErrMultiComponent), errors.Is(err, knot.ErrNotKnot):
		return py.ExceptionNewf(py.TypeError, "%v", err)
	case errors.Is(err, knot.ErrReadOnly):
		return py.ExceptionNewf(py.PermissionError, "%v", err)
	}
	return py.ExceptionNewf(py.RuntimeError, "%v", err)
}

func intsToTuple(vals []int) py.Tuple {
	tuple := make(py.Tuple, len(vals))
	for i, v := range vals {
		tuple[i] = py.Int(v)
	}
	return tuple
}

func cyclesToTuple(cycles [][]int) py.Tuple {
	tuple := make(py.Tuple, len(cycles))
	for i, cycle := range cycles {
		tuple[i] = intsToTuple(cycle)
	}
	return tuple
}

func pdToTuple(pd knot.PDCode) py.Tuple {
	tuple := make(py.Tuple, len(pd))
	for i, c := range pd {
		tuple[i] = intsToTuple(c[:])
	}
	return tuple
}

// Arg 1 (str): notation, e.g. "braid: 1 2 1 2"
func py_NewLink(module py.Object, args py.Tuple) (py.Object, error) {
	var notation string
	err := py.LoadTuple(args, []interface{}{&notation})
	if err != nil {
		return nil, err
	}
	L, err := libknot.NewLinkFromString(notation)
	if err != nil {
		return nil, raise(err)
	}
	return py.Object(pyLink{L}), nil
}

func py_Link_NumCrossings(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	return py.Int(L.NumCrossings()), nil
}

func py_Link_PD(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	pd, err := L.PD()
	if err != nil {
		return nil, raise(err)
	}
	return pdToTuple(pd), nil
}

func py_Link_Braid(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	w, err := L.BraidWord()
	if err != nil {
		return nil, raise(err)
	}
	return intsToTuple(w), nil
}

func py_Link_Gauss(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	gauss, err := L.Gauss()
	if err != nil {
		return nil, raise(err)
	}
	return intsToTuple(gauss), nil
}

func py_Link_DT(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	dt, err := L.DT()
	if err != nil {
		return nil, raise(err)
	}
	return intsToTuple(dt), nil
}

func py_Link_Circles(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	circles, err := L.SeifertCircles()
	if err != nil {
		return nil, raise(err)
	}
	return cyclesToTuple(circles), nil
}

func py_Link_Regions(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	regions, err := L.Regions()
	if err != nil {
		return nil, raise(err)
	}
	return cyclesToTuple(regions), nil
}

// Returns the canonical diagram as a new Link in PD encoding.
func py_Link_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	canon, err := L.Canonical()
	if err != nil {
		return nil, raise(err)
	}
	C, err := libknot.NewLinkFromCanonical(canon.PD, canon)
	if err != nil {
		return nil, raise(err)
	}
	return py.Object(pyLink{C}), nil
}

func py_Link_Moves(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	canon, err := L.Canonical()
	if err != nil {
		return nil, raise(err)
	}
	return py.Int(canon.Moves), nil
}

func py_Link_Writhe(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	w, err := L.Writhe()
	if err != nil {
		return nil, raise(err)
	}
	return py.Int(w), nil
}

func py_Link_Signature(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	sig, err := L.Signature()
	if err != nil {
		return nil, raise(err)
	}
	return py.Int(sig), nil
}

func py_Link_Genus(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	g, err := L.Genus()
	if err != nil {
		return nil, raise(err)
	}
	return py.Int(g), nil
}

func py_Link_Determinant(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	det, err := L.KnotDeterminant()
	if err != nil {
		return nil, raise(err)
	}
	return py.Int(det), nil
}

func py_Link_Arf(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	arf, err := L.ArfInvariant()
	if err != nil {
		return nil, raise(err)
	}
	return py.Int(arf), nil
}

func py_Link_Alexander(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	alex, err := L.AlexanderPolynomial()
	if err != nil {
		return nil, raise(err)
	}
	return py.String(alex.String()), nil
}

func py_Link_Jones(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	jones, err := L.JonesPolynomial()
	if err != nil {
		return nil, raise(err)
	}
	return py.String(jones.String()), nil
}

func py_Link_IsKnot(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	isKnot, err := L.IsKnot()
	if err != nil {
		return nil, raise(err)
	}
	return py.NewBool(isKnot), nil
}

func py_Link_IsAlternating(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	alt, err := L.IsAlternating()
	if err != nil {
		return nil, raise(err)
	}
	return py.NewBool(alt), nil
}

func py_Link_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	L := self.(pyLink)
	next := knot.StreamDiagrams(L.Link)
	return wrapDiagramStream(next), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx knot.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: knot.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): catalog pathname ("" for in-memory)
// Arg 2 (int): flags (READ_ONLY)
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := knot.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(pyCatalog{cat}), nil
}

// Streams each given notation string as a Link.
func py_Workspace_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	Xs := make([]knot.Diagram, 0, len(args))
	for i, arg := range args {
		notation, ok := arg.(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "arg %d: expected notation string (got %v)", i, arg.Type().Name)
		}
		L, err := libknot.NewLinkFromString(string(notation))
		if err != nil {
			return nil, raise(err)
		}
		Xs = append(Xs, L)
	}
	return wrapDiagramStream(knot.StreamDiagrams(Xs...)), nil
}

type pyCatalog struct {
	knot.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	sel, err := getDiagramSelector(args)
	if err != nil {
		return nil, err
	}
	next := knot.SelectFromCatalog(cat, sel)
	return wrapDiagramStream(next), nil
}

func py_Catalog_NumDiagrams(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	var N int32
	if err := py.LoadTuple(args, []interface{}{&N}); err != nil {
		return nil, err
	}
	return py.Int(cat.NumDiagrams(int(N))), nil
}

type diagramStream struct {
	*knot.DiagramStream
}

func (stream diagramStream) Type() *py.Type {
	return pyDiagramStreamType
}

func wrapDiagramStream(stream *knot.DiagramStream) py.Object {
	return py.Object(diagramStream{stream})
}

func py_DiagramStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(diagramStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// Arg 1 (str): optional label
// Keywords: label, source, pd, braid, circles, invariants (bool), file (str)
func py_DiagramStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(diagramStream)
	var pathname string

	opts := knot.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	count := atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", count)
	}

	py.LoadAttr(kwargs, "source", &opts.Source)
	py.LoadAttr(kwargs, "pd", &opts.PD)
	py.LoadAttr(kwargs, "braid", &opts.Braid)
	py.LoadAttr(kwargs, "circles", &opts.Circles)
	py.LoadAttr(kwargs, "invariants", &opts.Invariants)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapDiagramStream(next), nil
}

func py_DiagramStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(diagramStream)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "AddTo() takes exactly one Catalog")
	}
	cat, ok := args[0].(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[0].Type().Name)
	}
	if cat.IsReadOnly() {
		return nil, raise(knot.ErrReadOnly)
	}

	next := stream.AddTo(cat)
	return wrapDiagramStream(next), nil
}

func py_DiagramStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(diagramStream)

	// The memory resident set is closed once the stream drains
	set := libknot.NewDropDupes()
	next := stream.AddTo(set)

	out := knot.NewDiagramStream()
	go func() {
		for X := range next.Outlet {
			out.Outlet <- X
		}
		set.Close()
		out.Close()
	}()
	return wrapDiagramStream(out), nil
}

// Arg 1 (int): optional number of workers
func py_DiagramStream_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(diagramStream)
	workers := int32(1)
	if len(args) > 0 {
		if err := py.LoadTuple(args, []interface{}{&workers}); err != nil {
			return nil, err
		}
	}
	next := stream.Canonize(int(workers))
	return wrapDiagramStream(next), nil
}

func py_DiagramStream_Select(self py.Object, args py.Tuple) (py.Object, error) {
	sel, err := getDiagramSelector(args)
	if err != nil {
		return nil, err
	}
	stream := self.(diagramStream)
	next := stream.SelectFromStream(sel)
	return wrapDiagramStream(next), nil
}

// getDiagramSelector reads optional (min_crossings, max_crossings, max_moves) args.
func getDiagramSelector(args py.Tuple) (knot.DiagramSelector, error) {
	sel := knot.DefaultDiagramSelector
	var bounds [3]int32
	vars := []interface{}{&bounds[0], &bounds[1], &bounds[2]}
	if len(args) > len(vars) {
		return sel, py.ExceptionNewf(py.TypeError, "expected at most %d selector bounds (got %d)", len(vars), len(args))
	}
	if err := py.LoadTuple(args, vars[:len(args)]); err != nil {
		return sel, err
	}
	sel.MinCrossings = int(bounds[0])
	sel.MaxCrossings = int(bounds[1])
	sel.MaxMoves = int(bounds[2])
	return sel, nil
}

func init() {

	/////////////////////////////////
	// Link
	{
		pyLinkType.Dict["NumCrossings"] = py.MustNewMethod("NumCrossings", py_Link_NumCrossings, 0, "")
		pyLinkType.Dict["PD"] = py.MustNewMethod("PD", py_Link_PD, 0, "returns this Link's PD code as a tuple of 4-tuples")
		pyLinkType.Dict["Braid"] = py.MustNewMethod("Braid", py_Link_Braid, 0, "returns the source braid word or one read off the canonical diagram")
		pyLinkType.Dict["Gauss"] = py.MustNewMethod("Gauss", py_Link_Gauss, 0, "")
		pyLinkType.Dict["DT"] = py.MustNewMethod("DT", py_Link_DT, 0, "")
		pyLinkType.Dict["Circles"] = py.MustNewMethod("Circles", py_Link_Circles, 0, "returns the Seifert circles")
		pyLinkType.Dict["Regions"] = py.MustNewMethod("Regions", py_Link_Regions, 0, "")
		pyLinkType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_Link_Canonize, 0, "returns the canonical diagram as a new Link")
		pyLinkType.Dict["Moves"] = py.MustNewMethod("Moves", py_Link_Moves, 0, "returns the number of Vogel moves needed to canonize")
		pyLinkType.Dict["Writhe"] = py.MustNewMethod("Writhe", py_Link_Writhe, 0, "")
		pyLinkType.Dict["Signature"] = py.MustNewMethod("Signature", py_Link_Signature, 0, "")
		pyLinkType.Dict["Genus"] = py.MustNewMethod("Genus", py_Link_Genus, 0, "")
		pyLinkType.Dict["Determinant"] = py.MustNewMethod("Determinant", py_Link_Determinant, 0, "")
		pyLinkType.Dict["Arf"] = py.MustNewMethod("Arf", py_Link_Arf, 0, "")
		pyLinkType.Dict["Alexander"] = py.MustNewMethod("Alexander", py_Link_Alexander, 0, "")
		pyLinkType.Dict["Jones"] = py.MustNewMethod("Jones", py_Link_Jones, 0, "")
		pyLinkType.Dict["IsKnot"] = py.MustNewMethod("IsKnot", py_Link_IsKnot, 0, "")
		pyLinkType.Dict["IsAlternating"] = py.MustNewMethod("IsAlternating", py_Link_IsAlternating, 0, "")
		pyLinkType.Dict["Stream"] = py.MustNewMethod("Stream", py_Link_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["NumDiagrams"] = py.MustNewMethod("NumDiagrams", py_Catalog_NumDiagrams, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
		pyWorkspaceType.Dict["Stream"] = py.MustNewMethod("Stream", py_Workspace_Stream, 0, "streams each notation string as a Link")
	}

	/////////////////////////////////
	// DiagramStream
	{
		pyDiagramStreamType.Dict["Go"] = py.MustNewMethod("Go", py_DiagramStream_Go, 0, "counts the number of diagrams output from the DiagramStream")
		pyDiagramStreamType.Dict["Print"] = py.MustNewMethod("Print", py_DiagramStream_Print, 0, "prints each diagram from the DiagramStream")
		pyDiagramStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_DiagramStream_AddTo, 0, "")
		pyDiagramStreamType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_DiagramStream_Canonize, 0, "")
		pyDiagramStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_DiagramStream_DropDupes, 0, "")
		pyDiagramStreamType.Dict["Select"] = py.MustNewMethod("Select", py_DiagramStream_Select, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Link", py_NewLink, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":         py.String(LIB_VERSION),
			"PY_VERSION":          py.String("v3.4.0"),
			"READ_ONLY":           py.Int(READ_ONLY),
			"MAX_JONES_CROSSINGS": py.Int(libknot.MaxJonesCrossings),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_knot",
				Doc:  "knot diagram gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
