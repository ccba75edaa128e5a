// Package hexgrid is a typed boundary over the H3 hierarchical hexagonal
// geospatial indexing engine: it turns points on the earth into validated
// 64-bit cell identifiers and answers centroid, boundary, hierarchy and
// distance queries over them. The hex-grid mathematics itself lives in the
// engine; this package owns the coordinate model, the validated Index type,
// unit conversion and the error taxonomy at the engine boundary.
package hexgrid

// textFallback is substituted when the engine's formatted output decodes to
// nothing; display is total and never propagates an error.
const textFallback = "invalid-index"

// Grid is the query surface. It holds no state beyond the engine seam and is
// safe for concurrent use exactly when the engine is.
type Grid struct {
	eng engine
}

// New returns a Grid backed by the production h3-go engine.
func New() *Grid {
	return &Grid{eng: h3Engine{}}
}

// newGrid injects an engine; tests use it to force sentinel paths.
func newGrid(e engine) *Grid {
	return &Grid{eng: e}
}

// Boundary is the polygon footprint of a cell: an ordered boundary walk of
// at most MaxBoundaryVertices degree-based vertices, in engine-determined
// winding order. Each query builds a fresh slice owned by the caller.
type Boundary []Coordinate

// Centroid returns the geographic center of the cell. The engine is total
// over valid identifiers, so there is no failure path.
func (g *Grid) Centroid(i Index) Coordinate {
	return g.eng.centroidOf(i.value).toDegrees()
}

// Boundary returns the cell's footprint. Only the engine-reported populated
// prefix of the fixed-capacity vertex buffer is copied out.
func (g *Grid) Boundary(i Index) Boundary {
	var verts [MaxBoundaryVertices]radians
	n := g.eng.boundaryOf(i.value, &verts)
	out := make(Boundary, 0, n)
	for _, v := range verts[:n] {
		out = append(out, v.toDegrees())
	}
	return out
}

// Resolution returns the cell's resolution (0 coarsest to 15 finest).
func (g *Grid) Resolution(i Index) int {
	return g.eng.resolutionOf(i.value)
}

// BaseCell returns the number of the top-level cell this cell descends from.
func (g *Grid) BaseCell(i Index) int {
	return g.eng.baseCellOf(i.value)
}

// IsPentagon reports whether the cell is one of the twelve pentagonal cells
// (or their descendants) with five neighbors instead of six.
func (g *Grid) IsPentagon(i Index) bool {
	return g.eng.isPentagon(i.value)
}

// IsResClass3 reports whether the cell's resolution has Class III
// orientation.
func (g *Grid) IsResClass3(i Index) bool {
	return g.eng.isClass3(i.value)
}

// Parent returns the ancestor of i at the coarser resolution res. The engine
// signals a structurally impossible request (res finer than the cell's own,
// or outside the valid range) with its zero sentinel.
func (g *Grid) Parent(i Index, res int) (Index, error) {
	v := g.eng.parentAt(i.value, res)
	if v == 0 {
		return Index{}, ErrFailedConversion
	}
	return Index{value: v}, nil
}

// Distance returns the minimum number of cell-to-cell hops between a and b.
// A negative engine sentinel (differing resolutions, distance beyond the
// search radius, or an unresolvable path across pentagonal distortion)
// surfaces as IncompatibleIndexesError carrying both operands.
func (g *Grid) Distance(a, b Index) (int64, error) {
	d := g.eng.gridDistance(a.value, b.value)
	if d < 0 {
		return 0, IncompatibleIndexesError{Left: a, Right: b}
	}
	return d, nil
}

// ToText returns the stable lowercase hex form of the identifier, with the
// engine's NUL padding trimmed. It never fails: a degenerate engine answer
// yields a fixed fallback literal instead.
func (g *Grid) ToText(i Index) string {
	var buf [textBufLen]byte
	g.eng.format(i.value, &buf)
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	if n == 0 {
		return textFallback
	}
	return string(buf[:n])
}
