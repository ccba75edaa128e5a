package hexgrid

// MaxBoundaryVertices is the engine-fixed worst case for a cell boundary: a
// pentagonal base cell contributes 5 vertices plus up to 5 more where edges
// cross cells of the neighboring resolution.
const MaxBoundaryVertices = 10

// textBufLen is the buffer size the engine's format call requires: 16 hex
// digits plus a trailing NUL.
const textBufLen = 17

// engine is the seam to the external hex-grid engine. All geometry crosses
// it in radians; failures are signaled with sentinels (zero identifier,
// negative distance), never errors. The production implementation adapts
// h3-go; tests substitute controlled fakes. Concurrent use is safe only if
// the underlying engine guarantees it; this layer adds no locking.
type engine interface {
	// indexFor returns the cell identifier containing c at res, or 0.
	indexFor(c radians, res int) uint64
	// centroidOf is total over valid identifiers.
	centroidOf(idx uint64) radians
	// boundaryOf fills verts and returns the populated count. Entries past
	// the count are unspecified and must not be read.
	boundaryOf(idx uint64, verts *[MaxBoundaryVertices]radians) int
	resolutionOf(idx uint64) int
	baseCellOf(idx uint64) int
	// parse decodes hex text (optional 0x prefix) to an identifier, or 0.
	// Callers must reject embedded NULs before calling.
	parse(s string) uint64
	// format writes the NUL-padded lowercase hex form of idx into buf.
	format(idx uint64, buf *[textBufLen]byte)
	isValid(idx uint64) bool
	isPentagon(idx uint64) bool
	isClass3(idx uint64) bool
	// gridDistance returns the hop count between a and b, negative when the
	// identifiers are not comparable.
	gridDistance(a, b uint64) int64
	// parentAt returns the ancestor of idx at res, or 0.
	parentAt(idx uint64, res int) uint64
}
