package hexgrid

import "strings"

// Index identifies a single cell. It is an immutable value wrapping the
// engine's 64-bit identifier; a live Index was either attested valid by the
// engine's validity predicate or returned nonzero by a successful engine
// call. The bit pattern is not geometrically ordered: two identifiers close
// in value are not necessarily geographically close, so ordering or equality
// derived from Raw is an implementation artifact, not a spatial guarantee.
type Index struct {
	value uint64
}

// Raw returns the underlying 64-bit identifier.
func (i Index) Raw() uint64 { return i.value }

// IndexFromRaw validates v through the engine and wraps it. This is the
// required path for integers that did not originate from a successful engine
// call, since not every 64-bit pattern denotes a cell.
func (g *Grid) IndexFromRaw(v uint64) (Index, error) {
	if !g.eng.isValid(v) {
		return Index{}, InvalidIndexError{Value: v}
	}
	return Index{value: v}, nil
}

// IndexFromString parses the hex text form of an identifier (an optional 0x
// prefix is accepted). Text with embedded NULs is rejected before reaching
// the engine; a parse result of zero is rejected after. Successful parses
// are trusted as-is: the engine's parser is authoritative for this path.
func (g *Grid) IndexFromString(s string) (Index, error) {
	if strings.ContainsRune(s, 0) {
		return Index{}, InvalidStringError{Value: s}
	}
	v := g.eng.parse(s)
	if v == 0 {
		return Index{}, InvalidStringError{Value: s}
	}
	return Index{value: v}, nil
}

// IndexFor indexes c into the cell containing it at res. The engine signals
// failure (for example a resolution outside the valid range) with its zero
// sentinel and does not distinguish causes.
func (g *Grid) IndexFor(c Coordinate, res int) (Index, error) {
	v := g.eng.indexFor(c.toRadians(), res)
	if v == 0 {
		return Index{}, ErrFailedConversion
	}
	return Index{value: v}, nil
}
