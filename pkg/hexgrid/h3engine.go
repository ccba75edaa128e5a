package hexgrid

import (
	h3 "github.com/uber/h3-go/v4"
)

// h3Engine adapts h3-go to the radian/sentinel engine contract. h3-go works
// in degrees and reports failures as errors, so the adapter converts units
// and collapses errors to the contract's sentinels.
type h3Engine struct{}

func (h3Engine) indexFor(c radians, res int) uint64 {
	cell, err := h3.LatLngToCell(h3.LatLng{Lat: c.lat * radsToDegs, Lng: c.lng * radsToDegs}, res)
	if err != nil {
		return 0
	}
	return uint64(cell)
}

func (h3Engine) centroidOf(idx uint64) radians {
	ll, err := h3.CellToLatLng(h3.Cell(idx))
	if err != nil {
		return radians{}
	}
	return radians{lat: ll.Lat * degsToRads, lng: ll.Lng * degsToRads}
}

func (h3Engine) boundaryOf(idx uint64, verts *[MaxBoundaryVertices]radians) int {
	b, err := h3.CellToBoundary(h3.Cell(idx))
	if err != nil {
		return 0
	}
	n := len(b)
	if n > MaxBoundaryVertices {
		n = MaxBoundaryVertices
	}
	for i := 0; i < n; i++ {
		verts[i] = radians{lat: b[i].Lat * degsToRads, lng: b[i].Lng * degsToRads}
	}
	return n
}

func (h3Engine) resolutionOf(idx uint64) int {
	return h3.Cell(idx).Resolution()
}

func (h3Engine) baseCellOf(idx uint64) int {
	return h3.Cell(idx).BaseCellNumber()
}

func (h3Engine) parse(s string) uint64 {
	return h3.IndexFromString(s)
}

func (h3Engine) format(idx uint64, buf *[textBufLen]byte) {
	for i := range buf {
		buf[i] = 0
	}
	copy(buf[:textBufLen-1], h3.IndexToString(idx))
}

func (h3Engine) isValid(idx uint64) bool {
	return h3.Cell(idx).IsValid()
}

func (h3Engine) isPentagon(idx uint64) bool {
	return h3.Cell(idx).IsPentagon()
}

func (h3Engine) isClass3(idx uint64) bool {
	return h3.Cell(idx).IsResClassIII()
}

func (h3Engine) gridDistance(a, b uint64) int64 {
	d, err := h3.GridDistance(h3.Cell(a), h3.Cell(b))
	if err != nil {
		return -1
	}
	return int64(d)
}

func (h3Engine) parentAt(idx uint64, res int) uint64 {
	p, err := h3.Cell(idx).Parent(res)
	if err != nil {
		return 0
	}
	return uint64(p)
}
