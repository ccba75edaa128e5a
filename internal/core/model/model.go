// Package model defines the validated query shapes shared between the HTTP
// router and the gateway handler.
package model

// PointQuery asks for the cell containing a point at a resolution.
type PointQuery struct {
	Lat float64
	Lng float64
	Res int
}

// CellQuery asks for everything known about one cell identifier.
type CellQuery struct {
	Index string
}

// ParentQuery asks for the ancestor of a cell at a coarser resolution.
type ParentQuery struct {
	Index string
	Res   int
}

// DistanceQuery asks for the grid distance between two cells.
type DistanceQuery struct {
	A string
	B string
}
