// Package hotness tracks per-cell lookup frequency.
package hotness

type Interface interface {
	Inc(cell string)
	Score(cell string) float64
}
