// Package keys builds canonical cache keys for gateway responses.
package keys

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Point keys a point lookup. Coordinates are hashed at fixed precision so
// textually different but numerically identical queries share an entry.
func Point(lat, lng float64, res int) string {
	sum := xxhash.Sum64String(fmt.Sprintf("%.9f,%.9f", lat, lng))
	return fmt.Sprintf("point:%d:%016x", res, sum)
}

// Cell keys a per-cell operation (info, parent at a resolution).
func Cell(op, index string) string {
	return fmt.Sprintf("%s:%s", op, Canonical(index))
}

func Parent(index string, res int) string {
	return fmt.Sprintf("parent:%d:%s", res, Canonical(index))
}

// Distance is symmetric, so the operand pair is ordered before keying.
func Distance(a, b string) string {
	a, b = Canonical(a), Canonical(b)
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("dist:%s:%s", a, b)
}

// Canonical lowercases an index string and strips the optional 0x prefix.
func Canonical(index string) string {
	s := strings.ToLower(strings.TrimSpace(index))
	return strings.TrimPrefix(s, "0x")
}
