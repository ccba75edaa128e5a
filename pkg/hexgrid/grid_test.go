package hexgrid

import (
	"errors"
	"testing"
)

// Reference identifiers from the engine's own test corpus.
const (
	knownCell    = uint64(0x850dab63fffffff) // res 5, base cell 6
	pentagonCell = uint64(0x821c07fffffffff)
)

var testPoint = Coordinate{Lat: 67.150926864, Lng: -168.390888581}

func TestIndexFor_CentroidRoundTrip(t *testing.T) {
	g := New()
	idx, err := g.IndexFor(testPoint, 5)
	if err != nil {
		t.Fatalf("IndexFor: %v", err)
	}
	c := g.Centroid(idx)
	if !closeTo(c.Lat, 67.15092686397712, 1e-9) {
		t.Fatalf("centroid lat = %v", c.Lat)
	}
	if !closeTo(c.Lng, -168.39088858096966, 1e-9) {
		t.Fatalf("centroid lng = %v", c.Lng)
	}
}

func TestIndexFor_ResolutionIsPreserved(t *testing.T) {
	g := New()
	for res := 0; res <= 15; res++ {
		idx, err := g.IndexFor(testPoint, res)
		if err != nil {
			t.Fatalf("IndexFor res=%d: %v", res, err)
		}
		if got := g.Resolution(idx); got != res {
			t.Fatalf("Resolution = %d, want %d", got, res)
		}
	}
}

func TestIndexFor_OutOfRangeResolutionFails(t *testing.T) {
	g := New()
	for _, res := range []int{-1, 17} {
		if _, err := g.IndexFor(testPoint, res); !errors.Is(err, ErrFailedConversion) {
			t.Fatalf("res=%d: err = %v, want ErrFailedConversion", res, err)
		}
	}
}

func TestIndexFromRaw_GatesOnValidity(t *testing.T) {
	g := New()
	idx, err := g.IndexFromRaw(knownCell)
	if err != nil {
		t.Fatalf("IndexFromRaw(valid): %v", err)
	}
	if idx.Raw() != knownCell {
		t.Fatalf("Raw = %#x, want %#x", idx.Raw(), knownCell)
	}

	var invErr InvalidIndexError
	if _, err := g.IndexFromRaw(0); !errors.As(err, &invErr) {
		t.Fatalf("IndexFromRaw(0): err = %v, want InvalidIndexError", err)
	}
	if invErr.Value != 0 {
		t.Fatalf("InvalidIndexError.Value = %#x, want 0", invErr.Value)
	}
}

func TestIndexFromString_ParsesAndRejects(t *testing.T) {
	g := New()

	parsed, err := g.IndexFromString("0x850dab63fffffff")
	if err != nil {
		t.Fatalf("IndexFromString: %v", err)
	}
	direct, err := g.IndexFromRaw(knownCell)
	if err != nil {
		t.Fatalf("IndexFromRaw: %v", err)
	}
	if parsed != direct {
		t.Fatalf("parsed %#x != direct %#x", parsed.Raw(), direct.Raw())
	}

	var strErr InvalidStringError
	if _, err := g.IndexFromString("invalid string"); !errors.As(err, &strErr) {
		t.Fatalf("garbage text: err = %v, want InvalidStringError", err)
	}
	if strErr.Value != "invalid string" {
		t.Fatalf("InvalidStringError.Value = %q", strErr.Value)
	}

	// embedded NUL is rejected before the engine sees it
	if _, err := g.IndexFromString("850dab6\x003fffffff"); !errors.As(err, &strErr) {
		t.Fatalf("NUL text: err = %v, want InvalidStringError", err)
	}
}

func TestToText_StableHexForm(t *testing.T) {
	g := New()
	idx, err := g.IndexFromRaw(knownCell)
	if err != nil {
		t.Fatalf("IndexFromRaw: %v", err)
	}
	if got := g.ToText(idx); got != "850dab63fffffff" {
		t.Fatalf("ToText = %q, want %q", got, "850dab63fffffff")
	}
}

func TestBaseCell_KnownValue(t *testing.T) {
	g := New()
	idx, err := g.IndexFromRaw(knownCell)
	if err != nil {
		t.Fatalf("IndexFromRaw: %v", err)
	}
	if got := g.BaseCell(idx); got != 6 {
		t.Fatalf("BaseCell = %d, want 6", got)
	}
}

func TestIsPentagon(t *testing.T) {
	g := New()
	pent, err := g.IndexFromRaw(pentagonCell)
	if err != nil {
		t.Fatalf("IndexFromRaw(pentagon): %v", err)
	}
	hex, err := g.IndexFromRaw(knownCell)
	if err != nil {
		t.Fatalf("IndexFromRaw(hexagon): %v", err)
	}
	if !g.IsPentagon(pent) {
		t.Fatalf("expected %#x to be a pentagon", pentagonCell)
	}
	if g.IsPentagon(hex) {
		t.Fatalf("expected %#x not to be a pentagon", knownCell)
	}
}

func TestIsResClass3_FollowsResolutionParity(t *testing.T) {
	g := New()
	odd, err := g.IndexFor(testPoint, 5)
	if err != nil {
		t.Fatalf("IndexFor res=5: %v", err)
	}
	even, err := g.IndexFor(testPoint, 4)
	if err != nil {
		t.Fatalf("IndexFor res=4: %v", err)
	}
	if !g.IsResClass3(odd) {
		t.Fatalf("res 5 cell should be Class III")
	}
	if g.IsResClass3(even) {
		t.Fatalf("res 4 cell should not be Class III")
	}
}

func TestParent_CoarsensOrFails(t *testing.T) {
	g := New()
	idx, err := g.IndexFor(testPoint, 5)
	if err != nil {
		t.Fatalf("IndexFor: %v", err)
	}

	p, err := g.Parent(idx, 4)
	if err != nil {
		t.Fatalf("Parent(4): %v", err)
	}
	if got := g.Resolution(p); got != 4 {
		t.Fatalf("parent resolution = %d, want 4", got)
	}

	same, err := g.Parent(idx, 5)
	if err != nil {
		t.Fatalf("Parent(same res): %v", err)
	}
	if same != idx {
		t.Fatalf("Parent at own resolution should return the cell itself")
	}

	// finer than the cell's own resolution, and out of range
	if _, err := g.Parent(idx, 6); !errors.Is(err, ErrFailedConversion) {
		t.Fatalf("Parent(6): err = %v, want ErrFailedConversion", err)
	}
	if _, err := g.Parent(idx, -1); !errors.Is(err, ErrFailedConversion) {
		t.Fatalf("Parent(-1): err = %v, want ErrFailedConversion", err)
	}
}

func TestBoundary_BoundedAndCallerOwned(t *testing.T) {
	g := New()
	idx, err := g.IndexFromRaw(knownCell)
	if err != nil {
		t.Fatalf("IndexFromRaw: %v", err)
	}
	b := g.Boundary(idx)
	if len(b) == 0 || len(b) > MaxBoundaryVertices {
		t.Fatalf("boundary has %d vertices, want 1..%d", len(b), MaxBoundaryVertices)
	}
	// fresh slice per query
	b2 := g.Boundary(idx)
	if &b[0] == &b2[0] {
		t.Fatalf("boundary queries must not share backing storage")
	}
	c := g.Centroid(idx)
	for i, v := range b {
		if !closeTo(v.Lat, c.Lat, 2.0) || !closeTo(v.Lng, c.Lng, 2.0) {
			t.Fatalf("vertex %d implausibly far from centroid: %v vs %v", i, v, c)
		}
	}
}

func TestDistance_SameResolutionSucceeds(t *testing.T) {
	g := New()
	a, err := g.IndexFor(testPoint, 8)
	if err != nil {
		t.Fatalf("IndexFor a: %v", err)
	}
	b, err := g.IndexFor(Coordinate{Lat: testPoint.Lat + 0.02, Lng: testPoint.Lng}, 8)
	if err != nil {
		t.Fatalf("IndexFor b: %v", err)
	}
	d, err := g.Distance(a, b)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d < 0 {
		t.Fatalf("distance must be non-negative, got %d", d)
	}
	if self, err := g.Distance(a, a); err != nil || self != 0 {
		t.Fatalf("Distance(a,a) = %d, %v; want 0, nil", self, err)
	}
}

func TestDistance_DifferingResolutionsFail(t *testing.T) {
	g := New()
	a, err := g.IndexFor(testPoint, 5)
	if err != nil {
		t.Fatalf("IndexFor: %v", err)
	}
	p, err := g.Parent(a, 4)
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	var incErr IncompatibleIndexesError
	if _, err := g.Distance(a, p); !errors.As(err, &incErr) {
		t.Fatalf("Distance across resolutions: err = %v, want IncompatibleIndexesError", err)
	}
	if incErr.Left != a || incErr.Right != p {
		t.Fatalf("error should carry both operands: %+v", incErr)
	}
}
