package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache/tiered"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/model"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/hotness/expdecay"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/lookupevents"
	"github.com/mohammed-shakir/h3-cell-gateway/pkg/hexgrid"
)

type recordingSink struct {
	events []lookupevents.Event
}

func (s *recordingSink) Publish(ev lookupevents.Event) {
	s.events = append(s.events, ev)
}

func newTestGateway(t *testing.T) (*Gateway, *recordingSink, *expdecay.Tracker) {
	t.Helper()
	mem, err := tiered.New(64, nil, 0)
	if err != nil {
		t.Fatalf("tiered.New: %v", err)
	}
	sink := &recordingSink{}
	hot := expdecay.New(time.Minute)
	return New(hexgrid.New(), nil, mem, time.Minute, hot, sink), sink, hot
}

func TestHandlePoint_ReturnsCellAndCaches(t *testing.T) {
	gw, _, _ := newTestGateway(t)
	q := model.PointQuery{Lat: 67.150926864, Lng: -168.390888581, Res: 5}

	rr := httptest.NewRecorder()
	gw.HandlePoint(context.Background(), rr, httptest.NewRequest(http.MethodGet, "/cell", nil), q)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("X-Cache"); got != "miss" {
		t.Fatalf("first lookup X-Cache=%q, want miss", got)
	}

	var payload struct {
		Index    string `json:"index"`
		Res      int    `json:"res"`
		BaseCell int    `json:"base_cell"`
		Boundary []struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"boundary"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Index != "850dab63fffffff" || payload.Res != 5 || payload.BaseCell != 6 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if len(payload.Boundary) == 0 || len(payload.Boundary) > hexgrid.MaxBoundaryVertices {
		t.Fatalf("boundary has %d vertices", len(payload.Boundary))
	}

	rr2 := httptest.NewRecorder()
	gw.HandlePoint(context.Background(), rr2, httptest.NewRequest(http.MethodGet, "/cell", nil), q)
	if got := rr2.Header().Get("X-Cache"); got != "hit" {
		t.Fatalf("second lookup X-Cache=%q, want hit", got)
	}
	if rr2.Body.String() != rr.Body.String() {
		t.Fatalf("cached body differs from computed body")
	}
}

func TestHandleCellInfo_InvalidIndexIsBadRequest(t *testing.T) {
	gw, sink, _ := newTestGateway(t)
	rr := httptest.NewRecorder()
	gw.HandleCellInfo(context.Background(), rr, httptest.NewRequest(http.MethodGet, "/cell/x", nil),
		model.CellQuery{Index: "not a cell"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rr.Code)
	}
	if len(sink.events) != 1 || sink.events[0].Outcome != "invalid" {
		t.Fatalf("expected one invalid event, got %+v", sink.events)
	}
}

func TestHandleParent_ImpossibleResolutionIsUnprocessable(t *testing.T) {
	gw, _, _ := newTestGateway(t)
	rr := httptest.NewRecorder()
	// res 7 is finer than the res-5 cell; structurally impossible
	gw.HandleParent(context.Background(), rr, httptest.NewRequest(http.MethodGet, "/cell/x/parent", nil),
		model.ParentQuery{Index: "850dab63fffffff", Res: 7})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d want 422", rr.Code)
	}
}

func TestHandleParent_ReturnsCoarserCell(t *testing.T) {
	gw, _, _ := newTestGateway(t)
	rr := httptest.NewRecorder()
	gw.HandleParent(context.Background(), rr, httptest.NewRequest(http.MethodGet, "/cell/x/parent", nil),
		model.ParentQuery{Index: "850dab63fffffff", Res: 3})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var payload struct {
		Res int `json:"res"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Res != 3 {
		t.Fatalf("parent res = %d, want 3", payload.Res)
	}
}

func TestHandleDistance_DifferingResolutionsIsUnprocessable(t *testing.T) {
	gw, _, _ := newTestGateway(t)

	// derive a res-4 parent of the known res-5 cell for the mismatch
	g := hexgrid.New()
	idx, err := g.IndexFromString("850dab63fffffff")
	if err != nil {
		t.Fatalf("IndexFromString: %v", err)
	}
	parent, err := g.Parent(idx, 4)
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}

	rr := httptest.NewRecorder()
	gw.HandleDistance(context.Background(), rr, httptest.NewRequest(http.MethodGet, "/distance", nil),
		model.DistanceQuery{A: "850dab63fffffff", B: g.ToText(parent)})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d want 422", rr.Code)
	}
}

func TestHandleDistance_SelfIsZero(t *testing.T) {
	gw, _, _ := newTestGateway(t)
	rr := httptest.NewRecorder()
	gw.HandleDistance(context.Background(), rr, httptest.NewRequest(http.MethodGet, "/distance", nil),
		model.DistanceQuery{A: "850dab63fffffff", B: "0x850dab63fffffff"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var payload struct {
		Distance int64 `json:"distance"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Distance != 0 {
		t.Fatalf("distance = %d, want 0", payload.Distance)
	}
}

func TestLookupsFeedHotnessAndEvents(t *testing.T) {
	gw, sink, hot := newTestGateway(t)
	rr := httptest.NewRecorder()
	gw.HandleCellInfo(context.Background(), rr, httptest.NewRequest(http.MethodGet, "/cell/x", nil),
		model.CellQuery{Index: "850dab63fffffff"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if score := hot.Score("850dab63fffffff"); score <= 0 {
		t.Fatalf("hotness score = %v, want > 0", score)
	}
	if len(sink.events) != 1 || sink.events[0].Outcome != "ok" || sink.events[0].Op != "info" {
		t.Fatalf("unexpected events: %+v", sink.events)
	}
	if sink.events[0].Res != 5 {
		t.Fatalf("event res = %d, want 5", sink.events[0].Res)
	}
}
