// Package gateway serves the HTTP query surface on top of the hexgrid core:
// it translates validated queries into core calls, maps the core error
// taxonomy to HTTP statuses, and wraps the whole thing in caching, hotness
// tracking and lookup-event publishing.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache/keys"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/model"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/observability"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/hotness"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/lookupevents"
	"github.com/mohammed-shakir/h3-cell-gateway/pkg/hexgrid"
)

// EventSink receives lookup events; publishing must not block.
type EventSink interface {
	Publish(ev lookupevents.Event)
}

type Gateway struct {
	grid   *hexgrid.Grid
	logger *slog.Logger
	cache  cache.Interface
	ttl    time.Duration
	hot    hotness.Interface
	sink   EventSink
}

// New builds a gateway. cache, hot and sink may each be nil to disable the
// corresponding concern.
func New(grid *hexgrid.Grid, logger *slog.Logger, c cache.Interface, ttl time.Duration, hot hotness.Interface, sink EventSink) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{grid: grid, logger: logger, cache: c, ttl: ttl, hot: hot, sink: sink}
}

type coordPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type cellPayload struct {
	Index    string         `json:"index"`
	Res      int            `json:"res"`
	BaseCell int            `json:"base_cell"`
	Pentagon bool           `json:"pentagon"`
	Class3   bool           `json:"class3"`
	Centroid coordPayload   `json:"centroid"`
	Boundary []coordPayload `json:"boundary"`
}

type distancePayload struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Distance int64  `json:"distance"`
}

func (g *Gateway) HandlePoint(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.PointQuery) {
	key := keys.Point(q.Lat, q.Lng, q.Res)
	if g.serveCached(ctx, w, "point", key) {
		return
	}

	idx, err := g.grid.IndexFor(hexgrid.Coordinate{Lat: q.Lat, Lng: q.Lng}, q.Res)
	if err != nil {
		g.fail(ctx, w, "point", err)
		return
	}
	g.succeed(ctx, w, "point", key, g.describe(idx), idx)
}

func (g *Gateway) HandleCellInfo(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.CellQuery) {
	key := keys.Cell("info", q.Index)
	if g.serveCached(ctx, w, "info", key) {
		return
	}

	idx, err := g.grid.IndexFromString(q.Index)
	if err != nil {
		g.fail(ctx, w, "info", err)
		return
	}
	g.succeed(ctx, w, "info", key, g.describe(idx), idx)
}

func (g *Gateway) HandleParent(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.ParentQuery) {
	key := keys.Parent(q.Index, q.Res)
	if g.serveCached(ctx, w, "parent", key) {
		return
	}

	idx, err := g.grid.IndexFromString(q.Index)
	if err != nil {
		g.fail(ctx, w, "parent", err)
		return
	}
	parent, err := g.grid.Parent(idx, q.Res)
	if err != nil {
		g.fail(ctx, w, "parent", err)
		return
	}
	g.succeed(ctx, w, "parent", key, g.describe(parent), parent)
}

func (g *Gateway) HandleDistance(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.DistanceQuery) {
	key := keys.Distance(q.A, q.B)
	if g.serveCached(ctx, w, "distance", key) {
		return
	}

	a, err := g.grid.IndexFromString(q.A)
	if err != nil {
		g.fail(ctx, w, "distance", err)
		return
	}
	b, err := g.grid.IndexFromString(q.B)
	if err != nil {
		g.fail(ctx, w, "distance", err)
		return
	}
	d, err := g.grid.Distance(a, b)
	if err != nil {
		g.fail(ctx, w, "distance", err)
		return
	}
	payload := distancePayload{A: g.grid.ToText(a), B: g.grid.ToText(b), Distance: d}
	g.succeed(ctx, w, "distance", key, payload, a)
}

// describe assembles the full public view of a cell.
func (g *Gateway) describe(idx hexgrid.Index) cellPayload {
	c := g.grid.Centroid(idx)
	boundary := g.grid.Boundary(idx)
	verts := make([]coordPayload, 0, len(boundary))
	for _, v := range boundary {
		verts = append(verts, coordPayload{Lat: v.Lat, Lng: v.Lng})
	}
	return cellPayload{
		Index:    g.grid.ToText(idx),
		Res:      g.grid.Resolution(idx),
		BaseCell: g.grid.BaseCell(idx),
		Pentagon: g.grid.IsPentagon(idx),
		Class3:   g.grid.IsResClass3(idx),
		Centroid: coordPayload{Lat: c.Lat, Lng: c.Lng},
		Boundary: verts,
	}
}

func (g *Gateway) serveCached(ctx context.Context, w http.ResponseWriter, op, key string) bool {
	if g.cache == nil {
		return false
	}
	body, found, err := g.cache.Get(ctx, key)
	if err != nil {
		// degraded cache is not a request failure
		g.logger.WarnContext(ctx, "cache get failed", "key", key, "err", err)
		return false
	}
	if !found {
		return false
	}
	observability.IncLookup(op, "cache_hit")
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	_, _ = w.Write(body)
	return true
}

func (g *Gateway) succeed(ctx context.Context, w http.ResponseWriter, op, key string, payload any, idx hexgrid.Index) {
	body, err := json.Marshal(payload)
	if err != nil {
		g.logger.ErrorContext(ctx, "marshal response", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	text := g.grid.ToText(idx)
	if g.hot != nil {
		g.hot.Inc(text)
	}
	if g.cache != nil {
		if err := g.cache.Set(ctx, key, body, g.ttl); err != nil {
			g.logger.WarnContext(ctx, "cache set failed", "key", key, "err", err)
		}
	}
	g.publish(op, text, g.grid.Resolution(idx), "ok")
	observability.IncLookup(op, "ok")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(body)
}

// fail converts the core error taxonomy into HTTP statuses: rejected inputs
// are 400s, structurally impossible requests are 422s.
func (g *Gateway) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	outcome := "error"

	var invIdx hexgrid.InvalidIndexError
	var invStr hexgrid.InvalidStringError
	var incompat hexgrid.IncompatibleIndexesError
	switch {
	case errors.As(err, &invIdx), errors.As(err, &invStr):
		status = http.StatusBadRequest
		outcome = "invalid"
	case errors.Is(err, hexgrid.ErrFailedConversion), errors.As(err, &incompat):
		status = http.StatusUnprocessableEntity
		outcome = "failed"
	}

	g.logger.DebugContext(ctx, "lookup rejected", "op", op, "err", err)
	g.publish(op, "", -1, outcome)
	observability.IncLookup(op, outcome)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (g *Gateway) publish(op, index string, res int, outcome string) {
	if g.sink == nil {
		return
	}
	g.sink.Publish(lookupevents.Event{
		Op:      op,
		Index:   index,
		Res:     res,
		Outcome: outcome,
		TS:      time.Now().UTC(),
	})
}
