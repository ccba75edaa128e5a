package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/config"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/model"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/observability"
)

// CellHandler receives validated queries and serves them.
type CellHandler interface {
	HandlePoint(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.PointQuery)
	HandleCellInfo(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.CellQuery)
	HandleParent(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.ParentQuery)
	HandleDistance(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.DistanceQuery)
}

func HandlePoint(cfg config.Config, h CellHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		q, err := ParsePointQuery(r, cfg.DefaultRes)
		if err != nil {
			http.Error(sw, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/cell", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		h.HandlePoint(r.Context(), sw, r, q)
		observability.ObserveHTTP(r.Method, "/cell", sw.code, time.Since(start).Seconds())
	}
}

func HandleCellInfo(h CellHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		idx, err := parseIndexParam(chi.URLParam(r, "index"))
		if err != nil {
			http.Error(sw, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/cell/{index}", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		h.HandleCellInfo(r.Context(), sw, r, model.CellQuery{Index: idx})
		observability.ObserveHTTP(r.Method, "/cell/{index}", sw.code, time.Since(start).Seconds())
	}
}

func HandleParent(h CellHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		idx, err := parseIndexParam(chi.URLParam(r, "index"))
		if err != nil {
			http.Error(sw, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/cell/{index}/parent", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}
		res, err := parseRes(r.URL.Query().Get("res"), -1)
		if err != nil || res < 0 {
			http.Error(sw, "missing or invalid required parameter: res", http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/cell/{index}/parent", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		h.HandleParent(r.Context(), sw, r, model.ParentQuery{Index: idx, Res: res})
		observability.ObserveHTTP(r.Method, "/cell/{index}/parent", sw.code, time.Since(start).Seconds())
	}
}

func HandleDistance(h CellHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		q, err := ParseDistanceQuery(r)
		if err != nil {
			http.Error(sw, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/distance", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		h.HandleDistance(r.Context(), sw, r, q)
		observability.ObserveHTTP(r.Method, "/distance", sw.code, time.Since(start).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func ParsePointQuery(r *http.Request, defaultRes int) (model.PointQuery, error) {
	lat, err := parseFloat(r.URL.Query().Get("lat"))
	if err != nil {
		return model.PointQuery{}, fmt.Errorf("invalid lat: %w", err)
	}
	lng, err := parseFloat(r.URL.Query().Get("lng"))
	if err != nil {
		return model.PointQuery{}, fmt.Errorf("invalid lng: %w", err)
	}
	if lat < -90 || lat > 90 {
		return model.PointQuery{}, errors.New("lat must be in [-90,90]")
	}
	if lng < -180 || lng > 180 {
		return model.PointQuery{}, errors.New("lng must be in [-180,180]")
	}
	res, err := parseRes(r.URL.Query().Get("res"), defaultRes)
	if err != nil {
		return model.PointQuery{}, err
	}
	return model.PointQuery{Lat: lat, Lng: lng, Res: res}, nil
}

func ParseDistanceQuery(r *http.Request) (model.DistanceQuery, error) {
	a, err := parseIndexParam(r.URL.Query().Get("a"))
	if err != nil {
		return model.DistanceQuery{}, fmt.Errorf("invalid a: %w", err)
	}
	b, err := parseIndexParam(r.URL.Query().Get("b"))
	if err != nil {
		return model.DistanceQuery{}, fmt.Errorf("invalid b: %w", err)
	}
	return model.DistanceQuery{A: a, B: b}, nil
}

// parseRes validates the resolution range up front for a friendlier 400; the
// engine remains the authority inside the core.
func parseRes(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid res: %w", err)
	}
	if n < 0 || n > 15 {
		return 0, fmt.Errorf("invalid res %d (must be 0..15)", n)
	}
	return n, nil
}

var indexPattern = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]{1,16}$`)

func parseIndexParam(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("missing required parameter: index")
	}
	if !indexPattern.MatchString(raw) {
		return "", fmt.Errorf("malformed cell index %q", raw)
	}
	return raw, nil
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("parse float: %w", err)
	}
	return f, nil
}
