package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"nethunter/core-go/internal/device"
	"nethunter/core-go/internal/export"
	"nethunter/core-go/internal/filter"
	"nethunter/core-go/internal/metrics"
	"nethunter/core-go/internal/search"
	"nethunter/core-go/internal/zoomeye"
)

// Searcher is the pipeline dependency. *search.Runner satisfies it.
type Searcher interface {
	Run(ctx context.Context, query string, criteria filter.Criteria) (*search.Result, error)
}

type Handler struct {
	log      zerolog.Logger
	searcher Searcher
	metrics  *metrics.Metrics
}

func NewHandler(log zerolog.Logger, searcher Searcher, m *metrics.Metrics) *Handler {
	return &Handler{log: log, searcher: searcher, metrics: m}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(h.accessLog)

	r.Get("/healthz", h.handleHealthz)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/search", func(r chi.Router) {
				r.Post("/", h.handleSearch)
				r.Post("/export", h.handleSearchExport)
				r.Post("/map", h.handleSearchMap)
			})
			r.Get("/categories", h.handleListCategories)
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("http_request")

		h.metrics.ObserveHTTPRequest(r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	resp := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		resp["error"].(map[string]any)["details"] = details
	}
	h.writeJSON(w, status, resp)
}

func decodeJSONStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected extra data after JSON body")
		}
		return err
	}
	return nil
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type searchRequest struct {
	Query   string        `json:"query"`
	Filters searchFilters `json:"filters"`
}

// searchFilters carries the raw filter text from the caller; ports stays
// a comma-separated string so its validation warning semantics live in
// one place, the filter engine.
type searchFilters struct {
	Country  string `json:"country,omitempty"`
	Ports    string `json:"ports,omitempty"`
	Product  string `json:"product,omitempty"`
	Category string `json:"category,omitempty"`
}

func (f searchFilters) criteria() filter.Criteria {
	return filter.Criteria{
		Country:  f.Country,
		Ports:    f.Ports,
		Product:  f.Product,
		Category: f.Category,
	}
}

type rowJSON struct {
	IP        string          `json:"ip"`
	Port      int             `json:"port"`
	Transport string          `json:"transport"`
	Country   string          `json:"country"`
	City      string          `json:"city"`
	Latitude  *float64        `json:"latitude,omitempty"`
	Longitude *float64        `json:"longitude,omitempty"`
	Product   string          `json:"product"`
	Banner    string          `json:"banner"`
	Category  device.Category `json:"category"`
	Color     device.Color    `json:"color"`
}

type searchResponse struct {
	SearchID string           `json:"search_id"`
	Query    string           `json:"query"`
	Outcome  search.Outcome   `json:"outcome"`
	Total    int              `json:"total"`
	Count    int              `json:"count"`
	Empty    bool             `json:"empty"`
	Warnings []filter.Warning `json:"warnings,omitempty"`
	Rows     []rowJSON        `json:"rows"`
}

func toRowJSON(r device.Row) rowJSON {
	return rowJSON{
		IP:        r.IP,
		Port:      r.Port,
		Transport: r.Transport,
		Country:   r.Country,
		City:      r.City,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Product:   r.Product,
		Banner:    r.Banner,
		Category:  r.Category,
		Color:     r.Color,
	}
}

// runSearch decodes the request body and executes the pipeline, writing
// the error envelope itself when anything fails.
func (h *Handler) runSearch(w http.ResponseWriter, r *http.Request) (*search.Result, bool) {
	var req searchRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return nil, false
	}

	result, err := h.searcher.Run(r.Context(), req.Query, req.Filters.criteria())
	if err != nil {
		var ve *search.ValidationError
		var te *zoomeye.TransportError
		switch {
		case errors.As(err, &ve):
			h.writeError(w, http.StatusBadRequest, "validation_failed", ve.Error(), map[string]any{"field": ve.Field})
		case errors.As(err, &te):
			// Transport failures surface the underlying message.
			h.writeError(w, http.StatusBadGateway, "upstream_failed", te.Error(), nil)
		default:
			h.log.Error().Err(err).Msg("search failed")
			h.writeError(w, http.StatusInternalServerError, "internal", "search failed", nil)
		}
		return nil, false
	}
	return result, true
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runSearch(w, r)
	if !ok {
		return
	}

	resp := searchResponse{
		SearchID: result.SearchID,
		Query:    result.Query,
		Outcome:  result.Outcome,
		Total:    result.Total,
		Count:    result.Count,
		Empty:    result.Empty(),
		Warnings: result.Warnings,
		Rows:     make([]rowJSON, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		resp.Rows = append(resp.Rows, toRowJSON(row))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSearchExport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runSearch(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="zoomeye_results.csv"`)
	if err := export.WriteCSV(w, result.Rows); err != nil {
		h.log.Error().Err(err).Msg("csv export failed")
	}
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"categories": device.AllCategories()})
}
