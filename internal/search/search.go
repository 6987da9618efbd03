// Package search sequences one device search: query the API, normalize
// and classify matches, apply the caller's filters, and package the
// result. One invocation is one blocking call with no retries; nothing
// survives between invocations.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nethunter/core-go/internal/device"
	"nethunter/core-go/internal/filter"
	"nethunter/core-go/internal/metrics"
	"nethunter/core-go/internal/zoomeye"
)

// Outcome distinguishes the successful result shapes so that an empty
// table is never confused with an unreachable API.
type Outcome string

const (
	OutcomeOK Outcome = "ok"
	// OutcomeNoResults means the API call succeeded with zero matches.
	OutcomeNoResults Outcome = "no_results"
	// OutcomeNoRowsAfterFilter means matches came back but the filters
	// selected none of them.
	OutcomeNoRowsAfterFilter Outcome = "no_rows_after_filter"
)

// Result is the packaged outcome of one search.
type Result struct {
	SearchID string
	Query    string
	Rows     []device.Row
	Total    int // matches returned by the API before filtering
	Count    int // rows surviving the filters
	Outcome  Outcome
	Warnings []filter.Warning
}

// Empty reports whether the result carries no rows.
func (r *Result) Empty() bool {
	return r.Count == 0
}

// API is the outbound search dependency. *zoomeye.Client satisfies it.
type API interface {
	Search(ctx context.Context, query string, page int) (*zoomeye.Response, error)
}

type Runner struct {
	log     zerolog.Logger
	api     API
	metrics *metrics.Metrics
}

func New(log zerolog.Logger, api API, m *metrics.Metrics) *Runner {
	return &Runner{log: log, api: api, metrics: m}
}

// Run executes one search. An empty or whitespace query fails with a
// *ValidationError before any network call. A transport failure is
// returned as-is with no rows and no partial results. Filter warnings
// do not fail the search; they ride along on the result.
func (r *Runner) Run(ctx context.Context, query string, criteria filter.Criteria) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "query", Message: "query must not be empty"}
	}

	start := time.Now()
	resp, err := r.api.Search(ctx, query, 1)
	if err != nil {
		r.log.Error().Err(err).Str("query", query).Msg("search failed")
		r.metrics.ObserveSearch("transport_error", 0, time.Since(start))
		return nil, err
	}

	result := &Result{
		SearchID: uuid.NewString(),
		Query:    query,
	}

	rows := zoomeye.NormalizeAll(resp)
	for i := range rows {
		rows[i] = rows[i].Classified()
	}
	result.Total = len(rows)

	if len(rows) == 0 {
		result.Outcome = OutcomeNoResults
		r.metrics.ObserveSearch(string(result.Outcome), 0, time.Since(start))
		return result, nil
	}

	if !criteria.Empty() {
		rows, result.Warnings = filter.Apply(rows, criteria)
	}
	result.Rows = rows
	result.Count = len(rows)

	if result.Count == 0 {
		result.Outcome = OutcomeNoRowsAfterFilter
	} else {
		result.Outcome = OutcomeOK
	}

	r.log.Info().
		Str("search_id", result.SearchID).
		Str("query", query).
		Int("total", result.Total).
		Int("count", result.Count).
		Str("outcome", string(result.Outcome)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("search")

	r.metrics.ObserveSearch(string(result.Outcome), result.Count, time.Since(start))
	return result, nil
}
