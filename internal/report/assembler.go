// Package report collects rate records across record dates, filters them to
// the requested securities, and renders them as a grid table.
package report

import (
	"context"
	"log/slog"
	"sort"

	"github.com/fiscalgo/fiscalrates/internal/catalog"
	"github.com/fiscalgo/fiscalrates/pkg/models"
)

// Fetcher is the slice of the treasury client the assembler needs.
type Fetcher interface {
	RatesByDate(ctx context.Context, date string) ([]models.RateRecord, error)
}

// FetchFailure records a date whose fetch failed and was skipped.
type FetchFailure struct {
	Date string
	Err  error
}

// Report is the outcome of collecting one request's worth of dates.
type Report struct {
	Rows   []models.RateRecord
	Failed []FetchFailure
}

// Empty reports whether no rows matched at all.
func (r *Report) Empty() bool { return len(r.Rows) == 0 }

// Assembler drives the per-date fetch loop.
type Assembler struct {
	fetcher Fetcher
}

// NewAssembler creates an assembler over the given fetcher.
func NewAssembler(f Fetcher) *Assembler {
	return &Assembler{fetcher: f}
}

// Collect fetches each date in order, keeps rows for the requested canonical
// security descriptions, tags each with its catalog category, and sorts the
// combined result by record date then description. A failed date is logged
// and skipped; it does not abort the remaining dates. Context cancellation
// does abort, so an operator interrupt stops cleanly mid-loop.
func (a *Assembler) Collect(ctx context.Context, dates, securities []string) (*Report, error) {
	wanted := make(map[string]struct{}, len(securities))
	for _, s := range securities {
		wanted[s] = struct{}{}
	}

	rep := &Report{}
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := a.fetcher.RatesByDate(ctx, date)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("could not fetch rates, skipping date",
				slog.String("date", date), slog.String("err", err.Error()))
			rep.Failed = append(rep.Failed, FetchFailure{Date: date, Err: err})
			continue
		}
		for _, rec := range records {
			if _, ok := wanted[rec.SecurityDesc]; !ok {
				continue
			}
			rec.SecurityType = catalog.CategoryOf(rec.SecurityDesc)
			rep.Rows = append(rep.Rows, rec)
		}
	}

	// ISO date strings sort lexicographically in chronological order.
	sort.Slice(rep.Rows, func(i, j int) bool {
		if rep.Rows[i].RecordDate != rep.Rows[j].RecordDate {
			return rep.Rows[i].RecordDate < rep.Rows[j].RecordDate
		}
		return rep.Rows[i].SecurityDesc < rep.Rows[j].SecurityDesc
	})
	return rep, nil
}
