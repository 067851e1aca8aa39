package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalgo/fiscalrates/pkg/models"
)

// fakeFetcher serves canned responses per date and counts calls.
type fakeFetcher struct {
	responses map[string][]models.RateRecord
	errs      map[string]error
	calls     []string
}

func (f *fakeFetcher) RatesByDate(ctx context.Context, date string) ([]models.RateRecord, error) {
	f.calls = append(f.calls, date)
	if err := f.errs[date]; err != nil {
		return nil, err
	}
	return f.responses[date], nil
}

func record(date, desc, rate string) models.RateRecord {
	return models.RateRecord{RecordDate: date, SecurityDesc: desc, Rate: rate}
}

func TestCollectFiltersToRequestedSecurities(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]models.RateRecord{
		"2023-09-30": {
			record("2023-09-30", "Treasury Bills", "4.187%"),
			record("2023-09-30", "Treasury Notes", "3.112%"),
		},
	}}

	rep, err := NewAssembler(fetcher).Collect(context.Background(),
		[]string{"2023-09-30"}, []string{"Treasury Bills"})
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Treasury Bills", rep.Rows[0].SecurityDesc)
	assert.Equal(t, "4.187%", rep.Rows[0].Rate)
	assert.Equal(t, "Marketable", rep.Rows[0].SecurityType, "category comes from the catalog")
	assert.Empty(t, rep.Failed)
}

func TestCollectSortsByDateThenDescription(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]models.RateRecord{
		"2023-09-30": {
			record("2023-09-30", "Treasury Notes", "3.112%"),
			record("2023-09-30", "Treasury Bills", "4.187%"),
		},
		"2023-08-31": {
			record("2023-08-31", "Treasury Notes", "3.001%"),
		},
	}}

	// Dates are fetched in the order given; output is still sorted.
	rep, err := NewAssembler(fetcher).Collect(context.Background(),
		[]string{"2023-09-30", "2023-08-31"},
		[]string{"Treasury Bills", "Treasury Notes"})
	require.NoError(t, err)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "2023-08-31", rep.Rows[0].RecordDate)
	assert.Equal(t, "Treasury Bills", rep.Rows[1].SecurityDesc)
	assert.Equal(t, "Treasury Notes", rep.Rows[2].SecurityDesc)
}

func TestCollectSkipsFailedDates(t *testing.T) {
	boom := errors.New("connection reset")
	fetcher := &fakeFetcher{
		responses: map[string][]models.RateRecord{
			"2023-09-30": {record("2023-09-30", "Treasury Bills", "4.187%")},
		},
		errs: map[string]error{"2023-08-31": boom},
	}

	rep, err := NewAssembler(fetcher).Collect(context.Background(),
		[]string{"2023-08-31", "2023-09-30"}, []string{"Treasury Bills"})
	require.NoError(t, err, "one bad date must not abort the rest")

	assert.Equal(t, []string{"2023-08-31", "2023-09-30"}, fetcher.calls)
	require.Len(t, rep.Rows, 1)
	require.Len(t, rep.Failed, 1)
	assert.Equal(t, "2023-08-31", rep.Failed[0].Date)
	assert.ErrorIs(t, rep.Failed[0].Err, boom)
}

func TestCollectEmptyResultIsNotAnError(t *testing.T) {
	fetcher := &fakeFetcher{}
	rep, err := NewAssembler(fetcher).Collect(context.Background(),
		[]string{"2023-09-30"}, []string{"Treasury Bills"})
	require.NoError(t, err)
	assert.True(t, rep.Empty())
}

func TestCollectStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{}
	_, err := NewAssembler(fetcher).Collect(ctx, []string{"2023-09-30"}, []string{"Treasury Bills"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.calls, "no fetch after cancellation")
}

func TestWriteTable(t *testing.T) {
	var out, errOut bytes.Buffer
	rep := &Report{Rows: []models.RateRecord{
		{RecordDate: "2023-09-30", SecurityType: "Marketable", SecurityDesc: "Treasury Bills", Rate: "4.187%"},
	}}
	Write(&out, &errOut, rep)

	got := out.String()
	assert.Contains(t, got, "RECORD DATE")
	assert.Contains(t, got, "Treasury Bills")
	assert.Contains(t, got, "4.187%")
	assert.NotContains(t, got, "Treasury Notes")
	assert.Empty(t, errOut.String())
}

func TestWriteEmptyReport(t *testing.T) {
	var out, errOut bytes.Buffer
	Write(&out, &errOut, &Report{})
	assert.Contains(t, out.String(), "No matching data found")
}

func TestWriteReportsSkippedDates(t *testing.T) {
	var out, errOut bytes.Buffer
	rep := &Report{
		Rows:   []models.RateRecord{{RecordDate: "2023-09-30", SecurityType: "Marketable", SecurityDesc: "Treasury Bills", Rate: "4.187%"}},
		Failed: []FetchFailure{{Date: "2023-08-31", Err: errors.New("status 500")}},
	}
	Write(&out, &errOut, rep)

	assert.Contains(t, out.String(), "Treasury Bills")
	assert.Contains(t, errOut.String(), "2023-08-31")
	assert.Contains(t, errOut.String(), "skipped")
}

func TestWriteCatalogIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	WriteCatalog(&first)
	WriteCatalog(&second)

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "Type: Marketable")
	assert.Contains(t, first.String(), "Type: Non-marketable")
	assert.Contains(t, first.String(), "Type: Interest-bearing Debt")
	assert.Contains(t, first.String(), `"Treasury Bills"`)
}
