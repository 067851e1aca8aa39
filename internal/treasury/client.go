// Package treasury implements the client for the U.S. Treasury FiscalData
// average interest rates endpoint.
//
// Docs: https://fiscaldata.treasury.gov/datasets/average-interest-rates-treasury-securities/
// No API key required.
package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/fiscalgo/fiscalrates/internal/config"
	"github.com/fiscalgo/fiscalrates/internal/infra"
	"github.com/fiscalgo/fiscalrates/pkg/models"
)

// ErrRequest is returned for transport failures and non-2xx responses.
type ErrRequest struct {
	Date   string
	Status int // 0 when the request never reached the server
	Err    error
}

func (e *ErrRequest) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fiscaldata request for %s failed with status %d", e.Date, e.Status)
	}
	return fmt.Sprintf("fiscaldata request for %s failed: %v", e.Date, e.Err)
}

func (e *ErrRequest) Unwrap() error { return e.Err }

// ErrMalformedResponse is returned when a 2xx body cannot be interpreted.
type ErrMalformedResponse struct {
	Date string
	Err  error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("fiscaldata returned an unreadable body for %s: %v", e.Date, e.Err)
}

func (e *ErrMalformedResponse) Unwrap() error { return e.Err }

// Client fetches average interest rates from the FiscalData API.
// One GET per record date, no retries, no caching.
type Client struct {
	http     *resty.Client
	endpoint string
	limiter  *infra.RateLimiter
}

// NewClient builds a client from configuration.
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout()).
		SetBaseURL(cfg.API.BaseURL)
	return &Client{
		http:     httpClient,
		endpoint: cfg.API.Endpoint,
		limiter:  infra.NewRateLimiter(cfg.API.RateLimit, cfg.API.RateWindow()),
	}
}

// ratesResponse is the subset of the FiscalData envelope this client reads.
type ratesResponse struct {
	Data []rateRow `json:"data"`
}

type rateRow struct {
	RecordDate         string `json:"record_date"`
	SecurityTypeDesc   string `json:"security_type_desc"`
	SecurityDesc       string `json:"security_desc"`
	AvgInterestRateAmt string `json:"avg_interest_rate_amt"`
}

// RatesByDate returns every security's average rate published for the given
// record date (YYYY-MM-DD). A well-formed response with no rows yields an
// empty slice and nil error.
func (c *Client) RatesByDate(ctx context.Context, date string) ([]models.RateRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ErrRequest{Date: date, Err: err}
	}

	slog.Debug("fetching rates", slog.String("date", date))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"filter": "record_date:eq:" + date,
			"sort":   "-record_date,security_desc",
		}).
		Get(c.endpoint)
	if err != nil {
		return nil, &ErrRequest{Date: date, Err: err}
	}
	if resp.IsError() {
		return nil, &ErrRequest{Date: date, Status: resp.StatusCode()}
	}

	var parsed ratesResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, &ErrMalformedResponse{Date: date, Err: err}
	}

	records := make([]models.RateRecord, 0, len(parsed.Data))
	for _, row := range parsed.Data {
		rate, err := formatRate(row.AvgInterestRateAmt)
		if err != nil {
			return nil, &ErrMalformedResponse{Date: date, Err: err}
		}
		records = append(records, models.RateRecord{
			RecordDate:   row.RecordDate,
			SecurityType: row.SecurityTypeDesc,
			SecurityDesc: row.SecurityDesc,
			Rate:         rate,
		})
	}

	slog.Debug("rates fetched", slog.String("date", date), slog.Int("count", len(records)))
	return records, nil
}

// formatRate renders the API's numeric string as a percentage fixed to
// three decimal places, e.g. "4.187%".
func formatRate(raw string) (string, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("bad rate value %q: %w", raw, err)
	}
	return d.StringFixed(3) + "%", nil
}
