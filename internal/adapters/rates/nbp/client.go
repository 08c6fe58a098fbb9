// Package nbp implements the rate provider against the NBP (National Bank of
// Poland) Web API. Quotes come from table A mid rates, denominated in PLN.
package nbp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cantordev/cantor_backend/internal/apperrors"
	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/cantordev/cantor_backend/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.nbp.pl"

// Client fetches exchange rates from the NBP Web API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL. An empty baseURL selects
// the public NBP endpoint.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

var _ providers.RateProvider = (*Client)(nil)

// rateDocument mirrors the NBP response shape:
// {"table":"A","currency":"dolar amerykański","code":"USD","rates":[{"mid":4.0123}]}
type rateDocument struct {
	Currency string `json:"currency"`
	Code     string `json:"code"`
	Rates    []struct {
		Mid json.Number `json:"mid"`
	} `json:"rates"`
}

// Lookup fetches the current table A mid rate for the currency code.
// Every failure mode — unknown code, network error, malformed body — maps to
// apperrors.ErrRateUnavailable: a code that cannot be priced rejects the one
// trade attempt and is never a system fault.
func (c *Client) Lookup(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	endpoint := fmt.Sprintf("%s/api/exchangerates/rates/A/%s/?format=json", c.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", apperrors.ErrRateUnavailable, code, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: querying NBP for %s: %v", apperrors.ErrRateUnavailable, code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: NBP returned status %d for %s", apperrors.ErrRateUnavailable, resp.StatusCode, code)
	}

	var doc rateDocument
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding NBP response for %s: %v", apperrors.ErrRateUnavailable, code, err)
	}
	if len(doc.Rates) == 0 {
		return nil, fmt.Errorf("%w: NBP response for %s carries no rates", apperrors.ErrRateUnavailable, code)
	}

	mid, err := decimal.NewFromString(doc.Rates[0].Mid.String())
	if err != nil {
		return nil, fmt.Errorf("%w: parsing mid rate %q for %s: %v", apperrors.ErrRateUnavailable, doc.Rates[0].Mid.String(), code, err)
	}

	return &domain.Rate{
		CurrencyCode: code,
		CurrencyName: doc.Currency,
		Mid:          mid,
	}, nil
}
