// Package rates pulls current exchange rate tables from an
// exchangerate-host style HTTP API.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const apiKeyHeader = "X-Api-Key"

// latestResponse is the wire shape of GET /latest?base=XXX. Rates come
// quoted as units of each code per one unit of base.
type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// HTTPRateProvider fetches rate tables over HTTP.
type HTTPRateProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPRateProvider builds a provider against the given source URL. The
// timeout bounds each fetch; the api key is optional and sent as a header
// when present.
func NewHTTPRateProvider(baseURL, apiKey string, timeout time.Duration) *HTTPRateProvider {
	return &HTTPRateProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

var _ providers.RateProvider = (*HTTPRateProvider)(nil)

// FetchRates pulls the full table for base and converts it to the engine's
// convention: base units per one unit of each quoted currency. The source
// quotes the other direction, so every usable rate is inverted here.
func (p *HTTPRateProvider) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	addr := p.baseURL + "/latest?base=" + url.QueryEscape(strings.ToUpper(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to build rate request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set(apiKeyHeader, p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to fetch rates for base %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RateTable{}, fmt.Errorf("rate source returned status %s for base %s", resp.Status, base)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return domain.RateTable{}, fmt.Errorf("rate source returned no rates for base %s", base)
	}

	effective, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to parse rate date %q: %w", payload.Date, err)
	}

	one := decimal.NewFromInt(1)
	table := domain.RateTable{
		Base:      strings.ToUpper(base),
		Date:      effective.UTC(),
		Rates:     make(map[string]decimal.Decimal, len(payload.Rates)),
		FetchedAt: time.Now().UTC(),
	}
	for code, quoted := range payload.Rates {
		code = strings.ToUpper(code)
		if code == table.Base || !quoted.IsPositive() {
			continue
		}
		table.Rates[code] = one.Div(quoted)
	}

	return table, nil
}
