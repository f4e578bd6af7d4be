package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_InvertsToBasePerUnit(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		// 1 INR buys 0.0125 USD, so 1 USD must book as 80 INR.
		w.Write([]byte(`{"base":"INR","date":"2025-03-10","rates":{"USD":0.0125,"EUR":0.01,"INR":1}}`))
	}))
	defer server.Close()

	provider := NewHTTPRateProvider(server.URL, "test-key", 5*time.Second)
	table, err := provider.FetchRates(context.Background(), "INR")
	require.NoError(t, err)

	assert.Equal(t, "/latest?base=INR", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "INR", table.Base)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), table.Date)

	usd, ok := table.Rate("USD")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(80).Equal(usd), "expected 80, got %s", usd)

	eur, ok := table.Rate("EUR")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(100).Equal(eur), "expected 100, got %s", eur)

	// The base itself is not a table entry; Rate short-circuits it to 1.
	_, listed := table.Rates["INR"]
	assert.False(t, listed)
	one, ok := table.Rate("INR")
	require.True(t, ok)
	assert.True(t, one.Equal(decimal.NewFromInt(1)))
}

func TestFetchRates_SkipsNonPositiveQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"INR","date":"2025-03-10","rates":{"USD":0.0125,"XXX":0,"YYY":-2}}`))
	}))
	defer server.Close()

	provider := NewHTTPRateProvider(server.URL, "", time.Second)
	table, err := provider.FetchRates(context.Background(), "INR")
	require.NoError(t, err)

	assert.Len(t, table.Rates, 1)
	_, ok := table.Rates["USD"]
	assert.True(t, ok)
}

func TestFetchRates_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"base":`))
			},
		},
		{
			name: "empty rates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"base":"INR","date":"2025-03-10","rates":{}}`))
			},
		},
		{
			name: "bad date",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"base":"INR","date":"10/03/2025","rates":{"USD":0.0125}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewHTTPRateProvider(server.URL, "", time.Second)
			_, err := provider.FetchRates(context.Background(), "INR")
			assert.Error(t, err)
		})
	}
}

func TestFetchRates_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := NewHTTPRateProvider(server.URL, "", 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := provider.FetchRates(ctx, "INR")
	assert.Error(t, err)
}
