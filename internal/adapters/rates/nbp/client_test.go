package nbp_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cantordev/cantor_backend/internal/adapters/rates/nbp"
	"github.com/cantordev/cantor_backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/exchangerates/rates/A/USD/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"table":"A","currency":"dolar amerykański","code":"USD","rates":[{"no":"060/A/NBP/2024","effectiveDate":"2024-03-25","mid":4.0123}]}`)
	}))
	defer server.Close()

	client := nbp.NewClient(server.URL, server.Client())
	rate, err := client.Lookup(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, "USD", rate.CurrencyCode)
	assert.Equal(t, "dolar amerykański", rate.CurrencyName)
	assert.True(t, rate.Mid.Equal(decimal.RequireFromString("4.0123")), "mid was %s", rate.Mid)
}

func TestLookup_UnknownCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := nbp.NewClient(server.URL, server.Client())
	rate, err := client.Lookup(context.Background(), "XXX")

	require.Error(t, err)
	assert.Nil(t, rate)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestLookup_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates": "oops"`)
	}))
	defer server.Close()

	client := nbp.NewClient(server.URL, server.Client())
	_, err := client.Lookup(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestLookup_EmptyRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"table":"A","currency":"dolar amerykański","code":"USD","rates":[]}`)
	}))
	defer server.Close()

	client := nbp.NewClient(server.URL, server.Client())
	_, err := client.Lookup(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestLookup_NetworkErrorIsRateUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	server.Close()

	nbpClient := nbp.NewClient(server.URL, client)
	_, err := nbpClient.Lookup(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}
