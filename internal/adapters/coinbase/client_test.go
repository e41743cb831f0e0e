package coinbase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pythia/pkg/errors"
)

func TestCandlesParsesAndSortsResponse(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/SOL-USD/candles", r.URL.Path)
		gotQuery = map[string]string{
			"granularity": r.URL.Query().Get("granularity"),
			"start":       r.URL.Query().Get("start"),
			"end":         r.URL.Query().Get("end"),
		}
		// Rows intentionally out of order; the API does not guarantee it.
		w.Write([]byte(`[
			[1750000000, 148.0, 152.0, 149.0, 151.0, 1200.5],
			[1749992800, 147.0, 151.0, 148.0, 150.0, 900.0],
			[1749996400, 146.0, 150.0, 147.0, 149.0, 1100.0]
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return fixed }

	series, err := client.Candles(context.Background(), "SOL-USD", 3600, 200)
	require.NoError(t, err)
	require.Len(t, series, 3)

	require.Equal(t, "3600", gotQuery["granularity"])
	require.Equal(t, fixed.Format(time.RFC3339), gotQuery["end"])
	require.Equal(t, fixed.Add(-3600*200*time.Second).Format(time.RFC3339), gotQuery["start"])

	for i := 1; i < len(series); i++ {
		require.True(t, series[i-1].Time.Before(series[i].Time), "series not ascending at %d", i)
	}

	first := series[0]
	require.Equal(t, time.Unix(1749992800, 0).UTC(), first.Time)
	require.Equal(t, 147.0, first.Low)
	require.Equal(t, 151.0, first.High)
	require.Equal(t, 148.0, first.Open)
	require.Equal(t, 150.0, first.Close)
	require.Equal(t, 900.0, first.Volume)
}

func TestCandlesNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"NotFound"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Candles(context.Background(), "NOPE-USD", 3600, 200)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrExchangeUnavailable))
}

func TestCandlesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"not an array"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Candles(context.Background(), "SOL-USD", 3600, 200)
	require.Error(t, err)
}

func TestCandlesShortRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1750000000, 148.0, 152.0]]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Candles(context.Background(), "SOL-USD", 3600, 200)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrExternal))
}

func TestCandlesEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Candles(context.Background(), "SOL-USD", 3600, 200)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrInsufficientData))
}

func TestCandlesRejectsBadArguments(t *testing.T) {
	client := NewClient("http://localhost:0", time.Second)

	_, err := client.Candles(context.Background(), "", 3600, 200)
	require.True(t, errors.Is(err, errors.ErrInvalidSymbol))

	_, err = client.Candles(context.Background(), "SOL-USD", 0, 200)
	require.True(t, errors.Is(err, errors.ErrInvalidInput))
}
