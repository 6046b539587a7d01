package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmelse/folio"
)

// stubStore serves a fixed journal and pricer.
type stubStore struct {
	journal *folio.Journal
	pricer  folio.Pricer
}

func (s *stubStore) Journal() (*folio.Journal, error) { return s.journal, nil }
func (s *stubStore) Pricer() (folio.Pricer, error)    { return s.pricer, nil }

// demoServer builds a server over a journal holding MSFT 100 and CASH 9796:
// a 10,000 deposit followed by a buy of 100 MSFT at $2.00 with a $4.00
// commission.
func demoServer() *Server {
	journal := folio.NewJournal()
	journal.Append(
		folio.NewDeposit(folio.MustParse("2025-08-01"), "seed", folio.Q(10000)),
		folio.NewBuy(folio.MustParse("2025-08-02"), "", "MSFT", folio.Q(100), folio.M(2, "USD"), folio.M(4, "USD")),
	)
	pricer := folio.FixedPricer(map[string]folio.Money{
		"CASH": folio.M(1, "USD"),
		"MSFT": folio.M(2, "USD"),
	})
	return New(Config{
		Addr:       ":0",
		CashTicker: "CASH",
		Store:      &stubStore{journal: journal, pricer: pricer},
		Log:        zerolog.New(nil).Level(zerolog.Disabled),
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := demoServer()
	w := get(t, s, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestHandleHoldings(t *testing.T) {
	s := demoServer()
	w := get(t, s, "/v1/holdings?date=2025-08-02")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CASH", response["cashTicker"])
	assert.Equal(t, "2025-08-02", response["date"])

	lines := response["lines"].([]interface{})
	require.Len(t, lines, 2)

	total := response["totalValue"].(map[string]interface{})
	assert.Equal(t, float64(9996), total["amount"])
	assert.Equal(t, "USD", total["currency"])
}

func TestHandleHoldings_BadDate(t *testing.T) {
	s := demoServer()
	w := get(t, s, "/v1/holdings?date=not-a-date")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Error)
}

func TestHandleHoldings_FoldError(t *testing.T) {
	// A buy cannot settle when the cash ticker has no price.
	journal := folio.NewJournal()
	journal.Append(folio.NewBuy(folio.MustParse("2025-08-02"), "", "MSFT", folio.Q(1), folio.M(2, "USD"), folio.Money{}))
	s := New(Config{
		Addr:       ":0",
		CashTicker: "CASH",
		Store:      &stubStore{journal: journal, pricer: folio.FixedPricer(nil)},
		Log:        zerolog.New(nil).Level(zerolog.Disabled),
	})

	w := get(t, s, "/v1/holdings?date=2025-08-02")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "invalid cash price")
}

func TestHandleValue(t *testing.T) {
	s := demoServer()
	w := get(t, s, "/v1/value?date=2025-08-02")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "2025-08-02", response["date"])

	total := response["totalValue"].(map[string]interface{})
	assert.Equal(t, float64(9996), total["amount"])
}

func TestHandleTrades(t *testing.T) {
	s := demoServer()

	tests := []struct {
		name   string
		target string
		count  int
	}{
		{name: "all", target: "/v1/trades", count: 2},
		{name: "by kind", target: "/v1/trades?kind=buy", count: 1},
		{name: "by ticker", target: "/v1/trades?ticker=MSFT", count: 1},
		{name: "no match", target: "/v1/trades?ticker=GOOG", count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)

			var trades []map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trades))
			assert.Len(t, trades, tt.count)
		})
	}
}

func TestHandleHistory(t *testing.T) {
	s := demoServer()
	w := get(t, s, "/v1/history?start=2025-08-01&end=2025-08-03")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	entries := response["entries"].([]interface{})
	require.Len(t, entries, 3)

	last := entries[2].(map[string]interface{})
	value := last["value"].(map[string]interface{})
	assert.Equal(t, float64(9996), value["amount"])

	require.Contains(t, response, "summary")
	summary := response["summary"].(map[string]interface{})
	assert.Contains(t, summary, "mean")
	assert.Contains(t, summary, "return")
}

func TestHandleHistory_Ticker(t *testing.T) {
	s := demoServer()
	w := get(t, s, "/v1/history?start=2025-08-02&end=2025-08-02&ticker=MSFT")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "MSFT", response["ticker"])

	entries := response["entries"].([]interface{})
	require.Len(t, entries, 1)

	entry := entries[0].(map[string]interface{})
	value := entry["value"].(map[string]interface{})
	assert.Equal(t, float64(200), value["amount"])
}
