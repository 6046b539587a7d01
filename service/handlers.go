package service

import (
	"encoding/json"
	"net/http"

	"github.com/hmelse/folio"
)

// ErrorResponse is the standard error format for API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// queryDate parses the named query parameter as a date, defaulting to today
// when absent.
func queryDate(r *http.Request, name string) (folio.Date, error) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return folio.Today(), nil
	}
	return folio.ParseDate(str)
}

// load fetches the journal and the pricer for one request, writing the
// error response itself when either fails.
func (s *Server) load(w http.ResponseWriter) (*folio.Journal, folio.Pricer, bool) {
	journal, err := s.store.Journal()
	if err != nil {
		s.log.Error().Err(err).Msg("could not load journal")
		WriteError(w, http.StatusInternalServerError, "could not load journal")
		return nil, nil, false
	}
	pricer, err := s.store.Pricer()
	if err != nil {
		s.log.Error().Err(err).Msg("could not load prices")
		WriteError(w, http.StatusInternalServerError, "could not load prices")
		return nil, nil, false
	}
	return journal, pricer, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	on, err := queryDate(r, "date")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	journal, pricer, ok := s.load(w)
	if !ok {
		return
	}

	report, err := folio.NewHoldingsReport(journal, s.cash, pricer, on)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// valueResponse is the light view served by /v1/value.
type valueResponse struct {
	Date       folio.Date  `json:"date"`
	TotalValue folio.Money `json:"totalValue"`
}

func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	on, err := queryDate(r, "date")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	journal, pricer, ok := s.load(w)
	if !ok {
		return
	}

	report, err := folio.NewHoldingsReport(journal, s.cash, pricer, on)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, valueResponse{Date: report.Date, TotalValue: report.TotalValue})
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	journal, err := s.store.Journal()
	if err != nil {
		s.log.Error().Err(err).Msg("could not load journal")
		WriteError(w, http.StatusInternalServerError, "could not load journal")
		return
	}

	q := r.URL.Query()
	ticker := q.Get("ticker")
	kind := q.Get("kind")
	byTicker := folio.ByTicker(ticker)
	byKind := folio.ByKind(folio.Kind(kind))

	trades := make([]folio.Trade, 0)
	for t := range journal.Trades() {
		if ticker != "" && !byTicker(t) {
			continue
		}
		if kind != "" && !byKind(t) {
			continue
		}
		trades = append(trades, t)
	}
	WriteJSON(w, http.StatusOK, trades)
}

// historyResponse is the history report together with its summary.
type historyResponse struct {
	*folio.HistoryReport
	Summary folio.HistorySummary `json:"summary"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	journal, pricer, ok := s.load(w)
	if !ok {
		return
	}

	end, err := queryDate(r, "end")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	start := journal.OldestTradeDate()
	if str := r.URL.Query().Get("start"); str != "" {
		start, err = folio.ParseDate(str)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if start.IsZero() {
		WriteError(w, http.StatusBadRequest, "the journal is empty and no start date was given")
		return
	}

	report, err := folio.NewHistoryReport(journal, s.cash, pricer, r.URL.Query().Get("ticker"), folio.NewRange(start, end))
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, historyResponse{HistoryReport: report, Summary: report.Summary()})
}
