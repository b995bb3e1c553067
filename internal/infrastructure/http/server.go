package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"currency-api/internal/domain"
)

const maxAmount = 1_000_000_000

// Service is the boundary the request handlers consume. Every read returns
// either a value or domain.ErrUnavailable; handlers map unavailability to
// a 404 envelope.
type Service interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Convert(ctx context.Context, from, to string, amount float64) (domain.Conversion, error)
	ListCurrencies(ctx context.Context) (domain.CurrencyList, error)
}

type Server struct {
	svc  Service
	ping func(ctx context.Context) error
}

func NewServer(svc Service) *Server { return &Server{svc: svc} }

// SetReadyCheck wires the store ping used by /readyz.
func (s *Server) SetReadyCheck(f func(ctx context.Context) error) { s.ping = f }

type ratesResponse struct {
	Base        string             `json:"base"`
	Rates       map[string]float64 `json:"rates"`
	LastUpdated time.Time          `json:"last_updated"`
}

type conversionResponse struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      float64   `json:"amount"`
	Result      float64   `json:"result"`
	Rate        float64   `json:"rate"`
	LastUpdated time.Time `json:"last_updated"`
}

type currencyDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type currenciesResponse struct {
	Currencies  []currencyDTO `json:"currencies"`
	LastUpdated time.Time     `json:"last_updated"`
}

func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusNotFound, "exchange rates unavailable")
			return
		}
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, ratesResponse{
		Base:        snap.Base,
		Rates:       snap.Rates,
		LastUpdated: snap.LastUpdated,
	})
}

func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	from, ok := currencyParam(r, "from")
	if !ok {
		writeError(w, http.StatusBadRequest, "from must be a 3-letter currency code")
		return
	}
	to, ok := currencyParam(r, "to")
	if !ok {
		writeError(w, http.StatusBadRequest, "to must be a 3-letter currency code")
		return
	}
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 || amount >= maxAmount {
		writeError(w, http.StatusBadRequest, "amount must be a positive number below 1000000000")
		return
	}

	conv, err := s.svc.Convert(r.Context(), from, to, amount)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusNotFound, "conversion unavailable for requested currencies")
			return
		}
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, conversionResponse{
		From:        conv.From,
		To:          conv.To,
		Amount:      conv.Amount,
		Result:      conv.Result,
		Rate:        conv.Rate,
		LastUpdated: conv.LastUpdated,
	})
}

func (s *Server) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListCurrencies(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusNotFound, "currency list unavailable")
			return
		}
		internalError(w)
		return
	}
	out := make([]currencyDTO, 0, len(list.Currencies))
	for _, c := range list.Currencies {
		out = append(out, currencyDTO{Code: c.Code, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, currenciesResponse{
		Currencies:  out,
		LastUpdated: list.LastUpdated,
	})
}

func currencyParam(r *http.Request, name string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get(name)))
	if !domain.ValidCode(code) {
		return "", false
	}
	return code, true
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
