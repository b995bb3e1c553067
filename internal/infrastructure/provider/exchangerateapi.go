package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"currency-api/internal/application"
	"currency-api/internal/domain"
	"currency-api/internal/infrastructure/httpx"
)

const latestPath = "/v6/latest"

// ExchangeRateAPIProvider fetches the full rate table for a base currency
// from an open.er-api.com style endpoint: GET /v6/latest/{BASE} returns a
// result field plus a code-to-rate mapping. Anything other than a success
// result with a non-empty mapping is a fetch failure.
type ExchangeRateAPIProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.RateProvider = (*ExchangeRateAPIProvider)(nil)

type latestResp struct {
	Result             string             `json:"result"`
	BaseCode           string             `json:"base_code"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	Rates              map[string]float64 `json:"rates"`
	ErrorType          string             `json:"error-type,omitempty"`
}

func (p *ExchangeRateAPIProvider) Latest(ctx context.Context, base string) (map[string]float64, error) {
	if p.BaseURL == "" {
		return nil, errors.New("exchangerateapi: missing configuration")
	}
	if !domain.ValidCode(base) {
		return nil, fmt.Errorf("exchangerateapi: invalid base currency %q", base)
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("exchangerateapi: invalid base url: %w", err)
	}
	u.Path = path.Join(u.Path, latestPath, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("exchangerateapi: create request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body latestResp
	if err := client.DoJSON(ctx, req, &body); err != nil {
		return nil, fmt.Errorf("exchangerateapi: do request: %w", err)
	}
	if body.Result != "success" {
		if body.ErrorType != "" {
			return nil, fmt.Errorf("exchangerateapi: %s", body.ErrorType)
		}
		return nil, errors.New("exchangerateapi: unsuccessful response")
	}
	if len(body.Rates) == 0 {
		return nil, errors.New("exchangerateapi: empty rate mapping")
	}
	return body.Rates, nil
}
