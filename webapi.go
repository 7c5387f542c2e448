package stockfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// DefaultAPITimeout bounds every price source request.
const DefaultAPITimeout = 10 * time.Second

// WebAPI is a PriceSource over the portfolio web service's REST API.
//
// Securities live under /real_assets/{id}, their daily prices under
// /real_assets/{id}/days, both wrapped in a {"data": ...} envelope with the
// payload in "attributes". Requests fail after the configured timeout;
// errors propagate unmodified, retrying is the server's concern, not ours.
type WebAPI struct {
	client *resty.Client
}

// NewWebAPI returns a client for the service at baseURL. A zero timeout
// falls back to DefaultAPITimeout.
func NewWebAPI(baseURL string, timeout time.Duration) *WebAPI {
	if timeout == 0 {
		timeout = DefaultAPITimeout
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &WebAPI{client: client}
}

type attributesDocument[T any] struct {
	Data struct {
		ID         string `json:"id"`
		Attributes T      `json:"attributes"`
	} `json:"data"`
}

type attributesListDocument[T any] struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes T      `json:"attributes"`
	} `json:"data"`
}

type stockAttributes struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type dayAttributes struct {
	Date  Date            `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// Info fetches a stock's descriptive attributes.
func (a *WebAPI) Info(ctx context.Context, stockID string) (StockInfo, error) {
	url := fmt.Sprintf("/real_assets/%s", stockID)
	slog.Debug("fetching stock info", slog.String("stock", stockID))

	resp, err := a.client.R().SetContext(ctx).Get(url)
	if err != nil {
		slog.Error("stock info request failed", slog.String("stock", stockID), slog.String("err", err.Error()))
		return StockInfo{}, err
	}
	if resp.IsError() {
		return StockInfo{}, fmt.Errorf("GET %s: %s", url, resp.Status())
	}
	var doc attributesDocument[stockAttributes]
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return StockInfo{}, fmt.Errorf("decoding %s response: %w", url, err)
	}
	return StockInfo{Name: doc.Data.Attributes.Name, Symbol: doc.Data.Attributes.Symbol}, nil
}

// History fetches daily prices. A point query sends date=, a range query
// from_date=/to_date= with zero bounds omitted. Points are returned as
// delivered; ordering is the caller's concern.
func (a *WebAPI) History(ctx context.Context, stockID string, q HistoryQuery) ([]PricePoint, error) {
	url := fmt.Sprintf("/real_assets/%s/days", stockID)
	params := map[string]string{}
	switch {
	case !q.On.IsZero():
		params["date"] = q.On.String()
	default:
		if !q.From.IsZero() {
			params["from_date"] = q.From.String()
		}
		if !q.To.IsZero() {
			params["to_date"] = q.To.String()
		}
	}
	slog.Debug("fetching price history", slog.String("stock", stockID), slog.Any("params", params))

	resp, err := a.client.R().SetContext(ctx).SetQueryParams(params).Get(url)
	if err != nil {
		slog.Error("price history request failed", slog.String("stock", stockID), slog.String("err", err.Error()))
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status())
	}
	var doc attributesListDocument[dayAttributes]
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", url, err)
	}
	points := make([]PricePoint, 0, len(doc.Data))
	for _, d := range doc.Data {
		points = append(points, PricePoint{Date: d.Attributes.Date, Price: d.Attributes.Price})
	}
	return points, nil
}
