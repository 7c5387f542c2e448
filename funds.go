package stockfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Fund is an investable fund exposed by the web service for security
// discovery.
type Fund struct {
	ID       string
	Name     string
	Currency string
}

// FundStock is one security inside a fund.
type FundStock struct {
	ID     string
	Name   string
	Symbol string
}

// FundsService lists funds and their constituent securities from the
// /conceptual_assets endpoints. Funds quoted in another currency than the
// configured one are filtered out to avoid conversions. Both listings are
// cached for the lifetime of the service, with no invalidation.
type FundsService struct {
	api      *WebAPI
	currency string

	mu     sync.Mutex
	list   []Fund
	stocks map[string][]FundStock
}

// NewFundsService returns a fund listing over the same client as the price
// source, keeping only funds quoted in the given currency.
func NewFundsService(api *WebAPI, currency string) *FundsService {
	return &FundsService{
		api:      api,
		currency: currency,
		stocks:   make(map[string][]FundStock),
	}
}

type fundAttributes struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// Funds returns every fund quoted in the service's currency.
func (s *FundsService) Funds(ctx context.Context) ([]Fund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list != nil {
		return s.list, nil
	}
	slog.Debug("fetching fund list", slog.String("currency", s.currency))
	resp, err := s.api.client.R().SetContext(ctx).Get("/conceptual_assets/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GET /conceptual_assets/: %s", resp.Status())
	}
	var doc attributesListDocument[fundAttributes]
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decoding fund list: %w", err)
	}
	funds := make([]Fund, 0, len(doc.Data))
	for _, d := range doc.Data {
		if d.Attributes.Currency != s.currency {
			continue
		}
		funds = append(funds, Fund{ID: d.ID, Name: d.Attributes.Name, Currency: d.Attributes.Currency})
	}
	s.list = funds
	return funds, nil
}

// FundStocks returns the securities composing a fund.
func (s *FundsService) FundStocks(ctx context.Context, fundID string) ([]FundStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stocks, ok := s.stocks[fundID]; ok {
		return stocks, nil
	}
	url := fmt.Sprintf("/conceptual_assets/%s/real_assets", fundID)
	slog.Debug("fetching fund securities", slog.String("fund", fundID))
	resp, err := s.api.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status())
	}
	var doc attributesListDocument[stockAttributes]
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decoding fund securities: %w", err)
	}
	stocks := make([]FundStock, 0, len(doc.Data))
	for _, d := range doc.Data {
		stocks = append(stocks, FundStock{ID: d.ID, Name: d.Attributes.Name, Symbol: d.Attributes.Symbol})
	}
	s.stocks[fundID] = stocks
	return stocks, nil
}
