package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// CoinbaseSpotURL is the public BTC-USD spot price endpoint.
const CoinbaseSpotURL = "https://api.coinbase.com/v2/prices/BTC-USD/spot"

// Coinbase fetches the spot rate from the Coinbase public API.
type Coinbase struct {
	url    string
	client *http.Client
}

// NewCoinbase returns a provider for url, or CoinbaseSpotURL when url is empty.
func NewCoinbase(url string) *Coinbase {
	if url == "" {
		url = CoinbaseSpotURL
	}
	return &Coinbase{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type coinbaseSpot struct {
	Data struct {
		Amount decimal.Decimal `json:"amount"`
	} `json:"data"`
}

func (c *Coinbase) BTCUSD(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("coinbase: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("coinbase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Quote{}, fmt.Errorf("coinbase: unexpected status %s", resp.Status)
	}
	var body coinbaseSpot
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("coinbase: decode spot price: %w", err)
	}
	if !body.Data.Amount.IsPositive() {
		return Quote{}, fmt.Errorf("coinbase: missing spot amount")
	}
	return Quote{USDPerBTC: body.Data.Amount}, nil
}
