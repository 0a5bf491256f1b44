// Package pricing supplies the BTC/USD spot rate and the satoshi/BTC/USD
// conversions used by every display projection.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"btc_wallet/internal/domain"
)

// Quote is a BTC/USD spot rate.
type Quote struct {
	USDPerBTC decimal.Decimal `json:"usd_per_btc"`
}

// Provider returns the current BTC/USD rate. Implementations are called
// synchronously and their errors reach the caller unchanged.
type Provider interface {
	BTCUSD(ctx context.Context) (Quote, error)
}

const (
	btcPlaces = 8
	usdPlaces = 2
)

// SatToBTC converts satoshis to BTC exactly.
func SatToBTC(sat int64) decimal.Decimal {
	return decimal.NewFromInt(sat).DivRound(decimal.NewFromInt(domain.SatoshisPerBTC), btcPlaces)
}

// ToUSD values btc at the quoted rate, rounding half-up to cents once, at the end.
func ToUSD(btc decimal.Decimal, q Quote) decimal.Decimal {
	return btc.Mul(q.USDPerBTC).Round(usdPlaces)
}

// FormatBTC renders a BTC amount with exactly 8 fractional digits.
func FormatBTC(btc decimal.Decimal) string {
	return btc.StringFixed(btcPlaces)
}

// FormatUSD renders a USD amount with exactly 2 fractional digits.
func FormatUSD(usd decimal.Decimal) string {
	return usd.StringFixed(usdPlaces)
}

// Amount is one satoshi amount expressed in all three units.
type Amount struct {
	Sat int64
	BTC string
	USD string
}

// Value expresses sat in satoshis, BTC and USD at quote q.
func Value(sat int64, q Quote) Amount {
	btc := SatToBTC(sat)
	return Amount{Sat: sat, BTC: FormatBTC(btc), USD: FormatUSD(ToUSD(btc, q))}
}

// Fixed always quotes the same rate.
type Fixed struct {
	Rate decimal.Decimal
}

func (f Fixed) BTCUSD(context.Context) (Quote, error) {
	return Quote{USDPerBTC: f.Rate}, nil
}
