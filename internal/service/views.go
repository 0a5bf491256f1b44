package service

import (
	"time"

	"btc_wallet/internal/domain"
	"btc_wallet/internal/pricing"
)

// WalletView is a wallet balance in satoshis, BTC and USD.
type WalletView struct {
	Address    string `json:"address"`
	BalanceSat int64  `json:"balance_sat"`
	BalanceBTC string `json:"balance_btc"`
	BalanceUSD string `json:"balance_usd"`
}

// TxView is a transaction with amount and fee in satoshis, BTC and USD.
type TxView struct {
	ID          string `json:"id"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	AmountSat   int64  `json:"amount_sat"`
	AmountBTC   string `json:"amount_btc"`
	AmountUSD   string `json:"amount_usd"`
	FeeSat      int64  `json:"fee_sat"`
	FeeBTC      string `json:"fee_btc"`
	FeeUSD      string `json:"fee_usd"`
	CreatedAt   string `json:"created_at"`
}

// Statistics is the platform-wide summary shown to administrators.
type Statistics struct {
	TotalTransactions int64  `json:"total_transactions"`
	PlatformProfitSat int64  `json:"platform_profit_sat"`
	PlatformProfitBTC string `json:"platform_profit_btc"`
	PlatformProfitUSD string `json:"platform_profit_usd"`
}

func walletView(w domain.Wallet, q pricing.Quote) WalletView {
	balance := pricing.Value(w.BalanceSat, q)
	return WalletView{
		Address:    w.Address,
		BalanceSat: balance.Sat,
		BalanceBTC: balance.BTC,
		BalanceUSD: balance.USD,
	}
}

func txView(t domain.Transaction, q pricing.Quote) TxView {
	amount := pricing.Value(t.AmountSat, q)
	fee := pricing.Value(t.FeeSat, q)
	return TxView{
		ID:          t.ID,
		FromAddress: t.FromAddress,
		ToAddress:   t.ToAddress,
		AmountSat:   amount.Sat,
		AmountBTC:   amount.BTC,
		AmountUSD:   amount.USD,
		FeeSat:      fee.Sat,
		FeeBTC:      fee.BTC,
		FeeUSD:      fee.USD,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339Nano),
	}
}
