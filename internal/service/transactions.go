package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"btc_wallet/internal/domain"
	"btc_wallet/internal/pricing"
	"btc_wallet/internal/repository"
)

// TransactionService moves satoshis between wallets and reports on the ledger.
type TransactionService struct {
	store  repository.Storage
	prices pricing.Provider
	now    func() time.Time
	newID  func() string
}

// TxOption customizes a TransactionService.
type TxOption func(*TransactionService)

// WithClock replaces the transaction timestamp source.
func WithClock(now func() time.Time) TxOption {
	return func(s *TransactionService) { s.now = now }
}

// NewTransactionService returns a service recording transfers in store and
// pricing views with prices.
func NewTransactionService(store repository.Storage, prices pricing.Provider, opts ...TxOption) *TransactionService {
	s := &TransactionService{
		store:  store,
		prices: prices,
		now:    time.Now,
		newID:  func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transfer debits amountSat from a wallet owned by userID and credits the
// receiver with amountSat minus the fee. Balances and the ledger entry are
// written in one unit of work; any failure leaves the store untouched.
func (s *TransactionService) Transfer(ctx context.Context, userID, fromAddress, toAddress string, amountSat int64) (domain.Transaction, error) {
	if fromAddress == toAddress {
		return domain.Transaction{}, domain.Validation("from_address and to_address must be different")
	}
	if amountSat <= 0 {
		return domain.Transaction{}, domain.Validation("amount_sat must be > 0")
	}

	var tx domain.Transaction
	err := s.store.Atomic(ctx, func(st repository.Storage) error {
		from, to, err := lockPair(ctx, st.Wallets(), fromAddress, toAddress)
		if err != nil {
			return err
		}
		if err := requireOwner(from, userID); err != nil {
			return err
		}

		fee := TransferFee(from, to, amountSat)
		// checked against the full amount, the fee comes out of it
		if from.BalanceSat < amountSat {
			return domain.InsufficientFunds("Insufficient funds")
		}

		if err := st.Wallets().Update(ctx, from.Debit(amountSat)); err != nil {
			return err
		}
		if err := st.Wallets().Update(ctx, to.Credit(amountSat-fee)); err != nil {
			return err
		}

		tx = domain.Transaction{
			ID:          s.newID(),
			FromAddress: fromAddress,
			ToAddress:   toAddress,
			AmountSat:   amountSat,
			FeeSat:      fee,
			CreatedAt:   s.now().UTC().Round(0),
		}
		return st.Transactions().Create(ctx, tx)
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// lockPair reads both wallets of a transfer in address order, so two
// transfers over the same pair take their row locks in the same order.
func lockPair(ctx context.Context, wallets repository.WalletRepository, fromAddress, toAddress string) (from, to domain.Wallet, err error) {
	first, second := fromAddress, toAddress
	if second < first {
		first, second = second, first
	}
	a, err := wallets.Read(ctx, first)
	if err != nil {
		return from, to, err
	}
	b, err := wallets.Read(ctx, second)
	if err != nil {
		return from, to, err
	}
	if first == fromAddress {
		return a, b, nil
	}
	return b, a, nil
}

// ListUserTransactions returns every transaction touching a wallet of userID,
// oldest first.
func (s *TransactionService) ListUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	wallets, err := s.store.Wallets().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	addresses := make([]string, 0, len(wallets))
	for _, w := range wallets {
		addresses = append(addresses, w.Address)
	}
	return s.store.Transactions().ListByAddresses(ctx, addresses...)
}

// ListWalletTransactions returns the history of one wallet owned by userID,
// oldest first.
func (s *TransactionService) ListWalletTransactions(ctx context.Context, userID, address string) ([]domain.Transaction, error) {
	if _, err := ownedWallet(ctx, s.store.Wallets(), userID, address); err != nil {
		return nil, err
	}
	return s.store.Transactions().ListByAddresses(ctx, address)
}

// TxView projects one transaction at the current quote.
func (s *TransactionService) TxView(ctx context.Context, tx domain.Transaction) (TxView, error) {
	q, err := s.prices.BTCUSD(ctx)
	if err != nil {
		return TxView{}, err
	}
	return txView(tx, q), nil
}

// TxViews projects several transactions with a single quote.
func (s *TransactionService) TxViews(ctx context.Context, txs []domain.Transaction) ([]TxView, error) {
	q, err := s.prices.BTCUSD(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TxView, 0, len(txs))
	for _, t := range txs {
		out = append(out, txView(t, q))
	}
	return out, nil
}

// PlatformProfitSat is the sum of all fees ever charged.
func (s *TransactionService) PlatformProfitSat(ctx context.Context) (int64, error) {
	return s.store.Transactions().SumFees(ctx)
}

// Statistics reports the transaction count and platform profit. It is not a
// snapshot: a transfer committing in between may be counted in one figure only.
func (s *TransactionService) Statistics(ctx context.Context) (Statistics, error) {
	total, err := s.store.Transactions().Count(ctx)
	if err != nil {
		return Statistics{}, err
	}
	profit, err := s.PlatformProfitSat(ctx)
	if err != nil {
		return Statistics{}, err
	}
	q, err := s.prices.BTCUSD(ctx)
	if err != nil {
		return Statistics{}, err
	}
	v := pricing.Value(profit, q)
	return Statistics{
		TotalTransactions: total,
		PlatformProfitSat: v.Sat,
		PlatformProfitBTC: v.BTC,
		PlatformProfitUSD: v.USD,
	}, nil
}
