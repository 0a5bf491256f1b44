package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"btc_wallet/internal/db"
	"btc_wallet/internal/domain"
	"btc_wallet/internal/pricing"
)

var fixedPrice = pricing.Fixed{Rate: decimal.RequireFromString("50000.00")}

type failingPrices struct{ err error }

func (p failingPrices) BTCUSD(context.Context) (pricing.Quote, error) {
	return pricing.Quote{}, p.err
}

func newTestStore(t *testing.T) *db.Storage {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db.NewStorage(gdb)
}

// fixture wires the three services over one fresh store.
type fixture struct {
	store   *db.Storage
	users   *UserService
	wallets *WalletService
	txs     *TransactionService
}

func newFixture(t *testing.T, opts ...TxOption) fixture {
	t.Helper()
	store := newTestStore(t)
	return fixture{
		store:   store,
		users:   NewUserService(store),
		wallets: NewWalletService(store, fixedPrice),
		txs:     NewTransactionService(store, fixedPrice, opts...),
	}
}

func (f fixture) user(t *testing.T) domain.User {
	t.Helper()
	u, err := f.users.Register(context.Background())
	require.NoError(t, err)
	return u
}

func (f fixture) wallet(t *testing.T, userID string) domain.Wallet {
	t.Helper()
	w, err := f.wallets.CreateWallet(context.Background(), userID)
	require.NoError(t, err)
	return w
}

func (f fixture) balance(t *testing.T, address string) int64 {
	t.Helper()
	w, err := f.store.Wallets().Read(context.Background(), address)
	require.NoError(t, err)
	return w.BalanceSat
}

// steppingClock returns a clock advancing by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

var errPriceFeed = errors.New("price feed down")
