package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc_wallet/internal/domain"
	"btc_wallet/internal/repository"
)

func TestCreateWalletCapHoldsUnderConcurrency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t)

	errs := make([]error, 10)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.wallets.CreateWallet(ctx, u.ID)
		}()
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, MaxWalletsPerUser, ok)
	assert.Equal(t, len(errs)-MaxWalletsPerUser, conflicts)

	n, err := f.store.Wallets().CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, MaxWalletsPerUser, n)
}

func TestOpposingTransfersAreSerialized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t), f.user(t)
	a, b := f.wallet(t, alice.ID), f.wallet(t, bob.ID)

	const perSide = 20
	errs := make(chan error, 2*perSide)
	var wg sync.WaitGroup
	for range perSide {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.txs.Transfer(ctx, alice.ID, a.Address, b.Address, 1_000)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := f.txs.Transfer(ctx, bob.ID, b.Address, a.Address, 1_000)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	profit, err := f.txs.PlatformProfitSat(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2*perSide*15, profit)
	total := f.balance(t, a.Address) + f.balance(t, b.Address)
	assert.Equal(t, 2*InitialWalletBalanceSat, total+profit)

	n, err := f.store.Transactions().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2*perSide, n)
}

// readLog records the wallet addresses read inside units of work.
type readLog struct {
	mu    sync.Mutex
	reads []string
}

func (l *readLog) add(address string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reads = append(l.reads, address)
}

func (l *readLog) take() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.reads
	l.reads = nil
	return out
}

type recordingStore struct {
	repository.Storage
	log *readLog
	tx  bool
}

func (s recordingStore) Wallets() repository.WalletRepository {
	if !s.tx {
		return s.Storage.Wallets()
	}
	return recordingWallets{WalletRepository: s.Storage.Wallets(), log: s.log}
}

func (s recordingStore) Atomic(ctx context.Context, fn func(tx repository.Storage) error) error {
	return s.Storage.Atomic(ctx, func(tx repository.Storage) error {
		return fn(recordingStore{Storage: tx, log: s.log, tx: true})
	})
}

type recordingWallets struct {
	repository.WalletRepository
	log *readLog
}

func (w recordingWallets) Read(ctx context.Context, address string) (domain.Wallet, error) {
	w.log.add(address)
	return w.WalletRepository.Read(ctx, address)
}

func TestTransferLocksWalletsInAddressOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t), f.user(t)
	a, b := f.wallet(t, alice.ID), f.wallet(t, bob.ID)

	log := &readLog{}
	txs := NewTransactionService(recordingStore{Storage: f.store, log: log}, fixedPrice)
	want := []string{a.Address, b.Address}
	sort.Strings(want)

	_, err := txs.Transfer(ctx, alice.ID, a.Address, b.Address, 1_000)
	require.NoError(t, err)
	assert.Equal(t, want, log.take())

	_, err = txs.Transfer(ctx, bob.ID, b.Address, a.Address, 1_000)
	require.NoError(t, err)
	assert.Equal(t, want, log.take())
}

func TestTransferChecksOwnershipAfterLocking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t), f.user(t)
	a, b := f.wallet(t, alice.ID), f.wallet(t, bob.ID)

	for _, tt := range []struct {
		userID, from, to string
	}{
		{bob.ID, a.Address, b.Address},
		{alice.ID, b.Address, a.Address},
		{alice.ID, a.Address, "w_0"},
		{alice.ID, a.Address, "w_zzz"},
	} {
		_, err := f.txs.Transfer(ctx, tt.userID, tt.from, tt.to, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "Wallet not found", domain.Message(err))
	}
	assert.Equal(t, InitialWalletBalanceSat, f.balance(t, a.Address))
	assert.Equal(t, InitialWalletBalanceSat, f.balance(t, b.Address))
}
