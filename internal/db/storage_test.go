package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc_wallet/internal/domain"
	"btc_wallet/internal/repository"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	gdb, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewStorage(gdb)
}

func seedUser(t *testing.T, s *Storage, id string) domain.User {
	t.Helper()
	u := domain.User{ID: id, APIKey: "key-" + id}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func seedWallet(t *testing.T, s *Storage, addr, userID string, balance int64) domain.Wallet {
	t.Helper()
	w := domain.Wallet{Address: addr, UserID: userID, BalanceSat: balance}
	require.NoError(t, s.Wallets().Create(context.Background(), w))
	return w
}

func TestOpenRejectsInMemorySQLite(t *testing.T) {
	_, err := OpenSQLite(":memory:")
	require.Error(t, err)
	_, err = OpenSQLite("")
	require.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle"})
	require.Error(t, err)
}

func TestAtomicCommits(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Atomic(ctx, func(tx repository.Storage) error {
		return tx.Users().Create(ctx, domain.User{ID: "u1", APIKey: "k1"})
	})
	require.NoError(t, err)

	got, err := s.Users().Read(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: "u1", APIKey: "k1"}, got)
}

func TestAtomicRollsBackOnError(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(tx repository.Storage) error {
		if err := tx.Users().Create(ctx, domain.User{ID: "u1", APIKey: "k1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().Read(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAtomicRollsBackOnPanic(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Atomic(ctx, func(tx repository.Storage) error {
			require.NoError(t, tx.Users().Create(ctx, domain.User{ID: "u1", APIKey: "k1"}))
			panic("boom")
		})
	})

	n, err := s.Users().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAtomicRejectsNesting(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Atomic(ctx, func(tx repository.Storage) error {
		if err := tx.Users().Create(ctx, domain.User{ID: "u1", APIKey: "k1"}); err != nil {
			return err
		}
		return tx.Atomic(ctx, func(repository.Storage) error { return nil })
	})
	require.ErrorIs(t, err, repository.ErrNestedUnitOfWork)

	n, err := s.Users().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserRepository(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	users := s.Users()

	u := seedUser(t, s, "u1")

	t.Run("duplicate id", func(t *testing.T) {
		err := users.Create(ctx, domain.User{ID: u.ID, APIKey: "other"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("duplicate api key", func(t *testing.T) {
		err := users.Create(ctx, domain.User{ID: "u2", APIKey: u.APIKey})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("read by api key", func(t *testing.T) {
		got, err := users.ReadByAPIKey(ctx, u.APIKey)
		require.NoError(t, err)
		assert.Equal(t, u, got)

		_, err = users.ReadByAPIKey(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("update", func(t *testing.T) {
		u.APIKey = "rotated"
		require.NoError(t, users.Update(ctx, u))
		got, err := users.Read(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "rotated", got.APIKey)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := users.Read(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "User not found", domain.Message(err))
		assert.ErrorIs(t, users.Update(ctx, domain.User{ID: "ghost", APIKey: "g"}), domain.ErrNotFound)
		assert.ErrorIs(t, users.Delete(ctx, "ghost"), domain.ErrNotFound)
	})
	t.Run("read all reflects the store", func(t *testing.T) {
		all, err := users.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		seedUser(t, s, "u3")
		all, err = users.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestWalletRepository(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	wallets := s.Wallets()

	seedUser(t, s, "u1")
	seedUser(t, s, "u2")
	seedWallet(t, s, "w_b", "u1", 10)
	seedWallet(t, s, "w_a", "u1", 20)
	seedWallet(t, s, "w_c", "u2", 30)

	list, err := wallets.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "w_a", list[0].Address)
	assert.Equal(t, "w_b", list[1].Address)

	n, err := wallets.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = wallets.CountByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)

	w, err := wallets.Read(ctx, "w_c")
	require.NoError(t, err)
	require.NoError(t, wallets.Update(ctx, w.Credit(5)))
	w, err = wallets.Read(ctx, "w_c")
	require.NoError(t, err)
	assert.EqualValues(t, 35, w.BalanceSat)

	t.Run("unknown owner", func(t *testing.T) {
		err := wallets.Create(ctx, domain.Wallet{Address: "w_x", UserID: "ghost"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("duplicate address", func(t *testing.T) {
		err := wallets.Create(ctx, domain.Wallet{Address: "w_a", UserID: "u2"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("negative balance", func(t *testing.T) {
		w, err := wallets.Read(ctx, "w_a")
		require.NoError(t, err)
		assert.Error(t, wallets.Update(ctx, w.Debit(w.BalanceSat+1)))
	})
}

func TestDeletingUserCascadesToWallets(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	seedUser(t, s, "u1")
	seedWallet(t, s, "w_1", "u1", 1)
	seedWallet(t, s, "w_2", "u1", 1)

	require.NoError(t, s.Users().Delete(ctx, "u1"))

	n, err := s.Wallets().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeletingReferencedWalletConflicts(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	seedUser(t, s, "u1")
	seedWallet(t, s, "w_1", "u1", 100)
	seedWallet(t, s, "w_2", "u1", 100)
	require.NoError(t, s.Transactions().Create(ctx, domain.Transaction{
		ID: "t1", FromAddress: "w_1", ToAddress: "w_2", AmountSat: 10,
		CreatedAt: time.Now().UTC().Round(0),
	}))

	err := s.Wallets().Delete(ctx, "w_1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.Wallets().Read(ctx, "w_1")
	assert.NoError(t, err)
}

func TestTransactionRepository(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	txs := s.Transactions()

	seedUser(t, s, "u1")
	seedUser(t, s, "u2")
	seedWallet(t, s, "w_1", "u1", 0)
	seedWallet(t, s, "w_2", "u1", 0)
	seedWallet(t, s, "w_3", "u2", 0)

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	t1 := t0.Add(time.Second)
	records := []domain.Transaction{
		{ID: "c", FromAddress: "w_1", ToAddress: "w_3", AmountSat: 1000, FeeSat: 15, CreatedAt: t1},
		{ID: "b", FromAddress: "w_3", ToAddress: "w_2", AmountSat: 2000, FeeSat: 30, CreatedAt: t0},
		{ID: "a", FromAddress: "w_1", ToAddress: "w_2", AmountSat: 500, FeeSat: 0, CreatedAt: t1},
	}
	for _, r := range records {
		require.NoError(t, txs.Create(ctx, r))
	}

	t.Run("round trip", func(t *testing.T) {
		got, err := txs.Read(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, records[0], got)
	})
	t.Run("ordered by time then id", func(t *testing.T) {
		got, err := txs.ListByAddresses(ctx, "w_1", "w_2")
		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, tx := range got {
			ids = append(ids, tx.ID)
		}
		assert.Equal(t, []string{"b", "a", "c"}, ids)
	})
	t.Run("single wallet", func(t *testing.T) {
		got, err := txs.ListByAddresses(ctx, "w_3")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
	t.Run("no addresses", func(t *testing.T) {
		got, err := txs.ListByAddresses(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("sum fees", func(t *testing.T) {
		total, err := txs.SumFees(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 45, total)
	})
	t.Run("unknown wallet", func(t *testing.T) {
		err := txs.Create(ctx, domain.Transaction{ID: "d", FromAddress: "w_9", ToAddress: "w_1", AmountSat: 1, CreatedAt: t0})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestSumFeesOnEmptyLedger(t *testing.T) {
	s := newTestStorage(t)
	total, err := s.Transactions().SumFees(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTimeLayoutSortsChronologically(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 5, time.UTC)
	late := time.Date(2024, 1, 1, 0, 0, 0, 40, time.UTC)
	assert.Less(t, formatTime(early), formatTime(late))
	assert.Len(t, formatTime(early), len(formatTime(late)))

	parsed, err := parseTime(formatTime(late))
	require.NoError(t, err)
	assert.Equal(t, late, parsed)
}
