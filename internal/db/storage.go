package db

import (
	"context"

	"gorm.io/gorm"

	"btc_wallet/internal/domain"
	"btc_wallet/internal/repository"
)

// Storage is the gorm-backed repository.Storage. The zero value is not usable;
// build one with NewStorage.
type Storage struct {
	db   *gorm.DB
	inTx bool
}

var _ repository.Storage = (*Storage)(nil)

// NewStorage binds the repositories to db.
func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Users() repository.UserRepository {
	return userRepo{table[domain.User, userRow]{
		db: s.db, locking: s.inTx, entity: "User", key: "id",
		toRow: userToRow, fromRow: userFromRow,
	}}
}

func (s *Storage) Wallets() repository.WalletRepository {
	return walletRepo{table[domain.Wallet, walletRow]{
		db: s.db, locking: s.inTx, entity: "Wallet", key: "address",
		toRow: walletToRow, fromRow: walletFromRow,
	}}
}

func (s *Storage) Transactions() repository.TransactionRepository {
	return transactionRepo{table[domain.Transaction, transactionRow]{
		db: s.db, locking: s.inTx, entity: "Transaction", key: "id",
		toRow: transactionToRow, fromRow: transactionFromRow,
	}}
}

// Atomic runs fn in one database transaction. gorm commits when fn returns
// nil and rolls back on an error or a panic, which is then re-raised.
func (s *Storage) Atomic(ctx context.Context, fn func(tx repository.Storage) error) error {
	if s.inTx {
		return repository.ErrNestedUnitOfWork
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Storage{db: tx, inTx: true})
	})
}
