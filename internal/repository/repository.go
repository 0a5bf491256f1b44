package repository

import (
	"context"
	"errors"

	"btc_wallet/internal/domain"
)

// ErrNestedUnitOfWork is returned when Atomic is called on a storage that is
// already bound to an open unit of work.
var ErrNestedUnitOfWork = errors.New("nested unit of work is not supported")

// Repository is the CRUD contract every entity store satisfies. Failures are
// domain errors: ErrConflict on uniqueness or reference violations and
// ErrNotFound for a missing identity.
type Repository[T any] interface {
	Create(ctx context.Context, item T) error
	Read(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) error
	// ReadAll re-reads the store on every call. Order is unspecified.
	ReadAll(ctx context.Context) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Repository[domain.User]
	ReadByAPIKey(ctx context.Context, apiKey string) (domain.User, error)
}

type WalletRepository interface {
	Repository[domain.Wallet]
	ListByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type TransactionRepository interface {
	Repository[domain.Transaction]
	// ListByAddresses returns transactions sent from or to any of addresses,
	// oldest first, ties broken by id.
	ListByAddresses(ctx context.Context, addresses ...string) ([]domain.Transaction, error)
	SumFees(ctx context.Context) (int64, error)
}

// Storage binds the three repositories to one store.
type Storage interface {
	Users() UserRepository
	Wallets() WalletRepository
	Transactions() TransactionRepository

	// Atomic runs fn inside one exclusive transaction. The Storage handed to
	// fn is bound to that transaction. Everything fn wrote is committed when
	// it returns nil and rolled back when it returns an error or panics.
	Atomic(ctx context.Context, fn func(tx Storage) error) error
}
