package service

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"btc_wallet/internal/domain"
	"btc_wallet/internal/pricing"
	"btc_wallet/internal/repository"
)

// Wallet limits.
const (
	MaxWalletsPerUser       = 3
	InitialWalletBalanceSat = domain.SatoshisPerBTC
)

// WalletService opens wallets and shows them to their owners.
type WalletService struct {
	store  repository.Storage
	prices pricing.Provider
}

// NewWalletService returns a service keeping wallets in store and pricing
// views with prices.
func NewWalletService(store repository.Storage, prices pricing.Provider) *WalletService {
	return &WalletService{store: store, prices: prices}
}

// CreateWallet opens a wallet holding InitialWalletBalanceSat. The owner row
// is locked and the wallet count checked in the same unit of work as the
// insert, so concurrent calls cannot both pass the cap.
func (s *WalletService) CreateWallet(ctx context.Context, userID string) (domain.Wallet, error) {
	var wallet domain.Wallet
	err := s.store.Atomic(ctx, func(tx repository.Storage) error {
		if _, err := tx.Users().Read(ctx, userID); err != nil {
			return err
		}
		n, err := tx.Wallets().CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n >= MaxWalletsPerUser {
			return domain.Conflict(fmt.Sprintf("User already has %d wallets", MaxWalletsPerUser))
		}
		wallet = domain.Wallet{
			Address:    newAddress(),
			UserID:     userID,
			BalanceSat: InitialWalletBalanceSat,
		}
		return tx.Wallets().Create(ctx, wallet)
	})
	if err != nil {
		return domain.Wallet{}, err
	}
	return wallet, nil
}

// GetWalletOwned returns the wallet at address if userID owns it. A wallet of
// another user is reported exactly like a missing one.
func (s *WalletService) GetWalletOwned(ctx context.Context, userID, address string) (domain.Wallet, error) {
	return ownedWallet(ctx, s.store.Wallets(), userID, address)
}

// ListWallets returns the wallets of userID ordered by address.
func (s *WalletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	return s.store.Wallets().ListByUser(ctx, userID)
}

// WalletView projects one wallet at the current quote.
func (s *WalletService) WalletView(ctx context.Context, w domain.Wallet) (WalletView, error) {
	q, err := s.prices.BTCUSD(ctx)
	if err != nil {
		return WalletView{}, err
	}
	return walletView(w, q), nil
}

// WalletViews projects several wallets with a single quote.
func (s *WalletService) WalletViews(ctx context.Context, wallets []domain.Wallet) ([]WalletView, error) {
	q, err := s.prices.BTCUSD(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]WalletView, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, walletView(w, q))
	}
	return out, nil
}

// ownedWallet is the ownership-aware wallet lookup.
func ownedWallet(ctx context.Context, wallets repository.WalletRepository, userID, address string) (domain.Wallet, error) {
	w, err := wallets.Read(ctx, address)
	if err != nil {
		return domain.Wallet{}, err
	}
	if err := requireOwner(w, userID); err != nil {
		return domain.Wallet{}, err
	}
	return w, nil
}

// requireOwner reports a wallet of another user exactly like a missing one.
func requireOwner(w domain.Wallet, userID string) error {
	if !w.OwnedBy(userID) {
		return domain.NotFound("Wallet not found")
	}
	return nil
}

func newAddress() string {
	id := uuid.New()
	return "w_" + hex.EncodeToString(id[:])
}
