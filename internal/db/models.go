package db

import (
	"fmt"
	"time"

	"btc_wallet/internal/domain"
)

// timeLayout is fixed width so that stored timestamps sort lexically in
// chronological order and parse back to the identical instant.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type userRow struct {
	ID     string `gorm:"primaryKey;size:64"`
	APIKey string `gorm:"column:api_key;size:128;not null;uniqueIndex"`
}

func (userRow) TableName() string { return "users" }

type walletRow struct {
	Address    string   `gorm:"primaryKey;size:64"`
	UserID     string   `gorm:"size:64;not null;index"`
	BalanceSat int64    `gorm:"not null;check:chk_wallets_balance_sat,balance_sat >= 0"`
	User       *userRow `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (walletRow) TableName() string { return "wallets" }

// transactionRow references wallets without cascade: history stays readable
// and a referenced wallet cannot be deleted.
type transactionRow struct {
	ID          string     `gorm:"primaryKey;size:64"`
	FromAddress string     `gorm:"size:64;not null;index"`
	ToAddress   string     `gorm:"size:64;not null;index"`
	AmountSat   int64      `gorm:"not null"`
	FeeSat      int64      `gorm:"not null"`
	CreatedAt   string     `gorm:"size:40;not null;index"`
	From        *walletRow `gorm:"foreignKey:FromAddress;references:Address"`
	To          *walletRow `gorm:"foreignKey:ToAddress;references:Address"`
}

func (transactionRow) TableName() string { return "transactions" }

func userToRow(u domain.User) userRow { return userRow{ID: u.ID, APIKey: u.APIKey} }

func userFromRow(r userRow) (domain.User, error) {
	return domain.User{ID: r.ID, APIKey: r.APIKey}, nil
}

func walletToRow(w domain.Wallet) walletRow {
	return walletRow{Address: w.Address, UserID: w.UserID, BalanceSat: w.BalanceSat}
}

func walletFromRow(r walletRow) (domain.Wallet, error) {
	return domain.Wallet{Address: r.Address, UserID: r.UserID, BalanceSat: r.BalanceSat}, nil
}

func transactionToRow(t domain.Transaction) transactionRow {
	return transactionRow{
		ID:          t.ID,
		FromAddress: t.FromAddress,
		ToAddress:   t.ToAddress,
		AmountSat:   t.AmountSat,
		FeeSat:      t.FeeSat,
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

func transactionFromRow(r transactionRow) (domain.Transaction, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	return domain.Transaction{
		ID:          r.ID,
		FromAddress: r.FromAddress,
		ToAddress:   r.ToAddress,
		AmountSat:   r.AmountSat,
		FeeSat:      r.FeeSat,
		CreatedAt:   createdAt,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}
