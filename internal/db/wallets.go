package db

import (
	"context"

	"btc_wallet/internal/domain"
)

type walletRepo struct {
	table[domain.Wallet, walletRow]
}

func (r walletRepo) ListByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	var rows []walletRow
	if err := r.query(ctx).Where("user_id = ?", userID).Order("address").Find(&rows).Error; err != nil {
		return nil, r.fail(err)
	}
	return r.convert(rows)
}

func (r walletRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.query(ctx).Model(&walletRow{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, r.fail(err)
	}
	return n, nil
}
