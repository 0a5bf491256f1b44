package db

import (
	"context"

	"btc_wallet/internal/domain"
)

type userRepo struct {
	table[domain.User, userRow]
}

func (r userRepo) ReadByAPIKey(ctx context.Context, apiKey string) (domain.User, error) {
	var row userRow
	if err := r.query(ctx).Where("api_key = ?", apiKey).Take(&row).Error; err != nil {
		return domain.User{}, r.fail(err)
	}
	return userFromRow(row)
}
