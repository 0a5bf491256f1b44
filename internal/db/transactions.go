package db

import (
	"context"

	"btc_wallet/internal/domain"
)

type transactionRepo struct {
	table[domain.Transaction, transactionRow]
}

func (r transactionRepo) ListByAddresses(ctx context.Context, addresses ...string) ([]domain.Transaction, error) {
	if len(addresses) == 0 {
		return []domain.Transaction{}, nil
	}
	var rows []transactionRow
	err := r.query(ctx).
		Where("from_address IN ? OR to_address IN ?", addresses, addresses).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.fail(err)
	}
	return r.convert(rows)
}

func (r transactionRepo) SumFees(ctx context.Context) (int64, error) {
	var total int64
	row := r.query(ctx).Model(&transactionRow{}).Select("COALESCE(SUM(fee_sat), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return 0, r.fail(err)
	}
	return total, nil
}
