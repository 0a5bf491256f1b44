package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"btc_wallet/internal/domain"
)

// table implements repository.Repository[T] for a domain type T persisted as
// row type R whose primary key column is key.
type table[T any, R any] struct {
	db      *gorm.DB
	locking bool   // take row locks on reads (inside a unit of work)
	entity  string // used in error messages, e.g. "Wallet"
	key     string
	toRow   func(T) R
	fromRow func(R) (T, error)
}

func (t table[T, R]) query(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

func (t table[T, R]) Create(ctx context.Context, item T) error {
	row := t.toRow(item)
	if err := t.query(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return t.fail(err)
	}
	return nil
}

func (t table[T, R]) Read(ctx context.Context, id string) (T, error) {
	var row R
	q := t.query(ctx)
	if t.locking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where(t.key+" = ?", id).Take(&row).Error; err != nil {
		var zero T
		return zero, t.fail(err)
	}
	return t.fromRow(row)
}

func (t table[T, R]) Update(ctx context.Context, item T) error {
	row := t.toRow(item)
	res := t.query(ctx).Model(&row).Select("*").Omit(clause.Associations).Updates(&row)
	if res.Error != nil {
		return t.fail(res.Error)
	}
	if res.RowsAffected == 0 {
		return t.notFound()
	}
	return nil
}

func (t table[T, R]) Delete(ctx context.Context, id string) error {
	res := t.query(ctx).Where(t.key+" = ?", id).Delete(new(R))
	if res.Error != nil {
		return t.fail(res.Error)
	}
	if res.RowsAffected == 0 {
		return t.notFound()
	}
	return nil
}

func (t table[T, R]) ReadAll(ctx context.Context) ([]T, error) {
	var rows []R
	if err := t.query(ctx).Find(&rows).Error; err != nil {
		return nil, t.fail(err)
	}
	return t.convert(rows)
}

func (t table[T, R]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.query(ctx).Model(new(R)).Count(&n).Error; err != nil {
		return 0, t.fail(err)
	}
	return n, nil
}

func (t table[T, R]) convert(rows []R) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		item, err := t.fromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (t table[T, R]) notFound() error {
	return domain.NotFound(t.entity + " not found")
}

// fail maps store errors onto the domain taxonomy.
func (t table[T, R]) fail(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Wrap(domain.ErrNotFound, t.entity+" not found", err)
	case isConstraintViolation(err):
		return domain.Wrap(domain.ErrConflict, t.entity+" conflict", err)
	default:
		return fmt.Errorf("%s store: %w", t.entity, err)
	}
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}
