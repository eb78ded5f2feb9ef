package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aurumpay.com/app/internal/modules/merchants"
)

// DB is the GORM-backed TxRunner used in production. Row locks are plain
// SELECT ... FOR UPDATE and are released when the transaction ends.
type DB struct{ db *gorm.DB }

func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

func (d *DB) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

type gormTx struct{ tx *gorm.DB }

func (t *gormTx) Merchants() MerchantStore       { return &gormMerchantStore{tx: t.tx} }
func (t *gormTx) Transactions() TransactionStore { return &gormTransactionStore{tx: t.tx} }

type gormMerchantStore struct{ tx *gorm.DB }

func (s *gormMerchantStore) FindByID(ctx context.Context, id int64) (*merchants.Merchant, error) {
	var m merchants.Merchant
	if err := s.tx.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &m, nil
}

func (s *gormMerchantStore) LockByID(ctx context.Context, id int64) (*merchants.Merchant, error) {
	var m merchants.Merchant
	if err := s.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &m, nil
}

func (s *gormMerchantStore) Save(ctx context.Context, m *merchants.Merchant) error {
	m.UpdatedAt = time.Now().UTC()
	return s.tx.WithContext(ctx).Save(m).Error
}

type gormTransactionStore struct{ tx *gorm.DB }

func (s *gormTransactionStore) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var t Transaction
	if err := s.tx.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (s *gormTransactionStore) LockByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var t Transaction
	if err := s.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (s *gormTransactionStore) Save(ctx context.Context, t *Transaction) error {
	t.UpdatedAt = time.Now().UTC()
	return s.tx.WithContext(ctx).Save(t).Error
}

func (s *gormTransactionStore) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	res := s.tx.WithContext(ctx).Where("created_at < ?", before).Delete(&Transaction{})
	return res.RowsAffected, res.Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// IsLockConflict detects MySQL deadlock (1213) and lock wait timeout
// (1205). The engine never retries; callers may resubmit the request.
func IsLockConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}

// IsDuplicateKey detects a unique constraint violation (1062), e.g. a
// second child pointing at an already-linked parent transaction.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
