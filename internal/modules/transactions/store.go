package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aurumpay.com/app/internal/modules/merchants"
)

// MerchantStore is the merchant collaborator seen by the engine. LockByID
// re-fetches the row under an exclusive lock held until the surrounding
// unit of work commits or rolls back.
type MerchantStore interface {
	FindByID(ctx context.Context, id int64) (*merchants.Merchant, error)
	LockByID(ctx context.Context, id int64) (*merchants.Merchant, error)
	Save(ctx context.Context, m *merchants.Merchant) error
}

type TransactionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	LockByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Save(ctx context.Context, t *Transaction) error
	DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}

// Tx bundles the stores participating in one atomic unit of work.
type Tx interface {
	Merchants() MerchantStore
	Transactions() TransactionStore
}

// TxRunner runs fn inside one all-or-nothing unit of work. Any error from
// fn discards every mutation made through the Tx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}
