package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"aurumpay.com/app/internal/modules/merchants"
)

// Result is the caller-facing transaction shape. Parent transactions are
// nested one level using the same shape.
type Result struct {
	ID                   uuid.UUID        `json:"id"`
	TypeID               string           `json:"typeId"`
	Amount               *decimal.Decimal `json:"amount"`
	StatusID             string           `json:"statusId"`
	ErrorReason          *string          `json:"errorReason,omitempty"`
	ReferenceID          *string          `json:"referenceId,omitempty"`
	CustomerEmail        *string          `json:"customerEmail,omitempty"`
	CustomerPhone        *string          `json:"customerPhone,omitempty"`
	MerchantID           int64            `json:"merchantId"`
	MerchantName         string           `json:"merchantName,omitempty"`
	BelongsToTransaction *Result          `json:"belongsToTransaction,omitempty"`
	CreatedDate          time.Time        `json:"createdDate"`
	LastModifiedDate     time.Time        `json:"lastModifiedDate"`
	Version              int              `json:"version"`
}

func toResult(t *Transaction, m *merchants.Merchant, parent *Transaction) *Result {
	if t == nil {
		return nil
	}
	res := &Result{
		ID:               t.ID,
		TypeID:           string(t.TypeID),
		Amount:           t.Amount,
		StatusID:         string(t.StatusID),
		ErrorReason:      t.ErrorReason,
		ReferenceID:      t.ReferenceID,
		CustomerEmail:    t.CustomerEmail,
		CustomerPhone:    t.CustomerPhone,
		MerchantID:       t.MerchantID,
		CreatedDate:      t.CreatedAt,
		LastModifiedDate: t.UpdatedAt,
		Version:          t.Version,
	}
	if m != nil {
		res.MerchantName = m.Name
	}
	if parent != nil && t.BelongsToTransactionID != nil && *t.BelongsToTransactionID == parent.ID {
		res.BelongsToTransaction = toResult(parent, m, nil)
	}
	return res
}
