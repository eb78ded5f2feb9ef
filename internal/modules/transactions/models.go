package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the closed set of transaction types. Dispatch is a switch over
// this type, not a string comparison against nomenclature rows.
type Type string

const (
	TypeAuthorize Type = "AUTHORIZE"
	TypeCharge    Type = "CHARGE"
	TypeRefund    Type = "REFUND"
	TypeReversal  Type = "REVERSAL"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeAuthorize, TypeCharge, TypeRefund, TypeReversal:
		return Type(s), true
	default:
		return "", false
	}
}

type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusError    Status = "ERROR"
	StatusRefunded Status = "REFUNDED"
	StatusReversed Status = "REVERSED"
)

// Transaction is written once at creation; only a later child REFUND or
// REVERSAL may flip an APPROVED parent to REFUNDED or REVERSED.
type Transaction struct {
	ID                     uuid.UUID        `gorm:"type:char(36);primaryKey"`
	TypeID                 Type             `gorm:"column:type_id;type:varchar(32);not null"`
	Amount                 *decimal.Decimal `gorm:"type:decimal(12,2)"`
	StatusID               Status           `gorm:"column:status_id;type:varchar(32);not null"`
	ErrorReason            *string          `gorm:"type:varchar(255)"`
	ReferenceID            *string          `gorm:"type:varchar(64);uniqueIndex:ux_transactions_reference_id"`
	CustomerEmail          *string          `gorm:"type:varchar(255)"`
	CustomerPhone          *string          `gorm:"type:varchar(32)"`
	MerchantID             int64            `gorm:"not null;index:ix_transactions_merchant_id"`
	BelongsToTransactionID *uuid.UUID       `gorm:"column:belongs_to_transaction_id;type:char(36);uniqueIndex:ux_transactions_parent"`
	Version                int              `gorm:"not null;default:1"`
	CreatedAt              time.Time        `gorm:"type:datetime(3);not null;index:ix_transactions_created_at"`
	UpdatedAt              time.Time        `gorm:"type:datetime(3);not null"`
}

func (Transaction) TableName() string { return "transactions" }

type TransactionType struct {
	ID      string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Version int    `gorm:"not null;default:1" json:"version"`
}

func (TransactionType) TableName() string { return "transaction_types" }

type TransactionStatusType struct {
	ID      string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Version int    `gorm:"not null;default:1" json:"version"`
}

func (TransactionStatusType) TableName() string { return "transaction_status_types" }
