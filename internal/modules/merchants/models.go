package merchants

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Merchant carries the running ledger aggregate. TotalTransactionSum is
// mutated only under an exclusive row lock; Version is the optimistic
// counter used by the CRUD endpoints, not by the lifecycle engine.
type Merchant struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement"`
	Name                string          `gorm:"type:varchar(255);not null;index:ix_merchants_name"`
	Email               string          `gorm:"type:varchar(255);not null;uniqueIndex:ux_merchants_email"`
	StatusID            string          `gorm:"column:status_id;type:varchar(32);not null"`
	IdentifierTypeID    *string         `gorm:"column:identifier_type_id;type:varchar(32);uniqueIndex:ux_merchants_identifier,priority:1"`
	IdentifierValue     *string         `gorm:"type:varchar(64);uniqueIndex:ux_merchants_identifier,priority:2"`
	TotalTransactionSum decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Version             int             `gorm:"not null;default:1"`
	CreatedAt           time.Time       `gorm:"type:datetime(3);not null"`
	UpdatedAt           time.Time       `gorm:"type:datetime(3);not null"`
}

func (Merchant) TableName() string { return "merchants" }

type MerchantStatusType struct {
	ID      string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Version int    `gorm:"not null;default:1" json:"version"`
}

func (MerchantStatusType) TableName() string { return "merchant_status_types" }

type MerchantIdentifierType struct {
	ID      string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Version int    `gorm:"not null;default:1" json:"version"`
}

func (MerchantIdentifierType) TableName() string { return "merchant_identifier_types" }
