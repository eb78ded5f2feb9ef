package transactions

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^\+?\d+$`)

// CreateRequest is the caller-supplied payload. The merchant is never
// part of the body; it is resolved from the request context.
type CreateRequest struct {
	TypeID                 string           `json:"typeId" binding:"required,max=32"`
	Amount                 *decimal.Decimal `json:"amount"`
	CustomerEmail          *string          `json:"customerEmail" binding:"omitempty,email,max=255"`
	CustomerPhone          *string          `json:"customerPhone" binding:"omitempty,max=32"`
	BelongsToTransactionID *uuid.UUID       `json:"belongsToTransactionId"`
	ReferenceID            *string          `json:"referenceId" binding:"omitempty,max=64"`
}

// Validate enforces the type-conditional shape rules before dispatch.
func (r CreateRequest) Validate() error {
	typ, ok := ParseType(r.TypeID)
	if !ok {
		return validationErrorf("Unknown value [%s] for property [typeId]", r.TypeID)
	}

	switch typ {
	case TypeAuthorize, TypeCharge, TypeRefund:
		if r.Amount == nil {
			return validationErrorf("Property [amount] is required for transaction type %s", typ)
		}
	case TypeReversal:
		if r.Amount != nil {
			return validationErrorf("Property [amount] must be empty if transaction type is %s", typ)
		}
	}
	if r.Amount != nil {
		if r.Amount.IsNegative() {
			return validationErrorf("Property [amount] must not be negative")
		}
		// The amount column holds two decimal places; anything finer
		// would be silently truncated on insert.
		if r.Amount.Exponent() < -2 && !r.Amount.Equal(r.Amount.Truncate(2)) {
			return validationErrorf("Property [amount] must not have more than 2 decimal places")
		}
	}

	if typ == TypeRefund || typ == TypeReversal {
		if r.BelongsToTransactionID == nil {
			return validationErrorf(
				"Property [belongsToTransactionId] is required for transaction type %s", typ)
		}
	}

	if r.CustomerPhone != nil && !phonePattern.MatchString(*r.CustomerPhone) {
		return validationErrorf("Property [customerPhone] must contain only digits with an optional leading +")
	}
	return nil
}
