package transactions

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Error reasons recorded on transactions persisted with status ERROR.
const (
	ReasonMerchantNotActive    = "Merchant not active."
	ReasonRefundAmountExceeded = "Amount of the REFUND transaction is greater than the amount of the CHARGE transaction"
	ReasonMerchantSumTooLow    = "Merchant's total transaction sum is less than the REFUND transaction's amount"

	reasonCannotRefundTypePrefix    = "Cannot refund a transaction of type "
	reasonCannotRefundStatusPrefix  = "Cannot refund a CHARGE transaction in status "
	reasonCannotReverseTypePrefix   = "Cannot reverse a transaction of type "
	reasonCannotReverseStatusPrefix = "Cannot reverse an AUTHORIZE transaction in status "
	messageParentOfAnotherMerchant  = "The parent transaction belongs to a different merchant."
)

// ValidationError marks a caller error: the whole unit of work is rolled
// back and no transaction row is persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a caller/business validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
