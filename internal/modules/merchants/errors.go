package merchants

import "errors"

var (
	ErrNotFound              = errors.New("merchant not found")
	ErrHasTransactions       = errors.New("merchant has transactions")
	ErrVersionConflict       = errors.New("merchant version conflict")
	ErrUnknownStatus         = errors.New("unknown merchant status type")
	ErrUnknownIdentifierType = errors.New("unknown merchant identifier type")
)
