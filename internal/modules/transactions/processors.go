package transactions

import (
	"context"
	"errors"

	"aurumpay.com/app/internal/modules/merchants"
)

// processorOutcome carries rows a processor locked and mutated so the
// engine can include them in the caller-facing result.
type processorOutcome struct {
	parent   *Transaction
	merchant *merchants.Merchant
}

// AUTHORIZE reserves an amount without touching the merchant balance.
func (e *Engine) processAuthorize(t *Transaction) (processorOutcome, error) {
	t.StatusID = StatusApproved
	return processorOutcome{}, nil
}

// CHARGE settles a debit. The merchant row lock serializes the
// read-modify-write on the running sum against concurrent charges.
func (e *Engine) processCharge(ctx context.Context, tx Tx, t *Transaction) (processorOutcome, error) {
	m, err := tx.Merchants().LockByID(ctx, t.MerchantID)
	if errors.Is(err, ErrNotFound) {
		return processorOutcome{}, validationErrorf("Merchant with ID [%d] does not exist", t.MerchantID)
	}
	if err != nil {
		return processorOutcome{}, err
	}

	t.StatusID = StatusApproved
	m.TotalTransactionSum = m.TotalTransactionSum.Add(*t.Amount)
	if err := tx.Merchants().Save(ctx, m); err != nil {
		return processorOutcome{}, err
	}
	return processorOutcome{merchant: m}, nil
}

// REFUND reverses an APPROVED CHARGE and decreases the merchant balance.
// Lock order is parent transaction first, merchant second; every
// multi-lock path uses this order so no cycle can form.
func (e *Engine) processRefund(ctx context.Context, tx Tx, req CreateRequest, t *Transaction) (processorOutcome, error) {
	parentID := *req.BelongsToTransactionID

	parent, err := tx.Transactions().LockByID(ctx, parentID)
	if errors.Is(err, ErrNotFound) {
		return processorOutcome{}, validationErrorf("Transaction with ID [%s] does not exist.", parentID)
	}
	if err != nil {
		return processorOutcome{}, err
	}

	if parent.MerchantID != t.MerchantID {
		return processorOutcome{}, &ValidationError{Message: messageParentOfAnotherMerchant}
	}
	if parent.TypeID != TypeCharge {
		t.StatusID = StatusError
		t.ErrorReason = ptr(reasonCannotRefundTypePrefix + string(parent.TypeID))
		return processorOutcome{parent: parent}, nil
	}
	if parent.StatusID != StatusApproved {
		t.StatusID = StatusError
		t.ErrorReason = ptr(reasonCannotRefundStatusPrefix + string(parent.StatusID))
		return processorOutcome{parent: parent}, nil
	}
	if parent.Amount.LessThan(*t.Amount) {
		t.StatusID = StatusError
		t.ErrorReason = ptr(ReasonRefundAmountExceeded)
		return processorOutcome{parent: parent}, nil
	}

	m, err := tx.Merchants().LockByID(ctx, t.MerchantID)
	if errors.Is(err, ErrNotFound) {
		return processorOutcome{}, validationErrorf("Merchant with ID [%d] does not exist", t.MerchantID)
	}
	if err != nil {
		return processorOutcome{}, err
	}

	if m.TotalTransactionSum.LessThan(*t.Amount) {
		t.StatusID = StatusError
		t.ErrorReason = ptr(ReasonMerchantSumTooLow)
		return processorOutcome{parent: parent, merchant: m}, nil
	}

	parent.StatusID = StatusRefunded
	if err := tx.Transactions().Save(ctx, parent); err != nil {
		return processorOutcome{}, err
	}

	// The parent link is recorded only on approval so a rejected attempt
	// does not occupy the one-child slot.
	t.StatusID = StatusApproved
	t.BelongsToTransactionID = &parent.ID

	m.TotalTransactionSum = m.TotalTransactionSum.Sub(*t.Amount)
	if err := tx.Merchants().Save(ctx, m); err != nil {
		return processorOutcome{}, err
	}
	return processorOutcome{parent: parent, merchant: m}, nil
}

// REVERSAL undoes an APPROVED AUTHORIZE. The balance is untouched, so no
// merchant lock is needed.
func (e *Engine) processReversal(ctx context.Context, tx Tx, req CreateRequest, t *Transaction) (processorOutcome, error) {
	parentID := *req.BelongsToTransactionID

	parent, err := tx.Transactions().LockByID(ctx, parentID)
	if errors.Is(err, ErrNotFound) {
		return processorOutcome{}, validationErrorf("Transaction with ID [%s] does not exist.", parentID)
	}
	if err != nil {
		return processorOutcome{}, err
	}

	if parent.MerchantID != t.MerchantID {
		return processorOutcome{}, &ValidationError{Message: messageParentOfAnotherMerchant}
	}

	// Reversals never carry an amount, whatever the request said.
	t.Amount = nil

	if parent.TypeID != TypeAuthorize {
		t.StatusID = StatusError
		t.ErrorReason = ptr(reasonCannotReverseTypePrefix + string(parent.TypeID))
		return processorOutcome{parent: parent}, nil
	}
	if parent.StatusID != StatusApproved {
		t.StatusID = StatusError
		t.ErrorReason = ptr(reasonCannotReverseStatusPrefix + string(parent.StatusID))
		return processorOutcome{parent: parent}, nil
	}

	parent.StatusID = StatusReversed
	if err := tx.Transactions().Save(ctx, parent); err != nil {
		return processorOutcome{}, err
	}

	t.StatusID = StatusApproved
	t.BelongsToTransactionID = &parent.ID
	return processorOutcome{parent: parent}, nil
}
