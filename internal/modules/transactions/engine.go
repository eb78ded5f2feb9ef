package transactions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aurumpay.com/app/internal/modules/merchants"
)

// Engine owns the transaction lifecycle: it validates the owning merchant,
// dispatches to the type processor and persists everything in one unit of
// work. Business rejections are persisted as ERROR transactions; caller
// errors abort with *ValidationError and persist nothing.
type Engine struct {
	store TxRunner
	log   *slog.Logger
}

func NewEngine(store TxRunner, log *slog.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// Create processes one transaction-creation request for merchantID.
func (e *Engine) Create(ctx context.Context, req CreateRequest, merchantID int64) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	typ, _ := ParseType(req.TypeID)

	var (
		created  *Transaction
		merchant *merchants.Merchant
		parent   *Transaction
	)

	err := e.store.RunInTx(ctx, func(tx Tx) error {
		m, err := tx.Merchants().FindByID(ctx, merchantID)
		if errors.Is(err, ErrNotFound) {
			return validationErrorf("Merchant with ID [%d] does not exist", merchantID)
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		t := &Transaction{
			ID:            uuid.New(),
			TypeID:        typ,
			Amount:        req.Amount,
			ReferenceID:   req.ReferenceID,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			MerchantID:    m.ID,
			Version:       1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		// Inactive merchants short-circuit every type.
		if m.StatusID != merchants.StatusActive {
			t.StatusID = StatusError
			t.ErrorReason = ptr(ReasonMerchantNotActive)
			if err := tx.Transactions().Save(ctx, t); err != nil {
				return err
			}
			created, merchant = t, m
			return nil
		}

		var outcome processorOutcome
		switch typ {
		case TypeAuthorize:
			outcome, err = e.processAuthorize(t)
		case TypeCharge:
			outcome, err = e.processCharge(ctx, tx, t)
		case TypeRefund:
			outcome, err = e.processRefund(ctx, tx, req, t)
		case TypeReversal:
			outcome, err = e.processReversal(ctx, tx, req, t)
		}
		if err != nil {
			return err
		}

		if err := tx.Transactions().Save(ctx, t); err != nil {
			return err
		}
		created, merchant, parent = t, m, outcome.parent
		if outcome.merchant != nil {
			merchant = outcome.merchant
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.LogAttrs(ctx, slog.LevelInfo, "transaction_created",
		slog.String("transaction_id", created.ID.String()),
		slog.String("type", string(created.TypeID)),
		slog.String("status", string(created.StatusID)),
		slog.Int64("merchant_id", created.MerchantID),
	)
	return toResult(created, merchant, parent), nil
}

// GetByID loads a transaction with its merchant and parent for display.
func (e *Engine) GetByID(ctx context.Context, id uuid.UUID) (*Result, error) {
	var res *Result
	err := e.store.RunInTx(ctx, func(tx Tx) error {
		t, err := tx.Transactions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		m, err := tx.Merchants().FindByID(ctx, t.MerchantID)
		if err != nil {
			return err
		}
		var parent *Transaction
		if t.BelongsToTransactionID != nil {
			parent, err = tx.Transactions().FindByID(ctx, *t.BelongsToTransactionID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return err
			}
		}
		res = toResult(t, m, parent)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteOlderThan removes transactions past the retention window.
func (e *Engine) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := e.store.RunInTx(ctx, func(tx Tx) error {
		n, err := tx.Transactions().DeleteCreatedBefore(ctx, before)
		deleted = n
		return err
	})
	return deleted, err
}

func ptr(s string) *string { return &s }
