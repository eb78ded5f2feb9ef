package transactions

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"aurumpay.com/app/internal/modules/merchants"
)

func TestConcurrentCharges(t *testing.T) {
	engine, store := testEngine()
	store.putMerchant(testMerchant(1, merchants.StatusActive, "100.00"))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Create(context.Background(), CreateRequest{
				TypeID: "CHARGE",
				Amount: amount("10.00"),
			}, 1)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}

	// Every charge must be applied exactly once.
	m, _ := store.merchant(1)
	want := decimal.RequireFromString("180.00")
	if !m.TotalTransactionSum.Equal(want) {
		t.Errorf("merchant sum = %s, want %s", m.TotalTransactionSum, want)
	}
}

func TestConcurrentRefundsOfSameCharge(t *testing.T) {
	engine, store := testEngine()
	store.putMerchant(testMerchant(1, merchants.StatusActive, "100.00"))
	parent := testTransaction(TypeCharge, StatusApproved, 1, "100.00")
	store.putTransaction(parent)

	const workers = 4
	var wg sync.WaitGroup
	results := make([]*Result, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Create(context.Background(), CreateRequest{
				TypeID:                 "REFUND",
				Amount:                 amount("100.00"),
				BelongsToTransactionID: &parent.ID,
			}, 1)
		}(i)
	}
	wg.Wait()

	approved, rejected := 0, 0
	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
		switch results[i].StatusID {
		case string(StatusApproved):
			approved++
		case string(StatusError):
			rejected++
			if results[i].ErrorReason == nil ||
				*results[i].ErrorReason != "Cannot refund a CHARGE transaction in status REFUNDED" {
				t.Errorf("worker %d errorReason = %v", i, results[i].ErrorReason)
			}
		default:
			t.Errorf("worker %d status = %s", i, results[i].StatusID)
		}
	}
	if approved != 1 || rejected != workers-1 {
		t.Errorf("approved = %d, rejected = %d, want 1 and %d", approved, rejected, workers-1)
	}

	// Exactly one refund was applied to the balance.
	m, _ := store.merchant(1)
	if !m.TotalTransactionSum.Equal(decimal.Zero) {
		t.Errorf("merchant sum = %s, want 0", m.TotalTransactionSum)
	}
	savedParent, _ := store.transaction(parent.ID)
	if savedParent.StatusID != StatusRefunded {
		t.Errorf("parent status = %s, want REFUNDED", savedParent.StatusID)
	}
}

func TestConcurrentReversalsOfSameAuthorize(t *testing.T) {
	engine, store := testEngine()
	store.putMerchant(testMerchant(1, merchants.StatusActive, "100.00"))
	parent := testTransaction(TypeAuthorize, StatusApproved, 1, "25.00")
	store.putTransaction(parent)

	const workers = 4
	var wg sync.WaitGroup
	results := make([]*Result, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Create(context.Background(), CreateRequest{
				TypeID:                 "REVERSAL",
				BelongsToTransactionID: &parent.ID,
			}, 1)
		}(i)
	}
	wg.Wait()

	approved := 0
	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
		if results[i].StatusID == string(StatusApproved) {
			approved++
		}
	}
	if approved != 1 {
		t.Errorf("approved = %d, want exactly 1", approved)
	}
	savedParent, _ := store.transaction(parent.ID)
	if savedParent.StatusID != StatusReversed {
		t.Errorf("parent status = %s, want REVERSED", savedParent.StatusID)
	}
}
