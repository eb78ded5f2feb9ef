package transactions

import (
	"context"
	"testing"
	"time"

	"aurumpay.com/app/internal/modules/merchants"
)

func TestJanitorSweep(t *testing.T) {
	engine, store := testEngine()
	store.putMerchant(testMerchant(1, merchants.StatusActive, "0.00"))

	old := testTransaction(TypeCharge, StatusApproved, 1, "10.00")
	old.CreatedAt = time.Now().UTC().Add(-3 * time.Hour)
	store.putTransaction(old)
	fresh := testTransaction(TypeCharge, StatusApproved, 1, "10.00")
	store.putTransaction(fresh)

	j := NewJanitor(engine, time.Hour, time.Minute, engine.log)
	j.sweep(context.Background())

	if _, ok := store.transaction(old.ID); ok {
		t.Error("expired transaction still present after sweep")
	}
	if _, ok := store.transaction(fresh.ID); !ok {
		t.Error("fresh transaction was swept")
	}
}

func TestNewJanitorDefaults(t *testing.T) {
	engine, _ := testEngine()

	j := NewJanitor(engine, 0, 0, engine.log)
	if j.maxAge != time.Hour {
		t.Errorf("maxAge = %v, want 1h", j.maxAge)
	}
	if j.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", j.interval)
	}
}
