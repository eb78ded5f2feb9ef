package transactions

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"aurumpay.com/app/internal/modules/merchants"
)

// memStore is an in-memory TxRunner with real row locks. LockByID blocks
// on a per-row mutex held until the unit of work ends, and writes are
// staged per transaction and committed atomically, so the concurrency
// tests exercise the same serialization the SQL store provides.
type memStore struct {
	mu           sync.Mutex
	merchants    map[int64]merchants.Merchant
	transactions map[uuid.UUID]Transaction
	rowLocks     map[string]*sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		merchants:    make(map[int64]merchants.Merchant),
		transactions: make(map[uuid.UUID]Transaction),
		rowLocks:     make(map[string]*sync.Mutex),
	}
}

func (s *memStore) putMerchant(m merchants.Merchant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merchants[m.ID] = cloneMerchant(m)
}

func (s *memStore) putTransaction(t Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = cloneTransaction(t)
}

func (s *memStore) merchant(id int64) (merchants.Merchant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.merchants[id]
	return cloneMerchant(m), ok
}

func (s *memStore) transaction(id uuid.UUID) (Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	return cloneTransaction(t), ok
}

func (s *memStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

func (s *memStore) rowLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lk, ok := s.rowLocks[key]
	if !ok {
		lk = &sync.Mutex{}
		s.rowLocks[key] = lk
	}
	return lk
}

func (s *memStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	tx := &memTx{
		store:   s,
		stagedM: make(map[int64]merchants.Merchant),
		stagedT: make(map[uuid.UUID]Transaction),
	}
	err := fn(tx)
	if err == nil {
		tx.commit()
	}
	tx.releaseLocks()
	return err
}

type memTx struct {
	store   *memStore
	held    []*sync.Mutex
	stagedM map[int64]merchants.Merchant
	stagedT map[uuid.UUID]Transaction
}

func (tx *memTx) Merchants() MerchantStore       { return memMerchantStore{tx} }
func (tx *memTx) Transactions() TransactionStore { return memTransactionStore{tx} }

func (tx *memTx) commit() {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for id, m := range tx.stagedM {
		tx.store.merchants[id] = m
	}
	for id, t := range tx.stagedT {
		tx.store.transactions[id] = t
	}
}

func (tx *memTx) releaseLocks() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.held[i].Unlock()
	}
	tx.held = nil
}

func (tx *memTx) lockRow(key string) {
	lk := tx.store.rowLock(key)
	lk.Lock()
	tx.held = append(tx.held, lk)
}

type memMerchantStore struct{ tx *memTx }

func (ms memMerchantStore) FindByID(ctx context.Context, id int64) (*merchants.Merchant, error) {
	if m, ok := ms.tx.stagedM[id]; ok {
		c := cloneMerchant(m)
		return &c, nil
	}
	ms.tx.store.mu.Lock()
	defer ms.tx.store.mu.Unlock()
	m, ok := ms.tx.store.merchants[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneMerchant(m)
	return &c, nil
}

func (ms memMerchantStore) LockByID(ctx context.Context, id int64) (*merchants.Merchant, error) {
	ms.tx.lockRow("m:" + strconv.FormatInt(id, 10))
	return ms.FindByID(ctx, id)
}

func (ms memMerchantStore) Save(ctx context.Context, m *merchants.Merchant) error {
	ms.tx.stagedM[m.ID] = cloneMerchant(*m)
	return nil
}

type memTransactionStore struct{ tx *memTx }

func (ts memTransactionStore) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	if t, ok := ts.tx.stagedT[id]; ok {
		c := cloneTransaction(t)
		return &c, nil
	}
	ts.tx.store.mu.Lock()
	defer ts.tx.store.mu.Unlock()
	t, ok := ts.tx.store.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneTransaction(t)
	return &c, nil
}

func (ts memTransactionStore) LockByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	ts.tx.lockRow("t:" + id.String())
	return ts.FindByID(ctx, id)
}

func (ts memTransactionStore) Save(ctx context.Context, t *Transaction) error {
	ts.tx.stagedT[t.ID] = cloneTransaction(*t)
	return nil
}

func (ts memTransactionStore) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	ts.tx.store.mu.Lock()
	defer ts.tx.store.mu.Unlock()
	var n int64
	for id, t := range ts.tx.store.transactions {
		if t.CreatedAt.Before(before) {
			delete(ts.tx.store.transactions, id)
			n++
		}
	}
	return n, nil
}

func cloneMerchant(m merchants.Merchant) merchants.Merchant {
	c := m
	if m.IdentifierTypeID != nil {
		v := *m.IdentifierTypeID
		c.IdentifierTypeID = &v
	}
	if m.IdentifierValue != nil {
		v := *m.IdentifierValue
		c.IdentifierValue = &v
	}
	return c
}

func cloneTransaction(t Transaction) Transaction {
	c := t
	if t.Amount != nil {
		v := *t.Amount
		c.Amount = &v
	}
	if t.ErrorReason != nil {
		v := *t.ErrorReason
		c.ErrorReason = &v
	}
	if t.ReferenceID != nil {
		v := *t.ReferenceID
		c.ReferenceID = &v
	}
	if t.CustomerEmail != nil {
		v := *t.CustomerEmail
		c.CustomerEmail = &v
	}
	if t.CustomerPhone != nil {
		v := *t.CustomerPhone
		c.CustomerPhone = &v
	}
	if t.BelongsToTransactionID != nil {
		v := *t.BelongsToTransactionID
		c.BelongsToTransactionID = &v
	}
	return c
}
