package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/usecase"
)

// MockTransaction is a no-op transaction that tracks its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpsertFunc            func(ctx context.Context, account *domain.Account) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, for test setup.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Status = status
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) SetBalance(ctx context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

// MockLedgerRepository is an in-memory mock of LedgerRepository that
// enforces the append invariants.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry
	nextID  int64

	AppendEntryFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{nextID: 1}
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if m.AppendEntryFunc != nil {
		return m.AppendEntryFunc(ctx, tx, entry)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.Reference == entry.Reference {
			return nil, domain.ErrDuplicateReference
		}
	}
	copied := *entry
	copied.EntryID = m.nextID
	m.nextID++
	m.entries = append(m.entries, &copied)
	result := copied
	return &result, nil
}

func (m *MockLedgerRepository) GetByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.Reference == reference {
			copied := *e
			return &copied, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockLedgerRepository) GetByTransferRef(ctx context.Context, transferRef string) ([]*domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var legs []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.Reference == transferRef+domain.TransferSuffixOut || e.Reference == transferRef+domain.TransferSuffixIn {
			copied := *e
			legs = append(legs, &copied)
		}
	}
	return legs, nil
}

func (m *MockLedgerRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].AccountID == accountID {
			copied := *m.entries[i]
			entries = append(entries, &copied)
		}
	}
	if offset >= len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MockLedgerRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.SignedAmount())
		}
	}
	return sum, nil
}

func (m *MockLedgerRepository) StatsByAccount(ctx context.Context, accountID string) (*domain.AccountStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.AccountStats{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	for _, e := range m.entries {
		if e.AccountID != accountID {
			continue
		}
		stats.EntryCount++
		if e.Kind.IsCredit() {
			stats.TotalIn = stats.TotalIn.Add(e.Amount)
		} else {
			stats.TotalOut = stats.TotalOut.Add(e.Amount)
		}
	}
	return stats, nil
}

// Entries returns a snapshot of all stored entries.
func (m *MockLedgerRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.LedgerEntry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) Upsert(ctx context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *customer
	m.customers[customer.ID] = &copied
	return nil
}

func (m *MockCustomerRepository) UpdateStatus(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.Status = status
	c.UpdatedAt = updatedAt
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.customers, id)
	return nil
}

// MockIdempotencyStore is an in-memory mock with unique-insert Begin.
type MockIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]*domain.IdempotencyRecord

	BeginFunc    func(ctx context.Context, key, fingerprint string) (*domain.IdempotencyRecord, bool, error)
	CompleteFunc func(ctx context.Context, key string, result *domain.TransferResult) error
	ReleaseFunc  func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{records: make(map[string]*domain.IdempotencyRecord)}
}

func (m *MockIdempotencyStore) Begin(ctx context.Context, key, fingerprint string) (*domain.IdempotencyRecord, bool, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, key, fingerprint)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.records[key]; ok {
		copied := *existing
		return &copied, false, nil
	}
	record := &domain.IdempotencyRecord{
		Key:         key,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
	}
	m.records[key] = record
	copied := *record
	return &copied, true, nil
}

func (m *MockIdempotencyStore) Bind(ctx context.Context, key, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[key]
	if !ok {
		return fmt.Errorf("no idempotency record for key %q", key)
	}
	record.Reference = reference
	return nil
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key string, result *domain.TransferResult) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, key, result)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[key]
	if !ok {
		return fmt.Errorf("no idempotency record for key %q", key)
	}
	record.Result = result
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[key]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, nil
}

func (m *MockIdempotencyStore) ListInFlight(ctx context.Context) ([]*domain.IdempotencyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []*domain.IdempotencyRecord
	for _, record := range m.records {
		if record.InFlight() {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

// MockReferenceGenerator generates sequential references by default.
type MockReferenceGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("REF20260829-%06d", m.counter)
}

// MockNotifier records published events.
type MockNotifier struct {
	mu     sync.Mutex
	Events []*domain.TransactionEvent

	TransactionCompletedFunc func(ctx context.Context, event *domain.TransactionEvent) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) TransactionCompleted(ctx context.Context, event *domain.TransactionEvent) error {
	if m.TransactionCompletedFunc != nil {
		return m.TransactionCompletedFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

// MockRetrier runs the operation exactly once.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
