package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outbound event types, published after a successful commit.
const (
	EventTypeDeposit    = "transaction.deposit"
	EventTypeWithdrawal = "transaction.withdrawal"
	EventTypeTransfer   = "transaction.transfer"
)

// Inbound projection event types consumed from the upstream
// account-management and customer systems.
const (
	EventTypeAccountCreated        = "account.created"
	EventTypeAccountUpdated        = "account.updated"
	EventTypeAccountStatusChanged  = "account.status_changed"
	EventTypeAccountBalanceUpdated = "account.balance_updated"

	EventTypeCustomerCreated       = "customer.created"
	EventTypeCustomerUpdated       = "customer.updated"
	EventTypeCustomerStatusChanged = "customer.status_changed"
	EventTypeCustomerDeleted       = "customer.deleted"
)

// TransactionEvent is the fact emitted after a committed transaction.
// Delivery is best effort; a failure to publish never reverses the
// transaction it describes.
type TransactionEvent struct {
	EventID    string         `json:"event_id"`
	EventType  string         `json:"event_type"`
	Reference  string         `json:"reference"`
	Entries    []*LedgerEntry `json:"entries"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// AccountEvent is the inbound payload for account.* facts.
type AccountEvent struct {
	AccountID  string           `json:"account_id"`
	CustomerID string           `json:"customer_id"`
	Type       AccountType      `json:"account_type"`
	Status     AccountStatus    `json:"status"`
	Balance    *decimal.Decimal `json:"balance,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// CustomerEvent is the inbound payload for customer.* facts.
type CustomerEvent struct {
	CustomerID string         `json:"customer_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Status     CustomerStatus `json:"status"`
	OccurredAt time.Time      `json:"occurred_at"`
}
