package domain

import "time"

// CustomerStatus is the lifecycle state of a customer record.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
	CustomerStatusDeleted  CustomerStatus = "DELETED"
)

// Customer is a projection of customer metadata owned by an upstream
// system. It is refreshed asynchronously from published facts and only
// ever read here.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Status    CustomerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
