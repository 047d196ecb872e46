package domain

import (
	"context"
	"errors"
	"time"
)

// Session payment statuses as resolved from the provider
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// MetadataSubjectKey is the metadata field carrying the buyer's identity key
// through the checkout redirect round-trip.
const MetadataSubjectKey = "subjectId"

// ErrNotFound is returned when no ledger entry exists for a lookup.
var ErrNotFound = errors.New("payment not found")

// ErrDuplicateTransaction is returned by Append when a Payment with the same
// provider transaction id already exists. The reconciler converts it into the
// idempotent duplicate outcome, never into a failure.
var ErrDuplicateTransaction = errors.New("transaction already recorded")

// ErrReconciliation signals that the entitlement grant and the ledger append
// diverged mid-flight. The grant is idempotent and the append is guarded by
// the unique index, so re-invoking confirmation completes whichever half is
// missing.
var ErrReconciliation = errors.New("payment reconciliation incomplete")

// Payment is an immutable ledger entry. Rows are only ever appended, keyed by
// the provider transaction id; there is no update or delete path.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SubjectID     string    `json:"subject_id" gorm:"not null;index"`
	SessionID     string    `json:"session_id" gorm:"not null;index"`
	TransactionID string    `json:"transaction_id" gorm:"not null;uniqueIndex"`
	Amount        int64     `json:"amount" gorm:"not null"` // minor currency units
	Currency      string    `json:"currency" gorm:"not null;default:'usd'"`
	Status        string    `json:"status" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// LedgerRepository is the entitlement ledger: exactly-once payment records.
type LedgerRepository interface {
	// Append records a payment. A single append either fully succeeds or
	// fully fails; a duplicate transaction id fails with
	// ErrDuplicateTransaction.
	Append(ctx context.Context, payment *Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	FindBySubject(ctx context.Context, subject string, limit, offset int) ([]Payment, error)
	FindAll(ctx context.Context, limit, offset int) ([]Payment, error)
}

// CheckoutSession is the provider-side truth for a checkout session.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	TransactionID string            `json:"transaction_id"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// CreateSessionParams are the inputs for opening a checkout session.
type CreateSessionParams struct {
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// CheckoutGateway is the narrow contract consumed from the external payment
// provider.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
