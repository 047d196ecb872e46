package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahir/lifelessons/internal/payment/domain"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
)

// ConfirmPaymentCommand reconciles a checkout session against the ledger.
// Caller is the authenticated identity invoking confirmation; it does not
// have to be the buyer (the buyer identity travels in session metadata).
type ConfirmPaymentCommand struct {
	SessionID string
	Caller    string
}

// ConfirmPaymentResult is the idempotent confirmation outcome.
type ConfirmPaymentResult struct {
	Status    string          `json:"status"`
	Duplicate bool            `json:"duplicate"`
	Payment   *domain.Payment `json:"payment,omitempty"`
}

// ConfirmPaymentHandler turns provider-side payment truth into a durable,
// exactly-once entitlement grant.
type ConfirmPaymentHandler struct {
	gateway domain.CheckoutGateway
	ledger  domain.LedgerRepository
	users   userdomain.UserRepository
}

// NewConfirmPaymentHandler creates a new confirm payment handler
func NewConfirmPaymentHandler(gateway domain.CheckoutGateway, ledger domain.LedgerRepository, users userdomain.UserRepository) *ConfirmPaymentHandler {
	return &ConfirmPaymentHandler{gateway: gateway, ledger: ledger, users: users}
}

// Handle executes the reconciliation. The provider transaction id, not the
// session reference, is the idempotency key: a session can be resolved more
// than once while the underlying charge stays unique. Ordering is fixed as
// grant-before-append — the grant is an idempotent flag set and the append is
// guarded by the unique index, so a crash between the two steps cannot
// double-grant on retry.
func (h *ConfirmPaymentHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*ConfirmPaymentResult, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session reference is required")
	}
	if cmd.Caller == "" {
		return nil, fmt.Errorf("caller identity is required")
	}

	session, err := h.gateway.RetrieveSession(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve checkout session: %w", err)
	}

	// Idempotency gate: a ledger entry for this transaction means a previous
	// confirmation already completed. Return it unchanged.
	if session.TransactionID != "" {
		existing, err := h.ledger.FindByTransactionID(ctx, session.TransactionID)
		if err == nil {
			return &ConfirmPaymentResult{Status: existing.Status, Duplicate: true, Payment: existing}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to check ledger: %w", err)
		}
	}

	// Not paid (yet): no grant, no ledger entry. The session stays
	// reconcilable by a later call.
	if session.PaymentStatus != domain.StatusPaid {
		return &ConfirmPaymentResult{Status: session.PaymentStatus}, nil
	}

	if session.TransactionID == "" {
		return nil, fmt.Errorf("gateway resolved session %s as paid without a transaction id", session.ID)
	}
	subject := session.Metadata[domain.MetadataSubjectKey]
	if subject == "" {
		return nil, fmt.Errorf("session %s metadata is missing the buyer identity", session.ID)
	}

	if err := h.users.GrantPremium(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to grant entitlement to %s: %w", subject, err)
	}

	payment := &domain.Payment{
		SubjectID:     subject,
		SessionID:     session.ID,
		TransactionID: session.TransactionID,
		Amount:        session.AmountTotal,
		Currency:      session.Currency,
		Status:        session.PaymentStatus,
	}

	if err := h.ledger.Append(ctx, payment); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			// Lost the append race to a concurrent confirmation. The winner's
			// entry is the truth; the grant we just did was idempotent.
			existing, findErr := h.ledger.FindByTransactionID(ctx, session.TransactionID)
			if findErr != nil {
				return nil, fmt.Errorf("failed to load duplicate ledger entry: %w", findErr)
			}
			return &ConfirmPaymentResult{Status: existing.Status, Duplicate: true, Payment: existing}, nil
		}
		// Grant succeeded, append failed. Surface the inconsistency instead
		// of silently succeeding; a retry finds the user entitled and only
		// needs to complete the append.
		return nil, fmt.Errorf("%w: transaction %s: %v", domain.ErrReconciliation, session.TransactionID, err)
	}

	return &ConfirmPaymentResult{Status: domain.StatusPaid, Payment: payment}, nil
}
