package command

import (
	"context"
	"errors"
	"testing"

	"github.com/mahir/lifelessons/internal/payment/domain"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
)

type mockGateway struct {
	createSessionFn   func(ctx context.Context, params domain.CreateSessionParams) (*domain.CheckoutSession, error)
	retrieveSessionFn func(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
}

func (m *mockGateway) CreateSession(ctx context.Context, params domain.CreateSessionParams) (*domain.CheckoutSession, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, params)
	}
	return nil, nil
}

func (m *mockGateway) RetrieveSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	return m.retrieveSessionFn(ctx, sessionID)
}

type mockLedger struct {
	appendFn    func(ctx context.Context, payment *domain.Payment) error
	findByTxnFn func(ctx context.Context, transactionID string) (*domain.Payment, error)
}

func (m *mockLedger) Append(ctx context.Context, payment *domain.Payment) error {
	return m.appendFn(ctx, payment)
}

func (m *mockLedger) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return m.findByTxnFn(ctx, transactionID)
}

func (m *mockLedger) FindBySubject(ctx context.Context, subject string, limit, offset int) ([]domain.Payment, error) {
	return nil, nil
}

func (m *mockLedger) FindAll(ctx context.Context, limit, offset int) ([]domain.Payment, error) {
	return nil, nil
}

type mockUsers struct {
	grantPremiumFn func(ctx context.Context, subject string) error
}

func (m *mockUsers) Create(ctx context.Context, user *userdomain.User) error { return nil }
func (m *mockUsers) FindBySubject(ctx context.Context, subject string) (*userdomain.User, error) {
	return nil, userdomain.ErrNotFound
}
func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	return nil, userdomain.ErrNotFound
}
func (m *mockUsers) GrantPremium(ctx context.Context, subject string) error {
	return m.grantPremiumFn(ctx, subject)
}
func (m *mockUsers) IsPremium(ctx context.Context, subject string) (bool, error) {
	return false, nil
}

func paidSession() *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:            "cs_123",
		PaymentStatus: domain.StatusPaid,
		AmountTotal:   10000,
		Currency:      "usd",
		TransactionID: "pi_abc",
		Metadata:      map[string]string{domain.MetadataSubjectKey: "subject-1"},
	}
}

func TestConfirmPayment_FirstConfirmationGrantsAndAppends(t *testing.T) {
	granted := false
	appended := false

	gateway := &mockGateway{
		retrieveSessionFn: func(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
			return paidSession(), nil
		},
	}
	ledger := &mockLedger{
		findByTxnFn: func(ctx context.Context, transactionID string) (*domain.Payment, error) {
			return nil, domain.ErrNotFound
		},
		appendFn: func(ctx context.Context, payment *domain.Payment) error {
			if !granted {
				t.Error("ledger append happened before the entitlement grant")
			}
			appended = true
			if payment.TransactionID != "pi_abc" {
				t.Errorf("appended transaction id = %q, want pi_abc", payment.TransactionID)
			}
			if payment.SubjectID != "subject-1" {
				t.Errorf("appended subject = %q, want subject-1", payment.SubjectID)
			}
			return nil
		},
	}
	users := &mockUsers{
		grantPremiumFn: func(ctx context.Context, subject string) error {
			if subject != "subject-1" {
				t.Errorf("granted subject = %q, want subject-1", subject)
			}
			granted = true
			return nil
		},
	}

	h := NewConfirmPaymentHandler(gateway, ledger, users)
	result, err := h.Handle(context.Background(), ConfirmPaymentCommand{SessionID: "cs_123", Caller: "subject-1"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Status != domain.StatusPaid {
		t.Errorf("status = %q, want paid", result.Status)
	}
	if result.Duplicate {
		t.Error("first confirmation reported as duplicate")
	}
	if !appended {
		t.Error("ledger entry was not appended")
	}
}

func TestConfirmPayment_DuplicateTransactionShortCircuits(t *testing.T) {
	existing := &domain.Payment{
		SubjectID:     "subject-1",
		TransactionID: "pi_abc",
		Status:        domain.StatusPaid,
	}

	gateway := &mockGateway{
		retrieveSessionFn: func(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
			return paidSession(), nil
		},
	}
	ledger := &mockLedger{
		findByTxnFn: func(ctx context.Context, transactionID string) (*domain.Payment, error) {
			return existing, nil
		},
		appendFn: func(ctx context.Context, payment *domain.Payment) error {
			t.Error("append must not be called for a known transaction")
			return nil
		},
	}
	users := &mockUsers{
		grantPremiumFn: func(ctx context.Context, subject string) error {
			t.Error("grant must not be called for a known transaction")
			return nil
		},
	}

	h := NewConfirmPaymentHandler(gateway, ledger, users)
	result, err := h.Handle(context.Background(), ConfirmPaymentCommand{SessionID: "cs_123", Caller: "subject-1"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !result.Duplicate {
		t.Error("expected duplicate result")
	}
	if result.Payment != existing {
		t.Error("expected the existing ledger entry to be returned")
	}
}

func TestConfirmPayment_UnpaidSessionLeavesNoTrace(t *testing.T) {
	gateway := &mockGateway{
		retrieveSessionFn: func(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
			return &domain.CheckoutSession{
				ID:            "cs_123",
				PaymentStatus: domain.StatusUnpaid,
			}, nil
		},
	}
	ledger := &mockLedger{
		findByTxnFn: func(ctx context.Context, transactionID string) (*domain.Payment, error) {
			return nil, domain.ErrNotFound
		},
		appendFn: func(ctx context.Context, payment *domain.Payment) error {
			t.Error("append must not be called for an unpaid session")
			return nil
		},
	}
	users := &mockUsers{
		grantPremiumFn: func(ctx context.Context, subject string) error {
			t.Error("grant must not be called for an unpaid session")
			return nil
		},
	}

	h := NewConfirmPaymentHandler(gateway, ledger, users)
	result, err := h.Handle(context.Background(), ConfirmPaymentCommand{SessionID: "cs_123", Caller: "subject-1"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Status != domain.StatusUnpaid {
		t.Errorf("status = %q, want unpaid", result.Status)
	}
	if result.Duplicate || result.Payment != nil {
		t.Error("unpaid session must not produce a ledger entry")
	}
}

func TestConfirmPayment_AppendRaceResolvesToWinner(t *testing.T) {
	winner := &domain.Payment{
		SubjectID:     "subject-1",
		TransactionID: "pi_abc",
		Status:        domain.StatusPaid,
	}
	lookups := 0

	gateway := &mockGateway{
		retrieveSessionFn: func(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
			return paidSession(), nil
		},
	}
	ledger := &mockLedger{
		findByTxnFn: func(ctx context.Context, transactionID string) (*domain.Payment, error) {
			lookups++
			if lookups == 1 {
				// Idempotency gate sees nothing yet
				return nil, domain.ErrNotFound
			}
			// After the lost append race the winner's row exists
			return winner, nil
		},
		appendFn: func(ctx context.Context, payment *domain.Payment) error {
			return domain.ErrDuplicateTransaction
		},
	}
	users := &mockUsers{
		grantPremiumFn: func(ctx context.Context, subject string) error { return nil },
	}

	h := NewConfirmPaymentHandler(gateway, ledger, users)
	result, err := h.Handle(context.Background(), ConfirmPaymentCommand{SessionID: "cs_123", Caller: "subject-1"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !result.Duplicate {
		t.Error("lost append race must resolve as duplicate")
	}
	if result.Payment != winner {
		t.Error("expected the winner's ledger entry")
	}
}

func TestConfirmPayment_AppendFailureSurfacesReconciliationError(t *testing.T) {
	gateway := &mockGateway{
		retrieveSessionFn: func(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
			return paidSession(), nil
		},
	}
	ledger := &mockLedger{
		findByTxnFn: func(ctx context.Context, transactionID string) (*domain.Payment, error) {
			return nil, domain.ErrNotFound
		},
		appendFn: func(ctx context.Context, payment *domain.Payment) error {
			return errors.New("connection reset")
		},
	}
	users := &mockUsers{
		grantPremiumFn: func(ctx context.Context, subject string) error { return nil },
	}

	h := NewConfirmPaymentHandler(gateway, ledger, users)
	_, err := h.Handle(context.Background(), ConfirmPaymentCommand{SessionID: "cs_123", Caller: "subject-1"})
	if !errors.Is(err, domain.ErrReconciliation) {
		t.Fatalf("expected ErrReconciliation, got %v", err)
	}
}

func TestConfirmPayment_PaidSessionWithoutSubjectFails(t *testing.T) {
	session := paidSession()
	session.Metadata = map[string]string{}

	gateway := &mockGateway{
		retrieveSessionFn: func(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
			return session, nil
		},
	}
	ledger := &mockLedger{
		findByTxnFn: func(ctx context.Context, transactionID string) (*domain.Payment, error) {
			return nil, domain.ErrNotFound
		},
		appendFn: func(ctx context.Context, payment *domain.Payment) error {
			t.Error("append must not be called without a buyer identity")
			return nil
		},
	}
	users := &mockUsers{
		grantPremiumFn: func(ctx context.Context, subject string) error {
			t.Error("grant must not be called without a buyer identity")
			return nil
		},
	}

	h := NewConfirmPaymentHandler(gateway, ledger, users)
	if _, err := h.Handle(context.Background(), ConfirmPaymentCommand{SessionID: "cs_123", Caller: "subject-1"}); err == nil {
		t.Fatal("expected error for paid session without buyer identity")
	}
}

func TestConfirmPayment_Validation(t *testing.T) {
	h := NewConfirmPaymentHandler(&mockGateway{}, &mockLedger{}, &mockUsers{})

	if _, err := h.Handle(context.Background(), ConfirmPaymentCommand{Caller: "subject-1"}); err == nil {
		t.Error("expected error for missing session id")
	}
	if _, err := h.Handle(context.Background(), ConfirmPaymentCommand{SessionID: "cs_123"}); err == nil {
		t.Error("expected error for missing caller")
	}
}
