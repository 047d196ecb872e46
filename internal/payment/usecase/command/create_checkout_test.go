package command

import (
	"context"
	"testing"

	"github.com/mahir/lifelessons/internal/payment/domain"
)

func TestCreateCheckout_ReturnsRedirectURL(t *testing.T) {
	gateway := &mockGateway{
		createSessionFn: func(ctx context.Context, params domain.CreateSessionParams) (*domain.CheckoutSession, error) {
			if params.CustomerEmail != "buyer@example.com" {
				t.Errorf("customer email = %q, want buyer@example.com", params.CustomerEmail)
			}
			if params.Metadata[domain.MetadataSubjectKey] != "subject-1" {
				t.Errorf("metadata subject = %q, want subject-1", params.Metadata[domain.MetadataSubjectKey])
			}
			if params.SuccessURL != "https://app/success" || params.CancelURL != "https://app/cancel" {
				t.Errorf("redirect urls = %q / %q", params.SuccessURL, params.CancelURL)
			}
			return &domain.CheckoutSession{ID: "cs_123", URL: "https://pay.example.com/cs_123"}, nil
		},
	}

	h := NewCreateCheckoutHandler(gateway, "https://app/success", "https://app/cancel")
	url, err := h.Handle(context.Background(), CreateCheckoutCommand{
		BuyerEmail: "buyer@example.com",
		Metadata:   map[string]string{domain.MetadataSubjectKey: "subject-1"},
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if url != "https://pay.example.com/cs_123" {
		t.Errorf("url = %q", url)
	}
}

func TestCreateCheckout_SessionWithoutURLFails(t *testing.T) {
	gateway := &mockGateway{
		createSessionFn: func(ctx context.Context, params domain.CreateSessionParams) (*domain.CheckoutSession, error) {
			return &domain.CheckoutSession{ID: "cs_123"}, nil
		},
	}

	h := NewCreateCheckoutHandler(gateway, "https://app/success", "https://app/cancel")
	if _, err := h.Handle(context.Background(), CreateCheckoutCommand{
		BuyerEmail: "buyer@example.com",
		Metadata:   map[string]string{domain.MetadataSubjectKey: "subject-1"},
	}); err == nil {
		t.Fatal("expected error for session without redirect url")
	}
}

func TestCreateCheckout_Validation(t *testing.T) {
	h := NewCreateCheckoutHandler(&mockGateway{}, "https://app/success", "https://app/cancel")

	if _, err := h.Handle(context.Background(), CreateCheckoutCommand{
		Metadata: map[string]string{domain.MetadataSubjectKey: "subject-1"},
	}); err == nil {
		t.Error("expected error for missing buyer email")
	}
	if _, err := h.Handle(context.Background(), CreateCheckoutCommand{
		BuyerEmail: "buyer@example.com",
	}); err == nil {
		t.Error("expected error for missing identity metadata")
	}
}
