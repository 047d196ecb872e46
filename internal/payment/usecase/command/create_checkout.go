package command

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/payment/domain"
)

// CreateCheckoutCommand opens a checkout session for the premium upgrade.
// Metadata must carry the buyer's identity key so it survives the provider
// redirect round-trip.
type CreateCheckoutCommand struct {
	BuyerEmail string
	Metadata   map[string]string
}

// CreateCheckoutHandler handles the checkout-session creation command.
type CreateCheckoutHandler struct {
	gateway    domain.CheckoutGateway
	successURL string
	cancelURL  string
}

// NewCreateCheckoutHandler creates a new checkout handler
func NewCreateCheckoutHandler(gateway domain.CheckoutGateway, successURL, cancelURL string) *CreateCheckoutHandler {
	return &CreateCheckoutHandler{gateway: gateway, successURL: successURL, cancelURL: cancelURL}
}

// Handle creates the provider session and returns the redirect URL. No local
// state is mutated: a gateway failure here leaves nothing to clean up.
func (h *CreateCheckoutHandler) Handle(ctx context.Context, cmd CreateCheckoutCommand) (string, error) {
	if cmd.BuyerEmail == "" {
		return "", fmt.Errorf("buyer email is required")
	}
	if cmd.Metadata[domain.MetadataSubjectKey] == "" {
		return "", fmt.Errorf("metadata must include the buyer identity")
	}

	session, err := h.gateway.CreateSession(ctx, domain.CreateSessionParams{
		CustomerEmail: cmd.BuyerEmail,
		Metadata:      cmd.Metadata,
		SuccessURL:    h.successURL,
		CancelURL:     h.cancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("gateway returned session %s without a redirect url", session.ID)
	}

	return session.URL, nil
}
