package query

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/payment/domain"
)

// GetMyPaymentsQuery represents the query for the caller's payment history
type GetMyPaymentsQuery struct {
	Subject string
	Limit   int
	Offset  int
}

// GetMyPaymentsHandler handles the my-payments query
type GetMyPaymentsHandler struct {
	ledger domain.LedgerRepository
}

// NewGetMyPaymentsHandler creates a new my-payments handler
func NewGetMyPaymentsHandler(ledger domain.LedgerRepository) *GetMyPaymentsHandler {
	return &GetMyPaymentsHandler{ledger: ledger}
}

// Handle executes the my-payments query
func (h *GetMyPaymentsHandler) Handle(ctx context.Context, q GetMyPaymentsQuery) ([]domain.Payment, error) {
	if q.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return h.ledger.FindBySubject(ctx, q.Subject, limit, offset)
}
