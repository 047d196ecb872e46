package query

import (
	"context"

	"github.com/mahir/lifelessons/internal/payment/domain"
)

// ListPaymentsQuery represents the admin ledger listing
type ListPaymentsQuery struct {
	Limit  int
	Offset int
}

// ListPaymentsHandler handles the ledger listing query
type ListPaymentsHandler struct {
	ledger domain.LedgerRepository
}

// NewListPaymentsHandler creates a new list payments handler
func NewListPaymentsHandler(ledger domain.LedgerRepository) *ListPaymentsHandler {
	return &ListPaymentsHandler{ledger: ledger}
}

// Handle executes the ledger listing query
func (h *ListPaymentsHandler) Handle(ctx context.Context, q ListPaymentsQuery) ([]domain.Payment, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return h.ledger.FindAll(ctx, limit, offset)
}
