package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mahir/lifelessons/internal/payment/domain"
	"github.com/mahir/lifelessons/internal/payment/usecase/command"
	"github.com/mahir/lifelessons/internal/payment/usecase/query"
	"github.com/mahir/lifelessons/kafka"
	"github.com/mahir/lifelessons/pkg/guard"
	"github.com/mahir/lifelessons/pkg/logger"
)

// PaymentHandler handles HTTP requests for payments using CQRS pattern
type PaymentHandler struct {
	// Command handlers
	checkoutHandler *command.CreateCheckoutHandler
	confirmHandler  *command.ConfirmPaymentHandler

	// Query handlers
	getMyHandler *query.GetMyPaymentsHandler
	listHandler  *query.ListPaymentsHandler

	kafkaPublisher *kafka.Publisher

	confirmCounter *prometheus.CounterVec
}

// NewPaymentHandler creates a new payment handler using dependency injection
func NewPaymentHandler(
	checkoutHandler *command.CreateCheckoutHandler,
	confirmHandler *command.ConfirmPaymentHandler,
	getMyHandler *query.GetMyPaymentsHandler,
	listHandler *query.ListPaymentsHandler,
	kafkaPublisher *kafka.Publisher,
) *PaymentHandler {
	confirmCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_confirmations_total",
			Help: "Total number of payment confirmation attempts by outcome",
		},
		[]string{"outcome"},
	)
	prometheus.MustRegister(confirmCounter)

	return &PaymentHandler{
		checkoutHandler: checkoutHandler,
		confirmHandler:  confirmHandler,
		getMyHandler:    getMyHandler,
		listHandler:     listHandler,
		kafkaPublisher:  kafkaPublisher,
		confirmCounter:  confirmCounter,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateCheckout handles POST /api/payments/checkout
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, _ := guard.Subject(ctx)
	email, _ := guard.Email(ctx)

	cmd := command.CreateCheckoutCommand{
		BuyerEmail: email,
		Metadata: map[string]string{
			domain.MetadataSubjectKey: subject,
		},
	}

	url, err := h.checkoutHandler.Handle(ctx, cmd)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to create checkout session")
		respondJSON(w, http.StatusBadGateway, Response{
			Success: false,
			Error:   "Failed to create checkout session",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"url": url},
	})
}

// ConfirmPayment handles POST /api/payments/confirm
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, _ := guard.Subject(ctx)

	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.SessionID == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Session ID is required",
		})
		return
	}

	cmd := command.ConfirmPaymentCommand{
		SessionID: req.SessionID,
		Caller:    subject,
	}

	result, err := h.confirmHandler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, domain.ErrReconciliation) {
			// Entitlement was granted but the ledger append failed. The caller
			// must retry so the append completes.
			h.confirmCounter.WithLabelValues("reconciliation_error").Inc()
			logger.Error(ctx).Err(err).Str("session_id", req.SessionID).Msg("Payment reconciliation incomplete")
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Payment confirmation incomplete, please retry",
			})
			return
		}
		h.confirmCounter.WithLabelValues("error").Inc()
		logger.Error(ctx).Err(err).Str("session_id", req.SessionID).Msg("Failed to confirm payment")
		respondJSON(w, http.StatusBadGateway, Response{
			Success: false,
			Error:   "Failed to confirm payment",
		})
		return
	}

	switch {
	case result.Duplicate:
		h.confirmCounter.WithLabelValues("duplicate").Inc()
	case result.Status == domain.StatusPaid:
		h.confirmCounter.WithLabelValues("confirmed").Inc()
	default:
		h.confirmCounter.WithLabelValues("pending").Inc()
	}

	// Publish the activation event only for a fresh confirmation. Duplicates
	// already produced one.
	if h.kafkaPublisher != nil && result.Status == domain.StatusPaid && !result.Duplicate {
		event := kafka.PremiumActivatedEvent{
			Subject:       result.Payment.SubjectID,
			SessionID:     result.Payment.SessionID,
			TransactionID: result.Payment.TransactionID,
			Amount:        result.Payment.Amount,
			Currency:      result.Payment.Currency,
		}
		if err := h.kafkaPublisher.PublishPremiumActivated(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("transaction_id", result.Payment.TransactionID).
				Msg("Failed to publish premium activated event")
			// The grant and the ledger entry are already durable
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetMyPayments handles GET /api/payments/my (authenticated user)
func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := guard.Subject(ctx)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Identity not found in context",
		})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.GetMyPaymentsQuery{
		Subject: subject,
		Limit:   limit,
		Offset:  offset,
	}

	payments, err := h.getMyHandler.Handle(ctx, q)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to get user payments")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get payments",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"payments": payments,
			"total":    len(payments),
		},
	})
}

// ListPayments handles GET /api/payments (admin)
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListPaymentsQuery{
		Limit:  limit,
		Offset: offset,
	}

	payments, err := h.listHandler.Handle(ctx, q)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to list payments")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list payments",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"payments": payments,
			"total":    len(payments),
		},
	})
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	// Authenticated user routes (any logged-in user)
	router.HandleFunc("/api/payments/checkout", guard.Chain(h.CreateCheckout, guard.Authenticate)).Methods("POST")
	router.HandleFunc("/api/payments/confirm", guard.Chain(h.ConfirmPayment, guard.Authenticate)).Methods("POST")
	router.HandleFunc("/api/payments/my", guard.Chain(h.GetMyPayments, guard.Authenticate)).Methods("GET")

	// Admin routes (require admin role)
	router.HandleFunc("/api/payments", guard.Chain(h.ListPayments, guard.Authenticate, guard.RequireRole("admin"))).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *PaymentHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
