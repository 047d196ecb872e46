package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateCheckout godoc
// @Summary Create a checkout session
// @Description Open a checkout session for the premium upgrade and return the redirect URL
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{url=string}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/payments/checkout [post]
func (h *PaymentHandler) CreateCheckoutDoc() {}

// ConfirmPayment godoc
// @Summary Confirm a payment
// @Description Reconcile a checkout session against the ledger; idempotent per provider transaction
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{session_id=string} true "Checkout session reference"
// @Success 200 {object} object{success=bool,data=object{status=string,duplicate=bool,payment=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/payments/confirm [post]
func (h *PaymentHandler) ConfirmPaymentDoc() {}

// GetMyPayments godoc
// @Summary Get my payments
// @Description Get ledger entries for the authenticated user
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{payments=array,total=int}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/payments/my [get]
func (h *PaymentHandler) GetMyPaymentsDoc() {}

// ListPayments godoc
// @Summary List all payments
// @Description Get all ledger entries with pagination (Admin only)
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{payments=array,total=int}}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/payments [get]
func (h *PaymentHandler) ListPaymentsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *PaymentHandler) HealthCheckDoc() {}
