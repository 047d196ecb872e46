package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mahir/lifelessons/internal/payment/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL:     server.URL,
		APIKey:      "sk_test_123",
		ProductName: "Premium",
		UnitAmount:  10000,
		Currency:    "usd",
	})
}

func TestCreateSession(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("authorization = %q", got)
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["customer_email"] != "buyer@example.com" {
			t.Errorf("customer_email = %v", body["customer_email"])
		}
		metadata, _ := body["metadata"].(map[string]interface{})
		if metadata[domain.MetadataSubjectKey] != "subject-1" {
			t.Errorf("metadata = %v", metadata)
		}
		items, _ := body["line_items"].([]interface{})
		if len(items) != 1 {
			t.Fatalf("line_items = %v", items)
		}
		item, _ := items[0].(map[string]interface{})
		if item["name"] != "Premium" || item["amount"] != float64(10000) {
			t.Errorf("line item = %v", item)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "cs_123",
			"url":            "https://pay.example.com/cs_123",
			"payment_status": "unpaid",
		})
	})

	session, err := client.CreateSession(context.Background(), domain.CreateSessionParams{
		CustomerEmail: "buyer@example.com",
		Metadata:      map[string]string{domain.MetadataSubjectKey: "subject-1"},
		SuccessURL:    "https://app/success",
		CancelURL:     "https://app/cancel",
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if session.ID != "cs_123" {
		t.Errorf("session id = %q", session.ID)
	}
	if session.URL != "https://pay.example.com/cs_123" {
		t.Errorf("session url = %q", session.URL)
	}
}

func TestRetrieveSession(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/checkout/sessions/cs_123" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "cs_123",
			"payment_status": "paid",
			"amount_total":   10000,
			"currency":       "usd",
			"payment_intent": "pi_abc",
			"customer_email": "buyer@example.com",
			"metadata":       map[string]string{domain.MetadataSubjectKey: "subject-1"},
		})
	})

	session, err := client.RetrieveSession(context.Background(), "cs_123")
	if err != nil {
		t.Fatalf("RetrieveSession returned error: %v", err)
	}
	if session.PaymentStatus != "paid" {
		t.Errorf("payment status = %q", session.PaymentStatus)
	}
	if session.TransactionID != "pi_abc" {
		t.Errorf("transaction id = %q", session.TransactionID)
	}
	if session.AmountTotal != 10000 || session.Currency != "usd" {
		t.Errorf("amount = %d %s", session.AmountTotal, session.Currency)
	}
	if session.Metadata[domain.MetadataSubjectKey] != "subject-1" {
		t.Errorf("metadata = %v", session.Metadata)
	}
}

func TestRetrieveSession_EmptyID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an empty session id")
	})
	if _, err := client.RetrieveSession(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestClient_ProviderError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "card declined"},
		})
	})

	_, err := client.RetrieveSession(context.Background(), "cs_123")
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "card declined") {
		t.Errorf("error should carry the provider message, got %v", err)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"url": "https://pay.example.com"})
	})

	_, err := client.RetrieveSession(context.Background(), "cs_123")
	if err == nil {
		t.Fatal("expected error for response without id")
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Errorf("error = %v", err)
	}
}
