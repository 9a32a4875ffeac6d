package zoho

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// High limit so the client-side throttle does not slow tests down.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:         baseURL,
		Token:           "test-token",
		RateLimitPerMin: 60000,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{Token: "t"}); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient(Config{BaseURL: "http://localhost"}); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestFetchSyncStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pos/sync-status" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-token" {
			t.Errorf("api key header = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"summary": {"total": 10, "synced": 7, "failed": 2, "no_zoho_id": 1},
				"sales": [
					{"sale_id": 1, "total": 108.00, "synced_to_zoho": true,
					 "customer": {"name": "Jane Cooper", "has_zoho_id": true},
					 "sales_receipt_number": "SR-0001"},
					{"sale_id": 2, "total": 54.50, "synced_to_zoho": false,
					 "sync_error": "item not mapped",
					 "customer": {"name": "Jane Cooper", "has_zoho_id": true}},
					{"sale_id": 3, "total": 21.99, "synced_to_zoho": false,
					 "sync_error": "rate limited",
					 "customer": {"name": "Bob Ray", "has_zoho_id": true}},
					{"sale_id": 4, "total": 9.99, "synced_to_zoho": false,
					 "sync_error": "no contact",
					 "customer": {"name": "Walk In", "has_zoho_id": false}},
					{"sale_id": 5, "total": 3.50, "synced_to_zoho": false}
				]
			}
		}`))
	}))
	defer server.Close()

	status, err := newTestClient(t, server.URL).FetchSyncStatus(context.Background(), 50)
	if err != nil {
		t.Fatalf("FetchSyncStatus: %v", err)
	}

	if status.Summary.Total != 10 || status.Summary.Synced != 7 ||
		status.Summary.Failed != 2 || status.Summary.NoZohoID != 1 {
		t.Errorf("summary = %+v", status.Summary)
	}
	if len(status.Sales) != 5 {
		t.Fatalf("sales = %d, want 5", len(status.Sales))
	}

	// Retry is offered only for failed sales whose customer the ledger
	// knows: sales 2 and 3 here.
	var retryable []uint
	for _, row := range status.Sales {
		if row.CanRetry {
			retryable = append(retryable, row.SaleID)
		}
	}
	if len(retryable) != 2 || retryable[0] != 2 || retryable[1] != 3 {
		t.Errorf("retryable sales = %v, want [2 3]", retryable)
	}

	if status.Sales[0].SalesReceiptNumber == nil || *status.Sales[0].SalesReceiptNumber != "SR-0001" {
		t.Errorf("receipt number = %v", status.Sales[0].SalesReceiptNumber)
	}
	if status.Sales[4].Customer != nil {
		t.Error("sale without customer payload should have nil customer")
	}
	if status.FetchedAt.IsZero() {
		t.Error("fetched_at not stamped")
	}
}

func TestRetrySale(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/pos/sales/42/retry" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "data": {"sales_receipt_number": "SR-1001"}}`))
	}))
	defer server.Close()

	receiptNumber, err := newTestClient(t, server.URL).RetrySale(context.Background(), 42)
	if err != nil {
		t.Fatalf("RetrySale: %v", err)
	}
	if receiptNumber != "SR-1001" {
		t.Errorf("receipt number = %q, want SR-1001", receiptNumber)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "nested error message wins",
			body: `{"success": false, "message": "outer", "error": {"message": "Zoho item not mapped"}}`,
			want: "Zoho item not mapped",
		},
		{
			name: "top-level message fallback",
			body: `{"success": false, "message": "sync service unavailable"}`,
			want: "sync service unavailable",
		},
		{
			name: "unparseable body",
			body: `<html>Bad Gateway</html>`,
			want: DefaultErrorMessage,
		},
		{
			name: "empty envelope",
			body: `{"success": false}`,
			want: DefaultErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("errorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetrySaleUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success": false, "error": {"message": "Zoho connector down"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).RetrySale(context.Background(), 7)
	if err == nil || err.Error() != "Zoho connector down" {
		t.Errorf("err = %v, want the connector's message", err)
	}
}

func TestFetchSyncStatusEnvelopeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with success=false still counts as a failure.
		w.Write([]byte(`{"success": false, "message": "token expired"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchSyncStatus(context.Background(), 50)
	if err == nil || !strings.Contains(err.Error(), "token expired") {
		t.Errorf("err = %v, want envelope message", err)
	}
}
