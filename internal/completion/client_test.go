package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteOrderPostsPayload(t *testing.T) {
	var got completeRequest
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.CompleteOrder(context.Background(), "rest-1", "table-4", 0, "split")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/api/internal/orders/complete" {
		t.Fatalf("unexpected path %s", path)
	}
	if got.RestaurantID != "rest-1" || got.TableID != "table-4" {
		t.Fatalf("unexpected scope: %+v", got)
	}
	if got.Total != 0 || got.PaymentMethod != "split" {
		t.Fatalf("unexpected billing fields: %+v", got)
	}
}

func TestCompleteOrderNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.CompleteOrder(context.Background(), "rest-1", "table-4", 0, "split"); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}
