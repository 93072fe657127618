package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func warehouseServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/stock", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"sku": "FLR-01", "product_name": " Strong White Flour ", "quantity": "400", "unit_cost": 1.20, "reorder_level": 500},
			{"sku": "BTR-01", "product_name": "Butter", "quantity": 80, "unit_cost": "5.50"}
		]`)
	})
	mux.HandleFunc("/api/v1/dispatches", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"order_ref": "D-1", "status": "Dispatched", "scheduled_at": "2026-02-09T09:00:00Z"},
			{"order_ref": "D-2", "status": "PENDING", "scheduled_at": "nonsense"}
		]`)
	})
	mux.HandleFunc("/api/v1/purchase-orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "open" {
			t.Errorf("purchase-orders status filter = %q, want open", r.URL.Query().Get("status"))
		}
		fmt.Fprint(w, `[
			{"reference": "PO-100", "supplier": "Mill & Co", "status": "Open", "due_at": "2026-02-12T00:00:00Z"}
		]`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchStock(t *testing.T) {
	client := WarehouseClient{BaseURL: warehouseServer(t).URL}
	records, err := client.FetchStock()
	if err != nil {
		t.Fatalf("FetchStock: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	flour := records[0]
	if flour.Product != "Strong White Flour" || flour.Quantity != 400 || flour.UnitCost != 1.20 || flour.ReorderLevel != 500 {
		t.Errorf("flour = %+v", flour)
	}
	if records[1].ReorderLevel != 0 {
		t.Errorf("missing reorder_level = %v, want 0", records[1].ReorderLevel)
	}
}

func TestFetchDispatches(t *testing.T) {
	client := WarehouseClient{BaseURL: warehouseServer(t).URL}
	from := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	records, err := client.FetchDispatches(from, from.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("FetchDispatches: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Status != "dispatched" || records[1].Status != "pending" {
		t.Errorf("statuses = %q, %q, want lowercased", records[0].Status, records[1].Status)
	}
	if !records[1].ScheduledAt.IsZero() {
		t.Errorf("unparseable schedule = %v, want zero time", records[1].ScheduledAt)
	}
}

func TestFetchPurchaseOrders(t *testing.T) {
	client := WarehouseClient{BaseURL: warehouseServer(t).URL}
	records, err := client.FetchPurchaseOrders()
	if err != nil {
		t.Fatalf("FetchPurchaseOrders: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	po := records[0]
	if po.Reference != "PO-100" || po.Supplier != "Mill & Co" || po.Status != "open" {
		t.Errorf("purchase order = %+v", po)
	}
}

func TestWarehouseFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := WarehouseClient{BaseURL: server.URL}
	if _, err := client.FetchStock(); err == nil {
		t.Error("FetchStock swallowed a 503")
	}
	if _, err := client.FetchPurchaseOrders(); err == nil {
		t.Error("FetchPurchaseOrders swallowed a 503")
	}
}
