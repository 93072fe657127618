package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// WarehouseClient fetches stock levels, dispatch schedules and purchase
// orders from the warehouse system.
type WarehouseClient struct {
	BaseURL string
	APIKey  string
}

type warehouseStockResponse struct {
	SKU          string    `json:"sku"`
	Product      string    `json:"product_name"`
	Quantity     flexFloat `json:"quantity"`
	UnitCost     flexFloat `json:"unit_cost"`
	ReorderLevel flexFloat `json:"reorder_level"`
}

type warehouseDispatchResponse struct {
	OrderRef    string `json:"order_ref"`
	Status      string `json:"status"`
	ScheduledAt string `json:"scheduled_at"`
}

type warehousePOResponse struct {
	Reference string `json:"reference"`
	Supplier  string `json:"supplier"`
	Status    string `json:"status"`
	DueAt     string `json:"due_at"`
}

// FetchStock returns the current stock level snapshot.
func (c WarehouseClient) FetchStock() ([]StockRecord, error) {
	apiURL := strings.TrimRight(c.BaseURL, "/") + "/api/v1/stock"

	var rows []warehouseStockResponse
	if err := getJSON(apiURL, c.APIKey, &rows); err != nil {
		return nil, fmt.Errorf("fetching stock: %w", err)
	}

	records := make([]StockRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, StockRecord{
			SKU:          r.SKU,
			Product:      strings.TrimSpace(r.Product),
			Quantity:     float64(r.Quantity),
			UnitCost:     float64(r.UnitCost),
			ReorderLevel: float64(r.ReorderLevel),
		})
	}
	return records, nil
}

// FetchDispatches returns dispatches scheduled within [from, to).
func (c WarehouseClient) FetchDispatches(from, to time.Time) ([]DispatchRecord, error) {
	apiURL := fmt.Sprintf("%s/api/v1/dispatches?from=%s&to=%s",
		strings.TrimRight(c.BaseURL, "/"),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)))

	var rows []warehouseDispatchResponse
	if err := getJSON(apiURL, c.APIKey, &rows); err != nil {
		return nil, fmt.Errorf("fetching dispatches: %w", err)
	}

	records := make([]DispatchRecord, 0, len(rows))
	for _, r := range rows {
		scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
		if err != nil {
			scheduledAt = time.Time{}
		}
		records = append(records, DispatchRecord{
			OrderRef:    r.OrderRef,
			Status:      strings.ToLower(strings.TrimSpace(r.Status)),
			ScheduledAt: scheduledAt,
		})
	}
	return records, nil
}

// FetchPurchaseOrders returns purchase orders that are still open.
func (c WarehouseClient) FetchPurchaseOrders() ([]PurchaseOrderRecord, error) {
	apiURL := strings.TrimRight(c.BaseURL, "/") + "/api/v1/purchase-orders?status=open"

	var rows []warehousePOResponse
	if err := getJSON(apiURL, c.APIKey, &rows); err != nil {
		return nil, fmt.Errorf("fetching purchase orders: %w", err)
	}

	records := make([]PurchaseOrderRecord, 0, len(rows))
	for _, r := range rows {
		dueAt, err := time.Parse(time.RFC3339, r.DueAt)
		if err != nil {
			dueAt = time.Time{}
		}
		records = append(records, PurchaseOrderRecord{
			Reference: r.Reference,
			Supplier:  strings.TrimSpace(r.Supplier),
			Status:    strings.ToLower(strings.TrimSpace(r.Status)),
			DueAt:     dueAt,
		})
	}
	return records, nil
}
