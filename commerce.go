package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const commercePageSize = 100

// CommerceClient fetches sales orders from the commerce platform.
type CommerceClient struct {
	BaseURL string
	APIKey  string
}

type commerceOrderResponse struct {
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	Total     flexFloat `json:"total_price"`
	Cost      flexFloat `json:"total_cost"`
	LineItems []struct {
		Title    string    `json:"title"`
		Quantity flexInt   `json:"quantity"`
		Price    flexFloat `json:"price"`
	} `json:"line_items"`
}

// FetchOrders returns all orders created within [from, to), walking the
// paginated endpoint until a short page comes back.
func (c CommerceClient) FetchOrders(from, to time.Time) ([]OrderRecord, error) {
	var all []OrderRecord
	page := 1

	for {
		apiURL := fmt.Sprintf("%s/api/v1/orders?created_from=%s&created_to=%s&per_page=%d&page=%d",
			strings.TrimRight(c.BaseURL, "/"),
			url.QueryEscape(from.Format(time.RFC3339)),
			url.QueryEscape(to.Format(time.RFC3339)),
			commercePageSize, page)

		var orders []commerceOrderResponse
		if err := getJSON(apiURL, c.APIKey, &orders); err != nil {
			return nil, fmt.Errorf("fetching orders page %d: %w", page, err)
		}

		for _, o := range orders {
			createdAt, err := time.Parse(time.RFC3339, o.CreatedAt)
			if err != nil {
				continue
			}
			if createdAt.Before(from) || !createdAt.Before(to) {
				continue
			}

			record := OrderRecord{
				ID:        o.ID,
				CreatedAt: createdAt,
				Total:     float64(o.Total),
				Cost:      float64(o.Cost),
			}
			for _, line := range o.LineItems {
				record.Items = append(record.Items, OrderLine{
					Product:  strings.TrimSpace(line.Title),
					Quantity: int(line.Quantity),
					Price:    float64(line.Price),
				})
			}
			all = append(all, record)
		}

		if len(orders) < commercePageSize {
			break
		}
		page++
	}

	return all, nil
}
