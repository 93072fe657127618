package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// CampaignClient fetches campaign performance from the email marketing
// platform.
type CampaignClient struct {
	BaseURL string
	APIKey  string
}

type campaignResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	SentAt string  `json:"sent_at"`
	Sent   flexInt `json:"emails_sent"`
	Stats  struct {
		Opens   flexInt   `json:"unique_opens"`
		Clicks  flexInt   `json:"unique_clicks"`
		Revenue flexFloat `json:"attributed_revenue"`
	} `json:"stats"`
}

// FetchCampaigns returns campaigns sent within [from, to) with their
// performance stats.
func (c CampaignClient) FetchCampaigns(from, to time.Time) ([]CampaignRecord, error) {
	apiURL := fmt.Sprintf("%s/api/v1/campaigns?since=%s&before=%s",
		strings.TrimRight(c.BaseURL, "/"),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)))

	var rows []campaignResponse
	if err := getJSON(apiURL, c.APIKey, &rows); err != nil {
		return nil, fmt.Errorf("fetching campaigns: %w", err)
	}

	var records []CampaignRecord
	for _, r := range rows {
		sentAt, err := time.Parse(time.RFC3339, r.SentAt)
		if err != nil {
			continue
		}
		if sentAt.Before(from) || !sentAt.Before(to) {
			continue
		}
		records = append(records, CampaignRecord{
			ID:      r.ID,
			Name:    strings.TrimSpace(r.Name),
			SentAt:  sentAt,
			Sent:    int(r.Sent),
			Opens:   int(r.Stats.Opens),
			Clicks:  int(r.Stats.Clicks),
			Revenue: float64(r.Stats.Revenue),
		})
	}
	return records, nil
}
