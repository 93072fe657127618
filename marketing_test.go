package main

import (
	"testing"
	"time"
)

func TestAggregateMarketingSummary(t *testing.T) {
	now := time.Now()
	campaigns := []CampaignRecord{
		{ID: "c1", Name: "Weekend Offer", SentAt: now, Sent: 800, Opens: 120, Clicks: 16, Revenue: 950},
		{ID: "c2", Name: "New Lines", SentAt: now, Sent: 200, Opens: 30, Clicks: 4, Revenue: 150},
	}

	report := AggregateMarketing(campaigns, nil, testThresholds().Marketing)
	s := report.Summary

	if s.CampaignCount != 2 || s.TotalSent != 1000 {
		t.Errorf("count/sent = %d/%d, want 2/1000", s.CampaignCount, s.TotalSent)
	}
	if s.AverageOpenRate != 15 {
		t.Errorf("AverageOpenRate = %v, want 15 (150/1000)", s.AverageOpenRate)
	}
	if s.AverageClickRate != 2 {
		t.Errorf("AverageClickRate = %v, want 2 (20/1000)", s.AverageClickRate)
	}
	if s.AttributedRevenue != 1100 {
		t.Errorf("AttributedRevenue = %v, want 1100", s.AttributedRevenue)
	}
	if len(s.TopCampaigns) != 2 || s.TopCampaigns[0].Name != "Weekend Offer" {
		t.Errorf("TopCampaigns = %v, want Weekend Offer first", s.TopCampaigns)
	}
	if report.Comparison != nil {
		t.Errorf("daily snapshot carried a comparison: %+v", report.Comparison)
	}
}

func TestAggregateMarketingComparisonAgainstEmptyWeek(t *testing.T) {
	campaigns := []CampaignRecord{
		{ID: "c1", Name: "Launch", Sent: 100, Opens: 40, Clicks: 10, Revenue: 500},
	}
	// Non-nil empty previous: a prior week with no sends still compares.
	report := AggregateMarketing(campaigns, []CampaignRecord{}, testThresholds().Marketing)

	if report.Comparison == nil {
		t.Fatal("empty previous period dropped the comparison")
	}
	if report.Comparison.OpenRateTrend != TrendStable {
		t.Errorf("trend against zero baseline = %v, want stable", report.Comparison.OpenRateTrend)
	}
	if report.Comparison.RevenueChangePercentage != 0 {
		t.Errorf("change against zero baseline = %v, want 0", report.Comparison.RevenueChangePercentage)
	}
}

func TestAggregateMarketingNoCampaigns(t *testing.T) {
	report := AggregateMarketing(nil, nil, testThresholds().Marketing)

	if report.Summary.AverageOpenRate != 0 || report.Summary.AverageClickRate != 0 {
		t.Errorf("zero-send rates = %v/%v, want 0/0", report.Summary.AverageOpenRate, report.Summary.AverageClickRate)
	}
	got := alertTypes(report.Alerts)
	if len(got) != 1 || got[0] != "no_campaigns" {
		t.Fatalf("alerts = %v, want [no_campaigns]", got)
	}
	if report.Alerts[0].Severity != SeverityInfo {
		t.Errorf("no_campaigns severity = %s, want info", report.Alerts[0].Severity)
	}
}

func TestTopCampaignsTruncatesToFive(t *testing.T) {
	var campaigns []CampaignRecord
	for i := 1; i <= 7; i++ {
		campaigns = append(campaigns, CampaignRecord{
			ID:      string(rune('a' + i)),
			Name:    "Campaign",
			Sent:    100,
			Revenue: float64(i * 100),
		})
	}
	top := topCampaigns(campaigns, topCampaignCount)
	if len(top) != 5 {
		t.Fatalf("got %d campaigns, want 5", len(top))
	}
	if top[0].Revenue != 700 || top[4].Revenue != 300 {
		t.Errorf("revenue order = %v, want 700 down to 300", top)
	}
}
