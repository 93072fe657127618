package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleDigest() *Digest {
	marketing := &MarketingReport{
		Summary: MarketingSummary{
			CampaignCount:     2,
			TotalSent:         1000,
			AverageOpenRate:   15,
			AverageClickRate:  2,
			AttributedRevenue: 1100,
			TopCampaigns:      []CampaignSales{{Name: "Weekend Offer", Sent: 800, Revenue: 950}},
		},
		Alerts: []Alert{},
	}
	return &Digest{
		ReportDate: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		Type:       "daily",
		Finance: FinanceReport{
			Summary: FinanceSummary{
				TotalRevenue:      84210.50,
				TotalCost:         50526.30,
				GrossProfit:       33684.20,
				MarginPercentage:  40,
				OrderCount:        120,
				AverageOrderValue: 701.75,
				TopProducts:       []ProductSales{{Product: "Sourdough Loaf", Quantity: 60, Revenue: 420}},
			},
			Comparison: FinanceComparison{
				PreviousRevenue:         80100,
				RevenueChange:           4110.50,
				RevenueChangePercentage: 5.13,
				RevenueTrend:            TrendUp,
			},
		},
		Operations: OperationsReport{
			Summary: OperationsSummary{
				Stock: StockSummary{
					TotalStockValue:              485000,
					ItemsBelowReorder:            []string{"Strong White Flour"},
					BelowReorderCount:            1,
					DispatchTotal:                4,
					DispatchCompleted:            3,
					DispatchCompletionPercentage: 75,
				},
				Yield: YieldSummary{
					BatchCount:             4,
					AverageYieldPercentage: 80.4,
					WastePercentage:        15,
					ByProductType:          []YieldRollup{{ProductType: "bread", InputWeight: 200, OutputWeight: 160, WasteWeight: 30, YieldPercentage: 80}},
				},
			},
			Alerts: []Alert{
				{Domain: "operations", Type: "dispatch_complete", Message: "All scheduled dispatches for the period went out", Severity: SeverityInfo},
			},
		},
		Marketing: marketing,
		CriticalAlerts: []Alert{
			{Domain: "operations", Type: "stock_value_low", Message: "Stock value £485,000.00 is below the £500,000.00 critical boundary", Severity: SeverityCritical},
		},
		WarningAlerts: []Alert{
			{Domain: "operations", Type: "high_waste", Message: "Waste 15.0% is above the 8.0% warning boundary", Severity: SeverityWarning},
		},
		Actions: []ActionItem{
			{Priority: PriorityMedium, Department: "finance", Description: "Chase open purchase orders PO-1 (1 open)"},
			{Priority: PriorityHigh, Department: "operations", Description: "Reorder stock for Strong White Flour (1 items below reorder level)"},
		},
	}
}

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "£0.00"},
		{999, "£999.00"},
		{1234.5, "£1,234.50"},
		{485000, "£485,000.00"},
		{1234567.891, "£1,234,567.89"},
		{-5.5, "-£5.50"},
	}
	for _, tt := range tests {
		if got := formatGBP(tt.value); got != tt.want {
			t.Errorf("formatGBP(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(sampleDigest())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("JSON output missing trailing newline")
	}

	var back Digest
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("round-trip unmarshal: %v", err)
	}
	if back.Finance.Summary.TotalRevenue != 84210.50 {
		t.Errorf("round-trip revenue = %v, want 84210.50", back.Finance.Summary.TotalRevenue)
	}
	if len(back.CriticalAlerts) != 1 || back.CriticalAlerts[0].Type != "stock_value_low" {
		t.Errorf("round-trip critical alerts = %+v", back.CriticalAlerts)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(sampleDigest())

	wantSections := []string{
		"### Daily Business Digest — Monday 9 February 2026",
		"#### Critical Alerts",
		"#### Warnings",
		"#### Action Items",
		"#### Sales & Finance",
		"#### Stock & Production",
		"#### Email Marketing",
	}
	for _, section := range wantSections {
		if !strings.Contains(out, section) {
			t.Errorf("markdown missing %q", section)
		}
	}
	if strings.Contains(out, "#### Commentary") {
		t.Error("commentary section rendered without commentary")
	}

	// Action items render in priority order, not rule order.
	high := strings.Index(out, "Reorder stock")
	medium := strings.Index(out, "Chase open purchase orders")
	if high == -1 || medium == -1 || high > medium {
		t.Errorf("actions not in priority order (high at %d, medium at %d)", high, medium)
	}

	if !strings.Contains(out, "- Note: All scheduled dispatches for the period went out") {
		t.Error("info note missing from the operations section")
	}
	if !strings.Contains(out, "Revenue: £84,210.50 across 120 orders (+5.1% vs prior period, trend up)") {
		t.Errorf("finance headline missing:\n%s", out)
	}
}

func TestRenderMarkdownCommentary(t *testing.T) {
	d := sampleDigest()
	d.Commentary = "Revenue is tracking ahead of last week."
	out := RenderMarkdown(d)
	if !strings.Contains(out, "#### Commentary\n\nRevenue is tracking ahead of last week.") {
		t.Errorf("commentary section missing:\n%s", out)
	}
}

func TestRenderChatMessage(t *testing.T) {
	out := RenderChatMessage(sampleDigest())

	wantLines := []string{
		"*Daily Business Digest — Mon 9 Feb 2026*",
		"Revenue: £84,210.50 (+5.1% vs prior period)",
		"Margin: 40.0% | Orders: 120",
		"Stock value: £485,000.00 | Yield: 80.4% | Waste: 15.0%",
		"Open rate: 15.0% | Campaign revenue: £1,100.00",
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 5 {
		t.Fatalf("chat message too short:\n%s", out)
	}
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}

	if !strings.Contains(out, ":rotating_light: *Critical*") {
		t.Error("critical block missing")
	}
	if !strings.Contains(out, "*Top actions*") {
		t.Error("actions block missing")
	}
	// Priority order: the high action leads.
	if !strings.Contains(out, "• high (operations): Reorder stock") {
		t.Errorf("top action not first:\n%s", out)
	}
}

func TestRenderChatMessageTruncatesActions(t *testing.T) {
	d := sampleDigest()
	d.Actions = []ActionItem{
		{Priority: PriorityHigh, Department: "operations", Description: "a1"},
		{Priority: PriorityHigh, Department: "finance", Description: "a2"},
		{Priority: PriorityMedium, Department: "finance", Description: "a3"},
		{Priority: PriorityMedium, Department: "marketing", Description: "a4"},
	}
	out := RenderChatMessage(d)
	if !strings.Contains(out, "a3") || strings.Contains(out, "a4") {
		t.Errorf("chat message should carry the top 3 actions only:\n%s", out)
	}
}

func TestRenderChatMessageWithoutMarketing(t *testing.T) {
	d := sampleDigest()
	d.Marketing = nil
	d.CriticalAlerts = nil
	d.Actions = nil
	out := RenderChatMessage(d)

	if !strings.Contains(out, "Open rate: n/a | Campaign revenue: n/a") {
		t.Errorf("missing n/a fallback:\n%s", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 5 {
		t.Errorf("quiet digest = %d lines, want exactly 5:\n%s", len(lines), out)
	}
}
