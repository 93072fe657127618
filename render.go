package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RenderJSON dumps the digest losslessly. Key order is fixed by the
// struct definitions, so identical digests render byte-identically.
func RenderJSON(d *Digest) (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding digest: %w", err)
	}
	return string(data) + "\n", nil
}

// RenderMarkdown expands every section of every domain payload into a
// full report. Everything comes from the digest; nothing is refetched
// or recomputed here.
func RenderMarkdown(d *Digest) string {
	var buf strings.Builder

	title := "Daily Business Digest"
	if d.Type == "weekly" {
		title = "Weekly Business Digest"
	}
	buf.WriteString(fmt.Sprintf("### %s — %s\n\n", title, d.ReportDate.Format("Monday 2 January 2006")))

	if len(d.CriticalAlerts) > 0 {
		buf.WriteString("#### Critical Alerts\n\n")
		for _, alert := range d.CriticalAlerts {
			buf.WriteString(fmt.Sprintf("- **[%s]** %s\n", alert.Domain, alert.Message))
		}
		buf.WriteString("\n")
	}
	if len(d.WarningAlerts) > 0 {
		buf.WriteString("#### Warnings\n\n")
		for _, alert := range d.WarningAlerts {
			buf.WriteString(fmt.Sprintf("- **[%s]** %s\n", alert.Domain, alert.Message))
		}
		buf.WriteString("\n")
	}

	if len(d.Actions) > 0 {
		buf.WriteString("#### Action Items\n\n")
		for _, action := range sortActionsByPriority(d.Actions) {
			buf.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", action.Priority, action.Department, action.Description))
		}
		buf.WriteString("\n")
	}

	writeFinanceSection(&buf, d.Finance)
	writeOperationsSection(&buf, d.Operations)
	if d.Marketing != nil {
		writeMarketingSection(&buf, *d.Marketing)
	}

	if strings.TrimSpace(d.Commentary) != "" {
		buf.WriteString("#### Commentary\n\n")
		buf.WriteString(strings.TrimSpace(d.Commentary))
		buf.WriteString("\n\n")
	}

	return strings.TrimSpace(buf.String()) + "\n"
}

func writeFinanceSection(buf *strings.Builder, report FinanceReport) {
	s := report.Summary
	c := report.Comparison
	buf.WriteString("#### Sales & Finance\n\n")
	buf.WriteString(fmt.Sprintf("- Revenue: %s across %d orders (%s vs prior period, trend %s)\n",
		formatGBP(s.TotalRevenue), s.OrderCount, formatSignedPercent(c.RevenueChangePercentage), c.RevenueTrend))
	buf.WriteString(fmt.Sprintf("- Gross profit: %s (margin %.1f%%)\n", formatGBP(s.GrossProfit), s.MarginPercentage))
	buf.WriteString(fmt.Sprintf("- Average order value: %s\n", formatGBP(s.AverageOrderValue)))
	if len(s.TopProducts) > 0 {
		buf.WriteString("- Top products by revenue:\n")
		for _, p := range s.TopProducts {
			buf.WriteString(fmt.Sprintf("  - %s: %s (%d sold)\n", p.Product, formatGBP(p.Revenue), p.Quantity))
		}
	}
	writeInfoNotes(buf, report.Alerts)
	buf.WriteString("\n")
}

func writeOperationsSection(buf *strings.Builder, report OperationsReport) {
	s := report.Summary
	c := report.Comparison
	buf.WriteString("#### Stock & Production\n\n")
	buf.WriteString(fmt.Sprintf("- Stock value: %s\n", formatGBP(s.Stock.TotalStockValue)))
	if s.Stock.BelowReorderCount > 0 {
		buf.WriteString(fmt.Sprintf("- Below reorder level (%d): %s\n", s.Stock.BelowReorderCount, strings.Join(s.Stock.ItemsBelowReorder, ", ")))
	}
	if len(s.Stock.OpenPurchaseOrders) > 0 {
		buf.WriteString(fmt.Sprintf("- Open purchase orders: %s\n", strings.Join(s.Stock.OpenPurchaseOrders, ", ")))
	}
	if s.Stock.DispatchTotal > 0 {
		buf.WriteString(fmt.Sprintf("- Dispatch: %d of %d completed (%.1f%%)\n",
			s.Stock.DispatchCompleted, s.Stock.DispatchTotal, s.Stock.DispatchCompletionPercentage))
	}
	buf.WriteString(fmt.Sprintf("- Yield: %.1f%% average over %d batches (trend %s), waste %.1f%% (trend %s)\n",
		s.Yield.AverageYieldPercentage, s.Yield.BatchCount, c.YieldTrend, s.Yield.WastePercentage, c.WasteTrend))
	if len(s.Yield.ByProductType) > 0 {
		buf.WriteString("- Yield by product type:\n")
		for _, r := range s.Yield.ByProductType {
			buf.WriteString(fmt.Sprintf("  - %s: %.1f%% (in %.1fkg, out %.1fkg, waste %.1fkg)\n",
				r.ProductType, r.YieldPercentage, r.InputWeight, r.OutputWeight, r.WasteWeight))
		}
	}
	writeInfoNotes(buf, report.Alerts)
	buf.WriteString("\n")
}

func writeMarketingSection(buf *strings.Builder, report MarketingReport) {
	s := report.Summary
	buf.WriteString("#### Email Marketing\n\n")
	buf.WriteString(fmt.Sprintf("- Campaigns sent: %d (%d emails)\n", s.CampaignCount, s.TotalSent))
	buf.WriteString(fmt.Sprintf("- Open rate: %.1f%% | Click rate: %.1f%%\n", s.AverageOpenRate, s.AverageClickRate))
	buf.WriteString(fmt.Sprintf("- Attributed revenue: %s\n", formatGBP(s.AttributedRevenue)))
	if report.Comparison != nil {
		c := report.Comparison
		buf.WriteString(fmt.Sprintf("- Vs prior period: open rate %s (was %.1f%%), revenue %s (trend %s)\n",
			c.OpenRateTrend, c.PreviousOpenRate, formatSignedPercent(c.RevenueChangePercentage), c.RevenueTrend))
	}
	if len(s.TopCampaigns) > 0 {
		buf.WriteString("- Top campaigns by revenue:\n")
		for _, c := range s.TopCampaigns {
			buf.WriteString(fmt.Sprintf("  - %s: %s (%d sent)\n", c.Name, formatGBP(c.Revenue), c.Sent))
		}
	}
	writeInfoNotes(buf, report.Alerts)
	buf.WriteString("\n")
}

// writeInfoNotes surfaces info-severity alerts inside their domain
// section. They never reach the top-level alert buckets.
func writeInfoNotes(buf *strings.Builder, alerts []Alert) {
	for _, alert := range alerts {
		if alert.Severity == SeverityInfo {
			buf.WriteString(fmt.Sprintf("- Note: %s\n", alert.Message))
		}
	}
}

// RenderChatMessage produces the compact single-message summary: a
// fixed four-line metric block, every critical alert, and the top three
// actions in priority order.
func RenderChatMessage(d *Digest) string {
	var buf strings.Builder

	title := "Daily Business Digest"
	if d.Type == "weekly" {
		title = "Weekly Business Digest"
	}
	buf.WriteString(fmt.Sprintf("*%s — %s*\n", title, d.ReportDate.Format("Mon 2 Jan 2006")))

	fin := d.Finance.Summary
	ops := d.Operations.Summary
	buf.WriteString(fmt.Sprintf("Revenue: %s (%s vs prior period)\n",
		formatGBP(fin.TotalRevenue), formatSignedPercent(d.Finance.Comparison.RevenueChangePercentage)))
	buf.WriteString(fmt.Sprintf("Margin: %.1f%% | Orders: %d\n", fin.MarginPercentage, fin.OrderCount))
	buf.WriteString(fmt.Sprintf("Stock value: %s | Yield: %.1f%% | Waste: %.1f%%\n",
		formatGBP(ops.Stock.TotalStockValue), ops.Yield.AverageYieldPercentage, ops.Yield.WastePercentage))
	if d.Marketing != nil {
		buf.WriteString(fmt.Sprintf("Open rate: %.1f%% | Campaign revenue: %s\n",
			d.Marketing.Summary.AverageOpenRate, formatGBP(d.Marketing.Summary.AttributedRevenue)))
	} else {
		buf.WriteString("Open rate: n/a | Campaign revenue: n/a\n")
	}

	if len(d.CriticalAlerts) > 0 {
		buf.WriteString("\n:rotating_light: *Critical*\n")
		for _, alert := range d.CriticalAlerts {
			buf.WriteString(fmt.Sprintf("• [%s] %s\n", alert.Domain, alert.Message))
		}
	}

	if len(d.Actions) > 0 {
		actions := sortActionsByPriority(d.Actions)
		if len(actions) > 3 {
			actions = actions[:3]
		}
		buf.WriteString("\n*Top actions*\n")
		for _, action := range actions {
			buf.WriteString(fmt.Sprintf("• %s (%s): %s\n", action.Priority, action.Department, action.Description))
		}
	}

	return strings.TrimRight(buf.String(), "\n")
}

// formatGBP renders a currency amount as £1,234.56.
func formatGBP(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	whole := s[:len(s)-3]
	frac := s[len(s)-3:]
	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	out := "£" + grouped.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatSignedPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}
