package main

import "fmt"

// thresholdRule evaluates one metric against a critical and a warning
// boundary. Direction is a fixed property of the metric: Below means the
// alert fires when the value drops under the boundary (margin, yield,
// open rate, stock value, dispatch completion); otherwise it fires when
// the value rises above it (waste).
type thresholdRule struct {
	Type     string
	Value    float64
	Critical float64
	Warning  float64
	Below    bool
	Message  func(sev Severity, value, boundary float64) string
}

// countRule fires a single warning alert whenever the count is positive.
// Pure counts have no critical tier.
type countRule struct {
	Type    string
	Count   int
	Message func(count int) string
}

// evalThreshold checks the critical boundary first; if it fires, the
// warning boundary is never consulted for the same metric, so a metric
// produces at most one alert per run.
func evalThreshold(domain string, r thresholdRule) (Alert, bool) {
	fires := func(boundary float64) bool {
		if r.Below {
			return r.Value < boundary
		}
		return r.Value > boundary
	}
	if fires(r.Critical) {
		return Alert{
			Domain:   domain,
			Type:     r.Type,
			Message:  r.Message(SeverityCritical, r.Value, r.Critical),
			Severity: SeverityCritical,
		}, true
	}
	if fires(r.Warning) {
		return Alert{
			Domain:   domain,
			Type:     r.Type,
			Message:  r.Message(SeverityWarning, r.Value, r.Warning),
			Severity: SeverityWarning,
		}, true
	}
	return Alert{}, false
}

// classifyThresholds maps a set of rules to alerts in evaluation order.
// Severity partitioning for display happens later, in the executive
// aggregator.
func classifyThresholds(domain string, rules []thresholdRule, counts []countRule) []Alert {
	var alerts []Alert
	for _, r := range rules {
		if alert, ok := evalThreshold(domain, r); ok {
			alerts = append(alerts, alert)
		}
	}
	for _, c := range counts {
		if c.Count > 0 {
			alerts = append(alerts, Alert{
				Domain:   domain,
				Type:     c.Type,
				Message:  c.Message(c.Count),
				Severity: SeverityWarning,
			})
		}
	}
	return alerts
}

// ClassifyFinanceAlerts derives alerts for a finance summary.
func ClassifyFinanceAlerts(summary FinanceSummary, th FinanceThresholds) []Alert {
	rules := []thresholdRule{
		{
			Type:     "low_margin",
			Value:    summary.MarginPercentage,
			Critical: th.MarginCriticalPercentage,
			Warning:  th.MarginWarningPercentage,
			Below:    true,
			Message: func(sev Severity, value, boundary float64) string {
				return fmt.Sprintf("Gross margin %.1f%% is below the %.1f%% %s boundary", value, boundary, sev)
			},
		},
	}
	return classifyThresholds("finance", rules, nil)
}

// ClassifyOperationsAlerts derives alerts for stock, dispatch and yield.
func ClassifyOperationsAlerts(summary OperationsSummary, th OperationsThresholds) []Alert {
	rules := []thresholdRule{
		{
			Type:     "stock_value_low",
			Value:    summary.Stock.TotalStockValue,
			Critical: th.StockValueCritical,
			Warning:  th.StockValueWarning,
			Below:    true,
			Message: func(sev Severity, value, boundary float64) string {
				return fmt.Sprintf("Stock value %s is below the %s %s boundary", formatGBP(value), formatGBP(boundary), sev)
			},
		},
	}
	// Dispatch completion is only meaningful when dispatches were due.
	if summary.Stock.DispatchTotal > 0 {
		rules = append(rules, thresholdRule{
			Type:     "dispatch_incomplete",
			Value:    summary.Stock.DispatchCompletionPercentage,
			Critical: th.DispatchCriticalPercentage,
			Warning:  th.DispatchWarningPercentage,
			Below:    true,
			Message: func(sev Severity, value, boundary float64) string {
				return fmt.Sprintf("Dispatch completion %.1f%% is below the %.1f%% %s boundary", value, boundary, sev)
			},
		})
	}
	// Same for yield: an empty production window is not a 0% yield.
	if summary.Yield.BatchCount > 0 {
		rules = append(rules,
			thresholdRule{
				Type:     "low_yield",
				Value:    summary.Yield.AverageYieldPercentage,
				Critical: th.YieldCriticalPercentage,
				Warning:  th.YieldWarningPercentage,
				Below:    true,
				Message: func(sev Severity, value, boundary float64) string {
					return fmt.Sprintf("Average yield %.1f%% is below the %.1f%% %s boundary", value, boundary, sev)
				},
			},
			thresholdRule{
				Type:     "high_waste",
				Value:    summary.Yield.WastePercentage,
				Critical: th.WasteCriticalPercentage,
				Warning:  th.WasteWarningPercentage,
				Below:    false,
				Message: func(sev Severity, value, boundary float64) string {
					return fmt.Sprintf("Waste %.1f%% is above the %.1f%% %s boundary", value, boundary, sev)
				},
			},
		)
	}
	counts := []countRule{
		{
			Type:  "reorder_needed",
			Count: summary.Stock.BelowReorderCount,
			Message: func(count int) string {
				return fmt.Sprintf("%d stock items are below their reorder level", count)
			},
		},
	}
	return classifyThresholds("operations", rules, counts)
}

// ClassifyMarketingAlerts derives alerts for campaign performance.
// Nothing fires when no campaigns went out in the window.
func ClassifyMarketingAlerts(summary MarketingSummary, th MarketingThresholds) []Alert {
	if summary.CampaignCount == 0 {
		return nil
	}
	rules := []thresholdRule{
		{
			Type:     "low_open_rate",
			Value:    summary.AverageOpenRate,
			Critical: th.OpenRateCriticalPercentage,
			Warning:  th.OpenRateWarningPercentage,
			Below:    true,
			Message: func(sev Severity, value, boundary float64) string {
				return fmt.Sprintf("Average open rate %.1f%% is below the %.1f%% %s boundary", value, boundary, sev)
			},
		},
		{
			Type:     "low_click_rate",
			Value:    summary.AverageClickRate,
			Critical: th.ClickRateCriticalPercentage,
			Warning:  th.ClickRateWarningPercentage,
			Below:    true,
			Message: func(sev Severity, value, boundary float64) string {
				return fmt.Sprintf("Average click rate %.1f%% is below the %.1f%% %s boundary", value, boundary, sev)
			},
		},
	}
	return classifyThresholds("marketing", rules, nil)
}
