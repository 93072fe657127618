package main

import "sort"

const topProductCount = 10

// AggregateFinance folds order records for the current window into a
// finance summary, compares it against the previous window, and derives
// threshold alerts. Both record sets come pre-normalized from the
// commerce adapter.
func AggregateFinance(current, previous []OrderRecord, th FinanceThresholds) FinanceReport {
	summary := summarizeOrders(current)
	prevSummary := summarizeOrders(previous)

	comparison := FinanceComparison{
		PreviousRevenue:         prevSummary.TotalRevenue,
		RevenueChange:           summary.TotalRevenue - prevSummary.TotalRevenue,
		RevenueChangePercentage: changePercent(summary.TotalRevenue, prevSummary.TotalRevenue),
		RevenueTrend:            ClassifyTrend(summary.TotalRevenue, prevSummary.TotalRevenue),
		PreviousOrderCount:      prevSummary.OrderCount,
		OrderCountTrend:         ClassifyTrend(float64(summary.OrderCount), float64(prevSummary.OrderCount)),
	}

	alerts := ClassifyFinanceAlerts(summary, th)
	if comparison.RevenueTrend == TrendDown {
		alerts = append(alerts, Alert{
			Domain:   "finance",
			Type:     "revenue_down",
			Message:  "Revenue is down " + formatPercent(-comparison.RevenueChangePercentage) + " on the previous period",
			Severity: SeverityInfo,
		})
	}

	return FinanceReport{
		Summary:    summary,
		Comparison: comparison,
		Alerts:     alerts,
	}
}

func summarizeOrders(orders []OrderRecord) FinanceSummary {
	var summary FinanceSummary
	perProduct := make(map[string]*ProductSales)
	var productOrder []string

	for _, order := range orders {
		summary.TotalRevenue += order.Total
		summary.TotalCost += order.Cost
		summary.OrderCount++
		for _, line := range order.Items {
			if line.Product == "" {
				continue
			}
			p, ok := perProduct[line.Product]
			if !ok {
				p = &ProductSales{Product: line.Product}
				perProduct[line.Product] = p
				productOrder = append(productOrder, line.Product)
			}
			p.Quantity += line.Quantity
			p.Revenue += line.Price * float64(line.Quantity)
		}
	}

	summary.GrossProfit = summary.TotalRevenue - summary.TotalCost
	summary.MarginPercentage = percentOf(summary.GrossProfit, summary.TotalRevenue)
	if summary.OrderCount > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.OrderCount)
	}
	summary.TopProducts = topProducts(perProduct, productOrder, topProductCount)
	return summary
}

// topProducts ranks by revenue descending with a stable sort, so ties
// keep first-seen record order, then truncates to n.
func topProducts(perProduct map[string]*ProductSales, order []string, n int) []ProductSales {
	ranked := make([]ProductSales, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *perProduct[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
