package main

import "sort"

// AggregateOperations folds the warehouse and production record sets
// into one operations summary. The yield comparison covers the current
// production window against the window immediately before it.
func AggregateOperations(
	stock []StockRecord,
	dispatches []DispatchRecord,
	purchaseOrders []PurchaseOrderRecord,
	yieldCurrent, yieldPrevious []YieldRecord,
	th OperationsThresholds,
) OperationsReport {
	summary := OperationsSummary{
		Stock: summarizeStock(stock, dispatches, purchaseOrders),
		Yield: summarizeYield(yieldCurrent),
	}
	prevYield := summarizeYield(yieldPrevious)

	comparison := OperationsComparison{
		PreviousYieldPercentage: prevYield.AverageYieldPercentage,
		YieldTrend:              ClassifyTrend(summary.Yield.AverageYieldPercentage, prevYield.AverageYieldPercentage),
		PreviousWastePercentage: prevYield.WastePercentage,
		WasteTrend:              ClassifyTrend(summary.Yield.WastePercentage, prevYield.WastePercentage),
	}

	alerts := ClassifyOperationsAlerts(summary, th)
	if summary.Stock.DispatchTotal > 0 && summary.Stock.DispatchCompleted == summary.Stock.DispatchTotal {
		alerts = append(alerts, Alert{
			Domain:   "operations",
			Type:     "dispatch_complete",
			Message:  "All scheduled dispatches for the period went out",
			Severity: SeverityInfo,
		})
	}

	return OperationsReport{
		Summary:    summary,
		Comparison: comparison,
		Alerts:     alerts,
	}
}

func summarizeStock(stock []StockRecord, dispatches []DispatchRecord, purchaseOrders []PurchaseOrderRecord) StockSummary {
	var summary StockSummary
	for _, item := range stock {
		summary.TotalStockValue += item.Quantity * item.UnitCost
		if item.ReorderLevel > 0 && item.Quantity < item.ReorderLevel {
			summary.ItemsBelowReorder = append(summary.ItemsBelowReorder, item.Product)
		}
	}
	summary.BelowReorderCount = len(summary.ItemsBelowReorder)

	for _, d := range dispatches {
		summary.DispatchTotal++
		if d.Status == "dispatched" {
			summary.DispatchCompleted++
		}
	}
	summary.DispatchCompletionPercentage = percentOf(float64(summary.DispatchCompleted), float64(summary.DispatchTotal))

	for _, po := range purchaseOrders {
		if po.Status == "open" {
			summary.OpenPurchaseOrders = append(summary.OpenPurchaseOrders, po.Reference)
		}
	}
	return summary
}

// summarizeYield folds the batch records into running weight totals per
// product type. Ratios are derived only after the fold completes; a
// partial-total division would misreport yield mid-sequence.
func summarizeYield(records []YieldRecord) YieldSummary {
	var summary YieldSummary
	perType := make(map[string]*YieldRollup)

	for _, r := range records {
		summary.BatchCount++
		summary.TotalInputWeight += r.InputWeight
		summary.TotalOutputWeight += r.OutputWeight
		summary.TotalWasteWeight += r.WasteWeight

		key := r.ProductType
		if key == "" {
			key = "unspecified"
		}
		rollup, ok := perType[key]
		if !ok {
			rollup = &YieldRollup{ProductType: key}
			perType[key] = rollup
		}
		rollup.InputWeight += r.InputWeight
		rollup.OutputWeight += r.OutputWeight
		rollup.WasteWeight += r.WasteWeight
	}

	summary.AverageYieldPercentage = percentOf(summary.TotalOutputWeight, summary.TotalInputWeight)
	summary.WastePercentage = percentOf(summary.TotalWasteWeight, summary.TotalInputWeight)

	types := make([]string, 0, len(perType))
	for t := range perType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		rollup := perType[t]
		rollup.YieldPercentage = percentOf(rollup.OutputWeight, rollup.InputWeight)
		summary.ByProductType = append(summary.ByProductType, *rollup)
	}
	return summary
}
