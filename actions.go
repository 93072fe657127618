package main

import (
	"fmt"
	"strings"
)

const (
	actionMarginFloorPercentage   = 15.0
	actionYieldFloorPercentage    = 80.0
	actionOpenRateFloorPercentage = 15.0
)

// SynthesizeActions derives the prioritized action list from the domain
// summaries. Rules run in a fixed order and every applicable rule fires,
// at most once each; output keeps rule order, not priority order.
// marketing is nil on daily runs, which simply skips its rule.
func SynthesizeActions(finance FinanceSummary, operations OperationsSummary, marketing *MarketingSummary) []ActionItem {
	var actions []ActionItem

	if operations.Stock.BelowReorderCount > 0 {
		names := operations.Stock.ItemsBelowReorder
		if len(names) > 3 {
			names = names[:3]
		}
		actions = append(actions, ActionItem{
			Priority:    PriorityHigh,
			Department:  "operations",
			Description: fmt.Sprintf("Reorder stock for %s (%d items below reorder level)", strings.Join(names, ", "), operations.Stock.BelowReorderCount),
		})
	}

	if len(operations.Stock.OpenPurchaseOrders) > 0 {
		refs := operations.Stock.OpenPurchaseOrders
		if len(refs) > 2 {
			refs = refs[:2]
		}
		actions = append(actions, ActionItem{
			Priority:    PriorityMedium,
			Department:  "finance",
			Description: fmt.Sprintf("Chase open purchase orders %s (%d open)", strings.Join(refs, ", "), len(operations.Stock.OpenPurchaseOrders)),
		})
	}

	if finance.MarginPercentage < actionMarginFloorPercentage {
		actions = append(actions, ActionItem{
			Priority:    PriorityHigh,
			Department:  "finance",
			Description: fmt.Sprintf("Review pricing and costs: gross margin is %.1f%%", finance.MarginPercentage),
		})
	}

	if operations.Yield.AverageYieldPercentage < actionYieldFloorPercentage {
		actions = append(actions, ActionItem{
			Priority:    PriorityHigh,
			Department:  "operations",
			Description: fmt.Sprintf("Investigate production losses: average yield is %.1f%%", operations.Yield.AverageYieldPercentage),
		})
	}

	if marketing != nil && marketing.AverageOpenRate < actionOpenRateFloorPercentage {
		actions = append(actions, ActionItem{
			Priority:    PriorityMedium,
			Department:  "marketing",
			Description: fmt.Sprintf("Review campaign subject lines: average open rate is %.1f%%", marketing.AverageOpenRate),
		})
	}

	return actions
}

// sortActionsByPriority returns a copy ordered high before medium before
// low, preserving rule order within a priority. Renderers that want
// priority order call this; the synthesizer itself keeps rule order.
func sortActionsByPriority(actions []ActionItem) []ActionItem {
	rank := map[Priority]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}
	sorted := make([]ActionItem, len(actions))
	copy(sorted, actions)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && rank[sorted[j].Priority] < rank[sorted[j-1].Priority]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
