package main

import (
	"strings"
	"testing"
)

func healthyFinance() FinanceSummary {
	return FinanceSummary{TotalRevenue: 1000, MarginPercentage: 40}
}

func healthyOperations() OperationsSummary {
	return OperationsSummary{
		Stock: StockSummary{TotalStockValue: 600000},
		Yield: YieldSummary{BatchCount: 3, AverageYieldPercentage: 90, WastePercentage: 5},
	}
}

func TestSynthesizeActionsHealthyInputs(t *testing.T) {
	actions := SynthesizeActions(healthyFinance(), healthyOperations(), nil)
	if len(actions) != 0 {
		t.Errorf("healthy inputs produced actions: %v", actions)
	}
}

func TestSynthesizeActionsAllRulesInOrder(t *testing.T) {
	finance := FinanceSummary{TotalRevenue: 1000, MarginPercentage: 12}
	operations := OperationsSummary{
		Stock: StockSummary{
			ItemsBelowReorder:  []string{"Flour", "Butter", "Yeast", "Sugar", "Salt"},
			BelowReorderCount:  5,
			OpenPurchaseOrders: []string{"PO-1", "PO-2", "PO-3"},
		},
		Yield: YieldSummary{BatchCount: 3, AverageYieldPercentage: 72},
	}
	marketing := &MarketingSummary{CampaignCount: 2, AverageOpenRate: 9}

	actions := SynthesizeActions(finance, operations, marketing)
	if len(actions) != 5 {
		t.Fatalf("got %d actions, want all 5 rules to fire: %v", len(actions), actions)
	}

	wantDepartments := []string{"operations", "finance", "finance", "operations", "marketing"}
	wantPriorities := []Priority{PriorityHigh, PriorityMedium, PriorityHigh, PriorityHigh, PriorityMedium}
	for i := range actions {
		if actions[i].Department != wantDepartments[i] || actions[i].Priority != wantPriorities[i] {
			t.Errorf("rule %d = %s/%s, want %s/%s", i+1,
				actions[i].Priority, actions[i].Department, wantPriorities[i], wantDepartments[i])
		}
	}

	reorder := actions[0].Description
	if !strings.Contains(reorder, "Flour, Butter, Yeast") || strings.Contains(reorder, "Sugar") {
		t.Errorf("reorder action names more than 3 products: %q", reorder)
	}
	if !strings.Contains(reorder, "5 items") {
		t.Errorf("reorder action lost the full count: %q", reorder)
	}

	chase := actions[1].Description
	if !strings.Contains(chase, "PO-1, PO-2") || strings.Contains(chase, "PO-3,") {
		t.Errorf("purchase-order action names more than 2 refs: %q", chase)
	}
	if !strings.Contains(chase, "3 open") {
		t.Errorf("purchase-order action lost the full count: %q", chase)
	}
}

func TestSynthesizeActionsSkipsMarketingWhenNil(t *testing.T) {
	actions := SynthesizeActions(healthyFinance(), healthyOperations(), nil)
	for _, a := range actions {
		if a.Department == "marketing" {
			t.Errorf("marketing action fired without a marketing summary: %+v", a)
		}
	}
}

func TestSynthesizeActionsMarginBoundary(t *testing.T) {
	finance := healthyFinance()
	finance.MarginPercentage = 15
	if actions := SynthesizeActions(finance, healthyOperations(), nil); len(actions) != 0 {
		t.Errorf("margin exactly 15%% fired the pricing rule: %v", actions)
	}
	finance.MarginPercentage = 14.9
	actions := SynthesizeActions(finance, healthyOperations(), nil)
	if len(actions) != 1 || actions[0].Department != "finance" || actions[0].Priority != PriorityHigh {
		t.Errorf("margin 14.9%% = %v, want one high finance action", actions)
	}
}

func TestSortActionsByPriority(t *testing.T) {
	actions := []ActionItem{
		{Priority: PriorityMedium, Description: "m1"},
		{Priority: PriorityHigh, Description: "h1"},
		{Priority: PriorityLow, Description: "l1"},
		{Priority: PriorityHigh, Description: "h2"},
		{Priority: PriorityMedium, Description: "m2"},
	}
	sorted := sortActionsByPriority(actions)

	want := []string{"h1", "h2", "m1", "m2", "l1"}
	for i, desc := range want {
		if sorted[i].Description != desc {
			t.Fatalf("sorted order = %v, want %v", sorted, want)
		}
	}
	// The input keeps rule order.
	if actions[0].Description != "m1" {
		t.Errorf("sortActionsByPriority mutated its input: %v", actions)
	}
}
