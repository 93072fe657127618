package main

import (
	"fmt"
	"sync"
	"time"
)

const yieldWindowDays = 7

// SourceSet carries the fetch functions for every upstream system.
// Production wiring fills these from the HTTP/CSV clients; tests
// substitute fakes. The aggregation core never sees which variant
// supplied the records.
type SourceSet struct {
	Orders         func(from, to time.Time) ([]OrderRecord, error)
	Stock          func() ([]StockRecord, error)
	Dispatches     func(from, to time.Time) ([]DispatchRecord, error)
	PurchaseOrders func() ([]PurchaseOrderRecord, error)
	Yield          func(from, to time.Time) ([]YieldRecord, error)
	Campaigns      func(from, to time.Time) ([]CampaignRecord, error)
}

// domainRecords is the joined result of the concurrent fetch phase.
type domainRecords struct {
	ordersCurrent     []OrderRecord
	ordersPrevious    []OrderRecord
	stock             []StockRecord
	dispatches        []DispatchRecord
	purchaseOrders    []PurchaseOrderRecord
	yieldCurrent      []YieldRecord
	yieldPrevious     []YieldRecord
	campaignsCurrent  []CampaignRecord
	campaignsPrevious []CampaignRecord
}

// GenerateDailyDigest builds the daily digest for the given date:
// finance for that day against the day before, operations for the day
// plus a trailing 7-day production window, and a lightweight marketing
// snapshot. The marketing summary is not handed to the synthesizer on
// daily runs.
func GenerateDailyDigest(src SourceSet, th Thresholds, date time.Time) (*Digest, error) {
	dayFrom, dayTo := DayWindow(date)
	prevFrom, prevTo := PreviousWindow(dayFrom, dayTo)

	records, err := fetchAll(src, fetchPlan{
		ordersFrom: dayFrom, ordersTo: dayTo,
		prevOrdersFrom: prevFrom, prevOrdersTo: prevTo,
		dispatchFrom: dayFrom, dispatchTo: dayTo,
		campaignsFrom: dayFrom, campaignsTo: dayTo,
		yieldEnd: date,
	})
	if err != nil {
		return nil, err
	}
	return assembleDigest("daily", date, records, th, false), nil
}

// GenerateWeeklyDigest builds the weekly digest for the 7 days ending
// on the given date, with finance and marketing compared against the 7
// days before that. The marketing summary participates in action
// synthesis on weekly runs.
func GenerateWeeklyDigest(src SourceSet, th Thresholds, endDate time.Time) (*Digest, error) {
	weekFrom, weekTo := TrailingWindow(endDate, 7)
	prevFrom, prevTo := PreviousWindow(weekFrom, weekTo)

	records, err := fetchAll(src, fetchPlan{
		ordersFrom: weekFrom, ordersTo: weekTo,
		prevOrdersFrom: prevFrom, prevOrdersTo: prevTo,
		dispatchFrom: weekFrom, dispatchTo: weekTo,
		campaignsFrom: weekFrom, campaignsTo: weekTo,
		prevCampaignsFrom: prevFrom, prevCampaignsTo: prevTo,
		fetchPrevCampaigns: true,
		yieldEnd:           endDate,
	})
	if err != nil {
		return nil, err
	}
	return assembleDigest("weekly", endDate, records, th, true), nil
}

type fetchPlan struct {
	ordersFrom, ordersTo               time.Time
	prevOrdersFrom, prevOrdersTo       time.Time
	dispatchFrom, dispatchTo           time.Time
	campaignsFrom, campaignsTo         time.Time
	prevCampaignsFrom, prevCampaignsTo time.Time
	fetchPrevCampaigns                 bool
	yieldEnd                           time.Time
}

// fetchAll runs every source fetch concurrently and joins on an
// all-succeed barrier. Any failure fails the whole digest; a digest is
// either complete or not produced. Errors are surfaced in a fixed
// domain order so the reported failure is deterministic.
func fetchAll(src SourceSet, plan fetchPlan) (domainRecords, error) {
	var records domainRecords
	var financeErr, operationsErr, marketingErr error

	yieldFrom, yieldTo := TrailingWindow(plan.yieldEnd, yieldWindowDays)
	prevYieldFrom, prevYieldTo := PreviousWindow(yieldFrom, yieldTo)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		current, err := src.Orders(plan.ordersFrom, plan.ordersTo)
		if err != nil {
			financeErr = fmt.Errorf("fetching orders: %w", err)
			return
		}
		previous, err := src.Orders(plan.prevOrdersFrom, plan.prevOrdersTo)
		if err != nil {
			financeErr = fmt.Errorf("fetching previous-period orders: %w", err)
			return
		}
		records.ordersCurrent = current
		records.ordersPrevious = previous
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		var innerWg sync.WaitGroup
		var stockErr, yieldErr error

		innerWg.Add(1)
		go func() {
			defer innerWg.Done()
			stock, err := src.Stock()
			if err != nil {
				stockErr = fmt.Errorf("fetching stock levels: %w", err)
				return
			}
			dispatches, err := src.Dispatches(plan.dispatchFrom, plan.dispatchTo)
			if err != nil {
				stockErr = fmt.Errorf("fetching dispatches: %w", err)
				return
			}
			purchaseOrders, err := src.PurchaseOrders()
			if err != nil {
				stockErr = fmt.Errorf("fetching purchase orders: %w", err)
				return
			}
			records.stock = stock
			records.dispatches = dispatches
			records.purchaseOrders = purchaseOrders
		}()

		innerWg.Add(1)
		go func() {
			defer innerWg.Done()
			current, err := src.Yield(yieldFrom, yieldTo)
			if err != nil {
				yieldErr = fmt.Errorf("fetching yield records: %w", err)
				return
			}
			previous, err := src.Yield(prevYieldFrom, prevYieldTo)
			if err != nil {
				yieldErr = fmt.Errorf("fetching previous-period yield records: %w", err)
				return
			}
			records.yieldCurrent = current
			records.yieldPrevious = previous
		}()

		innerWg.Wait()
		if stockErr != nil {
			operationsErr = stockErr
		} else if yieldErr != nil {
			operationsErr = yieldErr
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		current, err := src.Campaigns(plan.campaignsFrom, plan.campaignsTo)
		if err != nil {
			marketingErr = fmt.Errorf("fetching campaigns: %w", err)
			return
		}
		records.campaignsCurrent = current
		if plan.fetchPrevCampaigns {
			previous, err := src.Campaigns(plan.prevCampaignsFrom, plan.prevCampaignsTo)
			if err != nil {
				marketingErr = fmt.Errorf("fetching previous-period campaigns: %w", err)
				return
			}
			records.campaignsPrevious = previous
		}
	}()

	wg.Wait()

	if financeErr != nil {
		return domainRecords{}, fmt.Errorf("finance report unavailable: %w", financeErr)
	}
	if operationsErr != nil {
		return domainRecords{}, fmt.Errorf("operations report unavailable: %w", operationsErr)
	}
	if marketingErr != nil {
		return domainRecords{}, fmt.Errorf("marketing report unavailable: %w", marketingErr)
	}
	return records, nil
}

// assembleDigest runs the aggregators over the fetched records, merges
// and partitions alerts, and synthesizes the action list. No I/O
// happens past this point.
func assembleDigest(reportType string, date time.Time, records domainRecords, th Thresholds, marketingActions bool) *Digest {
	finance := AggregateFinance(records.ordersCurrent, records.ordersPrevious, th.Finance)
	operations := AggregateOperations(records.stock, records.dispatches, records.purchaseOrders,
		records.yieldCurrent, records.yieldPrevious, th.Operations)

	// Weekly runs always carry a prior-period comparison, even when the
	// prior week had no campaigns. Daily snapshots never do.
	var prevCampaigns []CampaignRecord
	if marketingActions {
		prevCampaigns = records.campaignsPrevious
		if prevCampaigns == nil {
			prevCampaigns = []CampaignRecord{}
		}
	}
	marketing := AggregateMarketing(records.campaignsCurrent, prevCampaigns, th.Marketing)

	var marketingSummary *MarketingSummary
	if marketingActions {
		marketingSummary = &marketing.Summary
	}

	digest := &Digest{
		ReportDate:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Type:        reportType,
		GeneratedAt: time.Now(),
		Finance:     finance,
		Operations:  operations,
		Marketing:   &marketing,
		Actions:     SynthesizeActions(finance.Summary, operations.Summary, marketingSummary),
	}

	merged := append(append(append([]Alert{}, finance.Alerts...), operations.Alerts...), marketing.Alerts...)
	for _, alert := range merged {
		// Info alerts stay inside the domain payloads only.
		switch alert.Severity {
		case SeverityCritical:
			digest.CriticalAlerts = append(digest.CriticalAlerts, alert)
		case SeverityWarning:
			digest.WarningAlerts = append(digest.WarningAlerts, alert)
		}
	}
	return digest
}
