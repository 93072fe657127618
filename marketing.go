package main

import "sort"

const topCampaignCount = 5

// AggregateMarketing folds campaign stats into a marketing summary.
// previous may be nil: the daily flow takes a single-day snapshot with
// no prior-period comparison, the weekly flow supplies the prior week.
func AggregateMarketing(current, previous []CampaignRecord, th MarketingThresholds) MarketingReport {
	summary := summarizeCampaigns(current)

	var comparison *MarketingComparison
	if previous != nil {
		prevSummary := summarizeCampaigns(previous)
		comparison = &MarketingComparison{
			PreviousOpenRate:        prevSummary.AverageOpenRate,
			OpenRateTrend:           ClassifyTrend(summary.AverageOpenRate, prevSummary.AverageOpenRate),
			PreviousRevenue:         prevSummary.AttributedRevenue,
			RevenueChangePercentage: changePercent(summary.AttributedRevenue, prevSummary.AttributedRevenue),
			RevenueTrend:            ClassifyTrend(summary.AttributedRevenue, prevSummary.AttributedRevenue),
		}
	}

	alerts := ClassifyMarketingAlerts(summary, th)
	if summary.CampaignCount == 0 {
		alerts = append(alerts, Alert{
			Domain:   "marketing",
			Type:     "no_campaigns",
			Message:  "No campaigns were sent in this period",
			Severity: SeverityInfo,
		})
	}

	return MarketingReport{
		Summary:    summary,
		Comparison: comparison,
		Alerts:     alerts,
	}
}

func summarizeCampaigns(campaigns []CampaignRecord) MarketingSummary {
	var summary MarketingSummary
	var totalOpens, totalClicks int

	for _, c := range campaigns {
		summary.CampaignCount++
		summary.TotalSent += c.Sent
		totalOpens += c.Opens
		totalClicks += c.Clicks
		summary.AttributedRevenue += c.Revenue
	}

	summary.AverageOpenRate = percentOf(float64(totalOpens), float64(summary.TotalSent))
	summary.AverageClickRate = percentOf(float64(totalClicks), float64(summary.TotalSent))
	summary.TopCampaigns = topCampaigns(campaigns, topCampaignCount)
	return summary
}

// topCampaigns ranks by attributed revenue descending with a stable
// sort (ties keep send order) and truncates to n.
func topCampaigns(campaigns []CampaignRecord, n int) []CampaignSales {
	ranked := make([]CampaignSales, 0, len(campaigns))
	for _, c := range campaigns {
		ranked = append(ranked, CampaignSales{
			Name:    c.Name,
			Sent:    c.Sent,
			Revenue: c.Revenue,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
