package main

// trendBandPercent is the sensitivity band for trend classification.
// Changes within ±5% (exclusive) read as stable.
const trendBandPercent = 5.0

// ClassifyTrend compares a current value against its prior-period value.
// A zero baseline always reads as stable: a percentage swing from zero
// is meaningless and would otherwise dominate the report.
func ClassifyTrend(current, previous float64) Trend {
	if previous == 0 {
		return TrendStable
	}
	pct := (current - previous) / previous * 100
	switch {
	case pct > trendBandPercent:
		return TrendUp
	case pct < -trendBandPercent:
		return TrendDown
	default:
		return TrendStable
	}
}
