package main

import "time"

// Severity of an alert. Ordering for display is fixed
// (critical > warning > info), not ordinal in the value.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Trend is the directional classification of a metric against its
// prior-period value.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Priority of an action item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Alert struct {
	Domain   string   `json:"domain"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type ActionItem struct {
	Priority    Priority `json:"priority"`
	Department  string   `json:"department"`
	Description string   `json:"description"`
}

// --- Raw records, normalized by the source adapters ---

type OrderRecord struct {
	ID        string
	CreatedAt time.Time
	Total     float64
	Cost      float64
	Items     []OrderLine
}

type OrderLine struct {
	Product  string
	Quantity int
	Price    float64
}

type StockRecord struct {
	SKU          string
	Product      string
	Quantity     float64
	UnitCost     float64
	ReorderLevel float64
}

type DispatchRecord struct {
	OrderRef    string
	Status      string // "dispatched" or "pending"
	ScheduledAt time.Time
}

type PurchaseOrderRecord struct {
	Reference string
	Supplier  string
	Status    string // "open", "received", "cancelled"
	DueAt     time.Time
}

type YieldRecord struct {
	Batch        string
	ProductType  string
	InputWeight  float64
	OutputWeight float64
	WasteWeight  float64
	ProducedAt   time.Time
}

type CampaignRecord struct {
	ID      string
	Name    string
	SentAt  time.Time
	Sent    int
	Opens   int
	Clicks  int
	Revenue float64
}

// --- Summaries (immutable once computed) ---

type ProductSales struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type FinanceSummary struct {
	TotalRevenue      float64        `json:"total_revenue"`
	TotalCost         float64        `json:"total_cost"`
	GrossProfit       float64        `json:"gross_profit"`
	MarginPercentage  float64        `json:"margin_percentage"`
	OrderCount        int            `json:"order_count"`
	AverageOrderValue float64        `json:"average_order_value"`
	TopProducts       []ProductSales `json:"top_products"`
}

type FinanceComparison struct {
	PreviousRevenue         float64 `json:"previous_revenue"`
	RevenueChange           float64 `json:"revenue_change"`
	RevenueChangePercentage float64 `json:"revenue_change_percentage"`
	RevenueTrend            Trend   `json:"revenue_trend"`
	PreviousOrderCount      int     `json:"previous_order_count"`
	OrderCountTrend         Trend   `json:"order_count_trend"`
}

type FinanceReport struct {
	Summary    FinanceSummary    `json:"summary"`
	Comparison FinanceComparison `json:"comparison"`
	Alerts     []Alert           `json:"alerts"`
}

type StockSummary struct {
	TotalStockValue              float64  `json:"total_stock_value"`
	ItemsBelowReorder            []string `json:"items_below_reorder"`
	BelowReorderCount            int      `json:"below_reorder_count"`
	OpenPurchaseOrders           []string `json:"open_purchase_orders"`
	DispatchTotal                int      `json:"dispatch_total"`
	DispatchCompleted            int      `json:"dispatch_completed"`
	DispatchCompletionPercentage float64  `json:"dispatch_completion_percentage"`
}

type YieldRollup struct {
	ProductType     string  `json:"product_type"`
	InputWeight     float64 `json:"input_weight"`
	OutputWeight    float64 `json:"output_weight"`
	WasteWeight     float64 `json:"waste_weight"`
	YieldPercentage float64 `json:"yield_percentage"`
}

type YieldSummary struct {
	BatchCount             int           `json:"batch_count"`
	TotalInputWeight       float64       `json:"total_input_weight"`
	TotalOutputWeight      float64       `json:"total_output_weight"`
	TotalWasteWeight       float64       `json:"total_waste_weight"`
	AverageYieldPercentage float64       `json:"average_yield_percentage"`
	WastePercentage        float64       `json:"waste_percentage"`
	ByProductType          []YieldRollup `json:"by_product_type"`
}

type OperationsSummary struct {
	Stock StockSummary `json:"stock"`
	Yield YieldSummary `json:"yield"`
}

type OperationsComparison struct {
	PreviousYieldPercentage float64 `json:"previous_yield_percentage"`
	YieldTrend              Trend   `json:"yield_trend"`
	PreviousWastePercentage float64 `json:"previous_waste_percentage"`
	WasteTrend              Trend   `json:"waste_trend"`
}

type OperationsReport struct {
	Summary    OperationsSummary    `json:"summary"`
	Comparison OperationsComparison `json:"comparison"`
	Alerts     []Alert              `json:"alerts"`
}

type CampaignSales struct {
	Name    string  `json:"name"`
	Sent    int     `json:"sent"`
	Revenue float64 `json:"revenue"`
}

type MarketingSummary struct {
	CampaignCount     int             `json:"campaign_count"`
	TotalSent         int             `json:"total_sent"`
	AverageOpenRate   float64         `json:"average_open_rate"`
	AverageClickRate  float64         `json:"average_click_rate"`
	AttributedRevenue float64         `json:"attributed_revenue"`
	TopCampaigns      []CampaignSales `json:"top_campaigns"`
}

type MarketingComparison struct {
	PreviousOpenRate        float64 `json:"previous_open_rate"`
	OpenRateTrend           Trend   `json:"open_rate_trend"`
	PreviousRevenue         float64 `json:"previous_revenue"`
	RevenueChangePercentage float64 `json:"revenue_change_percentage"`
	RevenueTrend            Trend   `json:"revenue_trend"`
}

type MarketingReport struct {
	Summary    MarketingSummary     `json:"summary"`
	Comparison *MarketingComparison `json:"comparison,omitempty"`
	Alerts     []Alert              `json:"alerts"`
}

// Digest is the terminal entity: constructed fresh on every run,
// immutable after construction.
type Digest struct {
	ReportDate     time.Time        `json:"report_date"`
	Type           string           `json:"type"` // "daily" or "weekly"
	GeneratedAt    time.Time        `json:"generated_at"`
	Finance        FinanceReport    `json:"finance"`
	Operations     OperationsReport `json:"operations"`
	Marketing      *MarketingReport `json:"marketing,omitempty"`
	CriticalAlerts []Alert          `json:"critical_alerts"`
	WarningAlerts  []Alert          `json:"warning_alerts"`
	Actions        []ActionItem     `json:"actions"`
	Commentary     string           `json:"commentary,omitempty"`
}

// --- Report windows ---

// DayWindow returns midnight-to-midnight bounds for the given date.
func DayWindow(date time.Time) (time.Time, time.Time) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return from, from.AddDate(0, 0, 1)
}

// TrailingWindow returns a window of the given number of days ending at
// midnight after the given date (the date itself is included).
func TrailingWindow(end time.Time, days int) (time.Time, time.Time) {
	_, to := DayWindow(end)
	return to.AddDate(0, 0, -days), to
}

// PreviousWindow returns the window of the same length immediately
// before the given one.
func PreviousWindow(from, to time.Time) (time.Time, time.Time) {
	length := to.Sub(from)
	return from.Add(-length), from
}
