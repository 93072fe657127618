package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds is the per-domain alert boundary document. It is loaded
// once per run and passed into the aggregators read-only; nothing in
// the pipeline mutates it.
type Thresholds struct {
	Finance    FinanceThresholds    `yaml:"finance"`
	Operations OperationsThresholds `yaml:"operations"`
	Marketing  MarketingThresholds  `yaml:"marketing"`
}

type FinanceThresholds struct {
	MarginCriticalPercentage float64 `yaml:"margin_critical_percentage"`
	MarginWarningPercentage  float64 `yaml:"margin_warning_percentage"`
}

type OperationsThresholds struct {
	StockValueCritical         float64 `yaml:"stock_value_critical"`
	StockValueWarning          float64 `yaml:"stock_value_warning"`
	YieldCriticalPercentage    float64 `yaml:"yield_critical_percentage"`
	YieldWarningPercentage     float64 `yaml:"yield_warning_percentage"`
	WasteCriticalPercentage    float64 `yaml:"waste_critical_percentage"`
	WasteWarningPercentage     float64 `yaml:"waste_warning_percentage"`
	DispatchCriticalPercentage float64 `yaml:"dispatch_critical_percentage"`
	DispatchWarningPercentage  float64 `yaml:"dispatch_warning_percentage"`
}

type MarketingThresholds struct {
	OpenRateCriticalPercentage  float64 `yaml:"open_rate_critical_percentage"`
	OpenRateWarningPercentage   float64 `yaml:"open_rate_warning_percentage"`
	ClickRateCriticalPercentage float64 `yaml:"click_rate_critical_percentage"`
	ClickRateWarningPercentage  float64 `yaml:"click_rate_warning_percentage"`
}

type Config struct {
	CommerceURL    string `yaml:"commerce_url"`
	CommerceAPIKey string `yaml:"commerce_api_key"`

	WarehouseURL    string `yaml:"warehouse_url"`
	WarehouseAPIKey string `yaml:"warehouse_api_key"`

	ProductionMode   string `yaml:"production_mode"` // "api" or "csv"
	ProductionURL    string `yaml:"production_url"`
	ProductionAPIKey string `yaml:"production_api_key"`
	ProductionCSVDir string `yaml:"production_csv_dir"`

	MailerURL    string `yaml:"mailer_url"`
	MailerAPIKey string `yaml:"mailer_api_key"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	ReportChannelID string `yaml:"report_channel_id"`

	AnthropicAPIKey  string `yaml:"anthropic_api_key"`
	CommentaryModel  string `yaml:"commentary_model"`
	CommentaryEnable bool   `yaml:"commentary_enabled"`

	DBPath          string `yaml:"db_path"`
	ReportOutputDir string `yaml:"report_output_dir"`
	CompanyName     string `yaml:"company_name"`

	DailySchedule  string `yaml:"daily_schedule"`
	WeeklySchedule string `yaml:"weekly_schedule"`
	Timezone       string `yaml:"timezone"`

	Thresholds Thresholds `yaml:"thresholds"`

	Location *time.Location `yaml:"-"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.CommerceURL, "COMMERCE_URL")
	envOverride(&cfg.CommerceAPIKey, "COMMERCE_API_KEY")
	envOverride(&cfg.WarehouseURL, "WAREHOUSE_URL")
	envOverride(&cfg.WarehouseAPIKey, "WAREHOUSE_API_KEY")
	envOverride(&cfg.ProductionMode, "PRODUCTION_MODE")
	envOverride(&cfg.ProductionURL, "PRODUCTION_URL")
	envOverride(&cfg.ProductionAPIKey, "PRODUCTION_API_KEY")
	envOverride(&cfg.ProductionCSVDir, "PRODUCTION_CSV_DIR")
	envOverride(&cfg.MailerURL, "MAILER_URL")
	envOverride(&cfg.MailerAPIKey, "MAILER_API_KEY")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.ReportChannelID, "REPORT_CHANNEL_ID")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.CommentaryModel, "COMMENTARY_MODEL")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ReportOutputDir, "REPORT_OUTPUT_DIR")
	envOverride(&cfg.CompanyName, "COMPANY_NAME")
	envOverride(&cfg.DailySchedule, "DAILY_SCHEDULE")
	envOverride(&cfg.WeeklySchedule, "WEEKLY_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")

	applyDefaults(&cfg)
	validateConfig(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.ProductionMode == "" {
		cfg.ProductionMode = "api"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./digestbot.db"
	}
	if cfg.ReportOutputDir == "" {
		cfg.ReportOutputDir = "./reports"
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = "My Company"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	th := &cfg.Thresholds
	defaultFloat(&th.Finance.MarginCriticalPercentage, 10)
	defaultFloat(&th.Finance.MarginWarningPercentage, 15)
	defaultFloat(&th.Operations.StockValueCritical, 500000)
	defaultFloat(&th.Operations.StockValueWarning, 550000)
	defaultFloat(&th.Operations.YieldCriticalPercentage, 75)
	defaultFloat(&th.Operations.YieldWarningPercentage, 80)
	defaultFloat(&th.Operations.WasteCriticalPercentage, 12)
	defaultFloat(&th.Operations.WasteWarningPercentage, 8)
	defaultFloat(&th.Operations.DispatchCriticalPercentage, 60)
	defaultFloat(&th.Operations.DispatchWarningPercentage, 80)
	defaultFloat(&th.Marketing.OpenRateCriticalPercentage, 10)
	defaultFloat(&th.Marketing.OpenRateWarningPercentage, 15)
	defaultFloat(&th.Marketing.ClickRateCriticalPercentage, 1)
	defaultFloat(&th.Marketing.ClickRateWarningPercentage, 2)
}

func validateConfig(cfg *Config) {
	required := map[string]string{
		"commerce_url":  cfg.CommerceURL,
		"warehouse_url": cfg.WarehouseURL,
		"mailer_url":    cfg.MailerURL,
	}
	for name, val := range required {
		if val == "" {
			log.Fatalf("Required config '%s' is not set (via config.yaml or env var)", name)
		}
	}

	switch cfg.ProductionMode {
	case "api":
		if cfg.ProductionURL == "" {
			log.Fatalf("production_url is required when production_mode=api")
		}
	case "csv":
		if cfg.ProductionCSVDir == "" {
			log.Fatalf("production_csv_dir is required when production_mode=csv")
		}
	default:
		log.Fatalf("production_mode must be 'api' or 'csv', got '%s'", cfg.ProductionMode)
	}

	if cfg.CommentaryEnable && cfg.AnthropicAPIKey == "" {
		log.Fatalf("anthropic_api_key is required when commentary_enabled=true")
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		log.Fatalf("Invalid thresholds: %v", err)
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
		cfg.Timezone = time.Local.String()
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		cfg.Location = loc
	}
}

// validateThresholds rejects boundary pairs where the warning tier could
// never fire: for below-direction metrics the critical boundary must sit
// under the warning one, for above-direction metrics over it.
func validateThresholds(th Thresholds) error {
	belowPairs := []struct {
		name              string
		critical, warning float64
	}{
		{"finance.margin", th.Finance.MarginCriticalPercentage, th.Finance.MarginWarningPercentage},
		{"operations.stock_value", th.Operations.StockValueCritical, th.Operations.StockValueWarning},
		{"operations.yield", th.Operations.YieldCriticalPercentage, th.Operations.YieldWarningPercentage},
		{"operations.dispatch", th.Operations.DispatchCriticalPercentage, th.Operations.DispatchWarningPercentage},
		{"marketing.open_rate", th.Marketing.OpenRateCriticalPercentage, th.Marketing.OpenRateWarningPercentage},
		{"marketing.click_rate", th.Marketing.ClickRateCriticalPercentage, th.Marketing.ClickRateWarningPercentage},
	}
	for _, p := range belowPairs {
		if p.critical > p.warning {
			return errBoundaryOrder(p.name, p.critical, p.warning, "below")
		}
	}
	if th.Operations.WasteCriticalPercentage < th.Operations.WasteWarningPercentage {
		return errBoundaryOrder("operations.waste", th.Operations.WasteCriticalPercentage, th.Operations.WasteWarningPercentage, "above")
	}
	return nil
}

func errBoundaryOrder(name string, critical, warning float64, direction string) error {
	return fmt.Errorf("%s: critical %.2f / warning %.2f leaves the warning tier unreachable for a %s-direction metric", name, critical, warning, direction)
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func defaultFloat(field *float64, val float64) {
	if *field == 0 {
		*field = val
	}
}
