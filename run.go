package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/slack-go/slack"
)

// newSourceSet wires the configured clients into the fetch contract the
// executive aggregator consumes.
func newSourceSet(cfg Config) SourceSet {
	commerce := CommerceClient{BaseURL: cfg.CommerceURL, APIKey: cfg.CommerceAPIKey}
	warehouse := WarehouseClient{BaseURL: cfg.WarehouseURL, APIKey: cfg.WarehouseAPIKey}
	campaigns := CampaignClient{BaseURL: cfg.MailerURL, APIKey: cfg.MailerAPIKey}
	yield := NewYieldSource(cfg)

	return SourceSet{
		Orders:         commerce.FetchOrders,
		Stock:          warehouse.FetchStock,
		Dispatches:     warehouse.FetchDispatches,
		PurchaseOrders: warehouse.FetchPurchaseOrders,
		Yield:          yield.FetchYieldRecords,
		Campaigns:      campaigns.FetchCampaigns,
	}
}

// RunDigest generates one digest and carries it through every delivery
// step: optional commentary, artifact files, the sqlite archive, and
// the chat post. Generation failure aborts; delivery steps degrade
// independently.
func RunDigest(cfg Config, db *sql.DB, api *slack.Client, src SourceSet, reportType string, date time.Time, post bool) (*Digest, error) {
	var digest *Digest
	var err error

	switch reportType {
	case "daily":
		digest, err = GenerateDailyDigest(src, cfg.Thresholds, date)
	case "weekly":
		digest, err = GenerateWeeklyDigest(src, cfg.Thresholds, date)
	default:
		return nil, fmt.Errorf("unknown report type '%s'", reportType)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("digest generated type=%s date=%s critical=%d warning=%d actions=%d",
		digest.Type, digest.ReportDate.Format("2006-01-02"),
		len(digest.CriticalAlerts), len(digest.WarningAlerts), len(digest.Actions))

	if commentary, usage, err := GenerateCommentary(cfg, digest); err != nil {
		log.Printf("commentary skipped (non-fatal): %v", err)
	} else if commentary != "" {
		digest.Commentary = commentary
		log.Printf("commentary generated tokens_in=%d tokens_out=%d", usage.InputTokens, usage.OutputTokens)
	}

	markdown := RenderMarkdown(digest)
	if path, err := WriteDigestFile(markdown, cfg.ReportOutputDir, digest.ReportDate, digest.Type, cfg.CompanyName); err != nil {
		log.Printf("writing markdown artifact: %v", err)
	} else {
		log.Printf("wrote %s", path)
	}

	jsonDump, err := RenderJSON(digest)
	if err != nil {
		return nil, fmt.Errorf("rendering digest JSON: %w", err)
	}
	if path, err := WriteDigestJSONFile(jsonDump, cfg.ReportOutputDir, digest.ReportDate, digest.Type, cfg.CompanyName); err != nil {
		log.Printf("writing JSON artifact: %v", err)
	} else {
		log.Printf("wrote %s", path)
	}

	subject := fmt.Sprintf("%s %s digest", cfg.CompanyName, digest.Type)
	if path, err := WriteEmailDraftFile(markdown, cfg.ReportOutputDir, digest.ReportDate, subject); err != nil {
		log.Printf("writing email draft: %v", err)
	} else {
		log.Printf("wrote %s", path)
	}

	if db != nil {
		if err := InsertDigestRun(db, digest, jsonDump); err != nil {
			log.Printf("archiving digest run: %v", err)
		}
	}

	if post && api != nil {
		if err := PostDigestMessage(cfg, api, digest); err != nil {
			log.Printf("chat delivery failed: %v", err)
		}
	}

	return digest, nil
}
