package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	reportType := flag.String("type", "daily", "report type: daily or weekly")
	dateArg := flag.String("date", "", "target date YYYY-MM-DD (default: yesterday for daily, today for weekly)")
	post := flag.Bool("post", false, "post the compact digest to the report channel")
	serve := flag.Bool("serve", false, "run the cron scheduler instead of a one-off digest")
	history := flag.Int("history", 0, "print the N most recent archived runs and exit")
	trend := flag.Int("trend", 0, "print daily alert counts for the last N days and exit")
	flag.Parse()

	cfg := LoadConfig()

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	os.MkdirAll(cfg.ReportOutputDir, 0755)

	if *history > 0 {
		printHistory(db, *history)
		return
	}
	if *trend > 0 {
		printAlertTrend(db, *trend, time.Now().In(cfg.Location))
		return
	}

	api := NewSlackClient(cfg)
	src := newSourceSet(cfg)

	if *serve {
		log.Println("Starting Business Digest Bot...")
		StartDigestScheduler(cfg, db, api, src)
		select {}
	}

	date, err := resolveReportDate(*reportType, *dateArg, time.Now().In(cfg.Location))
	if err != nil {
		log.Fatalf("%v", err)
	}

	if prev, err := GetLatestDigestRun(db, date.Format("2006-01-02"), *reportType); err == nil {
		log.Printf("Re-running %s digest for %s (previous run archived %s)",
			*reportType, prev.ReportDate, prev.CreatedAt.Format("2006-01-02 15:04"))
	}

	digest, err := RunDigest(cfg, db, api, src, *reportType, date, *post)
	if err != nil {
		log.Fatalf("Digest generation failed: %v", err)
	}

	fmt.Print(RenderMarkdown(digest))
}

// resolveReportDate applies the CLI defaults: the daily digest covers
// yesterday, the weekly digest the 7 days ending today.
func resolveReportDate(reportType, dateArg string, now time.Time) (time.Time, error) {
	if dateArg != "" {
		date, err := time.ParseInLocation("2006-01-02", dateArg, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date '%s': %v", dateArg, err)
		}
		return date, nil
	}
	if reportType == "daily" {
		return now.AddDate(0, 0, -1), nil
	}
	return now, nil
}

func printHistory(db *sql.DB, limit int) {
	runs, err := GetRecentDigestRuns(db, limit)
	if err != nil {
		log.Fatalf("Reading run history: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No archived digest runs.")
		return
	}
	for _, run := range runs {
		fmt.Printf("%s  %-6s  critical=%d warning=%d actions=%d  (archived %s)\n",
			run.ReportDate, run.ReportType,
			run.CriticalCount, run.WarningCount, run.ActionCount,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printAlertTrend(db *sql.DB, days int, now time.Time) {
	points, err := GetAlertTrend(db, now.AddDate(0, 0, -days))
	if err != nil {
		log.Fatalf("Reading alert trend: %v", err)
	}
	if len(points) == 0 {
		fmt.Println("No archived daily runs in range.")
		return
	}
	for _, p := range points {
		fmt.Printf("%s  critical=%d warning=%d\n", p.ReportDate, p.CriticalCount, p.WarningCount)
	}
}
