package main

import (
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"
)

// StartDigestScheduler runs the daily and weekly digests on their cron
// schedules. Either schedule may be empty, which disables that flow.
// The schedule is a standard 5-field cron expression.
// Examples: "0 7 * * *" (daily 7am), "0 8 * * 1" (Mondays 8am).
func StartDigestScheduler(cfg Config, db *sql.DB, api *slack.Client, src SourceSet) {
	startScheduledDigest(cfg, db, api, src, "daily", cfg.DailySchedule)
	startScheduledDigest(cfg, db, api, src, "weekly", cfg.WeeklySchedule)
}

func startScheduledDigest(cfg Config, db *sql.DB, api *slack.Client, src SourceSet, reportType, schedule string) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Printf("%s digest schedule not set, skipping", reportType)
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid %s_schedule '%s': %v — %s digest disabled", reportType, schedule, err, reportType)
		return
	}
	log.Printf("%s digest scheduled (cron: %s)", reportType, schedule)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next %s digest at %s (in %s)", reportType, next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			date := scheduledReportDate(reportType, time.Now().In(cfg.Location))
			if _, err := RunDigest(cfg, db, api, src, reportType, date, true); err != nil {
				log.Printf("%s digest failed: %v", reportType, err)
			}
		}
	}()
}

// scheduledReportDate picks the window anchor for a scheduled run: the
// daily digest covers yesterday, the weekly digest the 7 days ending
// today.
func scheduledReportDate(reportType string, now time.Time) time.Time {
	if reportType == "daily" {
		return now.AddDate(0, 0, -1)
	}
	return now
}
