package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS digest_runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		report_date    TEXT NOT NULL,
		report_type    TEXT NOT NULL,
		critical_count INTEGER NOT NULL DEFAULT 0,
		warning_count  INTEGER NOT NULL DEFAULT 0,
		action_count   INTEGER NOT NULL DEFAULT 0,
		payload        TEXT NOT NULL,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_digest_runs_date ON digest_runs(report_date);
	CREATE INDEX IF NOT EXISTS idx_digest_runs_type ON digest_runs(report_type);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// DigestRun is one archived digest generation.
type DigestRun struct {
	ID            int64
	ReportDate    string
	ReportType    string
	CriticalCount int
	WarningCount  int
	ActionCount   int
	Payload       string
	CreatedAt     time.Time
}

// InsertDigestRun archives a generated digest with its JSON payload.
func InsertDigestRun(db *sql.DB, digest *Digest, payload string) error {
	_, err := db.Exec(
		`INSERT INTO digest_runs (report_date, report_type, critical_count, warning_count, action_count, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		digest.ReportDate.Format("2006-01-02"), digest.Type,
		len(digest.CriticalAlerts), len(digest.WarningAlerts), len(digest.Actions),
		payload,
	)
	return err
}

// GetLatestDigestRun returns the most recent archived run for a date
// and type, or sql.ErrNoRows.
func GetLatestDigestRun(db *sql.DB, reportDate, reportType string) (DigestRun, error) {
	var run DigestRun
	err := db.QueryRow(
		`SELECT id, report_date, report_type, critical_count, warning_count, action_count, payload, created_at
		 FROM digest_runs
		 WHERE report_date = ? AND report_type = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		reportDate, reportType,
	).Scan(
		&run.ID, &run.ReportDate, &run.ReportType,
		&run.CriticalCount, &run.WarningCount, &run.ActionCount,
		&run.Payload, &run.CreatedAt,
	)
	return run, err
}

// GetRecentDigestRuns lists archived runs newest first.
func GetRecentDigestRuns(db *sql.DB, limit int) ([]DigestRun, error) {
	rows, err := db.Query(
		`SELECT id, report_date, report_type, critical_count, warning_count, action_count, payload, created_at
		 FROM digest_runs
		 ORDER BY report_date DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []DigestRun
	for rows.Next() {
		var run DigestRun
		if err := rows.Scan(
			&run.ID, &run.ReportDate, &run.ReportType,
			&run.CriticalCount, &run.WarningCount, &run.ActionCount,
			&run.Payload, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// AlertTrendPoint summarizes alert volume for one report date.
type AlertTrendPoint struct {
	ReportDate    string
	CriticalCount int
	WarningCount  int
}

// GetAlertTrend returns per-day alert counts for daily runs since the
// given date, oldest first. Re-runs of the same date take the latest.
func GetAlertTrend(db *sql.DB, since time.Time) ([]AlertTrendPoint, error) {
	rows, err := db.Query(
		`SELECT report_date, critical_count, warning_count
		 FROM digest_runs
		 WHERE report_type = 'daily' AND report_date >= ?
		   AND id IN (SELECT MAX(id) FROM digest_runs WHERE report_type = 'daily' GROUP BY report_date)
		 ORDER BY report_date ASC`,
		since.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []AlertTrendPoint
	for rows.Next() {
		var p AlertTrendPoint
		if err := rows.Scan(&p.ReportDate, &p.CriticalCount, &p.WarningCount); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
