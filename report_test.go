package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteDigestFile(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	path, err := WriteDigestFile("### Digest\n", dir, date, "daily", "Rise & Shine Bakery")
	if err != nil {
		t.Fatalf("WriteDigestFile: %v", err)
	}
	if filepath.Base(path) != "Rise_&_Shine_Bakery_daily_20260209.md" {
		t.Errorf("filename = %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if string(data) != "### Digest\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteDigestFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	date := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	if _, err := WriteDigestJSONFile("{}\n", dir, date, "weekly", "Bakery"); err != nil {
		t.Fatalf("WriteDigestJSONFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Bakery_weekly_20260209.json")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename(`My Bakery: a/b*c?`); got != "My_Bakery__a_b_c_" {
		t.Errorf("sanitizeFilename = %q", got)
	}
}

func TestDigestPlainText(t *testing.T) {
	body := "### Daily Business Digest — Monday 9 February 2026\n\n" +
		"#### Critical Alerts\n\n" +
		"- **[operations]** Stock value low\n\n\n" +
		"- Revenue: £100.00\n"
	got := digestPlainText(body)

	if strings.Contains(got, "#") || strings.Contains(got, "**") {
		t.Errorf("markdown decoration left in plain text:\n%s", got)
	}
	if !strings.Contains(got, "Critical Alerts") || !strings.Contains(got, "- [operations] Stock value low") {
		t.Errorf("content lost:\n%s", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank lines not collapsed:\n%s", got)
	}
}

func TestDigestHTML(t *testing.T) {
	body := "#### Sales & Finance\n\n" +
		"- Revenue: **£100.00**\n" +
		"- Top products by revenue:\n" +
		"  - Sourdough Loaf: £60.00 (2 sold)\n"
	got := digestHTML(body)

	if !strings.Contains(got, "Sales &amp; Finance") {
		t.Errorf("heading not escaped:\n%s", got)
	}
	if !strings.Contains(got, "<strong>£100.00</strong>") {
		t.Errorf("bold not converted:\n%s", got)
	}
	if strings.Count(got, "<ul") != 2 {
		t.Errorf("want one list and one sublist:\n%s", got)
	}
	if strings.Count(got, "</ul>") != 2 {
		t.Errorf("unbalanced lists:\n%s", got)
	}
	if !strings.Contains(got, "list-style-type: circle") {
		t.Errorf("sublist style missing:\n%s", got)
	}
}

func TestBuildEML(t *testing.T) {
	eml := buildEML("Bakery daily digest 9 Feb 2026", "#### Digest\n\n- Revenue: £100.00\n")

	if !strings.Contains(eml, "Subject: Bakery daily digest 9 Feb 2026\r\n") {
		t.Errorf("subject header missing:\n%s", eml)
	}
	if !strings.Contains(eml, `Content-Type: multipart/alternative; boundary="digestbot-alt"`) {
		t.Errorf("multipart header missing:\n%s", eml)
	}
	if !strings.Contains(eml, "Content-Type: text/plain; charset=UTF-8") ||
		!strings.Contains(eml, "Content-Type: text/html; charset=UTF-8") {
		t.Errorf("missing alternative part:\n%s", eml)
	}
	if !strings.HasSuffix(eml, "--digestbot-alt--\r\n") {
		t.Errorf("missing closing boundary:\n%s", eml)
	}
	if strings.Contains(strings.ReplaceAll(eml, "\r\n", ""), "\n") {
		t.Error("bare LF line endings in EML output")
	}
}

func TestWriteEmailDraftFile(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	path, err := WriteEmailDraftFile("#### Digest\n", dir, date, "Bakery daily digest")
	if err != nil {
		t.Fatalf("WriteEmailDraftFile: %v", err)
	}
	if filepath.Base(path) != "Bakery_daily_digest_20260209.eml" {
		t.Errorf("filename = %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading draft: %v", err)
	}
	if !strings.Contains(string(data), "Subject: Bakery daily digest 9 Feb 2026") {
		t.Errorf("draft missing dated subject:\n%s", data)
	}
}
