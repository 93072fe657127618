package main

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// YieldSource supplies production batch records for a window. The
// integration method (API or CSV drops) is chosen once at construction;
// downstream aggregation never branches on which variant supplied the
// records.
type YieldSource interface {
	FetchYieldRecords(from, to time.Time) ([]YieldRecord, error)
}

// NewYieldSource selects the production integration from config.
func NewYieldSource(cfg Config) YieldSource {
	if cfg.ProductionMode == "csv" {
		return csvYieldSource{Dir: cfg.ProductionCSVDir}
	}
	return apiYieldSource{BaseURL: cfg.ProductionURL, APIKey: cfg.ProductionAPIKey}
}

type apiYieldSource struct {
	BaseURL string
	APIKey  string
}

type productionBatchResponse struct {
	Batch        string    `json:"batch"`
	ProductType  string    `json:"product_type"`
	InputWeight  flexFloat `json:"input_weight"`
	OutputWeight flexFloat `json:"output_weight"`
	WasteWeight  flexFloat `json:"waste_weight"`
	ProducedAt   string    `json:"produced_at"`
}

func (s apiYieldSource) FetchYieldRecords(from, to time.Time) ([]YieldRecord, error) {
	apiURL := fmt.Sprintf("%s/api/v1/batches?from=%s&to=%s",
		strings.TrimRight(s.BaseURL, "/"),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)))

	var rows []productionBatchResponse
	if err := getJSON(apiURL, s.APIKey, &rows); err != nil {
		return nil, fmt.Errorf("fetching batches: %w", err)
	}

	var records []YieldRecord
	for _, r := range rows {
		producedAt, err := time.Parse(time.RFC3339, r.ProducedAt)
		if err != nil {
			continue
		}
		if producedAt.Before(from) || !producedAt.Before(to) {
			continue
		}
		records = append(records, YieldRecord{
			Batch:        r.Batch,
			ProductType:  strings.TrimSpace(r.ProductType),
			InputWeight:  float64(r.InputWeight),
			OutputWeight: float64(r.OutputWeight),
			WasteWeight:  float64(r.WasteWeight),
			ProducedAt:   producedAt,
		})
	}
	return records, nil
}

// csvYieldSource reads batch records from CSV exports dropped into a
// directory. Expected header:
// batch,product_type,input_weight,output_weight,waste_weight,produced_at
type csvYieldSource struct {
	Dir string
}

func (s csvYieldSource) FetchYieldRecords(from, to time.Time) ([]YieldRecord, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading yield CSV dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var records []YieldRecord
	for _, name := range names {
		fileRecords, err := readYieldCSV(filepath.Join(s.Dir, name), from, to)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		records = append(records, fileRecords...)
	}
	return records, nil
}

func readYieldCSV(path string, from, to time.Time) ([]YieldRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []YieldRecord
	for i, row := range rows {
		if i == 0 && looksLikeYieldHeader(row) {
			continue
		}
		if len(row) < 6 {
			continue
		}
		producedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(row[5]))
		if err != nil {
			continue
		}
		if producedAt.Before(from) || !producedAt.Before(to) {
			continue
		}
		records = append(records, YieldRecord{
			Batch:        strings.TrimSpace(row[0]),
			ProductType:  strings.TrimSpace(row[1]),
			InputWeight:  parseFloatOrZero(row[2]),
			OutputWeight: parseFloatOrZero(row[3]),
			WasteWeight:  parseFloatOrZero(row[4]),
			ProducedAt:   producedAt,
		})
	}
	return records, nil
}

func looksLikeYieldHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "batch")
}
