package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const externalHTTPTimeout = 30 * time.Second

var externalHTTPClient = &http.Client{
	Timeout: externalHTTPTimeout,
}

// getJSON performs an authenticated GET against a source system and
// decodes the JSON body into out. Any transport error or non-200 status
// surfaces as an error, never as an empty result, so callers can tell
// "no records" apart from "fetch failed".
func getJSON(apiURL, apiKey string, out any) error {
	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := externalHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", apiURL, err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != 200 {
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
