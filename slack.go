package main

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

// PostDigestMessage sends the compact digest summary to the configured
// report channel. Delivery is best-effort for the scheduler but callers
// running interactively get the error back.
func PostDigestMessage(cfg Config, api *slack.Client, digest *Digest) error {
	if cfg.ReportChannelID == "" {
		return fmt.Errorf("report_channel_id is not configured")
	}
	message := RenderChatMessage(digest)
	_, _, err := api.PostMessage(cfg.ReportChannelID, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("posting digest to %s: %w", cfg.ReportChannelID, err)
	}
	log.Printf("digest posted type=%s date=%s channel=%s", digest.Type, digest.ReportDate.Format("2006-01-02"), cfg.ReportChannelID)
	return nil
}

// NewSlackClient returns nil when no bot token is configured, which
// disables chat delivery.
func NewSlackClient(cfg Config) *slack.Client {
	if cfg.SlackBotToken == "" {
		return nil
	}
	return slack.New(cfg.SlackBotToken)
}
