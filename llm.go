package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultCommentaryModel = "claude-sonnet-4-5-20250929"

type LLMUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// GenerateCommentary asks the model for a short executive narrative on
// the digest. It is an optional enrichment: callers treat an error as
// "no commentary", never as a failed digest.
func GenerateCommentary(cfg Config, digest *Digest) (string, LLMUsage, error) {
	if !cfg.CommentaryEnable || cfg.AnthropicAPIKey == "" {
		return "", LLMUsage{}, nil
	}

	model := cfg.CommentaryModel
	if model == "" {
		model = defaultCommentaryModel
	}

	systemPrompt := "You are writing a two-to-four sentence executive commentary for a business operations digest. " +
		"Be factual and specific: mention the most material numbers and trends, lead with anything critical. " +
		"No greetings, no markdown headings, plain prose only."
	userPrompt := buildCommentaryPrompt(digest)

	log.Printf("llm commentary model=%s type=%s date=%s", model, digest.Type, digest.ReportDate.Format("2006-01-02"))

	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	message, err := client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("Anthropic API error: %w", err)
	}

	usage := LLMUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), usage, nil
		}
	}
	return "", usage, fmt.Errorf("no text content in Anthropic response")
}

// buildCommentaryPrompt flattens the digest facts the commentary may
// draw on. The model sees derived summaries only, never raw records.
func buildCommentaryPrompt(digest *Digest) string {
	var b strings.Builder
	fin := digest.Finance.Summary
	ops := digest.Operations.Summary

	fmt.Fprintf(&b, "Report: %s digest for %s\n", digest.Type, digest.ReportDate.Format("Monday 2 January 2006"))
	fmt.Fprintf(&b, "Revenue: %s across %d orders (%s vs prior period, trend %s)\n",
		formatGBP(fin.TotalRevenue), fin.OrderCount,
		formatSignedPercent(digest.Finance.Comparison.RevenueChangePercentage), digest.Finance.Comparison.RevenueTrend)
	fmt.Fprintf(&b, "Margin: %.1f%%\n", fin.MarginPercentage)
	fmt.Fprintf(&b, "Stock value: %s, %d items below reorder\n", formatGBP(ops.Stock.TotalStockValue), ops.Stock.BelowReorderCount)
	fmt.Fprintf(&b, "Yield: %.1f%% (trend %s), waste %.1f%%\n",
		ops.Yield.AverageYieldPercentage, digest.Operations.Comparison.YieldTrend, ops.Yield.WastePercentage)
	if digest.Marketing != nil {
		fmt.Fprintf(&b, "Marketing: %d campaigns, open rate %.1f%%, attributed revenue %s\n",
			digest.Marketing.Summary.CampaignCount, digest.Marketing.Summary.AverageOpenRate,
			formatGBP(digest.Marketing.Summary.AttributedRevenue))
	}

	if len(digest.CriticalAlerts) > 0 {
		b.WriteString("Critical alerts:\n")
		for _, alert := range digest.CriticalAlerts {
			fmt.Fprintf(&b, "- [%s] %s\n", alert.Domain, alert.Message)
		}
	}
	if len(digest.WarningAlerts) > 0 {
		b.WriteString("Warnings:\n")
		for _, alert := range digest.WarningAlerts {
			fmt.Fprintf(&b, "- [%s] %s\n", alert.Domain, alert.Message)
		}
	}
	if len(digest.Actions) > 0 {
		b.WriteString("Actions:\n")
		for _, action := range digest.Actions {
			fmt.Fprintf(&b, "- %s (%s): %s\n", action.Priority, action.Department, action.Description)
		}
	}
	return b.String()
}
