package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultInsightModel       = openai.GPT4oMini
	defaultInsightMaxTokens   = 300
	defaultInsightTemperature = 0.7
	insightSampleRows         = 5
)

type InsightConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// InsightService asks an OpenAI-compatible completion endpoint for a textual
// analysis of parsed spreadsheet rows.
type InsightService struct {
	client *openai.Client
	model  string
}

func NewInsightService(config InsightConfig) *InsightService {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = defaultInsightModel
	}

	return &InsightService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (service *InsightService) Generate(ctx context.Context, rows []map[string]any) (string, error) {
	if len(rows) == 0 {
		return "", ErrValidation
	}

	prompt, err := buildInsightPrompt(rows)
	if err != nil {
		return "", err
	}

	response, err := service.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       service.model,
		MaxTokens:   defaultInsightMaxTokens,
		Temperature: defaultInsightTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// buildInsightPrompt summarizes the column set and the first few rows; the
// full dataset never leaves the server.
func buildInsightPrompt(rows []map[string]any) (string, error) {
	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	sample := rows
	if len(sample) > insightSampleRows {
		sample = sample[:insightSampleRows]
	}
	sampleJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sample rows: %w", err)
	}

	return fmt.Sprintf(
		"Analyze the following tabular data and provide key insights, trends, and observations:\n\nColumns: %s\nSample Data:\n%s\n\nInsights:",
		strings.Join(columns, ", "),
		sampleJSON,
	), nil
}
