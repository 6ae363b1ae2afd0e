package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/veritas-labs/driftscope/internal/model"
	"github.com/veritas-labs/driftscope/internal/util"
)

// maxContextRunes bounds the document text sent to the extraction model.
const maxContextRunes = 40000

// Extractor turns free document text into a typed category -> claim
// map using an LLM with a strict JSON output contract. Values the
// model cannot find are omitted, never guessed; downstream treats the
// absence as "Not Found".
type Extractor struct {
	client *openai.Client
	config model.CapabilityConfig
}

// NewExtractor creates a new structured extractor.
func NewExtractor(config model.CapabilityConfig) (*Extractor, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("extraction requires an OpenAI API key")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &Extractor{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Extract pulls per-category disclosure claims out of document text.
func (e *Extractor) Extract(ctx context.Context, text string, requirements []model.Requirement) (map[string]string, error) {
	runes := []rune(text)
	if len(runes) > maxContextRunes {
		text = string(runes[:maxContextRunes])
	}

	chatModel := e.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4o
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionSystemPrompt(requirements),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Analyze the following report text and extract the disclosure for each category:\n\n" + text,
			},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from extraction model")
	}

	var claims map[string]string
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &claims); err != nil {
		return nil, fmt.Errorf("decode extraction output: %w", err)
	}

	// Keep only catalog categories with non-empty values.
	valid := make(map[string]bool, len(requirements))
	for _, req := range requirements {
		valid[req.Category] = true
	}
	for category, claim := range claims {
		if !valid[category] || strings.TrimSpace(claim) == "" {
			delete(claims, category)
		}
	}

	return claims, nil
}

func extractionSystemPrompt(requirements []model.Requirement) string {
	var buf strings.Builder
	buf.WriteString(`You are an expert ESG auditor extracting corporate sustainability disclosures.

For each category below, extract the company's disclosed figures as one concise claim string.

Categories:
`)
	for _, req := range requirements {
		fmt.Fprintf(&buf, "- %s: %s\n", req.Category, req.Text)
	}
	buf.WriteString(`
Rules:
- If a value is explicit in the text, extract it with its numbers and units.
- If a value is NOT present, OMIT that category entirely. Do NOT guess or hallucinate.
- Respond with ONLY a JSON object mapping category name to claim string.`)

	return buf.String()
}
