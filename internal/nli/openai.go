package nli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/veritas-labs/driftscope/internal/model"
	"github.com/veritas-labs/driftscope/internal/util"
)

// OpenAIClassifier implements the Classifier interface using an OpenAI
// chat model as the NLI judge.
type OpenAIClassifier struct {
	client *openai.Client
	config model.CapabilityConfig
}

// NewOpenAIClassifier creates a new OpenAI-backed classifier.
func NewOpenAIClassifier(config model.CapabilityConfig) (*OpenAIClassifier, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", model.ErrCapabilityUnavailable)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &OpenAIClassifier{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClassifier) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured.
func (c *OpenAIClassifier) IsAvailable(ctx context.Context) bool {
	_, err := c.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Classify scores the (evidence, claim) pair through a chat completion
// constrained to a JSON object response.
func (c *OpenAIClassifier) Classify(ctx context.Context, evidence, claim string) (model.Distribution, error) {
	var dist model.Distribution

	chatModel := c.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	req := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a precise natural language inference scorer. Output only JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(evidence, claim),
			},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return dist, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return dist, fmt.Errorf("no response from OpenAI")
	}

	return ParseDistribution(resp.Choices[0].Message.Content)
}
