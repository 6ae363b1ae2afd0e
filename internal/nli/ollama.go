package nli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/veritas-labs/driftscope/internal/model"
	"github.com/veritas-labs/driftscope/internal/util"
)

// OllamaClassifier implements the Classifier interface using a local
// Ollama model as the NLI judge.
type OllamaClassifier struct {
	baseURL    string
	httpClient *http.Client
	config     model.CapabilityConfig
}

// Ollama API structures
type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Format  string        `json:"format,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaErrorResponse struct {
	Error string `json:"error"`
}

// NewOllamaClassifier creates a new Ollama-backed classifier.
func NewOllamaClassifier(config model.CapabilityConfig) (*OllamaClassifier, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // local models can be slower
	}

	return &OllamaClassifier{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			},
		},
		config: config,
	}, nil
}

// Name returns the provider name.
func (c *OllamaClassifier) Name() string {
	return "ollama"
}

// IsAvailable checks if Ollama is running by listing models.
func (c *OllamaClassifier) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/api/tags", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ollama availability check failed (connection to %s): %v\n", c.baseURL, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// Classify scores the (evidence, claim) pair via /api/generate with a
// JSON-constrained response.
func (c *OllamaClassifier) Classify(ctx context.Context, evidence, claim string) (model.Distribution, error) {
	var dist model.Distribution

	chatModel := c.config.Model
	if chatModel == "" {
		chatModel = "llama3.2"
	}

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:   chatModel,
		Prompt:  BuildPrompt(evidence, claim),
		System:  "You are a precise natural language inference scorer. Output only JSON.",
		Format:  "json",
		Stream:  false,
		Options: ollamaOptions{Temperature: 0},
	})
	if err != nil {
		return dist, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return dist, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dist, fmt.Errorf("%w: ollama request: %v", model.ErrCapabilityUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return dist, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ollamaErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return dist, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return dist, fmt.Errorf("ollama API error: status %d", resp.StatusCode)
	}

	var genResp ollamaGenerateResponse
	if err := json.Unmarshal(data, &genResp); err != nil {
		return dist, fmt.Errorf("decode response: %w", err)
	}

	return ParseDistribution(genResp.Response)
}
