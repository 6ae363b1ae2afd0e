package model

import "time"

// Config is the full DriftScope configuration tree.
type Config struct {
	NLI         CapabilityConfig  `yaml:"nli"`
	Embedding   CapabilityConfig  `yaml:"embedding"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Report      ReportConfig      `yaml:"report"`
	Output      OutputConfig      `yaml:"output"`
}

// CapabilityConfig configures one external scoring capability
// (entailment classifier or embedding scorer).
type CapabilityConfig struct {
	// Provider name: "openai", "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for hosted providers (prefer env vars)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout for a single capability call, seconds
	Timeout int `yaml:"timeout"`

	// EntailmentThreshold optionally splits drift tier 0 vs 1: a
	// predicted entailment with probability below the threshold scores
	// 1 (paraphrased). 0 disables the split. NLI only.
	EntailmentThreshold float64 `yaml:"entailment_threshold,omitempty"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// CacheConfig configures capability-result caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // disk cache location, empty = memory only
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig bounds concurrent capability calls.
type ConcurrencyConfig struct {
	// EvalWorkers bounds concurrent evaluations within one audit run.
	EvalWorkers int `yaml:"eval_workers"`

	// BatchWorkers bounds concurrent audits in batch mode.
	BatchWorkers int `yaml:"batch_workers"`

	// RequestsPerSecond rate-limits calls per capability.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// IngestConfig configures document chunking for extraction.
type IngestConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// ReportConfig configures report-layer policy knobs.
type ReportConfig struct {
	// RelevanceWarn flags entailment rows whose requirement-disclosure
	// relevance falls below this value.
	RelevanceWarn float64 `yaml:"relevance_warn"`

	IncludeFooter bool `yaml:"include_footer"`
}

// OutputConfig configures CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		NLI: CapabilityConfig{
			Provider:            "openai",
			Model:               "",
			Timeout:             30,
			EntailmentThreshold: 0, // disabled: pure 3-way label mapping
		},
		Embedding: CapabilityConfig{
			Provider: "openai",
			Model:    "",
			Timeout:  30,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			EvalWorkers:       4,
			BatchWorkers:      2,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Ingest: IngestConfig{
			ChunkSize:    2000,
			ChunkOverlap: 200,
		},
		Report: ReportConfig{
			RelevanceWarn: 0.35,
			IncludeFooter: true,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
