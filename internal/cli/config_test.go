package cli

import (
	"testing"

	"github.com/spf13/viper"
)

func TestBuildConfig_FileValuesReachConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("nli.provider", "ollama")
	viper.Set("embedding.provider", "ollama")
	viper.Set("report.relevance_warn", 0.5)
	viper.Set("concurrency.eval_workers", 9)

	cfg, err := buildConfig(auditCmd.Flags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NLI.Provider != "ollama" {
		t.Errorf("nli provider = %q, want value from config", cfg.NLI.Provider)
	}
	if cfg.Embedding.Provider != "ollama" {
		t.Errorf("embedding provider = %q, want value from config", cfg.Embedding.Provider)
	}
	if cfg.Report.RelevanceWarn != 0.5 {
		t.Errorf("relevance_warn = %v, want 0.5", cfg.Report.RelevanceWarn)
	}
	if cfg.Concurrency.EvalWorkers != 9 {
		t.Errorf("eval_workers = %d, want 9", cfg.Concurrency.EvalWorkers)
	}

	// Keys absent from the config keep their defaults.
	if cfg.Ingest.ChunkSize != 2000 {
		t.Errorf("chunk_size = %d, want default 2000", cfg.Ingest.ChunkSize)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache must stay enabled by default")
	}
}

func TestBuildConfig_FlagOverridesFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("nli.provider", "ollama")
	viper.Set("embedding.provider", "ollama")
	viper.Set("nli.model", "from-file")

	if err := auditCmd.Flags().Set("nli-model", "from-flag"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	cfg, err := buildConfig(auditCmd.Flags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NLI.Model != "from-flag" {
		t.Errorf("nli model = %q, explicit flag must win over the file", cfg.NLI.Model)
	}
	// The file still supplies everything the flag did not touch.
	if cfg.NLI.Provider != "ollama" {
		t.Errorf("nli provider = %q, want value from config", cfg.NLI.Provider)
	}
}
