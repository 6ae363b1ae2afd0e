package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/veritas-labs/driftscope/internal/audit"
	"github.com/veritas-labs/driftscope/internal/catalog"
	"github.com/veritas-labs/driftscope/internal/ingest"
	"github.com/veritas-labs/driftscope/internal/model"
	"github.com/veritas-labs/driftscope/internal/report"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	catalogPath  string
	claimsPath   string
	documentPath string
	runExtract   bool
	company      string
	noCache      bool
	cacheDir     string
	noFooter     bool
	nliProvider  string
	nliModel     string
	embProvider  string
	embModel     string
	threshold    float64
	evalWorkers  int
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit disclosures against the requirement catalog",
	Long: `Audit evaluates each catalog requirement against the company's
extracted disclosure:
- Scores claim-vs-evidence faithfulness (drift 0-3) via entailment
- Computes requirement-vs-disclosure relevance via embeddings
- Builds the Requirement -> Disclosure -> Drift evidence-flow graph
- Renders a transparent, deterministic report

Missing disclosures are audited as "Not Found", never skipped.

Example:
  driftscope audit --claims claims.json
  driftscope audit --claims claims.yaml --document report.html --json out.json --md out.md
  driftscope audit --document report.html --extract --catalog sebi.yaml`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Input flags
	auditCmd.Flags().StringVar(&catalogPath, "catalog", "", "requirement catalog YAML (default: built-in SEBI Principle 6)")
	auditCmd.Flags().StringVar(&claimsPath, "claims", "", "claims file (JSON or YAML map of category -> claim)")
	auditCmd.Flags().StringVar(&documentPath, "document", "", "source document used as evidence (.txt, .md, .html)")
	auditCmd.Flags().BoolVar(&runExtract, "extract", false, "extract claims from --document with the LLM extractor")
	auditCmd.Flags().StringVar(&company, "company", "", "audited entity name for the report header")

	// Output flags
	auditCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	auditCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	auditCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Capability flags
	auditCmd.Flags().StringVar(&nliProvider, "nli-provider", "openai", "entailment provider (openai, ollama)")
	auditCmd.Flags().StringVar(&nliModel, "nli-model", "", "entailment model name (provider default if empty)")
	auditCmd.Flags().StringVar(&embProvider, "embed-provider", "openai", "embedding provider (openai, ollama)")
	auditCmd.Flags().StringVar(&embModel, "embed-model", "", "embedding model name (provider default if empty)")
	auditCmd.Flags().Float64Var(&threshold, "entailment-threshold", 0, "split drift 0 vs 1 below this entailment probability (0 = off)")

	// Runtime flags
	auditCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall audit timeout")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable capability result cache")
	auditCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (memory-only if empty)")
	auditCmd.Flags().IntVar(&evalWorkers, "workers", 4, "concurrent evaluations")
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	requirements, err := loadCatalog()
	if err != nil {
		return err
	}

	claims, evidence, err := loadInputs(ctx, cfg, requirements)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Catalog: %d requirements\n", len(requirements))
		fmt.Fprintf(os.Stderr, "Claims: %d categories\n", len(claims))
		fmt.Fprintf(os.Stderr, "NLI: %s, embeddings: %s\n", cfg.NLI.Provider, cfg.Embedding.Provider)
		fmt.Fprintln(os.Stderr)
	}

	runner, err := audit.NewRunner(cfg)
	if err != nil {
		return fmt.Errorf("init audit runner: %w", err)
	}

	result, err := runner.Run(ctx, requirements, claims, evidence)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	result.Company = company

	renderer := report.NewRenderer(cfg.Report)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(result)

	return nil
}

// buildConfig assembles configuration in documented priority order:
// defaults first, then config-file values via viper, then flags the
// user explicitly set.
func buildConfig(flags *pflag.FlagSet) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg, yamlTagNames); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.Changed("nli-provider") {
		cfg.NLI.Provider = nliProvider
	}
	if flags.Changed("nli-model") {
		cfg.NLI.Model = nliModel
	}
	if flags.Changed("entailment-threshold") {
		cfg.NLI.EntailmentThreshold = threshold
	}
	if flags.Changed("embed-provider") {
		cfg.Embedding.Provider = embProvider
	}
	if flags.Changed("embed-model") {
		cfg.Embedding.Model = embModel
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
	if flags.Changed("workers") {
		cfg.Concurrency.EvalWorkers = evalWorkers
	}
	if flags.Changed("no-footer") {
		cfg.Report.IncludeFooter = !noFooter
	}
	cfg.Output.Verbose = verbose

	for _, cap := range []*model.CapabilityConfig{&cfg.NLI, &cfg.Embedding} {
		switch cap.Provider {
		case "openai":
			if cap.APIKey == "" {
				cap.APIKey = os.Getenv("OPENAI_API_KEY")
			}
			if cap.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cap.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// yamlTagNames makes viper decode file values into the yaml-tagged
// config structs.
func yamlTagNames(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
}

// loadCatalog loads the requirement catalog from file or built-in.
func loadCatalog() ([]model.Requirement, error) {
	if catalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(catalogPath)
}

// loadInputs resolves the claims map and the per-category evidence.
func loadInputs(ctx context.Context, cfg *model.Config, requirements []model.Requirement) (map[string]string, map[string]string, error) {
	var docText string
	if documentPath != "" {
		text, err := ingest.LoadDocument(documentPath)
		if err != nil {
			return nil, nil, err
		}

		chunker := ingest.NewChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
		chunks := ingest.FilterRelevant(chunker.Split(text), ingest.DefaultKeywords)
		if len(chunks) == 0 {
			// Nothing matched the pre-filter: fall back to the full document.
			chunks = chunker.Split(text)
		}
		docText = ingest.JoinChunks(chunks, 40000)
	}

	claims := map[string]string{}
	switch {
	case claimsPath != "":
		loaded, err := ingest.LoadClaims(claimsPath)
		if err != nil {
			return nil, nil, err
		}
		claims = loaded

	case runExtract:
		if docText == "" {
			return nil, nil, fmt.Errorf("--extract requires --document")
		}
		extractor, err := ingest.NewExtractor(cfg.NLI)
		if err != nil {
			return nil, nil, err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Running extraction over %s...\n", documentPath)
		}
		claims, err = extractor.Extract(ctx, docText, requirements)
		if err != nil {
			return nil, nil, fmt.Errorf("extract claims: %w", err)
		}
	}

	var evidence map[string]string
	if docText != "" {
		evidence = make(map[string]string, len(requirements))
		for _, req := range requirements {
			evidence[req.Category] = docText
		}
	}

	return claims, evidence, nil
}
