package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/driftscope/internal/audit"
	"github.com/veritas-labs/driftscope/internal/ingest"
	"github.com/veritas-labs/driftscope/internal/model"
	"github.com/veritas-labs/driftscope/internal/report"
	"github.com/veritas-labs/driftscope/internal/worker"
)

var (
	batchList    string
	batchWorkers int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [claims files...]",
	Short: "Audit multiple claims files concurrently",
	Long: `Batch audits many extracted-claims files against the same catalog,
running audits concurrently through a worker pool. Each input file
produces a <file>.report.json next to it.

Example:
  driftscope batch claims/q1.json claims/q2.json
  driftscope batch --list claims.txt --document report.html`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchList, "list", "", "file with claims file paths, one per line")
	batchCmd.Flags().IntVar(&batchWorkers, "batch-workers", 2, "concurrent audits")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")

	// Shared input/capability flags
	batchCmd.Flags().StringVar(&catalogPath, "catalog", "", "requirement catalog YAML (default: built-in SEBI Principle 6)")
	batchCmd.Flags().StringVar(&documentPath, "document", "", "source document used as evidence for every audit")
	batchCmd.Flags().StringVar(&nliProvider, "nli-provider", "openai", "entailment provider (openai, ollama)")
	batchCmd.Flags().StringVar(&nliModel, "nli-model", "", "entailment model name")
	batchCmd.Flags().StringVar(&embProvider, "embed-provider", "openai", "embedding provider (openai, ollama)")
	batchCmd.Flags().StringVar(&embModel, "embed-model", "", "embedding model name")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable capability result cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory")
}

// fileAuditor adapts the audit runner to the worker.Auditor interface.
type fileAuditor struct {
	runner       *audit.Runner
	requirements []model.Requirement
	evidence     map[string]string
}

// AuditFile loads one claims file and audits it.
func (a *fileAuditor) AuditFile(ctx context.Context, path string) (*model.Report, error) {
	claims, err := ingest.LoadClaims(path)
	if err != nil {
		return nil, err
	}
	return a.runner.Run(ctx, a.requirements, claims, a.evidence)
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths := args
	if batchList != "" {
		listed, err := worker.ReadPathsFromFile(batchList)
		if err != nil {
			return err
		}
		paths = append(paths, listed...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no claims files given (pass paths or --list)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = batchWorkers

	requirements, err := loadCatalog()
	if err != nil {
		return err
	}

	_, evidence, err := loadInputs(ctx, cfg, requirements)
	if err != nil {
		return err
	}

	runner, err := audit.NewRunner(cfg)
	if err != nil {
		return fmt.Errorf("init audit runner: %w", err)
	}

	processor := worker.NewBatchProcessor(&fileAuditor{
		runner:       runner,
		requirements: requirements,
		evidence:     evidence,
	}, cfg.Concurrency.BatchWorkers)

	results := processor.ProcessFiles(ctx, paths)

	renderer := report.NewRenderer(cfg.Report)
	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		outPath := result.Path + ".report.json"
		if err := renderer.RenderJSON(result.Report, outPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}
		fmt.Printf("✓ %s -> %s\n", result.Path, outPath)
	}

	fmt.Printf("\nBatch complete: %d succeeded, %d failed\n", len(results)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d audits failed", failed, len(results))
	}
	return nil
}
