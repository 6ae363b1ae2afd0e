package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veritas-labs/driftscope/internal/model"
)

// Auditor defines the interface for auditing one claims file.
type Auditor interface {
	AuditFile(ctx context.Context, path string) (*model.Report, error)
}

// AuditJob audits a single claims file.
type AuditJob struct {
	Path    string
	Auditor Auditor
}

// Execute runs the audit job.
func (j *AuditJob) Execute(ctx context.Context) Result {
	report, err := j.Auditor.AuditFile(ctx, j.Path)
	return &AuditResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// AuditResult represents the result of one audit job.
type AuditResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the audit result.
func (r *AuditResult) GetError() error {
	return r.Error
}

// BatchProcessor audits multiple claims files concurrently.
type BatchProcessor struct {
	auditor     Auditor
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(auditor Auditor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		auditor:     auditor,
		concurrency: concurrency,
	}
}

// ProcessFiles audits the given claims files concurrently.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AuditResult {
	if len(paths) == 0 {
		return []*AuditResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AuditJob{
			Path:    path,
			Auditor: b.auditor,
		})
	}

	results := pool.Wait()

	auditResults := make([]*AuditResult, len(results))
	for i, result := range results {
		auditResults[i] = result.(*AuditResult)
	}

	return auditResults
}

// ProcessList reads claims file paths from a list file and audits them.
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*AuditResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a list file (one per line,
// blank lines and # comments skipped, duplicates dropped).
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
