package shipsync

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunBatchInput represents the input parameters for one batch invocation.
// Both invocation surfaces (direct flags and the structured capability
// request) normalize into this struct.
type RunBatchInput struct {
	// SourcePath is the input CSV file.
	SourcePath string
	// Operation is applied to every record of the run.
	Operation OperationType
	// OutputDir receives the report file.
	OutputDir string
	// ConfigPath is the configuration file. Empty means the conventional
	// lookup location.
	ConfigPath string
	// Logger observes the run. Defaults to a no-op logger.
	Logger *zap.Logger
	// Client overrides the shipment client, bypassing configuration
	// resolution. Used by tests and embedding callers.
	Client Client
}

// RunBatch executes one full batch: resolve configuration, read the
// source, synchronize every record, and write the report. Per-record
// failures only shape the result's Status; the error return is reserved
// for batch-fatal conditions (unresolved configuration, missing source,
// report write failure).
func RunBatch(ctx context.Context, params *RunBatchInput) (*BatchResult, error) {
	if _, err := ParseOperationType(string(params.Operation)); err != nil {
		return nil, err
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("batch_id", uuid.NewString()))

	client := params.Client
	if client == nil {
		cfg, err := ResolveConfig(params.ConfigPath)
		if err != nil {
			return nil, err
		}
		client, err = NewFromConfig(ctx, cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
	}

	source, err := OpenFileRecordSource(params.SourcePath)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	processor := NewProcessor(client, WithProcessorLogger(logger))
	out, err := processor.Run(ctx, &RunInput{Source: source, Operation: params.Operation})
	if err != nil {
		return nil, err
	}

	reporter := NewReporter(WithReporterLogger(logger))
	reportPath, err := reporter.WriteReport(out.Outcomes, params.OutputDir)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		ProcessedCount: len(out.Outcomes),
		SucceededCount: out.Succeeded,
		FailedCount:    out.Failed,
		ReportPath:     reportPath,
		Status:         newBatchStatus(out.Succeeded, out.Failed),
	}
	logger.Info("batch completed",
		zap.Int("processed", result.ProcessedCount),
		zap.Int("succeeded", result.SucceededCount),
		zap.Int("failed", result.FailedCount),
		zap.String("status", string(result.Status)))
	return result, nil
}
