package shipsync_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/laops/shipsync"
	"github.com/laops/shipsync/internal/mock"
	"github.com/laops/shipsync/internal/test"
)

func TestRunBatchEndToEnd(t *testing.T) {
	dir := t.TempDir()
	sourcePath := test.WriteFile(t, dir, "input.csv", test.TwoValidRows)
	outputDir := filepath.Join(dir, "out")

	result, err := shipsync.RunBatch(context.Background(), &shipsync.RunBatchInput{
		SourcePath: sourcePath,
		Operation:  shipsync.OperationTypeUpdate,
		OutputDir:  outputDir,
		Client:     echoClient(nil),
	})
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if result.ProcessedCount != 2 || result.SucceededCount != 2 || result.FailedCount != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/2/0",
			result.ProcessedCount, result.SucceededCount, result.FailedCount)
	}
	if result.Status != shipsync.BatchStatusSuccess {
		t.Errorf("status = %s, want success", result.Status)
	}

	rows := readReport(t, result.ReportPath)
	if len(rows) != 3 {
		t.Fatalf("report has %d rows, want header plus 2", len(rows))
	}
	if rows[1][0] != "4610217262" || rows[2][0] != "4610966613" {
		t.Errorf("report order = [%s %s], want input order", rows[1][0], rows[2][0])
	}
}

func TestRunBatchMixedRowsYieldsPartialStatus(t *testing.T) {
	dir := t.TempDir()
	sourcePath := test.WriteFile(t, dir, "input.csv", test.MixedRows)
	outputDir := filepath.Join(dir, "out")

	result, err := shipsync.RunBatch(context.Background(), &shipsync.RunBatchInput{
		SourcePath: sourcePath,
		Operation:  shipsync.OperationTypeCreate,
		OutputDir:  outputDir,
		Client:     echoClient(nil),
	})
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if result.ProcessedCount != 4 {
		t.Errorf("processed = %d, want 4: no record may be dropped", result.ProcessedCount)
	}
	if result.Status != shipsync.BatchStatusPartial {
		t.Errorf("status = %s, want partial", result.Status)
	}
}

func TestRunBatchMissingSourceIsFatal(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")

	_, err := shipsync.RunBatch(context.Background(), &shipsync.RunBatchInput{
		SourcePath: filepath.Join(dir, "missing.csv"),
		Operation:  shipsync.OperationTypeCreate,
		OutputDir:  outputDir,
		Client:     echoClient(nil),
	})
	var notFound shipsync.SourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("RunBatch() error = %v, want SourceNotFoundError", err)
	}
	if _, statErr := os.Stat(filepath.Join(outputDir, "output.csv")); !os.IsNotExist(statErr) {
		t.Error("no report should be written for a batch-fatal error")
	}
}

func TestRunBatchInvalidOperationIsFatal(t *testing.T) {
	dir := t.TempDir()
	sourcePath := test.WriteFile(t, dir, "input.csv", test.TwoValidRows)

	_, err := shipsync.RunBatch(context.Background(), &shipsync.RunBatchInput{
		SourcePath: sourcePath,
		Operation:  "delete",
		OutputDir:  filepath.Join(dir, "out"),
		Client:     echoClient(nil),
	})
	var invalid shipsync.InvalidOperationTypeError
	if !errors.As(err, &invalid) {
		t.Errorf("RunBatch() error = %v, want InvalidOperationTypeError", err)
	}
}

func TestRunBatchUnresolvedConfigIsFatal(t *testing.T) {
	dir := t.TempDir()
	sourcePath := test.WriteFile(t, dir, "input.csv", test.TwoValidRows)

	_, err := shipsync.RunBatch(context.Background(), &shipsync.RunBatchInput{
		SourcePath: sourcePath,
		Operation:  shipsync.OperationTypeCreate,
		OutputDir:  filepath.Join(dir, "out"),
		ConfigPath: filepath.Join(dir, "missing-config.json"),
	})
	var notResolved shipsync.ConfigNotResolvedError
	if !errors.As(err, &notResolved) {
		t.Errorf("RunBatch() error = %v, want ConfigNotResolvedError", err)
	}
}

func TestRunBatchAllFailuresStillCompletes(t *testing.T) {
	dir := t.TempDir()
	sourcePath := test.WriteFile(t, dir, "input.csv", test.TwoValidRows)
	failing := mock.Client{
		SyncShipmentFunc: func(ctx context.Context, params *shipsync.SyncShipmentInput) (*shipsync.SyncShipmentOutput, error) {
			return &shipsync.SyncShipmentOutput{
				Outcome: &shipsync.Outcome{
					PurchaseOrder: params.Record.PurchaseOrder,
					HTTPStatus:    500,
					ErrorMessage:  fmt.Sprintf("shipment API returned status %d", 500),
				},
			}, nil
		},
	}

	result, err := shipsync.RunBatch(context.Background(), &shipsync.RunBatchInput{
		SourcePath: sourcePath,
		Operation:  shipsync.OperationTypeUpdate,
		OutputDir:  filepath.Join(dir, "out"),
		Client:     failing,
	})
	if err != nil {
		t.Fatalf("RunBatch() error = %v: an all-failure run still completes", err)
	}
	if result.Status != shipsync.BatchStatusFailure {
		t.Errorf("status = %s, want failure", result.Status)
	}
	rows := readReport(t, result.ReportPath)
	if len(rows) != 3 {
		t.Errorf("report has %d rows, want header plus 2: failures are recorded, not swallowed", len(rows))
	}
}
