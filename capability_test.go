package shipsync_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/laops/shipsync"
	"github.com/laops/shipsync/internal/test"
)

func TestCapabilityHandlerUnknownCapability(t *testing.T) {
	outputDir := t.TempDir()
	called := false
	handler := shipsync.NewCapabilityHandler(
		shipsync.WithCapabilityRunBatch(func(ctx context.Context, params *shipsync.RunBatchInput) (*shipsync.BatchResult, error) {
			called = true
			return nil, nil
		}))

	resp := handler.Handle(context.Background(), &shipsync.CapabilityRequest{
		Capability: "foo",
		Args: shipsync.CapabilityArgs{
			CSVPath:    "input.csv",
			OutputPath: outputDir,
		},
	})
	if resp.Status != shipsync.CapabilityStatusError {
		t.Errorf("status = %s, want error", resp.Status)
	}
	if resp.Capability != "foo" {
		t.Errorf("capability = %s, want foo", resp.Capability)
	}
	if !strings.Contains(resp.Message, "Unknown capability") {
		t.Errorf("message = %s", resp.Message)
	}
	if called {
		t.Error("the batch must not run for an unknown capability")
	}
	if _, err := os.Stat(filepath.Join(outputDir, "output.csv")); !os.IsNotExist(err) {
		t.Error("no output file may be written for an unknown capability")
	}
}

func TestCapabilityHandlerMissingArgs(t *testing.T) {
	handler := shipsync.NewCapabilityHandler(
		shipsync.WithCapabilityRunBatch(func(ctx context.Context, params *shipsync.RunBatchInput) (*shipsync.BatchResult, error) {
			t.Fatal("the batch must not run with missing arguments")
			return nil, nil
		}))

	type testCase struct {
		name string
		args shipsync.CapabilityArgs
		want string
	}
	tests := []testCase{
		{
			name: "should reject a missing csv_path",
			args: shipsync.CapabilityArgs{OutputPath: "out"},
			want: "csv_path",
		},
		{
			name: "should reject a missing output_path",
			args: shipsync.CapabilityArgs{CSVPath: "input.csv"},
			want: "output_path",
		},
		{
			name: "should reject an unsupported type_operation",
			args: shipsync.CapabilityArgs{CSVPath: "input.csv", OutputPath: "out", TypeOperation: "delete"},
			want: "delete",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := handler.Handle(context.Background(), &shipsync.CapabilityRequest{
				Capability: shipsync.CapabilityShipmentUpdate,
				Args:       tt.args,
			})
			if resp.Status != shipsync.CapabilityStatusError {
				t.Errorf("status = %s, want error", resp.Status)
			}
			if !strings.Contains(resp.Message, tt.want) {
				t.Errorf("message = %s, want mention of %s", resp.Message, tt.want)
			}
		})
	}
}

func TestCapabilityHandlerSuccess(t *testing.T) {
	var got *shipsync.RunBatchInput
	handler := shipsync.NewCapabilityHandler(
		shipsync.WithCapabilityRunBatch(func(ctx context.Context, params *shipsync.RunBatchInput) (*shipsync.BatchResult, error) {
			got = params
			return &shipsync.BatchResult{
				ProcessedCount: 2,
				SucceededCount: 2,
				ReportPath:     "/tmp/out/output.csv",
				Status:         shipsync.BatchStatusSuccess,
			}, nil
		}))

	resp := handler.Handle(context.Background(), &shipsync.CapabilityRequest{
		Capability: shipsync.CapabilityShipmentUpdate,
		Args: shipsync.CapabilityArgs{
			CSVPath:       "input.csv",
			TypeOperation: "update",
			OutputPath:    "/tmp/out",
			ConfigPath:    "config.json",
		},
	})
	if resp.Status != shipsync.CapabilityStatusSuccess {
		t.Fatalf("status = %s, want success: %s", resp.Status, resp.Message)
	}
	if resp.Message != "Processed 2 records" {
		t.Errorf("message = %s", resp.Message)
	}
	if resp.OutputFile != "/tmp/out/output.csv" {
		t.Errorf("output file = %s", resp.OutputFile)
	}
	if resp.Capability != shipsync.CapabilityShipmentUpdate {
		t.Errorf("capability = %s", resp.Capability)
	}
	if got.Operation != shipsync.OperationTypeUpdate {
		t.Errorf("operation = %s, want update", got.Operation)
	}
	if got.SourcePath != "input.csv" || got.OutputDir != "/tmp/out" || got.ConfigPath != "config.json" {
		t.Errorf("handler did not map arguments: %+v", got)
	}
}

func TestCapabilityHandlerDefaultsOperationToCreate(t *testing.T) {
	var got *shipsync.RunBatchInput
	handler := shipsync.NewCapabilityHandler(
		shipsync.WithCapabilityRunBatch(func(ctx context.Context, params *shipsync.RunBatchInput) (*shipsync.BatchResult, error) {
			got = params
			return &shipsync.BatchResult{Status: shipsync.BatchStatusSuccess}, nil
		}))

	resp := handler.Handle(context.Background(), &shipsync.CapabilityRequest{
		Capability: shipsync.CapabilityShipmentUpdate,
		Args:       shipsync.CapabilityArgs{CSVPath: "input.csv", OutputPath: "out"},
	})
	if resp.Status != shipsync.CapabilityStatusSuccess {
		t.Fatalf("status = %s, want success", resp.Status)
	}
	if got.Operation != shipsync.OperationTypeCreate {
		t.Errorf("operation = %s, want the create default", got.Operation)
	}
}

func TestCapabilityHandlerFatalBatchError(t *testing.T) {
	handler := shipsync.NewCapabilityHandler(
		shipsync.WithCapabilityRunBatch(func(ctx context.Context, params *shipsync.RunBatchInput) (*shipsync.BatchResult, error) {
			return nil, test.ErrorTest
		}))

	resp := handler.Handle(context.Background(), &shipsync.CapabilityRequest{
		Capability: shipsync.CapabilityShipmentUpdate,
		Args:       shipsync.CapabilityArgs{CSVPath: "input.csv", OutputPath: "out"},
	})
	if resp.Status != shipsync.CapabilityStatusError {
		t.Errorf("status = %s, want error", resp.Status)
	}
	if resp.Message != test.ErrorTest.Error() {
		t.Errorf("message = %s, want %s", resp.Message, test.ErrorTest)
	}
	if resp.OutputFile != "" {
		t.Errorf("output file = %s, want empty", resp.OutputFile)
	}
}

func TestCapabilityHandlerNilRequest(t *testing.T) {
	resp := shipsync.NewCapabilityHandler().Handle(context.Background(), nil)
	if resp.Status != shipsync.CapabilityStatusError {
		t.Errorf("status = %s, want error", resp.Status)
	}
	if resp.Capability != "unknown" {
		t.Errorf("capability = %s, want unknown", resp.Capability)
	}
}
