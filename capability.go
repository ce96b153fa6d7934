package shipsync

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CapabilityShipmentUpdate is the only capability this tool exposes
// through the structured invocation surface.
const CapabilityShipmentUpdate = "la_shipment_update"

const (
	CapabilityStatusSuccess = "success"
	CapabilityStatusError   = "error"
)

// CapabilityRequest is the structured invocation document, read once from
// the caller as a single JSON object.
type CapabilityRequest struct {
	Capability string         `json:"capability"`
	Args       CapabilityArgs `json:"args"`
}

// CapabilityArgs carries the named arguments of a capability request.
type CapabilityArgs struct {
	CSVPath       string `json:"csv_path"`
	TypeOperation string `json:"type_operation"`
	OutputPath    string `json:"output_path"`
	ConfigPath    string `json:"config_path,omitempty"`
}

// CapabilityResponse is the single structured reply returned for every
// capability request, fatal failures included.
type CapabilityResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	OutputFile string `json:"output_file,omitempty"`
	Capability string `json:"capability"`
}

// CapabilityHandlerOptions contains configuration options for a
// CapabilityHandler.
type CapabilityHandlerOptions struct {
	// RunBatch executes the batch. It is a seam for tests; the default is
	// the package RunBatch function.
	RunBatch func(ctx context.Context, params *RunBatchInput) (*BatchResult, error)
	// Logger observes handled runs. Defaults to a no-op logger.
	Logger *zap.Logger
}

// WithCapabilityRunBatch is an option function to override the batch
// entrypoint invoked by the handler.
func WithCapabilityRunBatch(runBatch func(ctx context.Context, params *RunBatchInput) (*BatchResult, error)) func(*CapabilityHandlerOptions) {
	return func(o *CapabilityHandlerOptions) {
		o.RunBatch = runBatch
	}
}

// WithCapabilityLogger is an option function to set the logger used by the
// handler.
func WithCapabilityLogger(logger *zap.Logger) func(*CapabilityHandlerOptions) {
	return func(o *CapabilityHandlerOptions) {
		o.Logger = logger
	}
}

// NewCapabilityHandler creates a handler for the structured invocation
// surface.
func NewCapabilityHandler(optFns ...func(*CapabilityHandlerOptions)) *CapabilityHandler {
	o := &CapabilityHandlerOptions{
		RunBatch: RunBatch,
		Logger:   zap.NewNop(),
	}
	for _, opt := range optFns {
		opt(o)
	}
	return &CapabilityHandler{runBatch: o.RunBatch, logger: o.Logger}
}

// CapabilityHandler normalizes structured capability requests into the
// internal batch call and maps every outcome, fatal failures included,
// into exactly one CapabilityResponse. Nothing raises past this boundary.
type CapabilityHandler struct {
	runBatch func(ctx context.Context, params *RunBatchInput) (*BatchResult, error)
	logger   *zap.Logger
}

func (h *CapabilityHandler) Handle(ctx context.Context, req *CapabilityRequest) *CapabilityResponse {
	if req == nil {
		return errorResponse("unknown", "no capability request provided")
	}
	if req.Capability != CapabilityShipmentUpdate {
		return errorResponse(req.Capability, UnsupportedCapabilityError{Capability: req.Capability}.Error())
	}
	if req.Args.CSVPath == "" {
		return errorResponse(req.Capability, "missing required argument: csv_path")
	}
	if req.Args.OutputPath == "" {
		return errorResponse(req.Capability, "missing required argument: output_path")
	}
	// An absent type_operation keeps the historical default.
	typeOperation := req.Args.TypeOperation
	if typeOperation == "" {
		typeOperation = string(OperationTypeCreate)
	}
	operation, err := ParseOperationType(typeOperation)
	if err != nil {
		return errorResponse(req.Capability, err.Error())
	}
	result, err := h.runBatch(ctx, &RunBatchInput{
		SourcePath: req.Args.CSVPath,
		Operation:  operation,
		OutputDir:  req.Args.OutputPath,
		ConfigPath: req.Args.ConfigPath,
		Logger:     h.logger,
	})
	if err != nil {
		return errorResponse(req.Capability, err.Error())
	}
	return &CapabilityResponse{
		Status:     CapabilityStatusSuccess,
		Message:    fmt.Sprintf("Processed %d records", result.ProcessedCount),
		OutputFile: result.ReportPath,
		Capability: req.Capability,
	}
}

func errorResponse(capability, message string) *CapabilityResponse {
	if capability == "" {
		capability = "unknown"
	}
	return &CapabilityResponse{
		Status:     CapabilityStatusError,
		Message:    message,
		Capability: capability,
	}
}
