package shipsync

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// unknownPurchaseOrder marks outcomes whose row was too broken to carry
// even a purchase order value.
const unknownPurchaseOrder = "UNKNOWN"

// ProcessorOptions contains configuration options for a Processor.
type ProcessorOptions struct {
	// Logger receives one entry per processed record. Defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// WithProcessorLogger is an option function to set the logger used by the
// Processor.
func WithProcessorLogger(logger *zap.Logger) func(*ProcessorOptions) {
	return func(o *ProcessorOptions) {
		o.Logger = logger
	}
}

// NewProcessor creates a Processor that drives records from a source
// through the given shipment client.
func NewProcessor(client Client, optFns ...func(*ProcessorOptions)) *Processor {
	o := &ProcessorOptions{
		Logger: zap.NewNop(),
	}
	for _, opt := range optFns {
		opt(o)
	}
	return &Processor{client: client, logger: o.Logger}
}

// Processor runs a batch: every record the source produces yields exactly
// one Outcome, in source order. A record's failure never aborts the batch,
// and no record is retried.
type Processor struct {
	client Client
	logger *zap.Logger
}

// RunInput represents the input parameters for one batch run.
type RunInput struct {
	// Source produces the records to process.
	Source RecordSource
	// Operation is the API operation applied to every record.
	Operation OperationType
}

// RunOutput represents the result of one batch run.
type RunOutput struct {
	// Outcomes holds one entry per input row, in input order.
	Outcomes  []*Outcome
	Succeeded int
	Failed    int
}

func (p *Processor) Run(ctx context.Context, params *RunInput) (*RunOutput, error) {
	if params == nil || params.Source == nil {
		return nil, SourceNotProvidedError{}
	}
	out := &RunOutput{}
	for {
		row, err := params.Source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		outcome := p.processRow(ctx, row, params.Operation)
		out.Outcomes = append(out.Outcomes, outcome)
		if outcome.Succeeded() {
			out.Succeeded++
		} else {
			out.Failed++
		}
		p.logger.Info("record processed",
			zap.Int("row", row.Number),
			zap.String("po", outcome.PurchaseOrder),
			zap.Int("status", outcome.HTTPStatus),
			zap.String("error", outcome.ErrorMessage))
	}
	return out, nil
}

// processRow converts one row into its Outcome. Rows that failed to parse
// never reach the shipment client.
func (p *Processor) processRow(ctx context.Context, row *Row, operation OperationType) *Outcome {
	if row.Err != nil {
		return &Outcome{
			PurchaseOrder: rowPurchaseOrder(row),
			ErrorMessage:  fmt.Sprintf("row %d: %v", row.Number, row.Err),
		}
	}
	out, err := p.client.SyncShipment(ctx, &SyncShipmentInput{
		Record:    row.Record,
		Operation: operation,
	})
	if err != nil {
		return &Outcome{
			PurchaseOrder: row.Record.PurchaseOrder,
			ErrorMessage:  err.Error(),
		}
	}
	return out.Outcome
}

func rowPurchaseOrder(row *Row) string {
	if row.Record != nil && row.Record.PurchaseOrder != "" {
		return row.Record.PurchaseOrder
	}
	return unknownPurchaseOrder
}
