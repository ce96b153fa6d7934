package shipsync

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportFileName is the name of the report written into the output
// directory.
const ReportFileName = "output.csv"

var reportHeader = []string{"po", "Shipment Number", "Notification Reason", "API Response", "Request Json", "Response Json"}

// ReporterOptions contains configuration options for a Reporter.
type ReporterOptions struct {
	Logger *zap.Logger
}

// WithReporterLogger is an option function to set the logger used by the
// Reporter.
func WithReporterLogger(logger *zap.Logger) func(*ReporterOptions) {
	return func(o *ReporterOptions) {
		o.Logger = logger
	}
}

// NewReporter creates a Reporter.
func NewReporter(optFns ...func(*ReporterOptions)) *Reporter {
	o := &ReporterOptions{
		Logger: zap.NewNop(),
	}
	for _, opt := range optFns {
		opt(o)
	}
	return &Reporter{logger: o.Logger}
}

// Reporter serializes batch outcomes into the CSV report.
type Reporter struct {
	logger *zap.Logger
}

// WriteReport writes one row per Outcome, in order, to
// <outputDir>/output.csv and returns the written path. The file is always
// produced, even for an all-failure or empty batch. The write is atomic:
// rows go to a temporary file that is renamed over the final name, so no
// partial file is ever left under the report name.
func (r *Reporter) WriteReport(outcomes []*Outcome, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", ReportWriteError{Path: outputDir, Cause: err}
	}
	finalPath := filepath.Join(outputDir, ReportFileName)
	tmpPath := finalPath + "." + uuid.NewString() + ".tmp"
	if err := writeReportFile(tmpPath, outcomes); err != nil {
		_ = os.Remove(tmpPath)
		return "", ReportWriteError{Path: finalPath, Cause: err}
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", ReportWriteError{Path: finalPath, Cause: err}
	}
	r.logger.Info("report written",
		zap.String("path", finalPath),
		zap.Int("records", len(outcomes)))
	return finalPath, nil
}

func writeReportFile(path string, outcomes []*Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		_ = f.Close()
		return err
	}
	for _, outcome := range outcomes {
		if err := w.Write(reportRow(outcome)); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func reportRow(o *Outcome) []string {
	status := ""
	if o.HTTPStatus != 0 {
		status = strconv.Itoa(o.HTTPStatus)
	}
	// A failure that never produced a response body still has to be
	// inspectable in the report, so the error text takes its place.
	response := o.ResponseJSON
	if response == "" && o.ErrorMessage != "" {
		response = o.ErrorMessage
	}
	return []string{
		o.PurchaseOrder,
		o.ShipmentNumber,
		o.NotificationReason,
		status,
		o.RequestJSON,
		response,
	}
}
