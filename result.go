package shipsync

import "net/http"

// Outcome is the result of attempting to synchronize one shipment record
// with the remote API. Every input row produces exactly one Outcome.
type Outcome struct {
	PurchaseOrder string `json:"purchase_order"`
	// ShipmentNumber is populated only when the API call succeeded.
	ShipmentNumber     string `json:"shipment_number,omitempty"`
	NotificationReason string `json:"notification_reason,omitempty"`
	// HTTPStatus is zero when the request never reached the network.
	HTTPStatus int `json:"http_status,omitempty"`
	// RequestJSON and ResponseJSON keep the raw exchange for audit.
	RequestJSON  string `json:"request_json,omitempty"`
	ResponseJSON string `json:"response_json,omitempty"`
	// ErrorMessage is populated on any failure, record-level included.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Succeeded reports whether the record reached the API and got a 2xx reply.
func (o *Outcome) Succeeded() bool {
	return o.ErrorMessage == "" &&
		o.HTTPStatus >= http.StatusOK && o.HTTPStatus < http.StatusMultipleChoices
}

// BatchStatus is the overall status of a batch run.
type BatchStatus string

const (
	BatchStatusSuccess BatchStatus = "success"
	BatchStatusPartial BatchStatus = "partial"
	BatchStatusFailure BatchStatus = "failure"
)

// BatchResult is the aggregate result of one batch invocation.
// It is created once, after all records are processed, and never mutated.
type BatchResult struct {
	ProcessedCount int         `json:"processed_count"`
	SucceededCount int         `json:"succeeded_count"`
	FailedCount    int         `json:"failed_count"`
	ReportPath     string      `json:"report_path"`
	Status         BatchStatus `json:"status"`
}

func newBatchStatus(succeeded, failed int) BatchStatus {
	switch {
	case failed == 0:
		return BatchStatusSuccess
	case succeeded == 0:
		return BatchStatusFailure
	default:
		return BatchStatusPartial
	}
}
