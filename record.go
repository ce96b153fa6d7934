package shipsync

import (
	"strings"
	"time"
)

const (
	apptDateLayout    = "20060102"
	apptTimeLayout    = "150405"
	payloadDateLayout = "2006-01-02"
	payloadTimeLayout = "15:04:05"
)

// OperationType determines which API operation a batch run performs for
// every record. It is fixed for an entire run.
type OperationType string

const (
	OperationTypeCreate OperationType = "create"
	OperationTypeUpdate OperationType = "update"
)

// ParseOperationType parses the user supplied operation name.
// Matching is case-insensitive.
func ParseOperationType(value string) (OperationType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(OperationTypeCreate):
		return OperationTypeCreate, nil
	case string(OperationTypeUpdate):
		return OperationTypeUpdate, nil
	default:
		return "", InvalidOperationTypeError{Value: value}
	}
}

// ShipmentRecord is one data row of the input file.
type ShipmentRecord struct {
	// RowID is the 1-based position of the record within the batch.
	// It orders the report; it is not a business key.
	RowID int
	// PurchaseOrder identifies the shipment on the remote API.
	PurchaseOrder string
	// DeliveryApptDate is the appointment date in YYYYMMDD form.
	DeliveryApptDate string
	// DeliveryApptTime is the appointment time in HHMMSS form.
	DeliveryApptTime string
	// DeliveryApptNumber is the appointment confirmation number.
	DeliveryApptNumber string
}

// Validate reports the first malformed field of the record.
// All fields must be present and well-formed before the record may be
// sent to the shipment API.
func (r *ShipmentRecord) Validate() error {
	if r.PurchaseOrder == "" {
		return RecordValidationError{Field: "po", Msg: "purchase order is required"}
	}
	if _, err := time.Parse(apptDateLayout, r.DeliveryApptDate); err != nil || len(r.DeliveryApptDate) != 8 {
		return RecordValidationError{Field: "delApptDate", Msg: "must be 8 digits in YYYYMMDD form"}
	}
	if _, err := time.Parse(apptTimeLayout, r.DeliveryApptTime); err != nil || len(r.DeliveryApptTime) != 6 {
		return RecordValidationError{Field: "delApptTime", Msg: "must be 6 digits in HHMMSS form"}
	}
	if r.DeliveryApptNumber == "" {
		return RecordValidationError{Field: "delApptNo", Msg: "appointment number is required"}
	}
	return nil
}

// AppointmentDate returns the appointment date in the YYYY-MM-DD form the
// shipment API expects.
func (r *ShipmentRecord) AppointmentDate() (string, error) {
	t, err := time.Parse(apptDateLayout, r.DeliveryApptDate)
	if err != nil {
		return "", RecordValidationError{Field: "delApptDate", Msg: "must be 8 digits in YYYYMMDD form"}
	}
	return t.Format(payloadDateLayout), nil
}

// AppointmentTime returns the appointment time in the HH:MM:SS form the
// shipment API expects.
func (r *ShipmentRecord) AppointmentTime() (string, error) {
	t, err := time.Parse(apptTimeLayout, r.DeliveryApptTime)
	if err != nil {
		return "", RecordValidationError{Field: "delApptTime", Msg: "must be 6 digits in HHMMSS form"}
	}
	return t.Format(payloadTimeLayout), nil
}
