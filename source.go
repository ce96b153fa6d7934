package shipsync

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

const sourceFieldCount = 5

// Row is one data row produced by a RecordSource. When the row failed to
// parse, Err carries the record-level failure and Record holds whatever
// fields could still be read; the Batch Processor turns such rows into
// failure Outcomes instead of aborting the run.
type Row struct {
	// Number is the 1-based data row position, not counting the header.
	Number int
	// Raw is the row content as read from the file.
	Raw []string
	// Record is the parsed record. It is partially populated when Err is set.
	Record *ShipmentRecord
	// Err is the record-level parse or validation failure, if any.
	Err error
}

// RecordSource produces shipment records one row at a time, in file order.
// Next returns io.EOF after the last row. A source is restartable only by
// reopening it.
type RecordSource interface {
	Next() (*Row, error)
	Close() error
}

// FileRecordSource reads shipment records from a CSV file with the header
// id,po,delApptDate,delApptTime,delApptNo. The header row is consumed on
// open and never emitted.
type FileRecordSource struct {
	file   *os.File
	reader *csv.Reader
	row    int
}

// OpenFileRecordSource opens the input file and consumes its header row.
// A missing file is a batch-fatal SourceNotFoundError.
func OpenFileRecordSource(path string) (*FileRecordSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, SourceNotFoundError{Path: path}
		}
		return nil, err
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil && err != io.EOF {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	return &FileRecordSource{file: f, reader: r}, nil
}

func (s *FileRecordSource) Next() (*Row, error) {
	raw, err := s.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	s.row++
	if err != nil {
		return &Row{Number: s.row, Raw: raw, Err: err}, nil
	}
	row := &Row{Number: s.row, Raw: raw}
	if len(raw) < sourceFieldCount {
		row.Record = partialRecord(s.row, raw)
		row.Err = RecordValidationError{
			Field: "row",
			Msg:   fmt.Sprintf("expected %d columns, got %d", sourceFieldCount, len(raw)),
		}
		return row, nil
	}
	record := &ShipmentRecord{
		RowID:              s.row,
		PurchaseOrder:      strings.TrimSpace(raw[1]),
		DeliveryApptDate:   strings.TrimSpace(raw[2]),
		DeliveryApptTime:   strings.TrimSpace(raw[3]),
		DeliveryApptNumber: strings.TrimSpace(raw[4]),
	}
	row.Record = record
	row.Err = record.Validate()
	return row, nil
}

func (s *FileRecordSource) Close() error {
	return s.file.Close()
}

// partialRecord salvages what a short row still carries so that its failure
// Outcome can name the purchase order.
func partialRecord(rowNum int, raw []string) *ShipmentRecord {
	record := &ShipmentRecord{RowID: rowNum}
	if len(raw) > 1 {
		record.PurchaseOrder = strings.TrimSpace(raw[1])
	}
	return record
}
