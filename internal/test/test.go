package test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var ErrorTest = errors.New("test error")

// SourceHeader is the header row of the input file format.
const SourceHeader = "id,po,delApptDate,delApptTime,delApptNo"

// TwoValidRows is a well-formed source file with two update candidates.
const TwoValidRows = SourceHeader + "\n" +
	"1,4610217262,20251001,083000,APPT-1001\n" +
	"2,4610966613,20251002,094500,APPT-1002\n"

// MixedRows contains a valid row, a malformed date row, a short row, and a
// row with an empty purchase order.
const MixedRows = SourceHeader + "\n" +
	"1,4610217262,20251001,083000,APPT-1001\n" +
	"2,4610966613,2025100,094500,APPT-1002\n" +
	"3,4610111111\n" +
	"4,,20251003,101500,APPT-1004\n"

// WriteFile writes content into dir under name and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ConfigJSON is a complete plain JSON configuration document. The base URL
// placeholder %s is filled by the test.
const ConfigJSON = `{
  "region": "us-east-1",
  "service": "execute-api",
  "baseUrl": "%s",
  "apiKey": "test-api-key",
  "accessKey": "AKIDEXAMPLE",
  "secretKey": "secret"
}`
