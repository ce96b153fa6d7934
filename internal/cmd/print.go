package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/laops/shipsync"
)

func printBatchResult(w io.Writer, result *shipsync.BatchResult) {
	fmt.Fprintf(w, "Processed %d records (%d succeeded, %d failed)\n",
		result.ProcessedCount, result.SucceededCount, result.FailedCount)
	fmt.Fprintf(w, "Status: %s\n", result.Status)
	fmt.Fprintf(w, "Report: %s\n", result.ReportPath)
}

func printJSON(w io.Writer, v any) error {
	dump, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(dump))
	return err
}

func printError(err any) {
	fmt.Printf("ERROR: %v\n", err)
}
