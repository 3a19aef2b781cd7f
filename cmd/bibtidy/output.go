package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DuplicateRecord reports one merged-away entry.
type DuplicateRecord struct {
	ID          string `json:"id"`
	DuplicateOf string `json:"duplicate_of"`
}

// FileReport summarizes one tidied file.
type FileReport struct {
	File       string            `json:"file"`
	Entries    int               `json:"entries"`
	Duplicates []DuplicateRecord `json:"duplicates,omitempty"`
}

// TidyReport is the response for the root command with --report.
type TidyReport struct {
	Status string       `json:"status"`
	Files  []FileReport `json:"files"`
}
