package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeducH/bibtex-tidy/internal/bibtex"
	"github.com/LeducH/bibtex-tidy/internal/storage"
	"github.com/LeducH/bibtex-tidy/internal/tidy"
)

var checkDBPath string

func init() {
	checkCmd.Flags().StringVar(&checkDBPath, "db", ":memory:", "Index database path (kept in memory by default)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check file...",
	Short: "Report duplicate keys and DOIs across BibTeX files",
	Long: `Index every entry of the given files and report citation keys,
normalized DOIs, and author-title fingerprints that appear more than
once, within or across files.

Examples:
  bibtidy check refs.bib
  bibtidy check papers/*.bib --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status     string              `json:"status"`
	Entries    int                 `json:"entries"`
	Collisions []storage.Collision `json:"collisions,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(checkDBPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", path, err)
		}
		doc, err := bibtex.Parse(string(src))
		if err != nil {
			exitWithError(ExitDataError, "parsing %s: %v", path, err)
		}
		for _, e := range doc.Entries {
			doi, authorTitle := tidy.FingerprintKeys(e)
			if authorTitle == ":" {
				// Nothing to fingerprint on; key collisions still apply.
				authorTitle = ""
			}
			row := storage.IndexedEntry{Key: e.ID, DOI: doi, AuthorTitle: authorTitle, File: path}
			if err := db.Insert(row); err != nil {
				exitWithError(ExitError, "%v", err)
			}
		}
	}

	total, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	collisions, err := db.Collisions()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := CheckResult{Status: "ok", Entries: total, Collisions: collisions}
	if len(collisions) > 0 {
		result.Status = "duplicates"
	}

	if humanOutput {
		printCheckHuman(result)
	} else {
		outputJSON(result)
	}
	return nil
}

func printCheckHuman(result CheckResult) {
	fmt.Printf("%d entries indexed\n", result.Entries)
	if len(result.Collisions) == 0 {
		fmt.Println("no duplicates found")
		return
	}
	for _, c := range result.Collisions {
		fmt.Printf("duplicate %s %q:\n", c.Type, c.Value)
		for _, e := range c.Entries {
			fmt.Printf("  %s (%s)\n", e.Key, e.File)
		}
	}
}
