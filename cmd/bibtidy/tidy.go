package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LeducH/bibtex-tidy/internal/bibtex"
	"github.com/LeducH/bibtex-tidy/internal/config"
	"github.com/LeducH/bibtex-tidy/internal/corpus"
	"github.com/LeducH/bibtex-tidy/internal/tidy"
)

var (
	flagOmit       []string
	flagCurly      bool
	flagNumeric    bool
	flagSpace      int
	flagTab        bool
	flagTex        []string
	flagMetadata   bool
	flagSort       []string
	flagMerge      bool
	flagStrip      bool
	flagDropCaps   bool
	flagNoEscape   bool
	flagSortProps  bool
	flagModify     bool
	flagReport     bool
	flagConfigPath string
)

func init() {
	f := rootCmd.Flags()
	f.StringSliceVar(&flagOmit, "omit", nil, "Field names to exclude from output")
	f.BoolVar(&flagCurly, "curly", false, "Force curly-brace delimiters on all values")
	f.BoolVar(&flagNumeric, "numeric", false, "Render numbers and months as bare tokens")
	f.IntVar(&flagSpace, "space", 2, "Spaces per indent level")
	f.BoolVar(&flagTab, "tab", false, "Indent with tabs instead of spaces")
	f.StringSliceVar(&flagTex, "tex", nil, "Corpus files (.tex or .pdf) to scan for citation keys")
	f.BoolVar(&flagMetadata, "metadata", false, "Append a metadata field with citation and usage counts")
	f.StringSliceVar(&flagSort, "sort", nil, "Sort entries; optionally by the given fields")
	f.Lookup("sort").NoOptDefVal = "id"
	f.BoolVar(&flagMerge, "merge", false, "Merge duplicate entries")
	f.BoolVar(&flagStrip, "strip-enclosing-braces", false, "Remove one redundant outer brace pair from values")
	f.BoolVar(&flagDropCaps, "drop-all-caps", false, "Title-case values with no lowercase letters")
	f.BoolVar(&flagNoEscape, "no-escape", false, "Disable Unicode to LaTeX escaping")
	f.BoolVar(&flagSortProps, "sort-properties", false, "Reorder fields within entries by canonical priority")
	f.BoolVarP(&flagModify, "modify", "m", false, "Rewrite input files in place")
	f.BoolVar(&flagReport, "report", false, "Print a tidy report instead of the tidied text")
	f.StringVar(&flagConfigPath, "config", "", "Config file (default $BIBTIDY_CONFIG or .bibtidy.yml)")
}

func runTidy(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	opts, texPaths := resolveOptions(cmd)
	if cmd.Flags().Changed("tex") {
		texPaths = flagTex
	}

	if len(texPaths) > 0 {
		text, err := corpus.Load(texPaths)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		opts.Tex = text
	}

	if flagModify && len(args) == 0 {
		exitWithError(ExitError, "--modify requires input files")
	}

	report := TidyReport{Status: "ok"}

	if len(args) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitWithError(ExitError, "reading stdin: %v", err)
		}
		res := tidyOne("stdin", string(src), opts, &report)
		if !flagReport {
			fmt.Print(res.Bibtex)
		}
	} else {
		for _, path := range args {
			src, err := os.ReadFile(path)
			if err != nil {
				exitWithError(ExitError, "reading %s: %v", path, err)
			}
			res := tidyOne(path, string(src), opts, &report)
			if flagModify {
				if err := os.WriteFile(path, []byte(res.Bibtex), 0644); err != nil {
					exitWithError(ExitError, "writing %s: %v", path, err)
				}
			} else if !flagReport {
				fmt.Print(res.Bibtex)
			}
		}
	}

	if flagReport || flagModify {
		printTidyReport(report)
	}
	return nil
}

func tidyOne(name, src string, opts tidy.Options, report *TidyReport) *tidy.Result {
	doc, err := bibtex.Parse(src)
	if err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", name, err)
	}

	res, err := tidy.Tidy(doc, opts)
	if err != nil {
		exitWithError(ExitError, "tidying %s: %v", name, err)
	}

	fr := FileReport{File: name, Entries: len(res.Entries)}
	for _, d := range res.Duplicates {
		fr.Duplicates = append(fr.Duplicates, DuplicateRecord{
			ID:          d.Entry.ID,
			DuplicateOf: d.DuplicateOf.ID,
		})
	}
	report.Files = append(report.Files, fr)
	return res
}

// resolveOptions loads the config file (if any) and overlays every
// flag the user set explicitly.
func resolveOptions(cmd *cobra.Command) (tidy.Options, []string) {
	var opts tidy.Options
	var texPaths []string

	path := flagConfigPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		opts = cfg.Options()
		texPaths = cfg.Tex
	}

	f := cmd.Flags()
	if f.Changed("omit") {
		opts.Omit = flagOmit
	}
	if f.Changed("curly") {
		opts.Curly = flagCurly
	}
	if f.Changed("numeric") {
		opts.Numeric = flagNumeric
	}
	if f.Changed("space") {
		opts.Space = flagSpace
	}
	if f.Changed("tab") {
		opts.Tab = flagTab
	}
	if f.Changed("metadata") {
		opts.Metadata = flagMetadata
	}
	if f.Changed("sort") {
		opts.Sort = true
		opts.SortFields = flagSort
	}
	if f.Changed("merge") {
		opts.Merge = flagMerge
	}
	if f.Changed("strip-enclosing-braces") {
		opts.StripEnclosingBraces = flagStrip
	}
	if f.Changed("drop-all-caps") {
		opts.DropAllCaps = flagDropCaps
	}
	if f.Changed("no-escape") {
		opts.NoEscape = flagNoEscape
	}
	if f.Changed("sort-properties") {
		opts.SortProperties = flagSortProps
	}

	return opts, texPaths
}

func printTidyReport(report TidyReport) {
	if !humanOutput {
		outputJSON(report)
		return
	}
	for _, fr := range report.Files {
		fmt.Printf("%s: %d entries", fr.File, fr.Entries)
		if len(fr.Duplicates) > 0 {
			fmt.Printf(", %d duplicates merged", len(fr.Duplicates))
		}
		fmt.Println()
		for _, d := range fr.Duplicates {
			fmt.Printf("  %s merged into %s\n", d.ID, d.DuplicateOf)
		}
	}
}
