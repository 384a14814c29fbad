package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	parser "github.com/stephane-martin/forklift-log-parser"
)

var fnames = make([]string, 0)
var output string
var jsonExport bool

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse forklift log files and write one CSV file per extractor",
	Run: func(cmd *cobra.Command, args []string) {
		if len(fnames) == 0 {
			fatal(errors.New("specify the files to be parsed"))
		}
		logger := newLogger()
		for _, fname := range fnames {
			fname = strings.TrimSpace(fname)
			f, err := os.Open(fname)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening '%s': %s\n", fname, err)
				continue
			}
			extractors, summary, err := doParse(f, logger.New("file", fname))
			f.Close()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing '%s': %s\n", fname, err)
				continue
			}
			written, err := writeResults(output, outputStem(fname), extractors, jsonExport)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			printSummary(fname, summary, extractors, written)
		}
	},
}

func doParse(in io.Reader, logger log15.Logger) ([]parser.Extractor, parser.Summary, error) {
	a, err := newAssembler(logger)
	if err != nil {
		return nil, parser.Summary{}, err
	}
	err = a.Scan(in)
	return a.Extractors(), a.Summary(), err
}

func outputStem(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeResults writes one file per extractor in outDir, or everything to
// stdout when outDir is empty. It returns the names of the written files.
func writeResults(outDir string, stem string, extractors []parser.Extractor, jsonExport bool) ([]string, error) {
	if len(outDir) == 0 {
		for i, e := range extractors {
			if i > 0 {
				fmt.Println()
			}
			if err := writeResult(os.Stdout, e, jsonExport); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return nil, err
	}
	ext := ".csv"
	if jsonExport {
		ext = ".jsonlines"
	}
	written := make([]string, 0, len(extractors))
	for _, e := range extractors {
		outFname := filepath.Join(outDir, stem+"."+e.Kind()+ext)
		outFile, err := os.Create(outFname)
		if err != nil {
			return written, err
		}
		err = writeResult(outFile, e, jsonExport)
		outFile.Close()
		if err != nil {
			return written, err
		}
		written = append(written, outFname)
	}
	return written, nil
}

func writeResult(w io.Writer, e parser.Extractor, jsonExport bool) error {
	if jsonExport {
		return parser.WriteJSONLines(w, e)
	}
	return parser.WriteCSV(w, e)
}

func printSummary(fname string, summary parser.Summary, extractors []parser.Extractor, written []string) {
	fmt.Fprintf(os.Stderr, "Parsed '%s': %d lines\n", fname, summary.Lines)
	for _, e := range extractors {
		kind := e.Kind()
		fmt.Fprintf(os.Stderr, "- %s: %d records", kind, summary.Records[kind])
		if n := summary.Discarded[kind]; n > 0 {
			fmt.Fprintf(os.Stderr, ", %d unterminated", n)
		}
		fmt.Fprintln(os.Stderr)
	}
	for _, outFname := range written {
		fmt.Fprintln(os.Stderr, "Written:", outFname)
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringArrayVar(&fnames, "filename", []string{}, "the files to parse")
	parseCmd.Flags().StringVar(&output, "output", "", "output directory (if empty, use stdout)")
	parseCmd.Flags().BoolVar(&jsonExport, "json", false, "write the records as JSON lines instead of CSV")
}
