package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	parser "github.com/stephane-martin/forklift-log-parser"
)

// uniqueCmd represents the unique command
var uniqueCmd = &cobra.Command{
	Use:   "unique",
	Short: "Count the number of unique records over many log files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(input) == 0 {
			fatal(errors.New("specify an input directory"))
		}
		input, err := filepath.Abs(input)
		fatal(err)

		inputFiles, err := findFiles(input, extension)
		fatal(err)
		if len(inputFiles) == 0 {
			fmt.Fprintln(os.Stderr, "No file to process.")
			return
		}
		uniqueHashes := make(map[string]bool)
		var total uint64
		_, err = scanUnique(inputFiles, newLogger(), uniqueHashes, &total)
		fatal(err)
	},
}

// scanUnique adds the records of every file to uniques. A file that fails
// to parse is reported and skipped.
func scanUnique(files []string, logger log15.Logger, uniques map[string]bool, total *uint64) (int, error) {
	failed := 0
	for _, file := range files {
		a, err := newAssembler(logger.New("file", file))
		if err != nil {
			return failed, err
		}
		if err := a.ScanFile(file); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed++
			continue
		}
		uniqueRecords(a.Extractors(), uniques, total)
		fmt.Fprintf(os.Stderr, "%d unique records / %d\n", len(uniques), *total)
	}
	return failed, nil
}

func uniqueRecords(extractors []parser.Extractor, uniques map[string]bool, total *uint64) {
	for _, e := range extractors {
		for _, r := range e.Records() {
			(*total)++
			uniques[string(parser.RecordHash(e.Kind(), r))] = true
		}
	}
}

func init() {
	rootCmd.AddCommand(uniqueCmd)
	uniqueCmd.Flags().StringVar(&input, "input", "", "input directory")
	uniqueCmd.Flags().StringVar(&extension, "ext", "log", "only select input files with that extension")
}
