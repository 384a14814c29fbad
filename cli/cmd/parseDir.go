package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var input string
var extension string
var parallel uint8

var parseDirCmd = &cobra.Command{
	Use:   "parse-dir",
	Short: "Parse every log file of some input directory",
	Run: func(cmd *cobra.Command, args []string) {
		if len(input) == 0 {
			fatal(errors.New("specify an input directory"))
		}
		if parallel == 0 {
			parallel = 1
		}
		curdir, err := os.Getwd()
		fatal(err)
		curdir, err = filepath.Abs(curdir)
		fatal(err)
		input, err = filepath.Abs(filepath.Join(curdir, input))
		fatal(err)
		if len(output) > 0 {
			outputInfos, err := os.Stat(output)
			if err != nil && !os.IsNotExist(err) {
				// error when stat'ing the output directory
				fatal(err)
			}
			if err == nil && !outputInfos.IsDir() {
				fatal(errors.New("output is not a directory"))
			}
			output, err = filepath.Abs(output)
			fatal(err)
		}

		inputFiles, err := findFiles(input, extension)
		fatal(err)
		if len(inputFiles) == 0 {
			fmt.Fprintln(os.Stderr, "No file to process.")
			return
		}
		fmt.Fprintln(os.Stderr, "Will process the following files")
		for _, fname := range inputFiles {
			fmt.Fprintf(os.Stderr, "- %s\n", fname)
		}
		fmt.Fprintln(os.Stderr)

		logger := newLogger()
		// stdout is shared by the workers
		var stdoutMu sync.Mutex
		var g errgroup.Group
		g.SetLimit(int(parallel))
		for _, fname := range inputFiles {
			fname := fname
			g.Go(func() error {
				relpath, err := filepath.Rel(input, fname)
				if err != nil {
					logger.Error("Skipping file", "file", fname, "error", err)
					return nil
				}
				outDir := ""
				if len(output) > 0 {
					outDir = filepath.Join(output, filepath.Dir(relpath))
				} else {
					stdoutMu.Lock()
					defer stdoutMu.Unlock()
				}
				inFile, err := os.Open(fname)
				if err != nil {
					logger.Error("Skipping file", "file", fname, "error", err)
					return nil
				}
				extractors, summary, err := doParse(inFile, logger.New("file", relpath))
				inFile.Close()
				if err != nil {
					logger.Error("Parsing failed", "file", fname, "error", err)
					return nil
				}
				written, err := writeResults(outDir, outputStem(relpath), extractors, jsonExport)
				if err != nil {
					logger.Error("Writing results failed", "file", fname, "error", err)
					return nil
				}
				logger.Info("Processed", "file", relpath, "lines", summary.Lines, "written", len(written))
				return nil
			})
		}
		fatal(g.Wait())
	},
}

func init() {
	rootCmd.AddCommand(parseDirCmd)
	parseDirCmd.Flags().StringVar(&input, "input", "", "input directory")
	parseDirCmd.Flags().StringVar(&output, "output", "", "output directory (if empty, use stdout)")
	parseDirCmd.Flags().StringVar(&extension, "ext", "log", "only select input files with that extension")
	parseDirCmd.Flags().BoolVar(&jsonExport, "json", false, "write the records as JSON lines instead of CSV")
	parseDirCmd.Flags().Uint8Var(&parallel, "parallel", 1, "number of files parsed at the same time")
}
