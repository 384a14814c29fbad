package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	parser "github.com/stephane-martin/forklift-log-parser"
)

var noColor bool

var (
	kindColor    = color.New(color.FgCyan, color.Bold).SprintFunc()
	fieldColor   = color.New(color.FgHiBlack).SprintFunc()
	warningColor = color.New(color.FgRed).SprintFunc()
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the records of forklift log files as formatted text",
	Run: func(cmd *cobra.Command, args []string) {
		if len(fnames) == 0 {
			fatal(errors.New("specify the files to be parsed"))
		}
		if noColor {
			color.NoColor = true
		}
		logger := newLogger()
		for _, fname := range fnames {
			fname = strings.TrimSpace(fname)
			a, err := newAssembler(logger.New("file", fname))
			fatal(err)
			if err := a.ScanFile(fname); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Printf("%s\n\n", fname)
			for _, e := range a.Extractors() {
				printRecords(os.Stdout, e)
			}
		}
	},
}

func printRecords(w io.Writer, e parser.Extractor) {
	header := e.Header()
	for i, r := range e.Records() {
		fmt.Fprintf(w, "%s #%d\n", kindColor(e.Kind()), i+1)
		for j, v := range r.Values() {
			if header[j] == "warning" {
				continue
			}
			if len(v) == 0 {
				v = "-"
			}
			fmt.Fprintf(w, "  %s %s\n", fieldColor(fmt.Sprintf("%-15s", header[j])), v)
		}
		if warning := r.Warning(); len(warning) > 0 {
			fmt.Fprintf(w, "  %s\n", warningColor("warning: "+warning))
		}
		fmt.Fprintln(w)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringArrayVar(&fnames, "filename", []string{}, "the files to parse")
	reportCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
}
