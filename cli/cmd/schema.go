package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	parser "github.com/stephane-martin/forklift-log-parser"
)

var schemaJSON bool

type schemaColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type extractorSchema struct {
	Kind    string         `json:"kind"`
	Markers []string       `json:"markers"`
	Columns []schemaColumn `json:"columns"`
}

func newExtractorSchema(e parser.Extractor) extractorSchema {
	s := extractorSchema{
		Kind:    e.Kind(),
		Markers: e.Registry().Markers(),
	}
	for _, c := range e.Schema() {
		s.Columns = append(s.Columns, schemaColumn{Name: c.Name, Type: c.Kind.String()})
	}
	return s
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the output schema and the markers of each extractor",
	Run: func(cmd *cobra.Command, args []string) {
		logger := log15.New()
		logger.SetHandler(log15.DiscardHandler())
		extractors, err := parser.NewSet(kinds(), parser.Options{Logger: logger})
		fatal(err)
		if !schemaJSON {
			for _, e := range extractors {
				fmt.Printf("%s: %s\n", e.Kind(), strings.Join(e.Header(), ","))
			}
			return
		}
		schemas := make([]extractorSchema, 0, len(extractors))
		for _, e := range extractors {
			schemas = append(schemas, newExtractorSchema(e))
		}
		b, err := json.MarshalIndent(schemas, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(-1)
		}
		fmt.Println(string(b))
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "print the full schema as JSON")
}
