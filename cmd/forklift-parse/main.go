package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inconshreveable/log15"
	parser "github.com/stephane-martin/forklift-log-parser"
)

var filename = flag.String("fname", "", "path to the forklift log file to parse")
var outFilename = flag.String("out", filepath.Join("output", "parsed_lines.log"), "path to the CSV file to write")
var encoding = flag.String("encoding", "windows-1252", "encoding of the log file")

func main() {
	flag.Parse()
	*filename = strings.TrimSpace(*filename)
	if len(*filename) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	logger := log15.New("file", *filename)
	logger.SetHandler(log15.LvlFilterHandler(log15.LvlWarn, log15.StderrHandler))

	decoder, err := parser.NewDecoder(*encoding, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	hashInsert := parser.NewHashInsertTemp(parser.Options{KeepPallet: true, Logger: logger})
	a := parser.NewAssembler(logger, hashInsert)
	a.Decoder = decoder
	if err := a.ScanFile(*filename); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}

	if err := os.MkdirAll(filepath.Dir(*outFilename), 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	out, err := os.Create(*outFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating '%s': %s\n", *outFilename, err)
		os.Exit(-1)
	}
	defer out.Close()
	if err := parser.WriteCSV(out, hashInsert); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	fmt.Fprintf(os.Stderr, "Written: %s (%d records)\n", *outFilename, len(hashInsert.Records()))
}
