package cmd

import (
	"errors"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"sort"

	"github.com/clarkduvall/hyperloglog"
	"github.com/spaolacci/murmur3"
	"github.com/spf13/cobra"
	parser "github.com/stephane-martin/forklift-log-parser"
)

var precision uint8

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Estimate the number of distinct pallets and destinations over many log files",
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

		st, err := newStats(precision)
		fatal(err)
		logger := newLogger()
		for _, file := range inputFiles {
			a, err := newAssembler(logger.New("file", file))
			fatal(err)
			if err := a.ScanFile(file); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			st.add(a.Extractors(), a.Summary())
		}
		st.print()
	},
}

type stats struct {
	files        int
	lines        int
	records      map[string]int
	discarded    map[string]int
	pallets      *hyperloglog.HyperLogLogPlus
	destinations *hyperloglog.HyperLogLogPlus
}

func newStats(precision uint8) (*stats, error) {
	pallets, err := hyperloglog.NewPlus(precision)
	if err != nil {
		return nil, err
	}
	destinations, err := hyperloglog.NewPlus(precision)
	if err != nil {
		return nil, err
	}
	return &stats{
		records:      make(map[string]int),
		discarded:    make(map[string]int),
		pallets:      pallets,
		destinations: destinations,
	}, nil
}

func hash64(s string) hash.Hash64 {
	h := murmur3.New64()
	h.Write([]byte(s))
	return h
}

func (s *stats) add(extractors []parser.Extractor, summary parser.Summary) {
	s.files++
	s.lines += summary.Lines
	for kind, n := range summary.Records {
		s.records[kind] += n
	}
	for kind, n := range summary.Discarded {
		s.discarded[kind] += n
	}
	for _, e := range extractors {
		for _, r := range e.Records() {
			pallet, dest := r.Crate()
			if pallet.Valid {
				s.pallets.Add(hash64(pallet.Value))
			}
			if dest.Valid {
				s.destinations.Add(hash64(dest.Value))
			}
		}
	}
}

func (s *stats) print() {
	fmt.Printf("files: %d\n", s.files)
	fmt.Printf("lines: %d\n", s.lines)
	kinds := make([]string, 0, len(s.records))
	for kind := range s.records {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("%s records: %d (unterminated: %d)\n", kind, s.records[kind], s.discarded[kind])
	}
	fmt.Printf("distinct pallets (approx.): %d\n", s.pallets.Count())
	fmt.Printf("distinct destinations (approx.): %d\n", s.destinations.Count())
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&input, "input", "", "input directory")
	statsCmd.Flags().StringVar(&extension, "ext", "log", "only select input files with that extension")
	statsCmd.Flags().Uint8Var(&precision, "precision", 14, "HyperLogLog++ precision (4 to 18)")
}
