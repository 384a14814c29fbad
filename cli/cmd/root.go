package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	parser "github.com/stephane-martin/forklift-log-parser"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "forklift-log-parser",
	Short: "Extract pallet and crate operations from forklift log files",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

func fatal(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("loglevel", "info", "logging level (debug, info, warn, error, crit)")
	flags.String("encoding", "windows-1252", "encoding of the log files (utf-8, windows-1252, iso-8859-1, iso-8859-15, cp437)")
	flags.Bool("ascii", false, "transliterate extracted values to ASCII")
	flags.Bool("keep-pallet", false, "keep the pallet name across the crates of a pallet")
	flags.StringSlice("kinds", parser.Kinds(), "extractor kinds to run")
	for _, name := range []string{"loglevel", "encoding", "ascii", "keep-pallet", "kinds"} {
		fatal(viper.BindPFlag(name, flags.Lookup(name)))
	}
}

func initConfig() {
	viper.SetEnvPrefix("forklift")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if len(cfgFile) == 0 {
		return
	}
	viper.SetConfigFile(cfgFile)
	fatal(errors.Wrap(viper.ReadInConfig(), "reading config"))
}

func newLogger() log15.Logger {
	lvl, err := log15.LvlFromString(viper.GetString("loglevel"))
	fatal(err)
	logger := log15.New("run", uuid.NewV4().String())
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StderrHandler))
	return logger
}

// kinds reads the selected extractor kinds. Values coming from the
// environment are split on whitespace only, so commas are split here.
func kinds() []string {
	var ks []string
	for _, v := range viper.GetStringSlice("kinds") {
		for _, k := range strings.Split(v, ",") {
			k = strings.TrimSpace(k)
			if len(k) > 0 {
				ks = append(ks, k)
			}
		}
	}
	return ks
}

// newAssembler builds a fresh assembler and extractors from the current
// configuration.
func newAssembler(logger log15.Logger) (*parser.Assembler, error) {
	extractors, err := parser.NewSet(kinds(), parser.Options{
		KeepPallet: viper.GetBool("keep-pallet"),
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	decoder, err := parser.NewDecoder(viper.GetString("encoding"), viper.GetBool("ascii"))
	if err != nil {
		return nil, err
	}
	a := parser.NewAssembler(logger, extractors...)
	a.Decoder = decoder
	return a, nil
}

func findFiles(input string, extension string) ([]string, error) {
	if len(extension) > 0 && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	inputFiles := make([]string, 0)
	err := filepath.Walk(input, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode().IsRegular() && (len(extension) == 0 || filepath.Ext(path) == extension) {
			path, err = filepath.Abs(path)
			if err != nil {
				return err
			}
			inputFiles = append(inputFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inputFiles, nil
}
