// Package main provides the vcfkit command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by subcommands once flags and config are read.
type app struct {
	cfgFile string
	logger  *zap.Logger
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	a := &app{logger: zap.NewNop()}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	_ = a.logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// usageError marks errors caused by invalid flag combinations.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "vcfkit",
		Short: "Inspect and query VCF files",
		Long: `vcfkit loads a VCF file (plain, gzip or BGZF) into memory and answers
questions about its header and records.`,
		Example: `  vcfkit header sample.vcf.gz
  vcfkit query sample.vcf --chrom 1 --start 10000 --end 20000 --status PASS
  vcfkit key DP`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd, a.cfgFile); err != nil {
				return err
			}
			logger, err := newLogger(configString(keyLogLevel))
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: ~/.vcfkit.yaml)")
	root.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().Int("workers", 1, "Goroutines used to parse data lines (1 = sequential)")

	root.AddCommand(
		newHeaderCmd(a),
		newChromsCmd(a),
		newQueryCmd(a),
		newContigCmd(a),
		newKeyCmd(),
		newKeysCmd(),
		newIndexCmd(a),
		newSearchCmd(a),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vcfkit version %s (%s) built %s\n", version, commit, date)
		},
	}
}
