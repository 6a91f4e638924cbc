package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vartanlite",
	Short: "Tokenize and parse a source text against a hand-written lexical and grammar specification",
	Long: `vartanlite provides two features:
- Tokenizes a source text according to a file of regular definitions.
- Parses a token stream against an SLR(1) grammar, reporting either the
  rightmost derivation or a syntax error.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootFlags = struct {
	config *string
}{}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "path to a vartanlite.toml config file (default none)")
}

// Execute runs the root command, printing any returned error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
