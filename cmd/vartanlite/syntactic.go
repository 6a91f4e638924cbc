package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/spf13/cobra"

	"github.com/nihei9/vartanlite/internal/config"
	"github.com/nihei9/vartanlite/internal/grammar"
	"github.com/nihei9/vartanlite/internal/pipeline"
	"github.com/nihei9/vartanlite/internal/specerr"
)

func init() {
	cmd := &cobra.Command{
		Use:     "syntactic <grammar_file> <tokens_file>",
		Short:   "Parse a token file against a grammar, reporting a derivation or a syntax error",
		Example: `  vartanlite syntactic grammar.txt tokens.txt`,
		Args:    cobra.ExactArgs(2),
		RunE:    runSyntactic,
	}
	rootCmd.AddCommand(cmd)
}

func runSyntactic(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(*rootFlags.config)
	if err != nil {
		return err
	}

	grammarFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open grammar file %s: %w", args[0], err)
	}
	defer grammarFile.Close()

	tokensFile, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("cannot open tokens file %s: %w", args[1], err)
	}
	defer tokensFile.Close()

	report, err := pipeline.Syntactic(grammarFile, tokensFile, cfg.QuoteDelimiter)
	if err != nil {
		fmt.Fprintln(os.Stdout, rosed.Edit(err.Error()).Wrap(72).String())
		return err
	}

	if !report.Accepted {
		fmt.Fprintln(os.Stdout, rosed.Edit(formatSyntaxError(report.Err)).Wrap(72).String())
		return fmt.Errorf("sentence rejected")
	}

	fmt.Fprintln(os.Stdout, "SENTENCE ACCEPTED")
	fmt.Fprintln(os.Stdout, rosed.Edit(formatDerivation(report.Derivation)).Wrap(72).String())
	return nil
}

func formatSyntaxError(err error) string {
	var se *specerr.SyntaxError
	if errors.As(err, &se) {
		return fmt.Sprintf("SYNTAX ERROR at position %d: unexpected token %s %q (state %d), expected one of: %s",
			se.Position, se.Token, se.Lexeme, se.State, strings.Join(se.Expected, ", "))
	}
	return "SYNTAX ERROR: " + err.Error()
}

func formatDerivation(derivation []grammar.Production) string {
	var b strings.Builder
	b.WriteString("Rightmost derivation:\n")
	for i, p := range derivation {
		fmt.Fprintf(&b, "%d: %s\n", i+1, p.String())
	}
	return b.String()
}
