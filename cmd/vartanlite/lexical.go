package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/vartanlite/internal/config"
	"github.com/nihei9/vartanlite/internal/lexer"
	"github.com/nihei9/vartanlite/internal/pipeline"
)

var lexicalFlags = struct {
	out *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "lexical <definitions_file> <source_file>",
		Short:   "Tokenize a source file against a file of regular definitions",
		Example: `  vartanlite lexical defs.txt source.txt -o tokens.txt`,
		Args:    cobra.ExactArgs(2),
		RunE:    runLexical,
	}
	lexicalFlags.out = cmd.Flags().StringP("output", "o", "", "output file path for the token stream (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runLexical(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(*rootFlags.config)
	if err != nil {
		return err
	}

	defsFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open definitions file %s: %w", args[0], err)
	}
	defer defsFile.Close()

	srcFile, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("cannot open source file %s: %w", args[1], err)
	}
	defer srcFile.Close()

	outPath := *lexicalFlags.out
	if outPath == "" {
		outPath = cfg.TokensOut
	}

	var out *os.File
	if outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("cannot open output file %s: %w", outPath, err)
		}
		defer out.Close()
	}

	tokens, err := pipeline.Lexical(defsFile, srcFile, out)
	if err != nil {
		return err
	}

	for _, t := range tokens {
		if t.Tag == lexer.ErrorTag {
			return fmt.Errorf("lexical analysis produced one or more unrecognized lexemes")
		}
	}
	return nil
}
