package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jackal/format"
	"github.com/dhamidi/jackal/jack/parser"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Tokenize a .jack file and dump the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read jack file: %w", err)
			}

			tokens, err := parser.Tokenize(data, filename)
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			if err := format.NewTokensXMLEncoder(os.Stdout).Encode(tokens); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			return nil
		},
	}
}
