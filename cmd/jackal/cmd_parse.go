package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/jackal/format"
	"github.com/dhamidi/jackal/jack/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .jack file and dump the parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read jack file: %w", err)
			}

			p := parser.ParseClass(bytes.NewReader(data), parser.WithFile(filename))
			node, err := p.Finish()
			if err != nil {
				return fmt.Errorf("parse jack file: %w", err)
			}
			if rest := p.Rest(); len(rest) > 0 {
				return fmt.Errorf("%s: unexpected %q after class declaration",
					rest[0].Span.Start, rest[0].Literal)
			}

			switch outputFormat {
			case "xml":
				if err := format.NewXMLEncoder(os.Stdout).Encode(node); err != nil {
					return fmt.Errorf("encode xml: %w", err)
				}
			case "json":
				if err := format.NewASTJSONEncoder(os.Stdout).Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "tree":
				if includePositions {
					fmt.Print(node.StringWithPositions())
				} else {
					fmt.Print(node.String())
				}
			default:
				return fmt.Errorf("unknown format: %s (expected xml, json, or tree)", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "xml", "output format (xml, json, tree)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include token positions in tree output")

	return cmd
}
