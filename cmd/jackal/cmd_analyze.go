package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/jackal/format"
	"github.com/dhamidi/jackal/jack/parser"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var withTokens bool

	cmd := &cobra.Command{
		Use:   "analyze <file-or-directory>",
		Short: "Parse .jack sources and write the parse tree next to each file",
		Long: `Analyze parses a single .jack file or every .jack file in a
directory and writes the parse-tree markup to F.xml next to each
source file F.jack. With --tokens, the token stream is written to
FT.xml as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			var sources []string
			if info.IsDir() {
				entries, err := os.ReadDir(path)
				if err != nil {
					return fmt.Errorf("read directory: %w", err)
				}
				for _, entry := range entries {
					if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".jack") {
						sources = append(sources, filepath.Join(path, entry.Name()))
					}
				}
				if len(sources) == 0 {
					return fmt.Errorf("no .jack files in %s", path)
				}
			} else {
				if filepath.Ext(path) != ".jack" {
					return fmt.Errorf("unsupported file extension: %s (expected .jack)", filepath.Ext(path))
				}
				sources = []string{path}
			}

			for _, source := range sources {
				if err := analyzeFile(source, withTokens); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&withTokens, "tokens", "t", false, "also write the token stream to FT.xml")

	return cmd
}

func analyzeFile(source string, withTokens bool) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	base := strings.TrimSuffix(source, ".jack")

	if withTokens {
		tokens, err := parser.Tokenize(data, source)
		if err != nil {
			return fmt.Errorf("tokenize %s: %w", source, err)
		}
		if err := writeEncoded(base+"T.xml", func(out *os.File) error {
			return format.NewTokensXMLEncoder(out).Encode(tokens)
		}); err != nil {
			return err
		}
	}

	p := parser.ParseClass(bytes.NewReader(data), parser.WithFile(source))
	node, err := p.Finish()
	if err != nil {
		return fmt.Errorf("parse %s: %w", source, err)
	}
	if rest := p.Rest(); len(rest) > 0 {
		return fmt.Errorf("%s: unexpected %q after class declaration",
			rest[0].Span.Start, rest[0].Literal)
	}

	return writeEncoded(base+".xml", func(out *os.File) error {
		return format.NewXMLEncoder(out).Encode(node)
	})
}

func writeEncoded(path string, encode func(*os.File) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := encode(out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
