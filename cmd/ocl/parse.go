package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ocl/ast"
	"ocl/grammar"
	"ocl/internal/parser"
)

func newParseCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.ocl",
		Short: "Parse an OCL source file and print its syntax tree",
		Long: `Parse reads a single constraint, or with --document a whole constraint
document, and prints the syntax tree as OCL text, JSON or msgpack`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := cmd.Flags().GetBool("document")
			if err != nil {
				return fmt.Errorf("failed to get document flag: %w", err)
			}
			return runParse(cmd, s, args[0], document)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().String("engine", "native", "parser implementation (native|participle)")
	cmd.Flags().Bool("document", false, "parse a document of context blocks and packages")
	return cmd
}

func runParse(cmd *cobra.Command, s *settings, path string, document bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	source := string(content)

	var (
		text string
		dump *ast.DumpNode
	)
	if document {
		doc, err := parseDocument(s, source)
		if err != nil {
			return reportDiagnostic(cmd, path, source, err)
		}
		text, dump = doc.String(), ast.Dump(doc)
	} else {
		tree, err := parseConstraint(s, source)
		if err != nil {
			return reportDiagnostic(cmd, path, source, err)
		}
		text, dump = tree.String(), ast.DumpTree(tree)
	}

	log.Debugf("parsed %s with the %s engine", path, s.Engine)
	return writeParsed(cmd.OutOrStdout(), s.Format, text, dump)
}

func parseConstraint(s *settings, source string) (*ast.AbstractSyntaxTree, error) {
	if s.Engine == "participle" {
		return grammar.ParseWith(source, s.ParserOptions())
	}
	return parser.ParseWith(source, s.ParserOptions())
}

func parseDocument(s *settings, source string) (*ast.Document, error) {
	if s.Engine == "participle" {
		return grammar.ParseDocumentWith(source, s.ParserOptions())
	}
	return parser.ParseDocument(source, s.ParserOptions())
}

func writeParsed(w io.Writer, format, text string, dump *ast.DumpNode) error {
	switch format {
	case "pretty":
		_, err := fmt.Fprintln(w, text)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case "msgpack":
		return ast.WriteMsgpack(w, dump)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
