package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ocl/internal/parser"
	"ocl/token"
)

func newTokenizeCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ocl",
		Short: "Tokenize an OCL source file",
		Long:  `Tokenize breaks an OCL source file into keywords, identifiers, operators and literals`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, s, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

// tokenOutput is the JSON form of one token.
type tokenOutput struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text"`
	From    int      `json:"from"`
	To      int      `json:"to"`
	Keyword string   `json:"keyword,omitempty"`
	Integer *int64   `json:"integer,omitempty"`
	Real    *float64 `json:"real,omitempty"`
}

func runTokenize(cmd *cobra.Command, s *settings, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tokens, err := parser.Lex(string(source))
	if err != nil {
		return reportDiagnostic(cmd, path, string(source), err)
	}

	out := cmd.OutOrStdout()
	switch s.Format {
	case "pretty":
		return formatTokensPretty(out, string(source), tokens)
	case "json":
		return formatTokensJSON(out, string(source), tokens)
	default:
		return fmt.Errorf("unknown format: %s", s.Format)
	}
}

func formatTokensPretty(w io.Writer, source string, tokens []token.Token) error {
	for _, tok := range tokens {
		pos := token.Locate(source, tok.Span.From)
		if _, err := fmt.Fprintf(w, "%4d:%-3d %-10s %q\n", pos.Line, pos.Column, tok.Kind, tok.Text(source)); err != nil {
			return err
		}
	}
	return nil
}

func formatTokensJSON(w io.Writer, source string, tokens []token.Token) error {
	output := make([]tokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		o := tokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text(source),
			From: tok.Span.From,
			To:   tok.Span.To,
		}
		switch {
		case tok.Kind == token.KEYWORD:
			o.Keyword = tok.Keyword.String()
		case tok.Kind == token.LITERAL && tok.Literal.Kind == token.INTEGER:
			v := tok.Literal.Integer
			o.Integer = &v
		case tok.Kind == token.LITERAL && tok.Literal.Kind == token.REAL:
			v := tok.Literal.Real
			o.Real = &v
		}
		output = append(output, o)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
