// Package repl reads OCL constraints line by line and prints their syntax
// trees or the diagnostic that stopped them.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ocl/internal/errors"
	"ocl/internal/parser"
)

const PROMPT = ">> "

const help = `Enter a constraint or expression to see its syntax tree.
  :tokens <text>  show the tokens of <text>
  :help           show this message
  :quit           leave the session
`

// Start runs the loop until in is exhausted or the user quits.
func Start(in io.Reader, out io.Writer, opts parser.Options) error {
	scanner := bufio.NewScanner(in)

	for {
		if _, err := fmt.Fprint(out, PROMPT); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return nil
		case line == ":help":
			fmt.Fprint(out, help)
		case strings.HasPrefix(line, ":tokens"):
			printTokens(out, strings.TrimSpace(strings.TrimPrefix(line, ":tokens")))
		case strings.HasPrefix(line, ":"):
			fmt.Fprintf(out, "unknown command %s, try :help\n", line)
		default:
			printTree(out, line, opts)
		}
	}
}

func printTree(out io.Writer, line string, opts parser.Options) {
	tree, err := parser.ParseWith(line, opts)
	if err != nil {
		report(out, line, err)
		return
	}
	fmt.Fprintln(out, tree.String())
}

func printTokens(out io.Writer, line string) {
	tokens, err := parser.Lex(line)
	if err != nil {
		report(out, line, err)
		return
	}
	for _, tok := range tokens {
		fmt.Fprintf(out, "%-10s %-12q %s\n", tok.Kind, tok.Text(line), tok.Span)
	}
}

func report(out io.Writer, line string, err error) {
	if fe, ok := err.(*errors.FrontEndError); ok {
		fmt.Fprint(out, errors.NewErrorReporter("<repl>", line).FormatError(fe))
		return
	}
	fmt.Fprintf(out, "error: %v\n", err)
}
