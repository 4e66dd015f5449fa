package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"ocl/internal/errors"
	"ocl/token"
)

var (
	symbols        = OCLLexer.Symbols()
	keywordType    = symbols["Keyword"]
	operatorType   = symbols["Operator"]
	whitespaceType = symbols["Whitespace"]
	commentType    = symbols["Comment"]
)

// nestingLevel is one open '(', '{' or 'if' with the prefix operators
// waiting for an operand and the let bodies opened inside it.
type nestingLevel struct {
	prefix int
	lets   int
}

// checkDepth rejects input nested deeper than maxDepth before participle
// recurses into it. Levels are counted the way the native parser counts
// them: the outermost expression is one, and each open '(', '{' or 'if',
// each pending 'not' or unary '-' and each enclosing 'let' adds one.
// Lexical errors are left for the parser to report.
func checkDepth(source string, maxDepth int) error {
	lex, err := OCLLexer.LexString("", source)
	if err != nil {
		return nil
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil
	}

	levels := []nestingLevel{{}}
	depth := 1
	var prev *lexer.Token
	for i := range tokens {
		tok := &tokens[i]
		if tok.EOF() || tok.Type == whitespaceType || tok.Type == commentType {
			continue
		}
		top := &levels[len(levels)-1]

		switch {
		case isPrefixOperator(prev, tok):
			top.prefix++
			depth++
		case opens(tok):
			levels = append(levels, nestingLevel{})
			depth++
		case closes(tok):
			if len(levels) > 1 {
				depth -= top.prefix + top.lets + 1
				levels = levels[:len(levels)-1]
				top = &levels[len(levels)-1]
			}
			depth -= top.prefix
			top.prefix = 0
		case tok.Type == keywordType && tok.Value == "let":
			depth -= top.prefix
			top.prefix = 0
			top.lets++
			depth++
		default:
			depth -= top.prefix
			top.prefix = 0
		}

		if depth > maxDepth {
			sp := token.Span{From: tok.Pos.Offset, To: tok.Pos.Offset + len(tok.Value)}
			return errors.NestingTooDeep(maxDepth, sp)
		}
		prev = tok
	}
	return nil
}

func opens(tok *lexer.Token) bool {
	switch tok.Type {
	case operatorType:
		return tok.Value == "(" || tok.Value == "{"
	case keywordType:
		return tok.Value == "if"
	}
	return false
}

func closes(tok *lexer.Token) bool {
	switch tok.Type {
	case operatorType:
		return tok.Value == ")" || tok.Value == "}"
	case keywordType:
		return tok.Value == "endif"
	}
	return false
}

// isPrefixOperator reports whether tok is 'not', or a '-' that starts an
// operand rather than continuing one.
func isPrefixOperator(prev, tok *lexer.Token) bool {
	if tok.Type == keywordType {
		return tok.Value == "not"
	}
	if tok.Type != operatorType || tok.Value != "-" {
		return false
	}
	if prev == nil {
		return true
	}
	switch prev.Type {
	case operatorType:
		switch prev.Value {
		case ")", "}", "]":
			return false
		}
		return true
	case keywordType:
		switch prev.Value {
		case "true", "false", "null", "invalid", "self", "endif":
			return false
		}
		return true
	}
	return false
}
