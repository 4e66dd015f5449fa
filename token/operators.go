package token

// Operator enumerates the 24 operator and punctuation kinds.
type Operator int

const (
	NO_OPERATOR Operator = iota
	DOT
	DOUBLE_DOT
	ARROW
	STAR
	PLUS
	MINUS
	SLASH
	LESS
	GREATER
	LESS_EQUAL
	GREATER_EQUAL
	EQUAL
	NOT_EQUAL
	COLON
	DOUBLE_COLON
	COMMA
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	PIPE
	AT
)

var operatorSymbols = [...]string{
	NO_OPERATOR:   "",
	DOT:           ".",
	DOUBLE_DOT:    "..",
	ARROW:         "->",
	STAR:          "*",
	PLUS:          "+",
	MINUS:         "-",
	SLASH:         "/",
	LESS:          "<",
	GREATER:       ">",
	LESS_EQUAL:    "<=",
	GREATER_EQUAL: ">=",
	EQUAL:         "=",
	NOT_EQUAL:     "<>",
	COLON:         ":",
	DOUBLE_COLON:  "::",
	COMMA:         ",",
	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	LEFT_BRACE:    "{",
	RIGHT_BRACE:   "}",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	PIPE:          "|",
	AT:            "@",
}

var operators = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorSymbols)-1)
	for op, sym := range operatorSymbols {
		if sym != "" {
			m[sym] = Operator(op)
		}
	}
	return m
}()

func (o Operator) String() string {
	if o > NO_OPERATOR && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return "<no operator>"
}

// LookupOperator maps a one- or two-character symbol to its operator.
func LookupOperator(symbol string) (Operator, bool) {
	op, ok := operators[symbol]
	return op, ok
}

// IsOperatorStart reports whether c begins an operator token.
func IsOperatorStart(c byte) bool {
	switch c {
	case '.', '*', '+', '-', '/', '<', '>', '=', ':', ',', '(', ')', '{', '}', '[', ']', '|', '@':
		return true
	}
	return false
}

// IsOperatorFollowUp reports whether c may complete a two-character operator.
func IsOperatorFollowUp(c byte) bool {
	switch c {
	case '.', '>', '=', ':':
		return true
	}
	return false
}
