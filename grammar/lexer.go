package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var OCLLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `--[^\n]*`, Action: nil},

		// Keywords must win over identifiers
		{Name: "Keyword", Pattern: `(and|body|context|def|derive|else|endif|endpackage|false|if|implies|in|init|inv|invalid|let|not|null|or|package|post|pre|self|static|then|true|xor)\b`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z]+`, Action: nil},

		// A real needs a digit after the point, so "1..5" stays a range
		{Name: "Real", Pattern: `[0-9]+\.[0-9]+`, Action: nil},
		{Name: "Integer", Pattern: `[0-9]+`, Action: nil},

		{Name: "String", Pattern: `"[^"]*"`, Action: nil},

		{Name: "Operator", Pattern: `\.\.|->|<=|>=|<>|::|[-.*+/<>=:,(){}\[\]|@]`, Action: nil},

		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
