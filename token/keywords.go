package token

// Keyword enumerates the 27 reserved words of OCL.
type Keyword int

const (
	NO_KEYWORD Keyword = iota
	AND
	BODY
	CONTEXT
	DEF
	DERIVE
	ELSE
	ENDIF
	ENDPACKAGE
	FALSE
	IF
	IMPLIES
	IN
	INIT
	INV
	INVALID
	LET
	NOT
	NULL
	OR
	PACKAGE
	POST
	PRE
	SELF
	STATIC
	THEN
	TRUE
	XOR
)

var keywordNames = [...]string{
	NO_KEYWORD: "",
	AND:        "and",
	BODY:       "body",
	CONTEXT:    "context",
	DEF:        "def",
	DERIVE:     "derive",
	ELSE:       "else",
	ENDIF:      "endif",
	ENDPACKAGE: "endpackage",
	FALSE:      "false",
	IF:         "if",
	IMPLIES:    "implies",
	IN:         "in",
	INIT:       "init",
	INV:        "inv",
	INVALID:    "invalid",
	LET:        "let",
	NOT:        "not",
	NULL:       "null",
	OR:         "or",
	PACKAGE:    "package",
	POST:       "post",
	PRE:        "pre",
	SELF:       "self",
	STATIC:     "static",
	THEN:       "then",
	TRUE:       "true",
	XOR:        "xor",
}

var keywords = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames)-1)
	for kw, name := range keywordNames {
		if name != "" {
			m[name] = Keyword(kw)
		}
	}
	return m
}()

func (k Keyword) String() string {
	if k > NO_KEYWORD && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return "<no keyword>"
}

// LookupKeyword matches text against the keyword table. The match is
// case-sensitive and exact.
func LookupKeyword(text string) (Keyword, bool) {
	kw, ok := keywords[text]
	return kw, ok
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	out := make([]string, 0, len(keywordNames)-1)
	for _, name := range keywordNames[1:] {
		out = append(out, name)
	}
	return out
}

// IsStereotype reports whether k opens a constraint body.
func (k Keyword) IsStereotype() bool {
	switch k {
	case INV, PRE, POST, BODY, DERIVE, INIT, DEF:
		return true
	}
	return false
}
