package errors

// Error codes for the OCL front end.
// These codes appear in rendered diagnostics and in LSP diagnostics so
// tooling can identify a failure without matching on message text.
//
// Error code ranges:
// E0100-E0109: Lexical errors
// E0110-E0129: Syntax errors
// E0900-E0999: Reserved for tooling errors
const (
	// E0101: a character outside every lexical rule
	ErrorInvalidCharacter = "E0101"

	// E0102: end of input inside a string literal
	ErrorUnterminatedString = "E0102"

	// E0103: numeric literal does not fit in 64 bits
	ErrorNumberOutOfRange = "E0103"

	// E0110: token does not fit the current production
	ErrorUnexpectedToken = "E0110"

	// E0111: token stream ended inside a production
	ErrorUnexpectedEnd = "E0111"

	// E0112: argument or iterator list is malformed
	ErrorMalformedArguments = "E0112"

	// E0113: expression nesting exceeds the configured limit
	ErrorNestingTooDeep = "E0113"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorInvalidCharacter:
		return "Character is not part of the OCL lexical grammar"
	case ErrorUnterminatedString:
		return "String literal is missing its closing quote"
	case ErrorNumberOutOfRange:
		return "Numeric literal does not fit in 64 bits"
	case ErrorUnexpectedToken:
		return "Token is not allowed at this position"
	case ErrorUnexpectedEnd:
		return "Input ended before the construct was complete"
	case ErrorMalformedArguments:
		return "Argument list is malformed"
	case ErrorNestingTooDeep:
		return "Expression is nested too deeply"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0110":
		return "Lexer"
	case code >= "E0110" && code < "E0130":
		return "Parser"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}

// helpFor returns a short remedy for the error code, or "".
func helpFor(code string) string {
	switch code {
	case ErrorInvalidCharacter:
		return "identifiers may only contain ASCII letters"
	case ErrorUnterminatedString:
		return `close the string with '"'`
	case ErrorNestingTooDeep:
		return "split the expression with 'let' or raise max_depth in .ocl.toml"
	}
	return ""
}
