package lsp

import (
	stderrors "errors"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"ocl/internal/errors"
)

const diagnosticSource = "ocl"

// ConvertError turns a front-end failure into LSP diagnostics. Errors that
// are not front-end errors are reported at the start of the document.
func ConvertError(source string, err error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	li := newLineIndex(source)
	var fe *errors.FrontEndError
	if !stderrors.As(err, &fe) {
		return []protocol.Diagnostic{{
			Range:    li.span(0, 0),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(diagnosticSource),
			Message:  err.Error(),
		}}
	}

	rng := li.span(fe.From, fe.To)
	if fe.From == fe.To && fe.To < len(source) && source[fe.From] != '\n' {
		// Zero-width errors get one character so editors can show them.
		rng = li.span(fe.From, fe.From+1)
	}

	return []protocol.Diagnostic{{
		Range:    rng,
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: fe.Code},
		Source:   ptrString(diagnosticSource),
		Message:  fe.Message,
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
