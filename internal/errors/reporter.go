package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ocl/token"
)

// ErrorReporter handles consistent error formatting for one source text
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// Locate returns the line/column where err starts.
func (er *ErrorReporter) Locate(err *FrontEndError) token.Position {
	return token.Locate(er.source, err.From)
}

// FormatError formats a front end error with Rust-like styling
func (er *ErrorReporter) FormatError(err *FrontEndError) string {
	var result strings.Builder

	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0101]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor("error"), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor("error"), err.Message))
	}

	pos := er.Locate(err)
	lineNumberWidth := er.getLineNumberWidth(pos.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	// Location line: --> filename:line:column
	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, pos.Line, pos.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if pos.Line > 1 && pos.Line-2 < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, pos.Line-1)),
			dim("│"),
			er.lines[pos.Line-2]))
	}

	if pos.Line <= len(er.lines) && pos.Line > 0 {
		lineContent := er.lines[pos.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, pos.Line)),
			dim("│"),
			lineContent))

		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), er.createMarker(lineContent, pos.Column, err)))
	}

	if pos.Line < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, pos.Line+1)),
			dim("│"),
			er.lines[pos.Line]))
	}

	if help := helpFor(err.Code); help != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), help))
	}

	result.WriteString("\n")
	return result.String()
}

// createMarker underlines the part of the error span that lies on the
// error's first line. Widths are display cells, not bytes.
func (er *ErrorReporter) createMarker(lineContent string, column int, err *FrontEndError) string {
	start := column - 1
	if start > len(lineContent) {
		start = len(lineContent)
	}
	end := start + (err.To - err.From)
	if end > len(lineContent) {
		end = len(lineContent)
	}

	length := runewidth.StringWidth(lineContent[start:end])
	if length <= 0 {
		length = 1
	}

	spaces := strings.Repeat(" ", runewidth.StringWidth(lineContent[:start]))
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
