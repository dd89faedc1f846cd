package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// ANSI escape sequences used by Format.
const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// colorEnabled controls whether Format emits ANSI colors.
var colorEnabled = true

// DisableColors turns off ANSI colors, for pipes and NO_COLOR.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI colors back on.
func EnableColors() { colorEnabled = true }

func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format renders the error for a terminal: header, source excerpt, detail,
// hint and documentation link, each only when present.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	header := "ERROR: "
	if e.Code != "" {
		header = "ERROR " + e.Code + ": "
	}
	b.WriteString(paint(header, ansiRed, ansiBold))
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), ansiCyan))
		if len(e.Context) > 0 {
			e.writeExcerpt(&b)
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", ansiCyan), e.Suggestion)
	}

	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint("Learn more: ", ansiGray), paint(e.DocURL, ansiBlue))
	}

	return b.String()
}

// writeExcerpt prints the context lines with the error line marked and, when
// known, a caret under the column.
func (e *Error) writeExcerpt(b *strings.Builder) {
	first := e.Location.Line - len(e.Context)/2
	bar := paint(" │ ", ansiGray)
	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", paint("→ ", ansiRed), n, bar, line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n", paint("│ ", ansiGray),
				strings.Repeat(" ", e.Location.Column-1), paint("^", ansiRed))
		}
	}
}

// FormatCompact returns "file:line:col: CODE: message", omitting the parts
// that are unknown.
func (e *Error) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a JSON object for machine consumers.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes at word boundaries.
// Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	if len(text) <= width {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Output styles accepted by FprintStyle.
const (
	StyleText    = "text"
	StyleCompact = "compact"
	StyleJSON    = "json"
)

// Fprint writes err to w in the terminal style.
func Fprint(w io.Writer, err error) {
	FprintStyle(w, err, StyleText)
}

// FprintStyle writes err to w as Format, FormatCompact or FormatJSON output.
// Errors without a code are written with a plain header; unknown styles fall
// back to text.
func FprintStyle(w io.Writer, err error, style string) {
	var e *Error
	coded := stderrors.As(err, &e)
	if !coded {
		e = &Error{Category: CategoryCLI, Message: err.Error()}
	}

	switch style {
	case StyleCompact:
		fmt.Fprintln(w, e.FormatCompact())
	case StyleJSON:
		fmt.Fprintln(w, e.FormatJSON())
	default:
		if coded {
			fmt.Fprint(w, e.Format())
			return
		}
		fmt.Fprintf(w, "\n%s%s\n\n", paint("ERROR: ", ansiRed, ansiBold), err.Error())
	}
}
