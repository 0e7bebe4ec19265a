// Package writer builds indented source text line by line.
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates source text with an indentation level.
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// New returns a writer indenting with indentString.
func New(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level by n, 1 if omitted.
func (w *Writer) Indent(n ...int) {
	step := 1
	if len(n) > 0 {
		step = n[0]
	}
	w.indentLevel += step
	w.updatePrefix()
}

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes s without a newline.
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without a newline.
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes s and a newline.
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and a newline.
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline writes a newline.
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine writes an empty line unless the text already ends with one.
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.Newline()
	}
}

// WriteBlock writes opener, the indented content and closer.
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteDocString writes doc as a block string delimited by quote, one
// trimmed line per doc line. Nothing is written for an empty doc.
func (w *Writer) WriteDocString(quote, doc string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	w.WriteLine(quote)
	for _, line := range strings.Split(doc, "\n") {
		w.WriteLine(strings.TrimSpace(line))
	}
	w.WriteLine(quote)
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.sb.Len()
}

// String returns the text written so far.
func (w *Writer) String() string {
	return w.sb.String()
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}
