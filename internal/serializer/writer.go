package serializer

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aegisshield/irregular-report/internal/report"
)

// ModelError reports a value whose shape does not match the document
// model, such as a non-scalar where a scalar is expected or a tagged union
// whose active variant is missing.
type ModelError struct {
	Path   string
	Field  string
	Reason string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("malformed report at %s (%s): %s", e.Path, e.Field, e.Reason)
}

type attr struct {
	name  string
	value string
}

type frame struct {
	name     string
	attrs    []attr
	opened   bool
	required bool
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

// writer emits indented XML. Elements are opened lazily: a block's start
// tag is written only once something inside it is emitted, so a block with
// nothing to say leaves no trace. The first error stops all output.
type writer struct {
	buf      bytes.Buffer
	indent   string
	prefixes map[string]string
	stack    []frame
	depth    int
	err      error
}

func newWriter(indent string) *writer {
	return &writer{
		indent:   indent,
		prefixes: elementPrefixes,
	}
}

func (w *writer) qualified(name string) string {
	prefix, ok := w.prefixes[name]
	if !ok {
		w.fail(fmt.Errorf("serializer: element %q has no namespace entry", name))
		return name
	}
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) modelError(field, reason string) {
	w.fail(&ModelError{Path: w.path(), Field: field, Reason: reason})
}

func (w *writer) path() string {
	names := make([]string, len(w.stack))
	for i, f := range w.stack {
		names[i] = f.name
	}
	return "/" + strings.Join(names, "/")
}

func (w *writer) writeIndent() {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString(w.indent)
	}
}

func (w *writer) startTag(f frame, selfClose bool) {
	w.writeIndent()
	w.buf.WriteByte('<')
	w.buf.WriteString(w.qualified(f.name))
	for _, a := range f.attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.name)
		w.buf.WriteString(`="`)
		w.buf.WriteString(escape(a.value))
		w.buf.WriteByte('"')
	}
	if selfClose {
		w.buf.WriteString(" />\n")
		return
	}
	w.buf.WriteString(">\n")
}

// flush writes the start tags of every pending ancestor.
func (w *writer) flush() {
	for i := range w.stack {
		if w.stack[i].opened {
			continue
		}
		w.startTag(w.stack[i], false)
		w.stack[i].opened = true
		w.depth++
	}
}

func (w *writer) push(name string, required bool, attrs []attr) {
	w.stack = append(w.stack, frame{name: name, attrs: attrs, required: required})
}

// pop closes the innermost element. A required element that never got a
// child is written self-closed.
func (w *writer) pop() {
	f := w.stack[len(w.stack)-1]
	if !f.opened && f.required && w.err == nil {
		w.stack = w.stack[:len(w.stack)-1]
		w.flush()
		w.startTag(f, true)
		return
	}
	w.stack = w.stack[:len(w.stack)-1]
	if !f.opened {
		return
	}
	w.depth--
	w.writeIndent()
	w.buf.WriteString("</")
	w.buf.WriteString(w.qualified(f.name))
	w.buf.WriteString(">\n")
}

// block emits name around fn only if fn emits something.
func (w *writer) block(name string, fn func(), attrs ...attr) {
	if w.err != nil {
		return
	}
	w.push(name, false, attrs)
	fn()
	w.pop()
}

// element emits name around fn even when fn emits nothing.
func (w *writer) element(name string, fn func(), attrs ...attr) {
	if w.err != nil {
		return
	}
	w.push(name, true, attrs)
	fn()
	w.pop()
}

// collection emits a wrapper around repeated children. Whether an empty
// wrapper is still written is decided per element by wrapperRequired.
func (w *writer) collection(name string, fn func()) {
	if wrapperRequired[name] {
		w.element(name, fn)
		return
	}
	w.block(name, fn)
}

// scalar emits <name>value</name> when value is present.
func (w *writer) scalar(name string, value interface{}) {
	if w.err != nil {
		return
	}
	text, ok := w.format(name, value)
	if !ok || w.err != nil {
		return
	}
	w.flush()
	qn := w.qualified(name)
	w.writeIndent()
	w.buf.WriteByte('<')
	w.buf.WriteString(qn)
	w.buf.WriteByte('>')
	w.buf.WriteString(escape(text))
	w.buf.WriteString("</")
	w.buf.WriteString(qn)
	w.buf.WriteString(">\n")
}

// format renders a scalar value. Absent values (nil, empty string,
// non-finite numbers) report false.
func (w *writer) format(name string, value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return *v, *v != ""
	case report.LocalID:
		return v.String(), !v.IsZero()
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return formatFloat(v)
	case *float64:
		if v == nil {
			return "", false
		}
		return formatFloat(*v)
	case bool:
		return formatBool(v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return formatBool(*v), true
	default:
		w.modelError(name, fmt.Sprintf("unsupported scalar kind %T", value))
		return "", false
	}
}

func formatFloat(v float64) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}
