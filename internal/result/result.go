// Package result encodes the outcome of a single translation as one line of
// JSON on the adapter's standard output.
//
// The line is laid out the way Python's json.dumps writes it: ", " and ": "
// separators and every non-ASCII character escaped as \uXXXX. Callers built
// around the Python script see identical bytes.
package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

type kind int

const (
	kindSuccess kind = iota
	kindFailure
	kindUsage
)

// Result is built once per invocation and never modified afterwards.
type Result struct {
	kind        kind
	translation string
	message     string
}

func Success(translation string) Result {
	return Result{kind: kindSuccess, translation: translation}
}

func Failure(err error) Result {
	return Result{kind: kindFailure, message: errorMessage(err)}
}

// Usage reports a wrong invocation. Its JSON form carries no "success" key.
func Usage(err error) Result {
	return Result{kind: kindUsage, message: errorMessage(err)}
}

// ExitCode is the process exit status matching the result.
func (r Result) ExitCode() int {
	if r.kind == kindSuccess {
		return 0
	}
	return 1
}

// Write emits the result as a single JSON line.
func (r Result) Write(w io.Writer) error {
	var buf bytes.Buffer

	buf.WriteByte('{')
	switch r.kind {
	case kindSuccess:
		buf.WriteString(`"success": true, "translation": `)
		if err := writeString(&buf, r.translation); err != nil {
			return err
		}
	case kindUsage:
		buf.WriteString(`"error": `)
		if err := writeString(&buf, r.message); err != nil {
			return err
		}
	default:
		buf.WriteString(`"success": false, "error": `)
		if err := writeString(&buf, r.message); err != nil {
			return err
		}
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// writeString appends s as a JSON string literal using ASCII only. HTML
// characters are kept as-is.
func writeString(buf *bytes.Buffer, s string) error {
	var quoted bytes.Buffer
	enc := json.NewEncoder(&quoted)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}

	for _, r := range strings.TrimSuffix(quoted.String(), "\n") {
		if r < utf8.RuneSelf {
			buf.WriteRune(r)
			continue
		}
		for _, unit := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(buf, `\u%04x`, unit)
		}
	}
	return nil
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
