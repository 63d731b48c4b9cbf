// Package detector guesses the language of a text for providers that cannot
// detect the source language themselves.
package detector

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

type Detector struct {
	options whatlanggo.Options
}

func New() *Detector {
	return &Detector{}
}

// Detect returns the detected language; ok is false for empty text or when
// the detection is not reliable.
func (d *Detector) Detect(text string) (whatlanggo.Lang, bool) {
	if strings.TrimSpace(text) == "" {
		return 0, false
	}
	info := whatlanggo.DetectWithOptions(text, d.options)
	if !info.IsReliable() {
		return info.Lang, false
	}
	return info.Lang, true
}

// DetectISO returns the ISO 639-1 code of the detected language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	code := lang.Iso6391()
	if code == "" {
		return "", false
	}
	return code, true
}
