package translator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// AutoLang asks the provider to detect the source language.
const AutoLang = "auto"

func isAuto(lang string) bool {
	return lang == "" || strings.EqualFold(lang, AutoLang)
}

// prepareText enforces the provider's length limit on the text as given
// (maxChars <= 0 means unlimited; a text of maxChars runes or more is
// rejected), then trims it. done is true when the request can be answered
// without calling the provider: empty text, or identical source and target
// languages.
func prepareText(req TranslateRequest, maxChars int) (text string, done bool, err error) {
	if maxChars > 0 && utf8.RuneCountInString(req.Text) >= maxChars {
		return "", false, fmt.Errorf("text length must be between 0 and %d characters", maxChars)
	}

	text = strings.TrimSpace(req.Text)
	if text == "" {
		return text, true, nil
	}

	if !isAuto(req.SourceLang) && strings.EqualFold(req.SourceLang, req.TargetLang) {
		return text, true, nil
	}

	return text, false, nil
}
