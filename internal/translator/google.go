package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/bregydoc/gtranslate"
	"golang.org/x/text/language"
)

// googleMaxChars is the request limit of the free Google Translate endpoint.
const googleMaxChars = 5000

// GoogleService uses the free Google Translate web endpoint. No credentials
// required.
type GoogleService struct {
	tries     int
	translate func(text string, params gtranslate.TranslationParams) (string, error)
}

// NewGoogleService creates the free Google provider. tries below 1 means a
// single attempt.
func NewGoogleService(tries int) *GoogleService {
	if tries < 1 {
		tries = 1
	}
	return &GoogleService{
		tries:     tries,
		translate: gtranslate.TranslateWithParams,
	}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	text, done, err := prepareText(req, googleMaxChars)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	if done {
		result.TranslatedText = text
		return result, nil
	}

	// gtranslate rewrites codes it cannot parse to "auto"/"en" instead of
	// failing, so they are rejected here.
	if _, err := language.Parse(req.TargetLang); err != nil {
		result.Error = fmt.Sprintf("invalid target language: %v", err)
		return result, fmt.Errorf("invalid target language: %w", err)
	}

	sourceLang := req.SourceLang
	if isAuto(sourceLang) {
		sourceLang = AutoLang
	} else if _, err := language.Parse(sourceLang); err != nil {
		result.Error = fmt.Sprintf("invalid source language: %v", err)
		return result, fmt.Errorf("invalid source language: %w", err)
	}

	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result, err
	}

	translated, err := s.call(ctx, text, gtranslate.TranslationParams{
		From:  sourceLang,
		To:    req.TargetLang,
		Tries: s.tries,
	})
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	if translated == "" {
		result.Error = "no translation returned"
		return result, fmt.Errorf("no translation returned")
	}

	result.TranslatedText = translated
	return result, nil
}

type googleReply struct {
	text string
	err  error
}

// call runs the translation in its own goroutine because gtranslate takes no
// context and keeps retrying on 429 and 5xx responses. When ctx ends first
// the goroutine is abandoned.
func (s *GoogleService) call(ctx context.Context, text string, params gtranslate.TranslationParams) (string, error) {
	replies := make(chan googleReply, 1)
	go func() {
		translated, err := s.translate(text, params)
		replies <- googleReply{text: translated, err: err}
	}()

	select {
	case reply := <-replies:
		return reply.text, reply.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *GoogleService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *GoogleService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{
		"af", "sq", "am", "ar", "hy", "az", "eu", "be", "bn", "bs",
		"bg", "ca", "zh-CN", "zh-TW", "hr", "cs", "da", "nl", "en", "eo",
		"et", "tl", "fi", "fr", "gl", "ka", "de", "el", "gu", "ht",
		"he", "hi", "hu", "is", "id", "ga", "it", "ja", "kn", "kk",
		"ko", "lv", "lt", "mk", "ms", "ml", "mt", "mr", "mn", "ne",
		"no", "fa", "pl", "pt", "pa", "ro", "ru", "sr", "sk", "sl",
		"es", "sw", "sv", "ta", "te", "th", "tr", "uk", "ur", "uz",
		"vi", "cy", "yi", "zu",
	}, nil
}
