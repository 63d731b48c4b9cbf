package translator

import (
	"context"
	"fmt"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleCloudService calls the Cloud Translation v2 API. Credentials come
// from ServiceConfig (file or API key) or from Application Default Credentials.
type GoogleCloudService struct{}

func NewGoogleCloudService() *GoogleCloudService {
	return &GoogleCloudService{}
}

func (s *GoogleCloudService) Name() string {
	return "google-cloud"
}

func (s *GoogleCloudService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	text, done, err := prepareText(req, 0)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	if done {
		result.TranslatedText = text
		return result, nil
	}

	targetLangTag, err := language.Parse(req.TargetLang)
	if err != nil {
		result.Error = fmt.Sprintf("invalid target language: %v", err)
		return result, fmt.Errorf("invalid target language: %w", err)
	}

	var opts *translate.Options
	if !isAuto(req.SourceLang) {
		sourceLangTag, err := language.Parse(req.SourceLang)
		if err != nil {
			result.Error = fmt.Sprintf("invalid source language: %v", err)
			return result, fmt.Errorf("invalid source language: %w", err)
		}
		opts = &translate.Options{Source: sourceLangTag, Format: translate.Text}
	} else {
		opts = &translate.Options{Format: translate.Text}
	}

	clientOpts := []option.ClientOption{}
	if cfg.Credentials != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.Credentials))
	}
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}

	client, err := translate.NewClient(ctx, clientOpts...)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create client: %v", err)
		return result, fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{text}, targetLangTag, opts)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	if len(translations) == 0 {
		result.Error = "no translation returned"
		return result, fmt.Errorf("no translation returned")
	}

	result.TranslatedText = translations[0].Text
	if translations[0].Source != language.Und {
		result.Metadata = map[string]string{"detected_source": translations[0].Source.String()}
	}

	return result, nil
}

func (s *GoogleCloudService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *GoogleCloudService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return nil, nil
}
