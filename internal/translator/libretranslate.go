package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const DefaultLibreTranslateURL = "https://libretranslate.com"

type LibreTranslateService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewLibreTranslateService(baseURL, apiKey string) *LibreTranslateService {
	if baseURL == "" {
		baseURL = DefaultLibreTranslateURL
	}
	return &LibreTranslateService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *LibreTranslateService) Name() string {
	return "libretranslate"
}

func (s *LibreTranslateService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
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

	apiKey := s.apiKey
	if apiKey == "" {
		apiKey = cfg.APIKey
	}

	sourceLang := req.SourceLang
	if isAuto(sourceLang) {
		sourceLang = AutoLang
	}

	libreReq := map[string]interface{}{
		"q":      text,
		"source": sourceLang,
		"target": req.TargetLang,
		"format": "text",
	}
	if apiKey != "" {
		libreReq["api_key"] = apiKey
	}

	jsonData, err := json.Marshal(libreReq)
	if err != nil {
		result.Error = fmt.Sprintf("failed to marshal request: %v", err)
		return result, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/translate", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read response: %v", err)
		return result, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		result.Error = fmt.Sprintf("API returned status %d: %s", resp.StatusCode, msg)
		return result, fmt.Errorf("API returned status %d: %s", resp.StatusCode, msg)
	}

	translated := gjson.GetBytes(body, "translatedText")
	if !translated.Exists() || translated.String() == "" {
		result.Error = "empty translation response"
		return result, fmt.Errorf("empty translation response")
	}

	result.TranslatedText = translated.String()
	if detected := gjson.GetBytes(body, "detectedLanguage.language"); detected.Exists() {
		result.Metadata = map[string]string{"detected_source": detected.String()}
	}

	return result, nil
}

func (s *LibreTranslateService) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/languages", s.baseURL), nil)
	if err != nil {
		return fmt.Errorf("LibreTranslate not available: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("LibreTranslate not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LibreTranslate returned status %d", resp.StatusCode)
	}
	return nil
}

// SupportedLanguages asks the server for its language list.
func (s *LibreTranslateService) SupportedLanguages(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/languages", s.baseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var codes []string
	for _, code := range gjson.GetBytes(body, "#.code").Array() {
		codes = append(codes, code.String())
	}
	return codes, nil
}
