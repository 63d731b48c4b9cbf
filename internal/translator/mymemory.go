package translator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/valpere/deeptran/internal/detector"
)

const (
	DefaultMyMemoryURL = "https://api.mymemory.translated.net"

	// myMemoryMaxChars is the per-request limit of the free MyMemory API.
	myMemoryMaxChars = 500
)

type MyMemoryService struct {
	email   string
	baseURL string
	client  *http.Client
	det     *detector.Detector
}

func NewMyMemoryService(email, baseURL string) *MyMemoryService {
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}
	return &MyMemoryService{
		email:   email,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		det:     detector.New(),
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

func (s *MyMemoryService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	text, done, err := prepareText(req, myMemoryMaxChars)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	if done {
		result.TranslatedText = text
		return result, nil
	}

	// MyMemory has no auto-detection of its own.
	sourceLang := req.SourceLang
	if isAuto(sourceLang) {
		sourceLang = "en"
		if detected, ok := s.det.DetectISO(text); ok {
			sourceLang = detected
		}
		result.Metadata = map[string]string{"detected_source": sourceLang}
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", fmt.Sprintf("%s|%s", sourceLang, req.TargetLang))
	if s.email != "" {
		params.Set("de", s.email)
	}

	apiURL := fmt.Sprintf("%s/get?%s", s.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, fmt.Errorf("failed to create request: %w", err)
	}

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

	if !gjson.ValidBytes(body) {
		result.Error = fmt.Sprintf("API returned status %d with invalid body", resp.StatusCode)
		return result, fmt.Errorf("API returned status %d with invalid body", resp.StatusCode)
	}

	parsed := gjson.ParseBytes(body)

	// responseStatus is sometimes a number and sometimes a string.
	status := parsed.Get("responseStatus").Int()
	if status != http.StatusOK {
		details := parsed.Get("responseDetails").String()
		if details == "" {
			details = http.StatusText(int(status))
		}
		result.Error = fmt.Sprintf("API error: %s (%d)", details, status)
		return result, fmt.Errorf("API error: %s", details)
	}

	translated := parsed.Get("responseData.translatedText").String()
	if translated == "" {
		result.Error = "empty translation response"
		return result, fmt.Errorf("empty translation response")
	}

	result.TranslatedText = translated
	return result, nil
}

func (s *MyMemoryService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *MyMemoryService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{
		"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh",
		"ar", "nl", "pl", "tr", "sv", "da", "no", "fi", "el", "he",
		"th", "vi", "id", "ms", "cs", "hu", "ro", "uk", "bg", "ca",
	}, nil
}
