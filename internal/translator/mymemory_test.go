package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestMyMemory(t *testing.T, handler http.HandlerFunc) *MyMemoryService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewMyMemoryService("test@example.com", server.URL)
	svc.client = server.Client()
	return svc
}

func TestMyMemoryService_Name(t *testing.T) {
	svc := NewMyMemoryService("", "")

	if svc.Name() != "mymemory" {
		t.Errorf("expected 'mymemory', got %q", svc.Name())
	}
	if svc.baseURL != DefaultMyMemoryURL {
		t.Errorf("expected default URL, got %q", svc.baseURL)
	}
}

func TestMyMemoryService_Translate_Success(t *testing.T) {
	svc := newTestMyMemory(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get" {
			t.Errorf("expected path /get, got %q", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Hello" {
			t.Errorf("expected q=Hello, got %q", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("langpair") != "en|es" {
			t.Errorf("expected langpair en|es, got %q", r.URL.Query().Get("langpair"))
		}
		if r.URL.Query().Get("de") != "test@example.com" {
			t.Errorf("expected email, got %q", r.URL.Query().Get("de"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":   map[string]interface{}{"translatedText": "Hola", "match": 1},
			"responseStatus": 200,
		})
	})

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "es",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("expected 'Hola', got %q", result.TranslatedText)
	}
}

func TestMyMemoryService_Translate_QuotaError(t *testing.T) {
	svc := newTestMyMemory(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":    map[string]interface{}{"translatedText": "MYMEMORY WARNING"},
			"responseStatus":  "429",
			"responseDetails": "rate limit exceeded",
		})
	})

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "es",
	})

	if err == nil {
		t.Fatal("expected error for quota response")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("expected provider details in error, got %q", err.Error())
	}
	if !strings.Contains(result.Error, "429") {
		t.Errorf("expected status in result error, got %q", result.Error)
	}
}

func TestMyMemoryService_Translate_InvalidBody(t *testing.T) {
	svc := newTestMyMemory(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "es",
	})

	if err == nil {
		t.Error("expected error for non-JSON body")
	}
}

func TestMyMemoryService_Translate_EmptyTranslation(t *testing.T) {
	svc := newTestMyMemory(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":   map[string]interface{}{"translatedText": ""},
			"responseStatus": 200,
		})
	})

	_, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "es",
	})

	if err == nil {
		t.Error("expected error for empty translation")
	}
}

func TestMyMemoryService_Translate_AutoSourceDetected(t *testing.T) {
	var langPair string
	svc := newTestMyMemory(t, func(w http.ResponseWriter, r *http.Request) {
		langPair = r.URL.Query().Get("langpair")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":   map[string]interface{}{"translatedText": "Hello"},
			"responseStatus": 200,
		})
	})

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Mañana por la mañana vamos a ir al mercado para comprar frutas, verduras y pan fresco para toda la familia.",
		SourceLang: "auto",
		TargetLang: "en",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if langPair != "es|en" {
		t.Errorf("expected detected langpair es|en, got %q", langPair)
	}
	if result.Metadata["detected_source"] != "es" {
		t.Errorf("expected detected_source metadata, got %v", result.Metadata)
	}
}

func TestMyMemoryService_Translate_TooLong(t *testing.T) {
	svc := newTestMyMemory(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called for oversized text")
	})

	_, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       strings.Repeat("a", myMemoryMaxChars+1),
		SourceLang: "en",
		TargetLang: "es",
	})

	if err == nil {
		t.Error("expected error for oversized text")
	}
}

func TestMyMemoryService_IsAvailable(t *testing.T) {
	svc := NewMyMemoryService("test@example.com", "")

	if err := svc.IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMyMemoryService_SupportedLanguages(t *testing.T) {
	svc := NewMyMemoryService("", "")

	langs, err := svc.SupportedLanguages(context.Background())
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(langs) == 0 {
		t.Error("expected non-empty language list")
	}
}
