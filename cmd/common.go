/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/valpere/deeptran/internal/config"
	"github.com/valpere/deeptran/internal/translator"
)

var providerNames = []string{"google", "google-cloud", "mymemory", "libretranslate"}

// serviceFactory builds the translation service named by the configuration.
type serviceFactory func(cfg *config.Config) (translator.TranslationService, error)

// buildService constructs the configured translation service. Only one
// service is used per invocation.
func buildService(cfg *config.Config) (translator.TranslationService, error) {
	switch cfg.Provider {
	case "google":
		return translator.NewGoogleService(cfg.Google.Tries), nil
	case "google-cloud":
		return translator.NewGoogleCloudService(), nil
	case "mymemory":
		return translator.NewMyMemoryService(cfg.MyMemory.Email, cfg.MyMemory.BaseURL), nil
	case "libretranslate":
		return translator.NewLibreTranslateService(cfg.LibreTranslate.BaseURL, cfg.LibreTranslate.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q (available: %s)", cfg.Provider, strings.Join(providerNames, ", "))
	}
}

// newLogger writes diagnostics to stderr when verbose; stdout is reserved
// for the JSON result.
func newLogger(verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "deeptran: ", log.LstdFlags)
}
