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
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/deeptran/internal"
	"github.com/valpere/deeptran/internal/config"
	"github.com/valpere/deeptran/internal/result"
	"github.com/valpere/deeptran/internal/translator"
)

var version = "0.1.0"

const usageLine = "Usage: deeptran <text> <source_lang> <target_lang>"

var rootCmd = newRootCmd(buildService)

func newRootCmd(newService serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "deeptran <text> <source_lang> <target_lang>",
		Short: "Translate a text and print the result as JSON",
		Long: `Translate a single text from one language to another and print exactly
one JSON line on standard output:

  {"success": true, "translation": "..."}    exit status 0
  {"success": false, "error": "..."}         exit status 1
  {"error": "Usage: ..."}                    exit status 1

The translation itself is delegated to a provider chosen with DEEPTRAN_PROVIDER:
  - google          Free Google Translate endpoint (default)
  - google-cloud    Google Cloud Translation (credentials or API key)
  - mymemory        MyMemory (free, 5000 chars/day)
  - libretranslate  LibreTranslate (LIBRETRANSLATE_URL, LIBRETRANSLATE_API_KEY)

Arguments are used verbatim; there are no flags.`,
		Version:            version,
		Args:               exactArgs(3),
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res := runTranslate(cmd.Context(), newService, args)
			if err := res.Write(cmd.OutOrStdout()); err != nil {
				return err
			}
			if code := res.ExitCode(); code != 0 {
				return exitStatus(code)
			}
			return nil
		},
	}
}

// exitStatus carries a non-zero process status out of RunE after the result
// line has been written.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// exactArgs rejects any other argument count with a UsageError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &internal.UsageError{Usage: usageLine}
		}
		return nil
	}
}

func runTranslate(ctx context.Context, newService serviceFactory, args []string) result.Result {
	cfg, err := config.Load()
	if err != nil {
		return result.Failure(err)
	}
	logger := newLogger(cfg.Verbose)

	svc, err := newService(cfg)
	if err != nil {
		logger.Printf("%v", err)
		return result.Failure(err)
	}

	req := translator.TranslateRequest{
		Text:       args[0],
		SourceLang: args[1],
		TargetLang: args[2],
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	logger.Printf("Translating %d characters %s -> %s with %s", len([]rune(req.Text)), req.SourceLang, req.TargetLang, svc.Name())

	res, err := svc.Translate(ctx, cfg.Service, req)
	if err == nil && res == nil {
		err = errors.New("no translation returned")
	}
	if err != nil {
		logger.Printf("%s failed: %v", svc.Name(), err)
		return result.Failure(&internal.TranslationError{Err: err})
	}

	logger.Printf("%s succeeded in %s", svc.Name(), res.Latency)
	return result.Success(res.TranslatedText)
}

func Execute() {
	os.Exit(execute(context.Background(), rootCmd, os.Args[1:]))
}

// execute runs cmd with args and returns the process exit status. Usage
// errors are reported here because cobra validates arguments before RunE.
func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	if args == nil {
		args = []string{}
	}

	var err error
	if isCompletionRequest(args) {
		// cobra would hand these to its hidden completion command; the text
		// is translated like any other.
		cmd.SetContext(ctx)
		err = runRoot(cmd, args)
	} else {
		cmd.SetArgs(args)
		err = cmd.ExecuteContext(ctx)
	}
	if err == nil {
		return 0
	}

	var usageErr *internal.UsageError
	if errors.As(err, &usageErr) {
		res := result.Usage(usageErr)
		if writeErr := res.Write(cmd.OutOrStdout()); writeErr != nil {
			return 1
		}
		return res.ExitCode()
	}

	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	return 1
}

func isCompletionRequest(args []string) bool {
	return len(args) > 0 && (args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd)
}

// runRoot validates and runs cmd without cobra's command routing.
func runRoot(cmd *cobra.Command, args []string) error {
	if err := cmd.ValidateArgs(args); err != nil {
		return err
	}
	return cmd.RunE(cmd, args)
}
