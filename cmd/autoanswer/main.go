// Command autoanswer answers form questions with an LLM and reconciles the
// replies against each question's options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/docs/googledocs"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/docs/localfile"
	formfile "github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/form/file"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/form/googleforms"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/google"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/core/services"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters and services for a data directory.
func bootstrap(dataDir string) (*cli.Services, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".autoanswer")
	}

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	aiServices := ai.InitializeAIServices(settings, filepath.Join(dataDir, "prompts"))
	for _, w := range aiServices.Warnings {
		logger.Warn("%s", w)
	}

	closers := []func(){aiServices.Close}

	var runStore driven.RunStore
	store, err := sqlite.NewStore(filepath.Join(dataDir, "data"))
	if err != nil {
		logger.Warn("history unavailable, runs kept in memory: %v", err)
		runStore = memory.NewRunStore()
	} else {
		runStore = store.RunStore()
		closers = append(closers, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing history: %v", err)
			}
		})
	}

	answerService := services.NewAnswerService(aiServices.LLMService, runStore, *settings)
	assistService := services.NewAssistService(aiServices.LLMService, *settings)
	if aiServices.PromptStore != nil {
		answerService.SetPromptStore(aiServices.PromptStore)
		assistService.SetPromptStore(aiServices.PromptStore)
	}

	fileForms := formfile.New()
	token := google.NewTokenProvider(settings.Google, func(tok *oauth2.Token) error {
		return settingsService.SetGoogleLogin(domain.GoogleSettings{
			AccessToken: tok.AccessToken,
			Expiry:      tok.Expiry,
		})
	})

	return &cli.Services{
		Answer:      answerService,
		Assist:      assistService,
		Settings:    settingsService,
		History:     services.NewHistoryService(runStore),
		Watcher:     services.NewFormWatcher(answerService, fileForms, 0),
		FileForms:   fileForms,
		GoogleForms: googleforms.New(googleforms.Config{TokenProvider: token}),
		Docs:        googledocs.New(googledocs.Config{TokenProvider: token}),
		Files:       localfile.New(),
		Close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}
