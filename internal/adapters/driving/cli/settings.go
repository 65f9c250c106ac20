package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, API key, pacing and Google access.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "apikey [key]",
	Short: "Set the LLM API key",
	Long: `Set the API key for the configured LLM provider.

Without an argument the key is read from the terminal without echo.
The AUTOANSWER_API_KEY environment variable overrides the stored key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsAPIKey,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider that answers questions.

Without flags an interactive prompt asks for the provider, model and key.`,
	RunE: runSettingsLLM,
}

var settingsFillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Configure pacing and watch mode",
	RunE:  runSettingsFill,
}

var settingsGoogleCmd = &cobra.Command{
	Use:   "google [access-token]",
	Short: "Set the Google OAuth2 access token",
	Long: `Set the OAuth2 access token used for Google Forms and Google Docs.

The token needs the forms.body.readonly and documents.readonly scopes.
A pasted token cannot be refreshed; prefer 'settings google-login'.
Pass an empty string to sign out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsGoogle,
}

var (
	llmProvider string
	llmModel    string
	llmBaseURL  string
	fillDelay   time.Duration
	fillWatch   bool
)

func init() {
	settingsLLMCmd.Flags().StringVar(&llmProvider, "provider", "", "provider: zai, openai, anthropic, ollama")
	settingsLLMCmd.Flags().StringVar(&llmModel, "model", "", "model name (default per provider)")
	settingsLLMCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "API endpoint override")
	settingsFillCmd.Flags().DurationVar(&fillDelay, "delay", time.Second, "pause between questions")
	settingsFillCmd.Flags().BoolVar(&fillWatch, "watch", false, "watch form files by default")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsFillCmd)
	settingsCmd.AddCommand(settingsGoogleCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Temperature: %.1f\n", settings.LLM.Temperature)
	cmd.Printf("  Max Tokens: %d\n", settings.LLM.MaxTokens)
	cmd.Println()

	cmd.Println("[Fill]")
	cmd.Printf("  Delay: %s\n", settings.Fill.Delay)
	cmd.Printf("  Watch: %t\n", settings.Fill.Watch)
	cmd.Println()

	cmd.Println("[Google]")
	g := settings.Google
	switch {
	case g.CanRefresh():
		cmd.Printf("  Login: %s\n", g.ClientID)
		if !g.Expiry.IsZero() {
			cmd.Printf("  Token Expires: %s\n", g.Expiry.Local().Format("2006-01-02 15:04"))
		}
	case g.AccessToken != "":
		cmd.Printf("  Access Token: %s\n", maskAPIKey(g.AccessToken))
	default:
		cmd.Printf("  Access Token: (not set, run 'autoanswer settings google-login')\n")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		cmd.Print("Enter API key: ")
		key = readPassword(cmd)
		cmd.Println()
	}

	if err := settingsService.SetAPIKey(key); err != nil {
		return err
	}
	cmd.Println("API key saved successfully!")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if llmProvider != "" {
		provider := domain.AIProvider(strings.ToLower(llmProvider))
		if err := settingsService.SetLLMProvider(provider, llmModel, llmBaseURL); err != nil {
			return fmt.Errorf("failed to configure LLM provider: %w", err)
		}
		cmd.Printf("LLM provider configured: %s\n", provider.Description())
		return nil
	}

	return configureLLMProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, ""); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key (blank keeps the current one): ")
		if apiKey := readLine(reader); apiKey != "" {
			if err := settingsService.SetAPIKey(apiKey); err != nil {
				return err
			}
		}
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(cmd.Context()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsFill(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	delay, watch := settings.Fill.Delay, settings.Fill.Watch
	if cmd.Flags().Changed("delay") {
		delay = fillDelay
	}
	if cmd.Flags().Changed("watch") {
		watch = fillWatch
	}

	if err := settingsService.SetFill(delay, watch); err != nil {
		return err
	}
	cmd.Printf("Delay: %s, watch: %t\n", delay, watch)
	return nil
}

func runSettingsGoogle(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		cmd.Print("Enter Google access token: ")
		token = readPassword(cmd)
		cmd.Println()
	}

	if err := settingsService.SetGoogleToken(token); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		cmd.Println("Google credentials removed.")
	} else {
		cmd.Println("Google access token saved.")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when stdin is a terminal.
func readPassword(cmd *cobra.Command) string {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(bufio.NewReader(in))
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
