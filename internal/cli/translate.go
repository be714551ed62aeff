package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mgpai22/srtkit/internal/translate"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate subtitles to another language using AI",
	Long: `Translate the text of every cue in an SRT file using an AI provider.
Cue numbering and timing are left untouched.

The --overlay flag creates bilingual subtitles with the translated text
first, followed by the original text on the next line.

Provider, model, concurrency and batch size default to the config file
(--config or SRTKIT_CONFIG) and SRTKIT_* environment variables; flags
take precedence.

Examples:
  srtkit translate movie.srt --target-language japanese
  srtkit translate movie.srt -t ja --overlay
  srtkit translate movie.srt -l english -t spanish --provider anthropic -o es.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("language", "l", "", "Language of the input subtitles (optional)")
	translateCmd.Flags().
		Bool("overlay", false, "Overlay translated text with original (bilingual subtitles)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("concurrency", 0, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", 0, "Number of cues per API request")
	translateCmd.Flags().
		String("prompt", "", "Extra instructions for the translator")

	_ = translateCmd.MarkFlagRequired("target-language")
}

type translateSettings struct {
	provider    translate.Provider
	model       string
	concurrency int
	batchSize   int
}

// flags override the loaded config
func resolveTranslateSettings(cmd *cobra.Command) (translateSettings, error) {
	s := translateSettings{
		provider:    translate.Provider(cfg.Translate.Provider),
		model:       cfg.Translate.Model,
		concurrency: cfg.Translate.Concurrency,
		batchSize:   cfg.Translate.BatchSize,
	}

	if cmd.Flags().Changed("provider") {
		p, _ := cmd.Flags().GetString("provider")
		s.provider = translate.Provider(p)
	}
	if cmd.Flags().Changed("model") {
		s.model, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("concurrency") {
		s.concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	if cmd.Flags().Changed("batch-size") {
		s.batchSize, _ = cmd.Flags().GetInt("batch-size")
	}

	switch s.provider {
	case translate.ProviderGemini, translate.ProviderOpenAI, translate.ProviderAnthropic:
	default:
		return s, fmt.Errorf(
			"unsupported provider %q: use gemini, openai or anthropic",
			s.provider,
		)
	}
	if s.concurrency <= 0 {
		return s, fmt.Errorf("concurrency must be positive, got %d", s.concurrency)
	}
	if s.batchSize <= 0 {
		return s, fmt.Errorf("batch-size must be positive, got %d", s.batchSize)
	}
	return s, nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")
	overlay, _ := cmd.Flags().GetBool("overlay")
	apiKey, _ := cmd.Flags().GetString("api-key")
	prompt, _ := cmd.Flags().GetString("prompt")
	outputPath, _ := cmd.Flags().GetString("output")

	if strings.TrimSpace(targetLang) == "" {
		return fmt.Errorf("target language is required")
	}
	if inputLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(inputLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	settings, err := resolveTranslateSettings(cmd)
	if err != nil {
		return err
	}

	if apiKey == "" {
		apiKey = os.Getenv(translate.APIKeyEnv(settings.provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			translate.APIKeyEnv(settings.provider),
		)
	}

	if outputPath == "" {
		suffix := targetLang
		if overlay {
			suffix += ".overlay"
		}
		outputPath = siblingPath(subtitlePath, suffix, ".srt")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	subs, err := openSubtitles(subtitlePath)
	if err != nil {
		return err
	}

	logger.Infow("Starting subtitle translation",
		"input", subtitlePath,
		"output", outputPath,
		"cues", subs.Len(),
		"target_language", targetLang,
		"input_language", inputLang,
		"provider", settings.provider,
		"model", settings.model,
		"overlay", overlay,
	)

	translator, err := translate.Factory(ctx, settings.provider, apiKey, translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          settings.model,
		Prompt:         prompt,
		BatchSize:      settings.batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	if err := translate.Apply(ctx, translator, subs, translate.ApplyOptions{
		Concurrency: settings.concurrency,
		Overlay:     overlay,
	}); err != nil {
		return err
	}

	logger.Infow("Translation complete", "cues", subs.Len())

	if err := subs.Save(outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Subtitles translated successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Cues: %d\n", subs.Len())
	fmt.Fprintf(out, "  Target language: %s\n", targetLang)
	if overlay {
		fmt.Fprintf(out, "  Mode: bilingual overlay\n")
	}

	return nil
}
