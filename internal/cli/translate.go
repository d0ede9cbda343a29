package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/caption"
	"github.com/mgpai22/cuetrack/internal/config"
	"github.com/mgpai22/cuetrack/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate subtitles to another language using AI",
	Long: `Translate the captions of a subtitle file to another language using AI
and write the result as SRT. Timing is left untouched.

Any input cuetrack can read is accepted (SRT, WebVTT, ASS/SSA, TTML or a
video with an embedded subtitle stream).

The --overlay flag creates bilingual subtitles with the original text
first, followed by the translated text on the next line.

Examples:
  cuetrack translate movie.srt --target-language japanese
  cuetrack translate movie.vtt -t spanish --overlay
  cuetrack translate movie.srt -t german --provider anthropic --rpm 30 -o de.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("language", "l", "", "Language of the input captions (optional)")
	translateCmd.Flags().
		Bool("overlay", false, "Keep the original text above the translation (bilingual subtitles)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the model")
	translateCmd.Flags().
		Int("concurrency", 0, "Number of parallel translation requests")
	translateCmd.Flags().
		Int("batch-size", 0, "Number of captions per API request")
	translateCmd.Flags().
		Int("rpm", 0, "Maximum requests per minute (0 = unlimited)")
	translateCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index when reading a video file")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := cmd.Context()

	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")
	overlay, _ := cmd.Flags().GetBool("overlay")
	apiKey, _ := cmd.Flags().GetString("api-key")
	prompt, _ := cmd.Flags().GetString("prompt")
	stream, _ := cmd.Flags().GetInt("stream")
	outputPath, _ := cmd.Flags().GetString("output")

	settings, err := translateSettings(cmd, cfg.Translate)
	if err != nil {
		return err
	}

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

	provider := translate.Provider(settings.Provider)
	if apiKey == "" {
		apiKey = os.Getenv(translate.APIKeyEnv(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			translate.APIKeyEnv(provider),
		)
	}

	if outputPath == "" {
		outputPath = translatedPath(subtitlePath, targetLang, overlay)
	}

	logger.Infow("Starting subtitle translation",
		"input", subtitlePath,
		"output", outputPath,
		"target_language", targetLang,
		"input_language", inputLang,
		"provider", provider,
		"model", settings.Model,
		"overlay", overlay,
	)

	track, err := loadTrack(ctx, subtitlePath, stream)
	if err != nil {
		return err
	}

	items := translate.Items(track)
	if len(items) == 0 {
		return fmt.Errorf("subtitle file contains no captions with text")
	}

	translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
		InputLanguage:     inputLang,
		TargetLanguage:    targetLang,
		Model:             settings.Model,
		Prompt:            prompt,
		BatchSize:         settings.BatchSize,
		Concurrency:       settings.Concurrency,
		RequestsPerMinute: settings.RequestsPerMinute,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating captions",
		"items", len(items),
		"batch_size", settings.BatchSize,
		"concurrency", settings.Concurrency,
	)

	results, err := translator.Translate(ctx, items)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	translated, err := translate.Apply(track, results, overlay)
	if err != nil {
		return fmt.Errorf("failed to apply translation: %w", err)
	}

	if err := caption.WriteFile(translated, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Subtitles translated successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Captions: %d\n", translated.Len())
	fmt.Fprintf(out, "  Target language: %s\n", targetLang)
	if overlay {
		fmt.Fprintf(out, "  Mode: bilingual overlay\n")
	}

	return nil
}

// merges translate flags over the configured defaults
func translateSettings(
	cmd *cobra.Command,
	base config.TranslateConfig,
) (config.TranslateConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		base.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		base.Model, _ = flags.GetString("model")
	}
	if flags.Changed("concurrency") {
		base.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("batch-size") {
		base.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("rpm") {
		base.RequestsPerMinute, _ = flags.GetInt("rpm")
	}
	if err := base.Validate(); err != nil {
		return base, err
	}
	return base, nil
}

func translatedPath(input, lang string, overlay bool) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	lang = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), " ", "-"))
	if overlay {
		return fmt.Sprintf("%s.%s.overlay.srt", base, lang)
	}
	return fmt.Sprintf("%s.%s.srt", base, lang)
}
