package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mgpai22/srtkit/internal/srt"
	"github.com/mgpai22/srtkit/internal/video"
	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [video_file] [subtitle_file]",
	Short: "Add an SRT file to a video as a soft subtitle track",
	Long: `Copy a video and add an SRT file as an extra subtitle track. Audio,
video and existing subtitle streams are copied without re-encoding.

The subtitle file is checked before ffmpeg runs. MP4 and MOV outputs get a
mov_text track; other containers keep SRT.

Examples:
  srtkit embed movie.mkv movie.es.srt -o movie.es.mkv --language spa
  srtkit embed clip.mp4 clip.srt --title "English (SDH)"`,
	Args: cobra.ExactArgs(2),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().
		String("language", "", "ISO 639-2 language tag for the new track (e.g., eng, spa)")
	embedCmd.Flags().String("title", "", "Title for the new track")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	videoPath, subtitlePath := args[0], args[1]

	language, _ := cmd.Flags().GetString("language")
	title, _ := cmd.Flags().GetString("title")
	outputPath, _ := cmd.Flags().GetString("output")

	subs, err := openSubtitles(subtitlePath)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = siblingPath(videoPath, "subtitled", filepath.Ext(videoPath))
	}
	if sameFile(outputPath, videoPath) {
		return fmt.Errorf("output %q would overwrite the input video", outputPath)
	}

	processor, err := newProcessor()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// ffmpeg gets the canonical rendering rather than the file as typed
	tmp, err := os.CreateTemp("", "srtkit-*.srt")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(srt.Render(subs)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	logger.Infow("Embedding subtitles",
		"video", videoPath,
		"subtitles", subtitlePath,
		"output", outputPath,
		"cues", subs.Len(),
		"language", language,
	)

	if err := processor.EmbedSubtitles(
		ctx,
		videoPath,
		tmp.Name(),
		outputPath,
		video.EmbedOptions{Language: language, Title: title},
	); err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles embedded successfully: %s\n", absOutput)

	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
