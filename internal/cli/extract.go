package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mgpai22/srtkit/internal/ffmpeg"
	"github.com/mgpai22/srtkit/internal/srt"
	"github.com/mgpai22/srtkit/internal/video"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract a subtitle stream from a video file as SRT",
	Long: `Extract one subtitle stream from a video container and save it as an
SRT file. The result is parsed and rewritten in canonical form.

Use --list to see the subtitle streams a file carries.

Requires ffmpeg and ffprobe in PATH, or set SRTKIT_FFMPEG_PATH and
SRTKIT_FFPROBE_PATH (or ffmpeg.path and ffmpeg.ffprobe_path in the config).

Examples:
  srtkit extract movie.mkv
  srtkit extract movie.mkv --list
  srtkit extract movie.mkv --stream 1 -o movie.en.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream number (0 is the first subtitle stream)")
	extractCmd.Flags().
		Bool("list", false, "List subtitle streams instead of extracting")
}

func newProcessor() (*video.DefaultProcessor, error) {
	bins, err := ffmpeg.Locate(ffmpeg.BinaryPaths{
		FFmpeg:  cfg.FFmpeg.Path,
		FFprobe: cfg.FFmpeg.FFprobePath,
	})
	if err != nil {
		return nil, err
	}
	logger.Debugw("Using ffmpeg", "ffmpeg", bins.FFmpeg, "ffprobe", bins.FFprobe)
	return video.NewProcessor(bins), nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	stream, _ := cmd.Flags().GetInt("stream")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")

	processor, err := newProcessor()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if list {
		streams, err := processor.SubtitleStreams(ctx, videoPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(streams) == 0 {
			fmt.Fprintln(out, "no subtitle streams")
			return nil
		}
		for _, s := range streams {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", s.Index, s.Codec, s.Language, s.Title)
		}
		return nil
	}

	if outputPath == "" {
		outputPath = siblingPath(videoPath, "", ".srt")
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"output", outputPath,
		"stream", stream,
	)

	if err := processor.ExtractSubtitles(
		ctx,
		videoPath,
		outputPath,
		video.ExtractOptions{Stream: stream},
	); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	// round trip through the parser so the output is canonical
	subs, err := srt.Open(outputPath)
	if err != nil {
		return fmt.Errorf("extracted stream is not valid SRT: %w", err)
	}
	if err := subs.Save(outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s (%d cues)\n", absOutput, subs.Len())

	return nil
}
