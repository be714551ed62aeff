package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/srtkit/internal/srt"
	"github.com/spf13/cobra"
)

// registers --write on commands that edit a file
func addWriteFlag(cmd *cobra.Command) {
	cmd.Flags().
		BoolP("write", "w", false, "Write the result back to the input file")
}

// writes subs to --output, back to inputPath with --write, or to stdout
func writeSubtitles(cmd *cobra.Command, subs *srt.Subtitles, inputPath string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	write, _ := cmd.Flags().GetBool("write")

	if outputPath == "" && write {
		outputPath = inputPath
	}
	if outputPath == "" {
		_, err := subs.WriteTo(cmd.OutOrStdout())
		return err
	}

	if err := subs.Save(outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Infow("Wrote subtitles", "output", outputPath, "cues", subs.Len())
	return nil
}

// openSubtitles parses path and logs what was read.
func openSubtitles(path string) (*srt.Subtitles, error) {
	subs, err := srt.Open(path)
	if err != nil {
		return nil, err
	}
	logger.Debugw("Parsed subtitle file", "path", path, "cues", subs.Len())
	return subs, nil
}

// parseOffset accepts a Go duration ("1.5s", "-250ms") or an SRT
// timestamp with an optional sign ("-00:00:01,500").
func parseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	neg := strings.HasPrefix(s, "-")
	ts, err := srt.ParseTimestamp(strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+"))
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: use a duration like 1.5s or a timestamp like 00:00:01,500", s)
	}
	if neg {
		return -ts.Duration(), nil
	}
	return ts.Duration(), nil
}

// parseTime accepts an SRT timestamp ("00:01:02,500") or a
// non-negative Go duration ("62.5s").
func parseTime(s string) (srt.Timestamp, error) {
	s = strings.TrimSpace(s)
	if ts, err := srt.ParseTimestamp(s); err == nil {
		return ts, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return srt.Timestamp{}, fmt.Errorf("invalid time %q: use a timestamp like 00:01:02,500 or a duration like 62.5s", s)
	}
	ts, err := srt.FromDuration(d)
	if errors.Is(err, srt.ErrNegativeDuration) {
		return srt.Timestamp{}, fmt.Errorf("invalid time %q: must not be negative", s)
	}
	return ts, err
}

// derives "<base>.<suffix><ext>" next to path
func siblingPath(path, suffix, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if suffix == "" {
		return base + ext
	}
	return base + "." + suffix + ext
}
