package cli

import (
	"errors"
	"fmt"

	"github.com/mgpai22/srtkit/internal/srt"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [subtitle_file...]",
	Short: "Check that SRT files are well formed",
	Long: `Parse each file and report whether it is a valid SRT file.

A file is valid when it contains at least one cue, cue indices run
1, 2, 3 ... without gaps, no cue ends before it starts and cues are
ordered by start time.

Examples:
  srtkit check movie.srt
  srtkit check season1/*.srt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		subs, err := srt.Open(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: %s\n", path, describeParseError(err))
			continue
		}
		fmt.Fprintf(out, "%s: ok (%d cues, ends at %s)\n", path, subs.Len(), subs.Duration())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files are not valid SRT", failed, len(args))
	}
	return nil
}

func describeParseError(err error) string {
	var consistency *srt.ConsistencyError
	switch {
	case errors.As(err, &consistency):
		return fmt.Sprintf("cue %d (index %d): %s", consistency.Position+1, consistency.Index, consistency.Reason)
	case errors.Is(err, srt.ErrNotSrtFormat):
		return "no SRT cues found"
	default:
		return err.Error()
	}
}
