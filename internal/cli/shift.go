package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Move cues earlier or later in time",
	Long: `Shift every cue, or the cues in --from..--to, by a signed offset.

The offset is a Go duration (1.5s, -250ms, 1m2s) or an SRT timestamp with
an optional sign (-00:00:01,500). Nothing is written if a cue would start
before zero or a shifted range would overtake its neighbours.

Examples:
  srtkit shift movie.srt --by 2s --write
  srtkit shift movie.srt --by -00:00:00,750 -o synced.srt
  srtkit shift movie.srt --by 1s --from 10 --to 20`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)
	addWriteFlag(shiftCmd)

	shiftCmd.Flags().String("by", "", "Offset to apply (required)")
	shiftCmd.Flags().Int("from", 0, "First cue index to shift (default: 1)")
	shiftCmd.Flags().Int("to", 0, "Last cue index to shift (default: last cue)")

	_ = shiftCmd.MarkFlagRequired("by")
}

func runShift(cmd *cobra.Command, args []string) error {
	by, _ := cmd.Flags().GetString("by")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")

	offset, err := parseOffset(by)
	if err != nil {
		return err
	}

	subs, err := openSubtitles(args[0])
	if err != nil {
		return err
	}

	if from == 0 && to == 0 {
		err = subs.Shift(offset)
	} else {
		if from == 0 {
			from = 1
		}
		if to == 0 {
			to = subs.Len()
		}
		err = subs.ShiftRange(from, to, offset)
	}
	if err != nil {
		return fmt.Errorf("failed to shift subtitles: %w", err)
	}

	logger.Infow("Shifted subtitles", "offset", offset, "from", from, "to", to)
	return writeSubtitles(cmd, subs, args[0])
}
