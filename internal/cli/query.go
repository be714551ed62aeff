package cli

import (
	"errors"
	"fmt"

	"github.com/mgpai22/srtkit/internal/srt"
	"github.com/spf13/cobra"
)

var errNoCue = errors.New("no matching cue")

var queryCmd = &cobra.Command{
	Use:   "query [subtitle_file]",
	Short: "Print the cue at an index or time",
	Long: `Look up a single cue and print it as an SRT block.

With --at, prints the cue showing at that time; a time that falls on the
boundary of two cues picks the earlier one. With --nearest, gaps are
filled by the cue that started last; times before the first cue starts
or after the final cue ends still find nothing.

Examples:
  srtkit query movie.srt --index 42
  srtkit query movie.srt --at 00:12:03,250
  srtkit query movie.srt --at 723.25s --nearest`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().Int("index", 0, "Cue index to print")
	queryCmd.Flags().String("at", "", "Time to look up")
	queryCmd.Flags().Bool("nearest", false, "With --at, fall back to the cue that started last")

	queryCmd.MarkFlagsOneRequired("index", "at")
	queryCmd.MarkFlagsMutuallyExclusive("index", "at")
}

func runQuery(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetInt("index")
	at, _ := cmd.Flags().GetString("at")
	nearest, _ := cmd.Flags().GetBool("nearest")

	subs, err := openSubtitles(args[0])
	if err != nil {
		return err
	}

	var line *srt.SubLine
	var what string
	if at != "" {
		t, err := parseTime(at)
		if err != nil {
			return err
		}
		if nearest {
			line = subs.NearestByTime(t)
		} else {
			line = subs.ByTime(t)
		}
		what = "at " + t.String()
	} else {
		line = subs.ByIndex(index)
		what = fmt.Sprintf("with index %d", index)
	}

	if line == nil {
		return fmt.Errorf("%w %s", errNoCue, what)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), line.String())
	return err
}
