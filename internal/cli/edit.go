package cli

import (
	"fmt"
	"strings"

	"github.com/mgpai22/srtkit/internal/srt"
	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert [subtitle_file]",
	Short: "Insert a cue and renumber the ones after it",
	Long: `Insert a new cue at --index. The cue that held that index and every
cue after it move up by one. The new cue must start no earlier than the
cue before it and no later than the cue after it.

Examples:
  srtkit insert movie.srt --index 3 --start 00:00:05,000 --end 00:00:06,500 --text "Hello"
  srtkit insert movie.srt --index 1 --start 0s --end 2s --text "Intro" --write`,
	Args: cobra.ExactArgs(1),
	RunE: runInsert,
}

var removeCmd = &cobra.Command{
	Use:   "remove [subtitle_file]",
	Short: "Remove a cue and renumber the ones after it",
	Long: `Remove the cue with the given index. Every cue after it moves down
by one so indices stay contiguous.

Examples:
  srtkit remove movie.srt --index 7 --write`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(removeCmd)
	addWriteFlag(insertCmd)
	addWriteFlag(removeCmd)

	insertCmd.Flags().Int("index", 0, "Index the new cue takes (required)")
	insertCmd.Flags().String("start", "", "Start time (required)")
	insertCmd.Flags().String("end", "", "End time (required)")
	insertCmd.Flags().String("text", "", "Cue text; \\n separates lines")
	_ = insertCmd.MarkFlagRequired("index")
	_ = insertCmd.MarkFlagRequired("start")
	_ = insertCmd.MarkFlagRequired("end")

	removeCmd.Flags().Int("index", 0, "Index of the cue to remove (required)")
	_ = removeCmd.MarkFlagRequired("index")
}

func runInsert(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetInt("index")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	text, _ := cmd.Flags().GetString("text")

	start, err := parseTime(startStr)
	if err != nil {
		return err
	}
	end, err := parseTime(endStr)
	if err != nil {
		return err
	}

	line, err := srt.NewSubLine(index, unescapeNewlines(text), start, end)
	if err != nil {
		return fmt.Errorf("invalid cue: %w", err)
	}

	subs, err := openSubtitles(args[0])
	if err != nil {
		return err
	}
	if err := subs.Insert(line); err != nil {
		return fmt.Errorf("failed to insert cue: %w", err)
	}

	logger.Infow("Inserted cue", "index", index, "start", start, "end", end)
	return writeSubtitles(cmd, subs, args[0])
}

func runRemove(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetInt("index")

	subs, err := openSubtitles(args[0])
	if err != nil {
		return err
	}
	removed, err := subs.Remove(index)
	if err != nil {
		return fmt.Errorf("failed to remove cue: %w", err)
	}

	logger.Infow("Removed cue", "index", index, "text", removed.Text)
	return writeSubtitles(cmd, subs, args[0])
}

// a literal \n typed on the command line becomes a line break
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
