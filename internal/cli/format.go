package cli

import (
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [subtitle_file]",
	Short: "Rewrite an SRT file in canonical form",
	Long: `Parse an SRT file and print it back in canonical form: CRLF line
endings, zero-padded timestamps, no byte order mark, one blank line after
every cue and one extra blank line at the end of the file.

Examples:
  srtkit fmt movie.srt
  srtkit fmt movie.srt --write
  srtkit fmt movie.srt -o clean.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	addWriteFlag(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	subs, err := openSubtitles(args[0])
	if err != nil {
		return err
	}
	return writeSubtitles(cmd, subs, args[0])
}
