package cli

import (
	"fmt"
	"os"

	"github.com/mgpai22/srtkit/internal/config"
	"github.com/mgpai22/srtkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "srtkit",
	Short: "Parse, edit and translate SRT subtitle files",
	Long: `srtkit reads SubRip (.srt) subtitle files, checks that they are
well formed and rewrites them in canonical form.

Cues can be queried by index or time, inserted, removed and shifted.
Whole files can be translated with an AI provider, pulled out of a video
container, or muxed back into one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		path := configPath
		if path == "" {
			path = os.Getenv(config.EnvConfigPath)
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if path != "" {
			logger.Debugw("Loaded config", "path", path)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path (or set SRTKIT_CONFIG)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
