package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flytaly/mdpreview/cmd/preview"
	"github.com/flytaly/mdpreview/pkg/fswatcher"
	"github.com/flytaly/mdpreview/pkg/log"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [files or directories]",
	Short: "Watch Markdown files and re-render them when they change",
	Long: `Watch Markdown files and re-render them when they change.

Directories are searched recursively. Without arguments the current
directory is watched. Each file is written next to its source with
the .html extension.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		if interval < fswatcher.MinInterval {
			return fmt.Errorf("interval should be at least %s", fswatcher.MinInterval)
		}

		// console output would break the terminal UI
		var next log.Logger = log.NewEmptyLog()
		if path, _ := cmd.Flags().GetString("log"); path != "" {
			var err error
			if next, err = log.New(path); err != nil {
				return err
			}
		}
		defer next.Close()

		logger := log.NewChanLog(64, next)
		conv, err := newConverter(cmd, logger)
		if err != nil {
			return err
		}

		root, err := os.Getwd()
		if err != nil {
			return err
		}
		paths := args
		if len(paths) == 0 {
			paths = []string{"."}
		}

		p, err := preview.NewProgram(preview.ProgramCfg{
			Root:      root,
			Paths:     paths,
			Interval:  interval,
			Converter: conv,
			Log:       logger,
		})
		if err != nil {
			return err
		}
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", 500*time.Millisecond, "poll interval duration (e.g. 1s, 500ms...)")
}
