package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flytaly/mdpreview"
	"github.com/flytaly/mdpreview/pkg/config"
	"github.com/flytaly/mdpreview/pkg/log"
)

const defaultConfigName = ".mdpreview.yaml"

// getConfig loads the config file and applies the flags that were set on
// the command line.
func getConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	switch {
	case path != "":
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			break
		}
		loaded, err := config.Load(filepath.Join(home, defaultConfigName))
		if err == nil {
			cfg = loaded
		} else if !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("image-prefix") {
		cfg.RelativeImageURLPrefix, _ = flags.GetString("image-prefix")
	}
	if flags.Changed("details-open") {
		cfg.DetailsTagDefaultOpen, _ = flags.GetBool("details-open")
	}
	if flags.Changed("code-copy") {
		cfg.CodeCopy, _ = flags.GetBool("code-copy")
	}
	if flags.Changed("theme") {
		cfg.Theme, _ = flags.GetString("theme")
	}
	return cfg, nil
}

func getLogger(cmd *cobra.Command) (log.Logger, error) {
	logPath, _ := cmd.Flags().GetString("log")
	return log.New(logPath)
}

func newConverter(cmd *cobra.Command, logger log.Logger) (*mdpreview.Converter, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return mdpreview.New(mdpreview.WithConfig(cfg), mdpreview.WithLogger(logger)), nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdpreview",
	Short: "Render Markdown files into preview HTML",
	Long: `Render Markdown files into preview HTML

The output follows GitHub's rendering: tables, task lists, alerts, footnotes,
highlighted code and mermaid diagrams. Every top level block carries the
source lines it came from in line-start and line-end attributes.

Use 'watch' command to re-render files automatically when they change.
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version string) {
	rootCmd.Version = version
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/"+defaultConfigName+")")
	cmd.PersistentFlags().StringP("log", "l", "", "path to the log file")
	cmd.PersistentFlags().String("image-prefix", "", "prefix for relative image sources")
	cmd.PersistentFlags().Bool("details-open", false, "render <details> blocks expanded")
	cmd.PersistentFlags().Bool("code-copy", false, "add copy buttons to code blocks")
	cmd.PersistentFlags().String("theme", "", "code highlighting style")
}

func init() {
	addPersistentFlags(rootCmd)
}
