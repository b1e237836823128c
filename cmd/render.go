package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/flytaly/mdpreview"
)

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Render Markdown files to HTML pages",
	Long: `Render Markdown files to HTML pages

Each file is written next to its source with an .html extension.
Without arguments the document is read from stdin and written to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := getLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Close()

		conv, err := newConverter(cmd, logger)
		if err != nil {
			return err
		}
		toStdout, _ := cmd.Flags().GetBool("stdout")
		fragment, _ := cmd.Flags().GetBool("fragment")

		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			return writeDocument(cmd.OutOrStdout(), conv, "stdin", string(data), fragment)
		}

		for _, name := range args {
			if !toStdout {
				if err := conv.RenderFile(name, mdpreview.OutputPath(name)); err != nil {
					return err
				}
				continue
			}
			data, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			if err := writeDocument(cmd.OutOrStdout(), conv, name, string(data), fragment); err != nil {
				return err
			}
		}
		return nil
	},
}

func writeDocument(w io.Writer, conv *mdpreview.Converter, title, src string, fragment bool) error {
	res, err := conv.Parse(src)
	if err != nil {
		return fmt.Errorf("convert %s: %w", title, err)
	}
	out := conv.Page(title, res)
	if fragment {
		out = res.HTML + res.Script
	}
	_, err = io.WriteString(w, out)
	return err
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().Bool("stdout", false, "write the pages to stdout")
	renderCmd.Flags().Bool("fragment", false, "write only the document HTML without the page around it")
}
