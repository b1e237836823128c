package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/flytaly/mdpreview/pkg/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token tree of a Markdown file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) == 0 {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		tokens, err := lexer.New().Lex(string(data))
		if err != nil {
			return err
		}
		printTokens(cmd.OutOrStdout(), tokens, 0)
		return nil
	},
}

// printTokens writes one line per token: kind, source lines and a short
// excerpt of the raw text. Children are indented below their parent.
func printTokens(w io.Writer, tokens []lexer.Token, depth int) {
	for _, t := range tokens {
		line := strings.Repeat("  ", depth) + color.Green.Sprint(t.Kind().String())
		if sm := t.GetSourceMap(); sm != nil {
			line += " " + color.Cyan.Sprintf("[%d-%d]", sm.Start, sm.End)
		}
		line += " " + excerpt(t.GetRaw(), 40)
		fmt.Fprintln(w, line)
		printTokens(w, lexer.Children(t), depth+1)
	}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return strconv.Quote(string(r[:n-3]) + "...")
	}
	return strconv.Quote(s)
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
