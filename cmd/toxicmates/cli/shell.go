package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/toxicmates/internal/console"
)

const prompt = "Enter your choice: "

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse TOXIC Mates from the interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(os.Stderr)
		if err != nil {
			return err
		}
		defer sess.Close()

		c := console.New(sess.network)

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          prompt,
			AutoComplete:    completer(c),
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = rl.Close()
		}()

		return shell(cmd.Context(), c, rl.Readline, rl.Stdout())
	},
}

func init() {
	RootCmd.AddCommand(shellCmd)
}

func completer(c *console.Console) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(c.Commands()))
	for _, cmd := range c.Commands() {
		items = append(items, readline.PcItem(cmd.Name))
	}
	return readline.NewPrefixCompleter(items...)
}

// shell prints the menu and executes lines until exit or end of input.
// Ctrl-C on an empty line ends the session, otherwise it clears the line.
func shell(ctx context.Context, c *console.Console, readLine func() (string, error), out io.Writer) error {
	fmt.Fprintln(out, "Welcome to TOXIC UNO Mates")
	fmt.Fprintln(out, c.Menu())
	fmt.Fprintln(out)

	for {
		line, err := readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		result, err := c.Execute(ctx, strings.TrimSpace(line))
		if result != "" {
			fmt.Fprintln(out, result)
		}
		switch {
		case errors.Is(err, console.ErrExit):
			return nil
		case err != nil:
			fmt.Fprintln(out, err)
		}
	}
}
