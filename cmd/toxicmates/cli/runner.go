package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/toxicmates/internal/console"
	"github.com/felixgeelhaar/toxicmates/internal/observe"
	"github.com/felixgeelhaar/toxicmates/internal/scenario"
	"github.com/felixgeelhaar/toxicmates/internal/ui"
	"github.com/felixgeelhaar/toxicmates/internal/ui/tui"
)

var interactive bool

var runCmd = &cobra.Command{
	Use:   "run [scenario-file]",
	Short: "Replay a scripted scenario against a fresh network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Show progress in a TUI")
}

// Runner executes a scenario step by step through a console.
type Runner struct {
	Observer *observe.Observer
	Console  *console.Console
	Path     string
	UI       ui.UI
}

func NewRunner(obs *observe.Observer, c *console.Console, path string, u ui.UI) *Runner {
	if u == nil {
		u = ui.SilentUI{}
	}
	return &Runner{
		Observer: obs,
		Console:  c,
		Path:     path,
		UI:       u,
	}
}

// Run loads, validates and replays the scenario. It stops at the first
// step whose outcome does not match its expectation, or at an exit step.
func (r *Runner) Run(ctx context.Context) error {
	r.UI.UpdateStatus("Loading scenario...")
	r.Observer.Log().Info().Str("path", r.Path).Msg("loading scenario")

	sc, err := scenario.Load(r.Path)
	if err != nil {
		r.Observer.Log().Error().Err(err).Msg("Failed to load scenario")
		return err
	}

	validation := scenario.Validate(*sc, r.Console.Known)
	for _, w := range validation.Warnings {
		r.Observer.Log().Warn().Str("path", r.Path).Msg(w)
	}
	if !validation.Valid {
		r.Observer.Log().Error().Str("errors", strings.Join(validation.Errors, ", ")).Msg("Invalid scenario")
		return fmt.Errorf("invalid scenario: %s", strings.Join(validation.Errors, "; "))
	}

	r.UI.UpdateStatus("Running " + sc.Name)
	total := len(sc.Steps)
	for i, step := range sc.Steps {
		r.UI.UpdateStep(i+1, total)
		r.UI.Log("> " + step.Run)

		out, err := r.Console.Execute(ctx, step.Run)
		if out != "" {
			r.UI.Log(out)
		}
		if errors.Is(err, console.ErrExit) {
			r.UI.UpdateStep(total, total)
			break
		}
		if err := check(step, out, err); err != nil {
			err = fmt.Errorf("step %d (%s): %w", i+1, step.Run, err)
			r.UI.UpdateStatus("Scenario failed")
			r.Observer.Log().Error().Int("step", i+1).Err(err).Msg("Scenario failed")
			return err
		}
	}

	r.UI.UpdateStatus("Completed")
	r.Observer.Log().Info().Str("scenario", sc.Name).Int("steps", total).Msg("scenario complete")
	return nil
}

func check(step scenario.Step, out string, err error) error {
	if step.ExpectError {
		if err == nil {
			return errors.New("expected an error, command succeeded")
		}
		if step.Expect != "" && !strings.Contains(err.Error(), step.Expect) {
			return fmt.Errorf("expected error containing %q, got %q", step.Expect, err.Error())
		}
		return nil
	}
	if err != nil {
		return err
	}
	if step.Expect != "" && !strings.Contains(out, step.Expect) {
		return fmt.Errorf("expected output containing %q, got %q", step.Expect, out)
	}
	return nil
}

func runScenario(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logOut := io.Writer(os.Stderr)
	if interactive {
		// Log lines would tear the dashboard.
		logOut = io.Discard
	}
	sess, err := newSession(logOut)
	if err != nil {
		return err
	}
	defer sess.Close()

	c := console.New(sess.network)

	if !interactive {
		runner := NewRunner(sess.obs, c, path, ui.NewTextUI(os.Stdout))
		return runner.Run(ctx)
	}

	model := tui.NewModel(path, 0)
	program := tea.NewProgram(model)
	u := tui.NewTUI(program)

	done := make(chan error, 1)
	go func() {
		runner := NewRunner(sess.obs, c, path, u)
		err := runner.Run(ctx)
		done <- err
		program.Send(tui.DoneMsg{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	select {
	case err := <-done:
		return err
	default:
		// Quit before the scenario finished.
		return nil
	}
}
