// Package console turns command lines into network operations and renders
// their results as text. The interactive shell and the scenario runner both
// drive the network through it.
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/toxicmates/internal/bench"
	"github.com/felixgeelhaar/toxicmates/internal/config"
	"github.com/felixgeelhaar/toxicmates/internal/network"
	"github.com/felixgeelhaar/toxicmates/internal/observe"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	// ErrExit is returned by the exit command; callers stop reading input.
	ErrExit = errors.New("exit")
)

// Command describes one console command.
type Command struct {
	Number  int
	Name    string
	Aliases []string
	Summary string
	// Args are required single-word arguments.
	Args []string
	// Optional is an optional trailing single-word argument.
	Optional string
	// Text names a free-text argument taking the rest of the line.
	Text         string
	TextRequired bool

	run func(ctx context.Context, c *Console, in input) (string, error)
}

type input struct {
	args     []string
	optional string
	text     string
}

// Usage renders the command's synopsis, e.g. "send <from> <to> <message...>".
func (cmd *Command) Usage() string {
	parts := []string{cmd.Name}
	for _, a := range cmd.Args {
		parts = append(parts, "<"+a+">")
	}
	if cmd.Optional != "" {
		parts = append(parts, "["+cmd.Optional+"]")
	}
	if cmd.Text != "" {
		if cmd.TextRequired {
			parts = append(parts, "<"+cmd.Text+"...>")
		} else {
			parts = append(parts, "["+cmd.Text+"...]")
		}
	}
	return strings.Join(parts, " ")
}

// Console dispatches command lines to a network service.
type Console struct {
	svc      *network.Service
	commands []*Command
	index    map[string]*Command
	scratch  func() bench.Target
}

// Option configures a Console.
type Option func(*Console)

// WithBenchTarget sets the factory for the network the bench command
// measures. By default each run gets a fresh, silent network so the live
// session is not filled with benchmark users.
func WithBenchTarget(fn func() bench.Target) Option {
	return func(c *Console) { c.scratch = fn }
}

func New(svc *network.Service, opts ...Option) *Console {
	c := &Console{
		svc:   svc,
		index: make(map[string]*Command),
		scratch: func() bench.Target {
			return network.New(config.Default(), observe.Discard(), nil)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, cmd := range commandTable() {
		c.register(cmd)
	}
	return c
}

func (c *Console) register(cmd *Command) {
	c.commands = append(c.commands, cmd)
	c.index[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		c.index[alias] = cmd
	}
	if cmd.Number > 0 {
		c.index[strconv.Itoa(cmd.Number)] = cmd
	}
}

// Commands returns the registered commands in menu order.
func (c *Console) Commands() []*Command {
	return c.commands
}

// Lookup resolves a command by name, alias or menu number.
func (c *Console) Lookup(name string) (*Command, bool) {
	cmd, ok := c.index[strings.ToLower(name)]
	return cmd, ok
}

// Known reports whether name resolves to a command.
func (c *Console) Known(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Names returns every name, alias and number a command answers to.
func (c *Console) Names() []string {
	names := make([]string, 0, len(c.index))
	for _, cmd := range c.commands {
		names = append(names, cmd.Name)
		names = append(names, cmd.Aliases...)
	}
	return names
}

// Execute parses and runs one command line. Blank lines produce no output.
func (c *Console) Execute(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	cmd, ok := c.Lookup(fields[0])
	if !ok {
		return "", fmt.Errorf("%w %q. %s", ErrUnknownCommand, fields[0], invalidChoice)
	}

	in, err := parse(cmd, fields[1:])
	if err != nil {
		return "", err
	}
	return cmd.run(ctx, c, in)
}

func parse(cmd *Command, rest []string) (input, error) {
	if len(rest) < len(cmd.Args) {
		return input{}, fmt.Errorf("%w: %s", ErrUsage, cmd.Usage())
	}
	in := input{args: rest[:len(cmd.Args)]}
	rest = rest[len(cmd.Args):]

	switch {
	case cmd.Text != "":
		in.text = strings.Join(rest, " ")
		if cmd.TextRequired && in.text == "" {
			return input{}, fmt.Errorf("%w: %s", ErrUsage, cmd.Usage())
		}
	case cmd.Optional != "":
		if len(rest) > 1 {
			return input{}, fmt.Errorf("%w: %s", ErrUsage, cmd.Usage())
		}
		if len(rest) == 1 {
			in.optional = rest[0]
		}
	case len(rest) > 0:
		return input{}, fmt.Errorf("%w: %s", ErrUsage, cmd.Usage())
	}
	return in, nil
}

// Menu renders the numbered menu.
func (c *Console) Menu() string {
	var sb strings.Builder
	sb.WriteString("\t\tTOXIC UNO Mates\n")
	for _, cmd := range c.commands {
		if cmd.Number > 0 {
			fmt.Fprintf(&sb, "%3d. %-40s %s\n", cmd.Number, cmd.Usage(), cmd.Summary)
		}
	}
	for _, cmd := range c.commands {
		if cmd.Number == 0 {
			fmt.Fprintf(&sb, "     %-40s %s\n", cmd.Usage(), cmd.Summary)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
