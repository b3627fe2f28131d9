// Package ui reports scenario progress. The runner talks to a UI; the CLI
// picks a plain writer, the bubbletea dashboard or nothing at all.
package ui

import (
	"fmt"
	"io"
	"sync"
)

type UI interface {
	UpdateStatus(status string)
	UpdateStep(step, total int)
	Log(msg string)
}

type SilentUI struct{}

func (s SilentUI) UpdateStatus(status string) {}
func (s SilentUI) UpdateStep(step, total int) {}
func (s SilentUI) Log(msg string)             {}

// TextUI writes log lines to a writer and ignores status and step updates.
type TextUI struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTextUI(out io.Writer) *TextUI {
	return &TextUI{out: out}
}

func (t *TextUI) UpdateStatus(status string) {}
func (t *TextUI) UpdateStep(step, total int) {}

func (t *TextUI) Log(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, msg)
}
