package ui

import (
	"bytes"
	"testing"
)

func TestSilentUI(t *testing.T) {
	ui := SilentUI{}
	// Should not panic
	ui.UpdateStatus("test status")
	ui.UpdateStep(1, 3)
	ui.UpdateStep(0, 0)
	ui.Log("")
}

func TestImplementsInterface(t *testing.T) {
	var _ UI = SilentUI{}
	var _ UI = &SilentUI{}
	var _ UI = &TextUI{}
	var _ UI = &MockUI{}
}

func TestTextUI_Log(t *testing.T) {
	var buf bytes.Buffer
	ui := NewTextUI(&buf)

	ui.UpdateStatus("ignored")
	ui.UpdateStep(1, 2)
	ui.Log("> add-user alice")
	ui.Log("Congratulations! alice is a member of TOXIC Mates.")

	expected := "> add-user alice\nCongratulations! alice is a member of TOXIC Mates.\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

// MockUI records every call for assertions.
type MockUI struct {
	StatusUpdates []string
	Steps         [][2]int
	LogMessages   []string
}

func (m *MockUI) UpdateStatus(status string) {
	m.StatusUpdates = append(m.StatusUpdates, status)
}

func (m *MockUI) UpdateStep(step, total int) {
	m.Steps = append(m.Steps, [2]int{step, total})
}

func (m *MockUI) Log(msg string) {
	m.LogMessages = append(m.LogMessages, msg)
}

func TestMockUI_Sequence(t *testing.T) {
	ui := &MockUI{}

	ui.UpdateStatus("running")
	ui.UpdateStep(1, 2)
	ui.Log("one")
	ui.UpdateStep(2, 2)
	ui.Log("two")
	ui.UpdateStatus("done")

	if len(ui.StatusUpdates) != 2 {
		t.Errorf("expected 2 status updates, got %d", len(ui.StatusUpdates))
	}
	if ui.StatusUpdates[1] != "done" {
		t.Errorf("expected 'done', got %q", ui.StatusUpdates[1])
	}
	if len(ui.Steps) != 2 || ui.Steps[1] != [2]int{2, 2} {
		t.Errorf("expected steps [[1 2] [2 2]], got %v", ui.Steps)
	}
	if len(ui.LogMessages) != 2 || ui.LogMessages[0] != "one" {
		t.Errorf("expected log [one two], got %v", ui.LogMessages)
	}
}
