package dashboard

import (
	"time"

	"github.com/logmaster/dashboard/internal/controller"
)

// Message types for tea.Cmd async operations

// StateChangedMsg is sent whenever the controller state changed
type StateChangedMsg struct{}

// actionDoneMsg is sent when a dispatched action returned
type actionDoneMsg struct {
	action controller.Action
	result controller.Result
	err    error
}

// tickMsg updates the header clock
type tickMsg time.Time
