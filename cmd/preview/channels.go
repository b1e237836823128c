package preview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flytaly/mdpreview/pkg/fswatcher"
	"github.com/flytaly/mdpreview/pkg/log"
)

type eventMsg fswatcher.Event

type errMsg struct{ err error }

type renderedMsg struct {
	name string
	at   time.Time
	err  error
}

func waitForEvents(events <-chan fswatcher.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func waitForErrors(errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{<-errs}
	}
}

func waitForLogs(records <-chan log.Record) tea.Cmd {
	return func() tea.Msg {
		return <-records
	}
}
