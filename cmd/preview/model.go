package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gookit/color"

	"github.com/flytaly/mdpreview"
	"github.com/flytaly/mdpreview/pkg/fswatcher"
	"github.com/flytaly/mdpreview/pkg/log"
)

const (
	maxLogRecords = 10
	maxFiles      = 20
)

type ProgramCfg struct {
	Root      string   // directory the paths are relative to
	Paths     []string // watched files and directories
	Interval  time.Duration
	Converter *mdpreview.Converter
	Log       *log.ChanLog
}

type model struct {
	root     string
	interval time.Duration
	conv     *mdpreview.Converter
	poller   *fswatcher.Poller
	logger   *log.ChanLog
	help     help.Model

	files    []string
	rendered map[string]time.Time
	logs     []log.Record
	watching bool
	showLog  bool
	quitting bool
	width    int
}

func newModel(cfg ProgramCfg) (model, error) {
	m := model{
		root:     cfg.Root,
		interval: cfg.Interval,
		conv:     cfg.Converter,
		poller:   fswatcher.NewPoller(os.DirFS(cfg.Root), nil),
		logger:   cfg.Log,
		help:     help.New(),
		rendered: make(map[string]time.Time),
		watching: true,
		width:    80,
	}
	for _, p := range cfg.Paths {
		rel, err := relative(cfg.Root, p)
		if err != nil {
			return m, err
		}
		if _, err := m.poller.Add(rel); err != nil {
			return m, fmt.Errorf("watch %s: %w", p, err)
		}
	}
	m.files = m.poller.Files()
	if len(m.files) == 0 {
		return m, fmt.Errorf("no Markdown files in %s", strings.Join(cfg.Paths, ", "))
	}
	return m, nil
}

// relative turns p into a slash separated path inside root.
func relative(root, p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return "", err
		}
		p = rel
	}
	p = filepath.ToSlash(filepath.Clean(p))
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%s is outside of %s", p, root)
	}
	return p, nil
}

func (m model) render(name string) tea.Cmd {
	return func() tea.Msg {
		src := filepath.Join(m.root, filepath.FromSlash(name))
		err := m.conv.RenderFile(src, mdpreview.OutputPath(src))
		return renderedMsg{name: name, at: time.Now(), err: err}
	}
}

func (m model) renderAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.files))
	for _, name := range m.files {
		cmds = append(cmds, m.render(name))
	}
	return tea.Batch(cmds...)
}

func (m model) startPoller() tea.Cmd {
	return func() tea.Msg {
		go func() {
			if err := m.poller.Start(m.interval); err != nil {
				m.logger.Error("watcher: %v", err)
			}
		}()
		return nil
	}
}

// Init optionally returns an initial command we should run.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.renderAll(),
		m.startPoller(),
		waitForEvents(m.poller.Events()),
		waitForErrors(m.poller.Errors()),
		waitForLogs(m.logger.Records()),
	)
}

// Update is called when messages are received. The idea is that you inspect the
// message and send back an updated model accordingly. You can also return
// a command, which is a function that performs I/O and returns a message.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			_ = m.poller.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Watch):
			m.watching = !m.watching
			if m.watching {
				return m, m.renderAll()
			}
		case key.Matches(msg, keys.Render):
			return m, m.renderAll()
		case key.Matches(msg, keys.Log):
			m.showLog = !m.showLog
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.files = m.poller.Files()
		if !m.watching {
			return m, waitForEvents(m.poller.Events())
		}
		switch msg.Op {
		case fswatcher.Write, fswatcher.Create:
			return m, tea.Batch(m.render(msg.Name), waitForEvents(m.poller.Events()))
		case fswatcher.Remove:
			delete(m.rendered, msg.Name)
			m.logger.Warning("%s was removed", msg.Name)
		}
		return m, waitForEvents(m.poller.Events())

	case errMsg:
		m.logger.Error("watcher: %v", msg.err)
		return m, waitForErrors(m.poller.Errors())

	case renderedMsg:
		if msg.err != nil {
			m.logger.Error("%v", msg.err)
			return m, nil
		}
		m.rendered[msg.name] = msg.at
		return m, nil

	case log.Record:
		m.logs = append(m.logs, msg)
		if len(m.logs) > maxLogRecords {
			m.logs = m.logs[len(m.logs)-maxLogRecords:]
		}
		return m, waitForLogs(m.logger.Records())
	}
	return m, nil
}

// View returns a string based on data in the model. That string which will be
// rendered to the terminal.
func (m model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	if m.watching {
		fmt.Fprintf(&sb, " %s  Watching %s\n\n", color.Green.Sprint("➜"), color.Cyan.Sprint(m.root))
	} else {
		fmt.Fprintf(&sb, " %s  Paused\n\n", color.Yellow.Sprint("‖"))
	}
	sb.WriteString(printFiles(m.files, m.rendered, maxFiles, m.width))
	if m.showLog {
		sb.WriteString("\n")
		for _, r := range m.logs {
			sb.WriteString(" " + r.String() + "\n")
		}
	}
	sb.WriteString("\n" + m.help.View(keys) + "\n")
	return sb.String()
}

func NewProgram(cfg ProgramCfg) (*tea.Program, error) {
	m, err := newModel(cfg)
	if err != nil {
		return nil, err
	}
	return tea.NewProgram(m), nil
}
