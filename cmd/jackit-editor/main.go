// Command jackit-editor runs the in-game code editor in a terminal. The
// committed text is written to stdout when the editor is closed with Esc.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vix597/jackit"
	"github.com/vix597/jackit/editor"
	"github.com/vix597/jackit/internal/config"
)

type model struct {
	editor editor.Model
	commit *editor.CommitMsg
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case editor.CommitMsg:
		m.commit = &msg
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.editor.View() }

// terminalRepeat stands in for the game's key repeat control. Terminals
// repeat keys on their own, so acquiring only records the request.
type terminalRepeat struct {
	log *slog.Logger
}

func (r terminalRepeat) AcquireRepeat(delay, interval time.Duration) (editor.RepeatHandle, error) {
	r.log.Info("key repeat requested", "delay", delay, "interval", interval)
	return editor.ReleaseFunc(func() {
		r.log.Info("key repeat restored")
	}), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jackit-editor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "settings file (default "+config.DefaultPath()+")")
	logPath := fs.String("log", "", "write debug logs to this file")
	textPath := fs.String("file", "", "open this file instead of the configured start text")
	writeConfig := fs.Bool("write-config", false, "write the effective settings to the settings file and exit")
	showVersion := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, "jackit-editor", jackit.VersionTag())
		return 0
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *writeConfig {
		if err := config.Save(settings, *configPath); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "open log %q: %v\n", *logPath, err)
			return 1
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	text := settings.Editor.StartText
	if *textPath != "" {
		data, err := os.ReadFile(*textPath)
		if err != nil {
			fmt.Fprintf(stderr, "read %q: %v\n", *textPath, err)
			return 1
		}
		text = string(data)
	}

	ed, err := editor.New(editor.Config{
		Text:           text,
		TabSize:        settings.Editor.TabSize,
		RepeatDelay:    settings.Editor.RepeatDelay(),
		RepeatInterval: settings.Editor.RepeatInterval(),
		Repeater:       terminalRepeat{log: logger},
		Logger:         logger,
		ShowLineNums:   settings.Editor.ShowLineNumbers,
		Style:          editor.DefaultStyle(),
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	// Every exit path gives the repeat resource back.
	defer ed.Session().Stop()

	logger.Info("starting", "version", jackit.Version(), "runes", len([]rune(text)))
	final, err := tea.NewProgram(model{editor: ed}, tea.WithAltScreen()).Run()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if m, ok := final.(model); ok && m.commit != nil {
		fmt.Fprint(stdout, m.commit.Text)
	}
	return 0
}
