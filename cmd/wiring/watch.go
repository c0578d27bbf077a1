package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/wiring"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(9)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type watchKeys struct {
	delay  key.Binding
	reinit key.Binding
	quit   key.Binding
}

func (k watchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.delay, k.reinit, k.quit}
}

func (k watchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultWatchKeys = watchKeys{
	delay:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delay(1000)")),
	reinit: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-init")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type tickMsg time.Time

type delayDoneMsg delayReport

type watchModel struct {
	rt       *wiring.Runtime
	last     *delayReport
	spinner  spinner.Model
	help     help.Model
	keys     watchKeys
	interval time.Duration
	millis   uint64
	micros   uint64
	delaying bool
}

func newWatchModel(rt *wiring.Runtime, interval time.Duration) *watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &watchModel{
		rt:       rt,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultWatchKeys,
		interval: interval,
	}
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *watchModel) runDelay() tea.Msg {
	return delayDoneMsg(measureDelay(m.rt, 1000, false))
}

func (m *watchModel) Init() tea.Cmd {
	m.sample()
	return m.tick()
}

func (m *watchModel) sample() {
	m.millis = m.rt.Millis()
	m.micros = m.rt.Micros()
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.reinit):
			m.rt.Init()
			m.sample()
		case key.Matches(msg, m.keys.delay):
			if !m.delaying {
				m.delaying = true
				return m, tea.Batch(m.runDelay, m.spinner.Tick)
			}
		}
	case tickMsg:
		m.sample()
		return m, m.tick()
	case delayDoneMsg:
		r := delayReport(msg)
		m.last = &r
		m.delaying = false
	case spinner.TickMsg:
		if m.delaying {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wiring"))
	b.WriteString(fmt.Sprintf("  %s / %s\n\n", m.rt.Source().Name(), m.rt.Sleeper().Name()))

	b.WriteString(labelStyle.Render("millis"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.millis)))
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("micros"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.micros)))
	b.WriteString("\n\n")

	switch {
	case m.delaying:
		b.WriteString(m.spinner.View())
		b.WriteString(" delay(1000)...\n")
	case m.last != nil && m.last.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("delay failed: %v", m.last.err)))
		b.WriteByte('\n')
	case m.last != nil:
		b.WriteString(labelStyle.Render("measured"))
		b.WriteString(valueStyle.Render(m.last.measured.String()))
		b.WriteByte('\n')
		b.WriteString(labelStyle.Render("drift"))
		b.WriteString(valueStyle.Render(m.last.drift().String()))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// watchPlain prints samples lines without a terminal UI.
func watchPlain(w io.Writer, rt *wiring.Runtime, interval time.Duration, samples int) {
	for i := 0; i < samples; i++ {
		if i > 0 {
			rt.Delay(uint64(interval / time.Millisecond))
		}
		fmt.Fprintf(w, "millis=%d micros=%d\n", rt.Millis(), rt.Micros())
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		interval time.Duration
		samples  int
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show live millis/micros counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
				watchPlain(cmd.OutOrStdout(), a.rt, interval, samples)
				return nil
			}
			_, err := tea.NewProgram(newWatchModel(a.rt, interval), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "refresh interval")
	cmd.Flags().IntVar(&samples, "samples", 10, "samples to print without a terminal")
	cmd.Flags().BoolVar(&plain, "plain", false, "print samples instead of the live view")
	return cmd
}
