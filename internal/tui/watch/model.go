// Package watch is the live terminal UI behind `pagerkit watch`: a scrolling
// tail of webhook deliveries as the receiver accepts them.
package watch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagerkit/pagerkit/internal/feed"
)

const maxRows = 500

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	eventStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	resourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

type deliveryMsg feed.Delivery

type feedClosedMsg struct{}

// Model is the Bubble Tea model for the watch UI.
type Model struct {
	deliveries []feed.Delivery
	ch         <-chan feed.Delivery
	cancel     func()
	spinner    spinner.Model

	width  int
	height int
}

// New creates a watch model subscribed to the feed. Deliveries already
// buffered in the feed are shown immediately.
func New(f *feed.Feed) *Model {
	ch, cancel := f.Subscribe()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		deliveries: f.Snapshot(),
		ch:         ch,
		cancel:     cancel,
		spinner:    sp,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForDelivery(m.ch),
		m.spinner.Tick,
		tea.EnterAltScreen,
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case deliveryMsg:
		m.deliveries = append(m.deliveries, feed.Delivery(msg))
		if len(m.deliveries) > maxRows {
			m.deliveries = m.deliveries[len(m.deliveries)-maxRows:]
		}
		return m, waitForDelivery(m.ch)

	case feedClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("pagerkit watch — PagerDuty webhook deliveries"))
	b.WriteString("\n\n")

	if len(m.deliveries) == 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.spinner.View(),
			idleStyle.Render("waiting for deliveries...")))
	} else {
		visible := m.deliveries
		if rows := m.height - 5; rows > 0 && len(visible) > rows {
			visible = visible[len(visible)-rows:]
		}
		for _, d := range visible {
			b.WriteString(fmt.Sprintf("  %s  %s %s  %s\n",
				timeStyle.Render(d.ReceivedAt.Local().Format("15:04:05")),
				resourceStyle.Render(d.Resource),
				eventStyle.Render(d.EventType),
				summaryStyle.Render(d.Summary)))
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %d deliveries — press q to quit", len(m.deliveries))))
	return b.String()
}

// Run blocks until the user quits or the feed closes.
func Run(f *feed.Feed) error {
	program := tea.NewProgram(New(f))
	_, err := program.Run()
	return err
}

func waitForDelivery(ch <-chan feed.Delivery) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return deliveryMsg(d)
	}
}
