package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/hoje/config"
	"github.com/ayoisaiah/hoje/internal/models"
	"github.com/ayoisaiah/hoje/internal/timeutil"
	"github.com/ayoisaiah/hoje/store"
)

const progressPadding = 4

type tickMsg Tick

type keymap struct {
	start    key.Binding
	complete key.Binding
	quit     key.Binding
}

var defaultKeymap = keymap{
	start: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "start"),
	),
	complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "close"),
	),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	clockStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#B0DB43"))
	hintStyle = lipgloss.NewStyle().Faint(true)
	textStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// countdownView is the details view for a single activity: the
// countdown clock, its progress bar, and the linked prayer texts.
type countdownView struct {
	engine   *Engine
	activity models.Activity
	prayers  []models.Prayer
	opts     *config.Config
	progress progress.Model
	help     help.Model
	sess     Session
	hasSess  bool
	done     bool
}

func (m *countdownView) Init() tea.Cmd {
	return nil
}

func (m *countdownView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - progressPadding
		return m, nil

	case tickMsg:
		m.sess = Session(msg)
		m.hasSess = true

		if !msg.Running && msg.Remaining == 0 {
			m.done = true

			announceExpiry(m.opts, m.activity.Title)
		}

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.start):
			if _, err := m.engine.Start(m.activity.ID); err != nil {
				return m, tea.Quit
			}

			m.syncSession()

			return m, nil

		case key.Matches(msg, defaultKeymap.complete):
			_ = m.engine.Complete(m.activity.ID)

			AnnounceCompletion(m.opts, m.activity.Title)

			return m, tea.Quit

		case key.Matches(msg, defaultKeymap.quit):
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *countdownView) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.activity.Title))

	if m.activity.Time != "" {
		s.WriteString(hintStyle.Render(" @ " + m.activity.Time))
	}

	s.WriteString("\n\n")

	if m.activity.TimerEnabled() {
		remaining, total := m.timerValues()

		s.WriteString(clockStyle.Render(timeutil.FormatSeconds(remaining)))
		s.WriteString("\n\n")
		s.WriteString(m.progress.ViewAs(Progress(remaining, total)))
		s.WriteString("\n")

		if m.done {
			s.WriteString(hintStyle.Render("Time is up!"))
			s.WriteString("\n")
		}
	}

	if len(m.prayers) > 0 {
		s.WriteString("\n" + titleStyle.Render("Prayers") + "\n")

		for _, p := range m.prayers {
			s.WriteString(
				fmt.Sprintf(
					"\n%s\n%s\n",
					textStyle.Render(titleStyle.Render(p.Title)),
					textStyle.Render(p.Text),
				),
			)
		}
	}

	s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.start,
		defaultKeymap.complete,
		defaultKeymap.quit,
	}))

	return s.String()
}

// timerValues returns the remaining and total seconds to display,
// falling back to the configured duration before a session exists.
func (m *countdownView) timerValues() (remaining, total int) {
	if m.hasSess {
		return m.sess.Remaining, m.sess.Total
	}

	total = *m.activity.TimerMinutes * 60

	return total, total
}

func (m *countdownView) syncSession() {
	if sess, ok := m.engine.Session(); ok {
		m.sess = sess
		m.hasSess = true
	}
}

// RunCountdown opens the details view for an activity and blocks
// until it is closed. Closing the view discards any countdown
// session.
func RunCountdown(
	db store.DB,
	cfg *config.Config,
	activity models.Activity,
) error {
	prayers, err := db.ResolvePrayers(activity.PrayerIDs)
	if err != nil {
		return err
	}

	m := &countdownView{
		activity: activity,
		prayers:  prayers,
		opts:     cfg,
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
	}

	p := tea.NewProgram(m)

	m.engine = New(db, func(t Tick) {
		p.Send(tickMsg(t))
	})

	if _, err := m.engine.Open(activity.ID); err != nil {
		return err
	}

	m.syncSession()

	_, err = p.Run()

	m.engine.Cancel()

	return err
}
