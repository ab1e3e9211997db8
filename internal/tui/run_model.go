package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkorkmaz/prosed/internal/auth"
	"github.com/tkorkmaz/prosed/internal/engine"
	"github.com/tkorkmaz/prosed/internal/models"
)

// RunModel is the kiosk screen driving one test session.
type RunModel struct {
	width  int
	height int

	mgr    *engine.Manager
	user   auth.User
	events chan engine.Event

	// Current step view state
	stepIndex int
	total     int
	mode      models.NavigationMode
	remaining int
	timer     models.TimerState

	input   textinput.Model
	comment textinput.Model
	editing commentFocus

	notice   string // last rejection or info line
	done     bool
	quitting bool
}

type commentFocus int

const (
	focusInput commentFocus = iota
	focusComment
)

// engineEventMsg wraps an engine event for the update loop.
type engineEventMsg engine.Event

// kioskTickMsg drives the engine tick once per second.
type kioskTickMsg struct{}

// NewRunModel creates the kiosk model and bridges engine events into the
// bubbletea loop. The manager must already have a loaded session.
func NewRunModel(mgr *engine.Manager, user auth.User) RunModel {
	events := make(chan engine.Event, 64)
	mgr.Subscribe(func(ev engine.Event) {
		select {
		case events <- ev:
		default: // never stall the engine on a slow screen
		}
	})

	input := textinput.New()
	input.Placeholder = "Test Sonucu"
	input.CharLimit = 64
	input.Width = 24

	comment := textinput.New()
	comment.Placeholder = "Adım hakkında yorum ekleyin..."
	comment.CharLimit = 256
	comment.Width = 48

	return RunModel{
		mgr:       mgr,
		user:      user,
		events:    events,
		stepIndex: -1,
		total:     len(mgr.Session().Steps),
		input:     input,
		comment:   comment,
	}
}

// Init starts the session, the tick loop and the event pump.
func (m RunModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := m.mgr.Start(); err != nil {
				return engineEventMsg(engine.Event{Type: engine.EventNavigationBlocked, Reason: err.Error()})
			}
			return nil
		},
		m.waitForEvent(),
		tea.Tick(time.Second, func(time.Time) tea.Msg { return kioskTickMsg{} }),
	)
}

func (m RunModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return engineEventMsg(<-m.events)
	}
}

// Update handles messages
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case kioskTickMsg:
		m.mgr.Tick()
		if m.done || m.quitting {
			return m, nil
		}
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return kioskTickMsg{} })

	case engineEventMsg:
		return m.handleEvent(engine.Event(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m RunModel) handleEvent(ev engine.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case engine.EventStepChanged:
		m.stepIndex = ev.StepIndex
		m.total = ev.TotalSteps
		m.mode = ev.Mode
		m.notice = ""
		m.resetInputs()
	case engine.EventTimerTick:
		m.remaining = ev.Remaining
		m.timer = ev.Timer
	case engine.EventNavigationBlocked:
		m.notice = ev.Reason
	case engine.EventResultSubmitted:
		m.notice = fmt.Sprintf("Adım %d: %s", ev.StepIndex+1, string(ev.Status))
	case engine.EventTestCompleted:
		m.done = true
		return m, nil
	}
	return m, m.waitForEvent()
}

func (m *RunModel) resetInputs() {
	step := m.mgr.CurrentStep()
	m.input.SetValue("")
	m.comment.SetValue("")
	m.editing = focusInput
	m.input.Blur()
	m.comment.Blur()
	if step != nil && step.InputType == models.InputNumber && m.mode == models.ModeNormal {
		m.input.Placeholder = step.InputLabel
		m.input.Focus()
	}
	if step != nil {
		m.remaining = step.TimeLimit - m.mgr.Elapsed(m.stepIndex)
		m.timer = m.mgr.TimerStatus(m.stepIndex)
	}
}

func (m RunModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		m.quitting = true
		return m, tea.Quit
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if m.editing == focusInput {
			m.editing = focusComment
			m.input.Blur()
			m.comment.Focus()
		} else {
			m.editing = focusInput
			m.comment.Blur()
			if m.currentInputType() == models.InputNumber {
				m.input.Focus()
			}
		}
		return m, nil
	case "left":
		m.mgr.Navigate(m.stepIndex-1, m.user.Role)
		return m, nil
	case "right":
		m.mgr.Navigate(m.stepIndex+1, m.user.Role)
		return m, nil
	}

	step := m.mgr.CurrentStep()
	if step == nil || m.mode == models.ModeViewOnly {
		return m, nil
	}

	typing := (m.editing == focusComment) || (m.editing == focusInput && step.InputType == models.InputNumber)

	switch step.InputType {
	case models.InputPassFail:
		if m.editing == focusInput {
			switch msg.String() {
			case "p", "P":
				m.submit("PASS")
				return m, nil
			case "f", "F":
				m.submit("FAIL")
				return m, nil
			}
		}
	case models.InputNone:
		if m.editing == focusInput && msg.String() == "enter" {
			m.submit("")
			return m, nil
		}
	case models.InputNumber:
		if msg.String() == "enter" {
			m.submit(strings.TrimSpace(m.input.Value()))
			return m, nil
		}
	}

	if msg.String() == "enter" && m.editing == focusComment {
		// Enter in the comment field submits for no-input steps only.
		if step.InputType == models.InputNone {
			m.submit("")
		}
		return m, nil
	}

	if typing {
		var cmd tea.Cmd
		if m.editing == focusComment {
			m.comment, cmd = m.comment.Update(msg)
		} else {
			m.input, cmd = m.input.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *RunModel) submit(value string) {
	outcome := m.mgr.Submit(value, strings.TrimSpace(m.comment.Value()), m.user.DisplayName)
	if !outcome.Accepted {
		m.notice = outcome.Reason
	}
}

func (m RunModel) currentInputType() models.InputType {
	if step := m.mgr.CurrentStep(); step != nil {
		return step.InputType
	}
	return models.InputNone
}

// View renders the kiosk screen
func (m RunModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Yükleniyor..."
	}
	if m.done {
		return m.renderCompleted()
	}

	step := m.mgr.CurrentStep()
	if step == nil {
		return "Yükleniyor..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStepTitle(step))
	sections = append(sections, m.renderTimer())
	sections = append(sections, m.renderBody(step))
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m RunModel) renderHeader() string {
	s := m.mgr.Session()
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Width(m.width)
	text := fmt.Sprintf("STOK NO: %s   SERİ: %s   İSTASYON: %s   SİP: %s   %s",
		s.StockNumber, s.SerialNumber, s.StationNumber, s.SIPCode, m.user.DisplayName)
	return headerStyle.Render(text)
}

func (m RunModel) renderStepTitle(step *models.Step) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center)
	mode := ""
	if m.mode == models.ModeViewOnly {
		mode = "  [GÖRÜNTÜLEME]"
	}
	return titleStyle.Render(fmt.Sprintf("Adım %d/%d: %s%s", m.stepIndex+1, m.total, step.Name, mode))
}

func (m RunModel) renderTimer() string {
	color := ColorSuccess
	switch m.timer {
	case models.TimerWarning:
		color = ColorWarning
	case models.TimerCritical, models.TimerOvertime:
		color = ColorError
	}
	remaining := m.remaining
	sign := ""
	if remaining < 0 {
		sign = "-"
		remaining = -remaining
	}
	clock := fmt.Sprintf("%s%02d:%02d", sign, remaining/60, remaining%60)
	if m.mode == models.ModeViewOnly {
		clock = "--:--"
		color = ColorDisabledText
	}
	timerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center)
	return timerStyle.Render(clock)
}

func (m RunModel) renderBody(step *models.Step) string {
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Width(m.width - 4).
		Padding(1, 2)
	var parts []string
	parts = append(parts, descStyle.Render(step.Description))

	if m.mode == models.ModeViewOnly {
		value := ""
		if step.ResultValue != nil {
			value = *step.ResultValue
		}
		resultStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Padding(0, 2)
		parts = append(parts, resultStyle.Render(
			fmt.Sprintf("Sonuç: %s (%s)  Yorum: %s", value, step.Status, step.Comment)))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	inputStyle := lipgloss.NewStyle().Padding(0, 2)
	switch step.InputType {
	case models.InputPassFail:
		parts = append(parts, inputStyle.Render("[P] BAŞARILI    [F] BAŞARISIZ"))
	case models.InputNumber:
		parts = append(parts, inputStyle.Render(step.InputLabel+": "+m.input.View()))
	default:
		parts = append(parts, inputStyle.Render("[Enter] KAYDET VE DEVAM"))
	}
	parts = append(parts, inputStyle.Render("Yorum: "+m.comment.View()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m RunModel) renderStatusBar() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	help := helpStyle.Render("tab yorum • ←/→ adım değiştir • esc çıkış")
	if m.notice == "" {
		return help
	}
	return lipgloss.JoinVertical(lipgloss.Left, noticeStyle.Render(m.notice), help)
}

func (m RunModel) renderCompleted() string {
	s := m.mgr.Session()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess)).
		Bold(true).
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(fmt.Sprintf(
		"Test tamamlandı!\n\nBaşarılı: %d   Başarısız: %d   Tamamlanma: %.0f%%\n\nÇıkmak için bir tuşa basın.",
		s.PassedCount(), s.FailedCount(), s.CompletionPercentage()))
}
