// Package engine is the test execution core: it tracks the current
// position in a procedure, enforces who may move between steps, runs one
// countdown at a time, classifies submitted results and mirrors session
// state to disk after every state-changing event.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"k8s.io/utils/clock"

	"github.com/tkorkmaz/prosed/internal/models"
	"github.com/tkorkmaz/prosed/internal/persistence"
)

// SubmitOutcome is the structured result of a Submit call. Rejections
// (nothing running, missing required input) are data, not errors.
type SubmitOutcome struct {
	Accepted  bool
	Reason    string
	StepIndex int
	Status    models.StepStatus
	Completed bool
}

// Manager owns the active session and current step index. It sequences
// navigation checks, state mutation, timer control, persistence and
// event emission, in that fixed order, for every external command.
type Manager struct {
	mu  sync.Mutex
	cfg Config
	clk clock.Clock

	writer  *persistence.Writer
	session *models.Session
	state   models.RunState
	current int
	timers  *TimerBank
	history *History

	subs []Subscriber
}

// NewManager creates a manager in the NO_SESSION state. A nil writer
// gets a detached one (persistence disabled until a directory is set);
// a nil clock means wall-clock time.
func NewManager(cfg Config, writer *persistence.Writer, clk clock.Clock) *Manager {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if writer == nil {
		writer = persistence.NewWriter(clk)
	}
	return &Manager{
		cfg:     cfg,
		clk:     clk,
		writer:  writer,
		state:   models.RunNoSession,
		current: -1,
	}
}

// Subscribe registers a callback for engine events. Callbacks run in
// registration order after the triggering command has committed.
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Load attaches a freshly created session and its steps. Refused while a
// test is running; loading replaces any completed session.
func (m *Manager) Load(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == models.RunRunning {
		return fmt.Errorf("cannot load session %s: a test is running", session.SessionID)
	}
	if len(session.Steps) == 0 {
		return fmt.Errorf("cannot load session %s: no steps", session.SessionID)
	}

	m.session = session
	m.state = models.RunNotStarted
	m.current = -1
	m.timers = NewTimerBank(len(session.Steps), m.cfg, m.clk)
	m.history = NewHistory(m.cfg.HistoryLimit)
	m.writer.Attach(session)

	log.Info().Str("session", session.SessionID).Int("steps", len(session.Steps)).
		Msg("session loaded")
	return nil
}

// Start sets the session start time and enters the first step.
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.state != models.RunNotStarted {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("cannot start test in state %s", state)
	}

	var pending []Event
	m.session.Start(m.clk.Now())
	m.state = models.RunRunning
	m.enterStep(0, models.ModeNormal, &pending)
	m.persist(&pending)
	m.mu.Unlock()

	m.emit(pending)
	log.Info().Str("session", m.session.SessionID).Msg("test started")
	return nil
}

// Navigate moves to target under the role's rules. Disallowed moves
// return the reason and emit a NavigationBlocked event; they never halt
// the run.
func (m *Manager) Navigate(target int, role models.Role) Decision {
	m.mu.Lock()

	var pending []Event
	decision := m.checkNavigate(target, role)
	if !decision.Allowed {
		pending = append(pending, Event{Type: EventNavigationBlocked, Reason: decision.Reason})
		m.mu.Unlock()
		m.emit(pending)
		return decision
	}

	mode := DetermineMode(m.current, target, m.session.Steps[target].Status)
	m.history.Record(m.current, target, m.clk.Now())
	m.timers.Stop(m.current)
	m.enterStep(target, mode, &pending)
	m.persist(&pending)
	m.mu.Unlock()

	m.emit(pending)
	return decision
}

func (m *Manager) checkNavigate(target int, role models.Role) Decision {
	if m.state != models.RunRunning {
		return Decision{false, fmt.Sprintf("no test running (state %s)", m.state)}
	}
	return CanNavigate(m.current, target, len(m.session.Steps), role)
}

// Submit commits a result for the current step and advances. Committing
// and leaving the step are one atomic action from the caller's point of
// view; passing the last step completes the test.
func (m *Manager) Submit(value, comment, completedBy string) SubmitOutcome {
	m.mu.Lock()

	if m.state != models.RunRunning {
		m.mu.Unlock()
		return SubmitOutcome{Reason: fmt.Sprintf("no test running (state %s)", m.state)}
	}
	step := m.session.Steps[m.current]
	if step.RequiresInput() && value == "" {
		m.mu.Unlock()
		return SubmitOutcome{StepIndex: m.current, Reason: "input required"}
	}

	var pending []Event
	index := m.current
	isValid := Classify(step.InputType, value, step.InputValidation)
	duration := m.timers.Stop(index)
	outcome := SaveResult(step, value, comment, isValid, duration, completedBy, m.clk.Now())

	pending = append(pending, Event{
		Type:      EventResultSubmitted,
		StepIndex: index,
		Value:     value,
		Status:    outcome.Status,
	})
	m.persist(&pending)

	completed := false
	if index < len(m.session.Steps)-1 {
		m.enterStep(index+1, models.ModeNormal, &pending)
		m.persist(&pending)
	} else {
		m.session.End(m.clk.Now())
		m.state = models.RunCompleted
		m.current = -1
		completed = true
		m.persist(&pending)
		pending = append(pending, Event{Type: EventTestCompleted})
		log.Info().Str("session", m.session.SessionID).Msg("test completed")
	}
	m.mu.Unlock()

	m.emit(pending)
	return SubmitOutcome{
		Accepted:  true,
		StepIndex: index,
		Status:    outcome.Status,
		Completed: completed,
	}
}

// enterStep makes index current. NORMAL mode marks the step in progress
// and starts its countdown; VIEW_ONLY only redisplays.
func (m *Manager) enterStep(index int, mode models.NavigationMode, pending *[]Event) {
	m.current = index
	step := m.session.Steps[index]
	if mode == models.ModeNormal {
		step.Status = models.StatusInProgress
		if step.StartTime == nil {
			now := m.clk.Now()
			step.StartTime = &now
		}
		m.timers.Start(index, step.TimeLimit)
	}
	*pending = append(*pending, Event{
		Type:       EventStepChanged,
		StepIndex:  index,
		TotalSteps: len(m.session.Steps),
		Mode:       mode,
	})
	log.Info().Int("step", index+1).Int("of", len(m.session.Steps)).
		Str("mode", string(mode)).Str("name", step.Name).Msg("entered step")
}

func (m *Manager) persist(pending *[]Event) {
	if m.writer.Write() {
		*pending = append(*pending, Event{Type: EventDataUpdated})
	}
}

func (m *Manager) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	m.mu.Lock()
	subs := append([]Subscriber(nil), m.subs...)
	m.mu.Unlock()
	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}

// Tick broadcasts the active timer's remaining time and status, and
// flushes a periodic snapshot every PersistEvery seconds of step time.
// It is driven externally: by RunTicker, a UI tick loop, or tests.
func (m *Manager) Tick() {
	m.mu.Lock()
	if m.state != models.RunRunning || m.timers.Active() == -1 {
		m.mu.Unlock()
		return
	}
	index := m.timers.Active()
	var pending []Event
	pending = append(pending, Event{
		Type:      EventTimerTick,
		StepIndex: index,
		Remaining: m.timers.Remaining(index),
		Timer:     m.timers.StatusOf(index),
	})
	elapsed := m.timers.Elapsed(index)
	if m.cfg.PersistEvery > 0 && elapsed > 0 && elapsed%m.cfg.PersistEvery == 0 {
		m.persist(&pending)
	}
	m.mu.Unlock()
	m.emit(pending)
}

// RunTicker drives Tick at the configured interval until ctx is done.
func (m *Manager) RunTicker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.clk.After(m.cfg.TickInterval):
			m.Tick()
		}
	}
}

// State returns the orchestrator state.
func (m *Manager) State() models.RunState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Session returns the attached session, nil before Load.
func (m *Manager) Session() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// CurrentIndex returns the current step index, -1 when no step is
// current.
func (m *Manager) CurrentIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// CurrentStep returns the current step, nil when no step is current.
func (m *Manager) CurrentStep() *models.Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.current < 0 || m.current >= len(m.session.Steps) {
		return nil
	}
	return m.session.Steps[m.current]
}

// Elapsed returns elapsed seconds for a step index.
func (m *Manager) Elapsed(index int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timers == nil {
		return 0
	}
	return m.timers.Elapsed(index)
}

// Remaining returns remaining seconds for a step index; negative means
// overtime.
func (m *Manager) Remaining(index int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timers == nil {
		return 0
	}
	return m.timers.Remaining(index)
}

// TimerStatus returns the urgency bucket for a step index.
func (m *Manager) TimerStatus(index int) models.TimerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timers == nil {
		return models.TimerNormal
	}
	return m.timers.StatusOf(index)
}

// History returns the retained navigation log, oldest first.
func (m *Manager) History() []HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.history == nil {
		return nil
	}
	return m.history.Entries()
}

// Writer exposes the persistence writer for directory configuration.
func (m *Manager) Writer() *persistence.Writer {
	return m.writer
}
