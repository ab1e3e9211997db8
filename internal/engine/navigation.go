package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tkorkmaz/prosed/internal/models"
)

// Navigation rejection reasons surfaced verbatim to the caller.
const (
	ReasonInvalidStep  = "invalid step"
	ReasonAlreadyThere = "already there"
	ReasonElevatedRole = "backward navigation requires elevated role"
)

// Decision is the outcome of a navigation check. Rule violations are
// data, not errors.
type Decision struct {
	Allowed bool
	Reason  string
}

// CanNavigate validates a move from current to target under role rules.
// Forward moves are open to every role; backward moves need a role with
// backward-navigation rights.
func CanNavigate(current, target, total int, role models.Role) Decision {
	if target < 0 || target >= total {
		return Decision{false, ReasonInvalidStep}
	}
	if target == current {
		return Decision{false, ReasonAlreadyThere}
	}
	if target < current && !role.CanNavigateBackward() {
		return Decision{false, ReasonElevatedRole}
	}
	if target < current {
		log.Info().Int("from", current).Int("to", target).Str("role", string(role)).
			Msg("backward navigation granted")
	}
	return Decision{Allowed: true}
}

// DetermineMode selects how the target step is entered. Returning to a
// step that already has an outcome is a read-only redisplay; everything
// else restarts the clock.
func DetermineMode(current, target int, targetStatus models.StepStatus) models.NavigationMode {
	if target < current && targetStatus.Terminal() {
		return models.ModeViewOnly
	}
	if target == current {
		return models.ModeViewOnly
	}
	return models.ModeNormal
}

// HistoryEntry records one performed navigation.
type HistoryEntry struct {
	From int
	To   int
	At   time.Time
}

// History is a bounded, append-only navigation log. Once the limit is
// reached the oldest entries are overwritten, so kiosk uptime cannot grow
// it without bound.
type History struct {
	entries []HistoryEntry
	head    int
	size    int
}

// NewHistory returns a history retaining at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{entries: make([]HistoryEntry, limit)}
}

// Record appends a navigation event, evicting the oldest when full.
func (h *History) Record(from, to int, at time.Time) {
	h.entries[h.head] = HistoryEntry{From: from, To: to, At: at}
	h.head = (h.head + 1) % len(h.entries)
	if h.size < len(h.entries) {
		h.size++
	}
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return h.size
}

// Entries returns the retained entries oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, 0, h.size)
	start := h.head - h.size
	if start < 0 {
		start += len(h.entries)
	}
	for i := 0; i < h.size; i++ {
		out = append(out, h.entries[(start+i)%len(h.entries)])
	}
	return out
}
