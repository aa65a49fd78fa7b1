// Package sheet implements the bottom sheet's drag-gesture state machine.
// The machine is unit-agnostic: thresholds and deltas share whatever unit
// the caller uses (the original UI used pixels; the TUI scales terminal
// rows up to the same range so the inherited thresholds keep their meaning).
package sheet

// State is the sheet's resting position.
type State int

const (
	// Closed renders fully off-screen.
	Closed State = iota
	// OpenCollapsed shows the compact queue view.
	OpenCollapsed
	// OpenExpanded shows the full drill-down view.
	OpenExpanded
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OpenCollapsed:
		return "collapsed"
	case OpenExpanded:
		return "expanded"
	}
	return "unknown"
}

// Config holds the gesture thresholds. The values are inherited from the
// original UI and deliberately tunable.
type Config struct {
	// CollapseThreshold is the downward release distance that collapses an
	// expanded sheet, or closes a collapsed one.
	CollapseThreshold int
	// ExpandThreshold is the upward release distance that expands a
	// collapsed sheet.
	ExpandThreshold int
	// BackdropFade is the drag distance over which the backdrop fades out.
	BackdropFade int
}

// DefaultConfig returns the thresholds the original UI shipped with.
func DefaultConfig() Config {
	return Config{
		CollapseThreshold: 150,
		ExpandThreshold:   100,
		BackdropFade:      500,
	}
}

// Sheet is the gesture state machine. Zero value is unusable; construct
// with New.
type Sheet struct {
	cfg Config

	state     State
	dragY     int // live offset, meaningful only mid-gesture
	dragging  bool
	dragStart int
}

// New creates a closed sheet with the given thresholds.
func New(cfg Config) *Sheet {
	return &Sheet{cfg: cfg}
}

// SetConfig swaps the thresholds, as on a live settings reload. The
// current state and any in-progress gesture are preserved.
func (s *Sheet) SetConfig(cfg Config) { s.cfg = cfg }

// State returns the current resting state.
func (s *Sheet) State() State { return s.state }

// DragY returns the live drag offset; 0 whenever the sheet is settled.
func (s *Sheet) DragY() int { return s.dragY }

// Dragging reports whether a gesture is in progress.
func (s *Sheet) Dragging() bool { return s.dragging }

// Open moves a closed sheet to collapsed, as when an agent is selected.
func (s *Sheet) Open() {
	s.state = OpenCollapsed
	s.settle()
}

// Reopen resets an already-open sheet back to collapsed with no offset,
// as when a different agent is selected while the sheet is up.
func (s *Sheet) Reopen() {
	s.state = OpenCollapsed
	s.settle()
}

// Expand moves a collapsed sheet to expanded, as when a task is selected.
func (s *Sheet) Expand() {
	if s.state == OpenCollapsed {
		s.state = OpenExpanded
		s.settle()
	}
}

// Close dismisses the sheet from any state (backdrop click, close button).
func (s *Sheet) Close() {
	s.state = Closed
	s.settle()
}

// DragStart begins a gesture at the given coordinate. Ignored while closed.
func (s *Sheet) DragStart(y int) {
	if s.state == Closed {
		return
	}
	s.dragging = true
	s.dragStart = y
	s.dragY = 0
}

// DragMove tracks the live offset: current position minus gesture start.
// While expanded only downward movement registers; upward drag is clamped
// to zero so the sheet cannot over-expand past its resting position. While
// collapsed both directions are live.
func (s *Sheet) DragMove(y int) {
	if !s.dragging {
		return
	}
	delta := y - s.dragStart
	if s.state == OpenExpanded && delta < 0 {
		delta = 0
	}
	s.dragY = delta
}

// DragEnd releases the gesture and applies the thresholds. A delta that
// crosses no threshold snaps back to the current state with dragY reset.
func (s *Sheet) DragEnd() {
	if !s.dragging {
		return
	}
	delta := s.dragY

	switch s.state {
	case OpenCollapsed:
		if delta > s.cfg.CollapseThreshold {
			s.state = Closed
		} else if delta < -s.cfg.ExpandThreshold {
			s.state = OpenExpanded
		}
	case OpenExpanded:
		if delta > s.cfg.CollapseThreshold {
			s.state = OpenCollapsed
		}
	}
	s.settle()
}

// BackdropOpacity returns the backdrop alpha for the live drag offset:
// max(0, 1 - |dragY|/fade).
func (s *Sheet) BackdropOpacity() float64 {
	d := s.dragY
	if d < 0 {
		d = -d
	}
	if s.cfg.BackdropFade <= 0 {
		return 1
	}
	op := 1 - float64(d)/float64(s.cfg.BackdropFade)
	if op < 0 {
		return 0
	}
	return op
}

// BackdropInteractive reports whether the backdrop accepts pointer input.
// It ignores input mid-drag so a gesture cannot dismiss through it.
func (s *Sheet) BackdropInteractive() bool {
	return !s.dragging
}

// settle resets all transient gesture fields after any transition.
func (s *Sheet) settle() {
	s.dragY = 0
	s.dragging = false
	s.dragStart = 0
}
