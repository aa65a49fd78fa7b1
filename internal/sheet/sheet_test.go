package sheet

import "testing"

func drag(s *Sheet, delta int) {
	s.DragStart(0)
	s.DragMove(delta)
	s.DragEnd()
}

func TestOpenStartsCollapsedWithZeroOffset(t *testing.T) {
	s := New(DefaultConfig())

	if s.State() != Closed {
		t.Fatalf("new sheet state = %v, want closed", s.State())
	}

	s.Open()
	if s.State() != OpenCollapsed {
		t.Errorf("state after open = %v, want collapsed", s.State())
	}
	if s.DragY() != 0 {
		t.Errorf("dragY after open = %d, want 0", s.DragY())
	}
}

func TestReleaseTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  State
		delta int
		want  State
	}{
		{"collapsed drag down 200 closes", OpenCollapsed, 200, Closed},
		{"collapsed drag down exactly 150 snaps back", OpenCollapsed, 150, OpenCollapsed},
		{"collapsed drag up 150 expands", OpenCollapsed, -150, OpenExpanded},
		{"collapsed drag up exactly 100 snaps back", OpenCollapsed, -100, OpenCollapsed},
		{"collapsed small wiggle snaps back", OpenCollapsed, 30, OpenCollapsed},
		{"expanded drag down 100 stays expanded", OpenExpanded, 100, OpenExpanded},
		{"expanded drag down 151 collapses", OpenExpanded, 151, OpenCollapsed},
		{"expanded drag down 400 collapses not closes", OpenExpanded, 400, OpenCollapsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultConfig())
			s.Open()
			if tt.from == OpenExpanded {
				s.Expand()
			}

			drag(s, tt.delta)

			if s.State() != tt.want {
				t.Errorf("state = %v, want %v", s.State(), tt.want)
			}
			if s.DragY() != 0 {
				t.Errorf("dragY after release = %d, want 0", s.DragY())
			}
			if s.Dragging() {
				t.Error("still dragging after release")
			}
		})
	}
}

func TestExpandedClampsUpwardDrag(t *testing.T) {
	s := New(DefaultConfig())
	s.Open()
	s.Expand()

	s.DragStart(500)
	s.DragMove(300) // 200 up
	if s.DragY() != 0 {
		t.Errorf("upward dragY while expanded = %d, want clamped to 0", s.DragY())
	}

	s.DragMove(560) // 60 down
	if s.DragY() != 60 {
		t.Errorf("downward dragY while expanded = %d, want 60", s.DragY())
	}
}

func TestCollapsedTracksBothDirections(t *testing.T) {
	s := New(DefaultConfig())
	s.Open()

	s.DragStart(500)
	s.DragMove(440)
	if s.DragY() != -60 {
		t.Errorf("upward dragY while collapsed = %d, want -60", s.DragY())
	}
	s.DragMove(580)
	if s.DragY() != 80 {
		t.Errorf("downward dragY while collapsed = %d, want 80", s.DragY())
	}
}

func TestDragIgnoredWhileClosed(t *testing.T) {
	s := New(DefaultConfig())

	s.DragStart(100)
	s.DragMove(400)
	if s.Dragging() || s.DragY() != 0 {
		t.Errorf("closed sheet tracked a drag: dragging=%v dragY=%d", s.Dragging(), s.DragY())
	}
	s.DragEnd()
	if s.State() != Closed {
		t.Errorf("state = %v, want closed", s.State())
	}
}

func TestExplicitCloseAndExpand(t *testing.T) {
	s := New(DefaultConfig())

	s.Expand() // no-op while closed
	if s.State() != Closed {
		t.Fatalf("expand from closed moved state to %v", s.State())
	}

	s.Open()
	s.Expand()
	if s.State() != OpenExpanded {
		t.Fatalf("state = %v, want expanded", s.State())
	}

	s.Close()
	if s.State() != Closed || s.DragY() != 0 {
		t.Errorf("close left state=%v dragY=%d", s.State(), s.DragY())
	}
}

func TestReopenResetsToCollapsed(t *testing.T) {
	s := New(DefaultConfig())
	s.Open()
	s.Expand()
	s.DragStart(0)
	s.DragMove(40)

	s.Reopen()
	if s.State() != OpenCollapsed {
		t.Errorf("state after reopen = %v, want collapsed", s.State())
	}
	if s.DragY() != 0 || s.Dragging() {
		t.Errorf("reopen left transient state: dragY=%d dragging=%v", s.DragY(), s.Dragging())
	}
}

func TestBackdropOpacity(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		want  float64
	}{
		{"at rest", 0, 1},
		{"quarter fade", 125, 0.75},
		{"half fade", 250, 0.5},
		{"past fade clamps to zero", 700, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultConfig())
			s.Open()
			s.DragStart(0)
			s.DragMove(tt.delta)

			if got := s.BackdropOpacity(); got != tt.want {
				t.Errorf("opacity at dragY=%d is %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestBackdropIgnoresInputMidDrag(t *testing.T) {
	s := New(DefaultConfig())
	s.Open()

	if !s.BackdropInteractive() {
		t.Error("backdrop should accept input while settled")
	}
	s.DragStart(0)
	s.DragMove(20)
	if s.BackdropInteractive() {
		t.Error("backdrop should ignore input mid-drag")
	}
	s.DragEnd()
	if !s.BackdropInteractive() {
		t.Error("backdrop should accept input again after release")
	}
}
