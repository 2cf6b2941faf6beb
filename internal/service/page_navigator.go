package service

import (
	"fmt"
	"sync"
	"time"

	"pdf-book-reader/internal/domain"
)

// PageJumper is the part of the viewer the navigator drives.
type PageJumper interface {
	JumpToPage(index int)
}

// NavEvent is an input to the navigator. Buttons, wheel gestures, the page
// field and the viewer's own notifications all arrive as one of these.
type NavEvent interface {
	navEvent()
}

// DocumentLoaded carries the page count reported by the viewer.
type DocumentLoaded struct{ TotalPages int }

// ViewerReportedPage is the viewer telling us which page is in view.
type ViewerReportedPage struct{ Index int }

// PreviousPage asks for a turn back by one page.
type PreviousPage struct{}

// NextPage asks for a turn forward by one page.
type NextPage struct{}

// GoToPage asks for a turn to an arbitrary zero-based page.
type GoToPage struct{ Index int }

// Wheel is a scroll gesture. Positive DeltaY scrolls down.
type Wheel struct{ DeltaY float64 }

// ResetNavigation drops the document and any turn in flight.
type ResetNavigation struct{}

type jumpDue struct {
	gen    uint64
	target int
}

type settleDue struct {
	gen uint64
}

func (DocumentLoaded) navEvent()     {}
func (ViewerReportedPage) navEvent() {}
func (PreviousPage) navEvent()       {}
func (NextPage) navEvent()           {}
func (GoToPage) navEvent()           {}
func (Wheel) navEvent()              {}
func (ResetNavigation) navEvent()    {}
func (jumpDue) navEvent()            {}
func (settleDue) navEvent()          {}

// PageNavigator owns the page position of the open document.
//
// A page turn runs in two timed phases: the animation starts, after preDelay
// the viewer is told to jump, after postDelay the turn settles. While a turn
// is running every other navigation request is dropped, so bursts of clicks or
// wheel ticks collapse into one turn per animation cycle.
type PageNavigator struct {
	mu sync.Mutex
	// jumpMu is held while a jump reaches the viewer and while Reset runs, so
	// once Reset returns no jump from the old generation can still land.
	jumpMu    sync.Mutex
	state     domain.NavigationState
	gen       uint64
	pending   Task
	listeners []func(domain.NavigationState)

	viewer    PageJumper
	scheduler Scheduler
	preDelay  time.Duration
	postDelay time.Duration
	logger    domain.Logger
}

// NewPageNavigator creates a navigator in the reset state
func NewPageNavigator(
	viewer PageJumper,
	scheduler Scheduler,
	preDelay time.Duration,
	postDelay time.Duration,
	logger domain.Logger,
) *PageNavigator {
	if scheduler == nil {
		scheduler = NewScheduler()
	}
	return &PageNavigator{
		viewer:    viewer,
		scheduler: scheduler,
		preDelay:  preDelay,
		postDelay: postDelay,
		logger:    logger,
	}
}

// Subscribe registers fn to receive the state after every change.
func (n *PageNavigator) Subscribe(fn func(domain.NavigationState)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

// State returns a snapshot of the navigation state
func (n *PageNavigator) State() domain.NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// OnDocumentLoaded starts navigation over a freshly loaded document.
// A page count below one is a load failure and leaves the navigator reset.
func (n *PageNavigator) OnDocumentLoaded(totalPages int) error {
	_, err := n.Dispatch(DocumentLoaded{TotalPages: totalPages})
	return err
}

// OnViewerReportedPage records the page the viewer shows. Ignored mid-turn.
func (n *PageNavigator) OnViewerReportedPage(index int) domain.NavigationState {
	s, _ := n.Dispatch(ViewerReportedPage{Index: index})
	return s
}

// GoToPrevious turns back one page
func (n *PageNavigator) GoToPrevious() domain.NavigationState {
	s, _ := n.Dispatch(PreviousPage{})
	return s
}

// GoToNext turns forward one page
func (n *PageNavigator) GoToNext() domain.NavigationState {
	s, _ := n.Dispatch(NextPage{})
	return s
}

// GoToPage turns to index, clamped into the document
func (n *PageNavigator) GoToPage(index int) domain.NavigationState {
	s, _ := n.Dispatch(GoToPage{Index: index})
	return s
}

// OnWheel maps a scroll delta onto a page turn
func (n *PageNavigator) OnWheel(deltaY float64) domain.NavigationState {
	s, _ := n.Dispatch(Wheel{DeltaY: deltaY})
	return s
}

// Reset cancels any pending turn and forgets the document
func (n *PageNavigator) Reset() {
	n.jumpMu.Lock()
	defer n.jumpMu.Unlock()
	_, _ = n.Dispatch(ResetNavigation{})
}

// Dispatch applies ev and returns the resulting state.
// Side effects run after the lock is released so the viewer may call back in.
func (n *PageNavigator) Dispatch(ev NavEvent) (domain.NavigationState, error) {
	n.mu.Lock()
	before := n.state
	effects, err := n.update(ev)
	after := n.state
	var listeners []func(domain.NavigationState)
	if after != before {
		listeners = append(listeners, n.listeners...)
	}
	n.mu.Unlock()

	for _, effect := range effects {
		effect()
	}
	for _, fn := range listeners {
		fn(after)
	}
	return after, err
}

func (n *PageNavigator) update(ev NavEvent) ([]func(), error) {
	switch e := ev.(type) {
	case DocumentLoaded:
		n.cancelPending()
		if e.TotalPages < 1 {
			n.state = domain.NavigationState{}
			return nil, fmt.Errorf("viewer reported %d pages: %w", e.TotalPages, domain.ErrLoadFailure)
		}
		n.state = domain.NavigationState{TotalPages: e.TotalPages}
		n.logger.Debug("Document loaded", "total_pages", e.TotalPages)

	case ViewerReportedPage:
		if n.state.Transitioning || !n.state.Loaded() {
			return nil, nil
		}
		n.state.CurrentPage = n.state.Clamp(e.Index)

	case PreviousPage:
		if !n.canTurn() || n.state.AtFirstPage() {
			return nil, nil
		}
		n.begin(domain.DirectionBackward, n.state.CurrentPage-1)

	case NextPage:
		if !n.canTurn() || n.state.AtLastPage() {
			return nil, nil
		}
		n.begin(domain.DirectionForward, n.state.CurrentPage+1)

	case GoToPage:
		if !n.canTurn() {
			return nil, nil
		}
		target := n.state.Clamp(e.Index)
		switch {
		case target > n.state.CurrentPage:
			n.begin(domain.DirectionForward, target)
		case target < n.state.CurrentPage:
			n.begin(domain.DirectionBackward, target)
		}

	case Wheel:
		switch {
		case e.DeltaY > 0:
			return n.update(NextPage{})
		case e.DeltaY < 0:
			return n.update(PreviousPage{})
		}

	case ResetNavigation:
		n.cancelPending()
		n.state = domain.NavigationState{}

	case jumpDue:
		if e.gen != n.gen {
			return nil, nil
		}
		n.state.CurrentPage = e.target
		gen := n.gen
		n.pending = n.scheduler.AfterFunc(n.postDelay, func() {
			_, _ = n.Dispatch(settleDue{gen: gen})
		})
		if n.viewer == nil {
			return nil, nil
		}
		target := e.target
		return []func(){func() { n.jump(gen, target) }}, nil

	case settleDue:
		if e.gen != n.gen {
			return nil, nil
		}
		n.pending = nil
		n.state.Transitioning = false
		n.state.Direction = domain.DirectionNone
		n.logger.Debug("Page turn settled", "page", n.state.CurrentPage)

	default:
		return nil, fmt.Errorf("unknown navigation event %T", ev)
	}
	return nil, nil
}

// jump tells the viewer to show target unless the turn it belongs to has
// been cancelled since the effect was queued.
func (n *PageNavigator) jump(gen uint64, target int) {
	n.jumpMu.Lock()
	defer n.jumpMu.Unlock()

	n.mu.Lock()
	current := n.gen
	n.mu.Unlock()
	if current != gen {
		n.logger.Debug("Dropped stale page jump", "to", target)
		return
	}
	n.viewer.JumpToPage(target)
}

func (n *PageNavigator) canTurn() bool {
	return n.state.Loaded() && !n.state.Transitioning
}

// begin marks the turn as running and schedules the jump. Callers hold n.mu.
func (n *PageNavigator) begin(dir domain.Direction, target int) {
	n.gen++
	gen := n.gen
	n.state.Transitioning = true
	n.state.Direction = dir
	n.pending = n.scheduler.AfterFunc(n.preDelay, func() {
		_, _ = n.Dispatch(jumpDue{gen: gen, target: target})
	})
	n.logger.Debug("Page turn started", "direction", dir.String(), "from", n.state.CurrentPage, "to", target)
}

// cancelPending stops the scheduled phase and invalidates any callback that
// already escaped Stop. Callers hold n.mu.
func (n *PageNavigator) cancelPending() {
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
	n.gen++
}
