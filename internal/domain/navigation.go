package domain

import "fmt"

// Direction is the way a page turn is heading.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// MarshalText renders the direction as its name in JSON payloads.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// NavigationState is the page position of the open document.
//
// CurrentPage is zero-based and stays inside [0, TotalPages) whenever
// TotalPages > 0. A Direction other than DirectionNone implies Transitioning.
type NavigationState struct {
	CurrentPage   int       `json:"current_page"`
	TotalPages    int       `json:"total_pages"`
	Transitioning bool      `json:"transitioning"`
	Direction     Direction `json:"direction"`
}

// Loaded reports whether a document with at least one page is open.
func (s NavigationState) Loaded() bool {
	return s.TotalPages > 0
}

// AtFirstPage reports whether there is no previous page to turn to.
func (s NavigationState) AtFirstPage() bool {
	return s.CurrentPage <= 0
}

// AtLastPage reports whether there is no next page to turn to.
func (s NavigationState) AtLastPage() bool {
	return s.CurrentPage >= s.TotalPages-1
}

// Clamp pins a zero-based page index into the document's range.
func (s NavigationState) Clamp(index int) int {
	if index < 0 || s.TotalPages <= 0 {
		return 0
	}
	if index > s.TotalPages-1 {
		return s.TotalPages - 1
	}
	return index
}

// Label is the page counter shown under the book.
func (s NavigationState) Label() string {
	return fmt.Sprintf("Page %d of %d", s.CurrentPage+1, s.TotalPages)
}

// Valid checks the state invariants.
func (s NavigationState) Valid() error {
	if s.TotalPages < 0 {
		return &ValidationError{Field: "total_pages", Message: "must not be negative"}
	}
	if s.TotalPages > 0 && (s.CurrentPage < 0 || s.CurrentPage >= s.TotalPages) {
		return &ValidationError{Field: "current_page", Message: fmt.Sprintf("%d outside [0, %d)", s.CurrentPage, s.TotalPages)}
	}
	if s.Direction != DirectionNone && !s.Transitioning {
		return &ValidationError{Field: "direction", Message: "set while no transition is running"}
	}
	return nil
}
