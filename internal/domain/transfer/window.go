package transfer

import "time"

// Window gates roster mutations behind a fixed deadline. A zero deadline
// keeps the window open.
type Window struct {
	Deadline time.Time
}

func NewWindow(deadline time.Time) Window {
	return Window{Deadline: deadline.UTC()}
}

func (w Window) IsOpen(at time.Time) bool {
	if w.Deadline.IsZero() {
		return true
	}
	return at.Before(w.Deadline)
}

func (w Window) HasDeadline() bool {
	return !w.Deadline.IsZero()
}
