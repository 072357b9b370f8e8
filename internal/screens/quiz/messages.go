package quiz

import (
	qz "github.com/abhisek/compass/internal/quiz"
)

// startedMsg is sent when the opening batch has been drawn.
type startedMsg struct {
	State *qz.State
	Err   error
}

// recordedMsg reports the outcome of an event log write.
type recordedMsg struct {
	Event string
	Err   error
}
