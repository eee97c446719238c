package domain

import "errors"

// ErrFlowNotFound is returned when a flow id is not in the catalog.
var ErrFlowNotFound = errors.New("flow not found")

// ErrNoActiveFlow is returned when an answer or acknowledgment arrives with no flow running.
var ErrNoActiveFlow = errors.New("no active flow")

// ErrNotAwaitingAnswer is returned when an answer arrives while the current step is not a question.
var ErrNotAwaitingAnswer = errors.New("current step is not a question")

// ErrNotAwaitingContinue is returned when "continue" arrives while the current step is not a narration.
var ErrNotAwaitingContinue = errors.New("current step is not a narration")

// ErrUnknownCommand is returned for malformed or unsupported commands.
var ErrUnknownCommand = errors.New("unknown command")

// ErrUnknownSection is returned when a menu section does not exist.
var ErrUnknownSection = errors.New("unknown section")

// ErrListenUnavailable is returned when no speech recognition is available.
var ErrListenUnavailable = errors.New("speech recognition unavailable")
