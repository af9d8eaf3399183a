package workflow

import (
	"errors"
	"fmt"
)

const InvalidFileTypeMessage = "Only PDF files are allowed."

var (
	ErrInvalidTransition = errors.New("invalid workflow transition")
	ErrNoFileSelected    = errors.New("no file selected")
	ErrNoResult          = errors.New("no extraction result to export")
)

// InvalidFileTypeError rejects a selection whose content type is not PDF.
type InvalidFileTypeError struct {
	Name        string
	ContentType string
}

func (e *InvalidFileTypeError) Error() string {
	return InvalidFileTypeMessage
}

// TransitionError reports an event that the current state does not accept.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
