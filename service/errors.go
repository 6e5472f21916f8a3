package service

import "errors"

var (
	ErrPollNotFound        = errors.New("poll not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrChoiceNotFound      = errors.New("choice not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

// ValidationError reports a structurally invalid payload. The reason
// is human-readable and safe to return to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func rejected(reason string) error {
	return &ValidationError{Reason: reason}
}
