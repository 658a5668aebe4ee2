package workflow

import (
	"errors"
	"fmt"

	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
)

// ErrApplicationNotFound is returned when the referenced application does
// not exist.
var ErrApplicationNotFound = errors.New("application not found")

// ErrNotEditable is returned when documents are attached to an application
// whose current state forbids edits.
var ErrNotEditable = errors.New("application is not editable in its current state")

// TransitionError carries the domain refusal code so HTTP handlers can map
// it to a response without string matching.
type TransitionError struct {
	Code domain.ErrorCode
	From domain.State
	To   domain.State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s refused: %s", e.From, e.To, e.Code)
}

// AsTransitionError unwraps a TransitionError from err, if present.
func AsTransitionError(err error) (*TransitionError, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
