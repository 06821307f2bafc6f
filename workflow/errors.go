package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by Run for an empty user input.
	ErrEmptyInput = errors.New("workflow: empty user input")

	// ErrAlreadySet indicates a second write to a write-once state field.
	ErrAlreadySet = errors.New("workflow: state field already set")

	// ErrPrecondition indicates a step ran without the state it requires.
	ErrPrecondition = errors.New("workflow: precondition failed")

	// ErrCycle indicates the transition table revisited a node.
	ErrCycle = errors.New("workflow: cycle detected")

	// ErrUnknownNode indicates a transition to a node with no step.
	ErrUnknownNode = errors.New("workflow: unknown node")
)

// StepError wraps the error of the step that failed.
type StepError struct {
	Step Node
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("workflow: step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RoutingError reports a decision the router cannot map to a branch.
// Present is false when no decision was recorded at all.
type RoutingError struct {
	Decision Decision
	Present  bool
}

func (e *RoutingError) Error() string {
	if !e.Present {
		return "workflow: no decision to route on"
	}
	return fmt.Sprintf("workflow: undefined decision %q", e.Decision)
}
