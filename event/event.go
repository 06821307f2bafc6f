// Package event defines the lifecycle events a workflow run emits.
//
// Events are delivered on a caller-supplied channel without blocking: when
// the channel is full the event is dropped and the run carries on.
package event

import "time"

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when a run begins.
	RunStart Type = "run_start"

	// RunEnd fires when a run completes successfully.
	RunEnd Type = "run_end"

	// RunError fires when a run fails.
	RunError Type = "run_error"
)

// Step lifecycle events
const (
	StepStart Type = "step_start"
	StepEnd   Type = "step_end"

	// RouteSelected fires when the router picks a branch.
	RouteSelected Type = "route_selected"
)

// Event represents an observable occurrence during a run.
type Event struct {
	Type Type

	// RunID identifies the run the event belongs to.
	RunID string

	// StepName identifies the step for step events.
	StepName string

	// RouteName is the selected branch for RouteSelected events.
	RouteName string

	// Output carries the final output on RunEnd.
	Output string

	// Duration is the step or run wall time on StepEnd, RunEnd and RunError.
	Duration time.Duration

	// Error is set on RunError and on StepEnd for a failing step.
	Error error

	Timestamp time.Time
}

// Emit timestamps e and sends it on ch without blocking.
// A nil channel is ignored.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
