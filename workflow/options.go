package workflow

import (
	"log/slog"
	"time"

	"github.com/spetersoncode/mailroute/event"
)

// Observer receives run lifecycle hooks. Implementations must be safe for
// concurrent use when the engine serves concurrent runs.
type Observer interface {
	RunStarted()
	StepFinished(node Node, d time.Duration, err error)
	RouteSelected(d Decision)

	// RunFinished reports the branch taken, empty if the run failed before
	// routing.
	RunFinished(branch Decision, d time.Duration, err error)
}

// NopObserver ignores every hook.
type NopObserver struct{}

func (NopObserver) RunStarted() {}
func (NopObserver) StepFinished(Node, time.Duration, error) {}
func (NopObserver) RouteSelected(Decision) {}
func (NopObserver) RunFinished(Decision, time.Duration, error) {}

// Options contains configuration for an Engine.
type Options struct {
	// Timeout bounds a whole run. Zero means no limit beyond the caller's context.
	Timeout time.Duration

	// StepTimeout bounds each step that calls the generator or the notifier.
	StepTimeout time.Duration

	Logger   *slog.Logger
	Observer Observer

	// Events receives lifecycle events. Sends never block.
	Events chan<- event.Event
}

// Option is a functional option for engine configuration.
type Option func(*Options)

// WithTimeout sets the overall run timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithStepTimeout sets the deadline of each external-call step.
func WithStepTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.StepTimeout = d
	}
}

// WithLogger sets the logger for run and step lifecycle records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithObserver registers lifecycle hooks.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithEvents streams lifecycle events to ch.
func WithEvents(ch chan<- event.Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// ApplyOptions applies functional options and fills defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
	return o
}
