package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spetersoncode/mailroute/event"
)

// Result is the outcome of a successful run.
type Result struct {
	Output   string
	Decision Decision
	RunID    string

	// Trace lists the nodes executed, in order.
	Trace []Node
}

// Engine executes the decision graph. Build one with New.
type Engine struct {
	gen   Generator
	sink  Notifier
	opts  *Options
	graph *graph
}

// New wires gen and sink into the graph and validates it.
func New(gen Generator, sink Notifier, opts ...Option) (*Engine, error) {
	if gen == nil {
		return nil, errors.New("workflow: generator is required")
	}
	if sink == nil {
		return nil, errors.New("workflow: notifier is required")
	}

	e := &Engine{
		gen:  gen,
		sink: sink,
		opts: ApplyOptions(opts...),
	}
	e.graph = &graph{
		steps: map[Node]step{
			NodeClassify:     {run: e.classify, external: true},
			NodeFetchContent: {run: e.fetchContent, external: true},
			NodeSummarize:    {run: e.summarize, external: true},
			NodeGeneral:      {run: general},
			NodeNotify:       {run: e.notify, external: true, bestEffort: true},
		},
		edges: map[Node]edge{
			NodeClassify: routed(Route, map[Decision]Node{
				DecisionSummarize: NodeFetchContent,
				DecisionGeneral:   NodeGeneral,
			}),
			NodeFetchContent: fixed(NodeSummarize),
			NodeSummarize:    fixed(NodeNotify),
			NodeNotify:       fixed(End),
			NodeGeneral:      fixed(End),
		},
	}
	if err := e.graph.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Run executes the graph once for userInput.
// Failures are returned as a *StepError naming the node that failed.
func (e *Engine) Run(ctx context.Context, userInput string) (*Result, error) {
	if userInput == "" {
		return nil, ErrEmptyInput
	}
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	r := &run{
		engine: e,
		id:     uuid.NewString(),
		state:  NewState(userInput),
		start:  time.Now(),
	}
	r.log = e.opts.Logger.With("run_id", r.id)
	return r.execute(ctx)
}

// run carries the bookkeeping of a single execution.
type run struct {
	engine *Engine
	id     string
	state  *State
	log    *slog.Logger
	start  time.Time
	trace  []Node
	branch Decision
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	e := r.engine
	e.opts.Observer.RunStarted()
	r.emit(event.Event{Type: event.RunStart})
	r.log.InfoContext(ctx, "run started")

	visited := make(map[Node]bool, len(e.graph.steps))
	for node := Start; node != End; {
		if visited[node] {
			return r.fail(ctx, &StepError{Step: node, Err: fmt.Errorf("%w at %q", ErrCycle, node)})
		}
		visited[node] = true

		s, ok := e.graph.steps[node]
		if !ok {
			return r.fail(ctx, &StepError{Step: node, Err: ErrUnknownNode})
		}
		if err := ctx.Err(); err != nil && !s.bestEffort {
			return r.fail(ctx, &StepError{Step: node, Err: err})
		}
		r.trace = append(r.trace, node)

		if err := r.runStep(ctx, node, s); err != nil {
			return r.fail(ctx, &StepError{Step: node, Err: err})
		}

		next, d, routed, err := e.graph.transition(node, r.state)
		if err != nil {
			return r.fail(ctx, &StepError{Step: node, Err: err})
		}
		if routed {
			r.branch = d
			e.opts.Observer.RouteSelected(d)
			r.emit(event.Event{Type: event.RouteSelected, StepName: node.String(), RouteName: d.String()})
			r.log.DebugContext(ctx, "route selected", "decision", d, "next", next)
		}
		node = next
	}

	output, _ := r.state.Output()
	elapsed := time.Since(r.start)
	e.opts.Observer.RunFinished(r.branch, elapsed, nil)
	r.emit(event.Event{Type: event.RunEnd, Output: output, Duration: elapsed})
	r.log.InfoContext(ctx, "run finished", "decision", r.branch, "duration", elapsed)

	return &Result{
		Output:   output,
		Decision: r.branch,
		RunID:    r.id,
		Trace:    r.trace,
	}, nil
}

func (r *run) runStep(ctx context.Context, node Node, s step) error {
	opts := r.engine.opts
	if s.external && opts.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.StepTimeout)
		defer cancel()
	}

	r.emit(event.Event{Type: event.StepStart, StepName: node.String()})
	start := time.Now()
	err := s.run(ctx, r.state)
	elapsed := time.Since(start)

	opts.Observer.StepFinished(node, elapsed, err)
	r.emit(event.Event{Type: event.StepEnd, StepName: node.String(), Duration: elapsed, Error: err})
	r.log.DebugContext(ctx, "step finished", "step", node, "duration", elapsed, "error", err)
	return err
}

func (r *run) fail(ctx context.Context, err error) (*Result, error) {
	elapsed := time.Since(r.start)
	r.engine.opts.Observer.RunFinished(r.branch, elapsed, err)
	r.emit(event.Event{Type: event.RunError, Error: err, Duration: elapsed})
	r.log.ErrorContext(ctx, "run failed", "error", err, "duration", elapsed)
	return nil, err
}

func (r *run) emit(ev event.Event) {
	ev.RunID = r.id
	event.Emit(r.engine.opts.Events, ev)
}
