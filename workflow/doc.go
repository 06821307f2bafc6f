// Package workflow routes a user request through a five-node decision graph.
//
// The graph is a small explicit state machine:
//
//	initial_validator ─┬─ summarize ─▶ email_content_validator ─▶ summarize ─▶ send_to_pipedream ─▶ END
//	                   └─ general   ─▶ general ─▶ END
//
// initial_validator asks the [Generator] to choose one label from
// {summarize, general}. The router maps that decision to a branch; any other
// value fails the run with a [RoutingError] rather than falling back to a
// default branch. The summarize branch expands the request into email content,
// summarizes it and hands {"summary": output} to the [Notifier]. The general
// branch produces a fixed response and never notifies.
//
// Each node writes its slot of [State] exactly once. A second write fails the
// run with [ErrAlreadySet], and the summarize step refuses to run without
// email content ([ErrPrecondition]).
//
// # Basic Usage
//
//	engine, err := workflow.New(gen, sink,
//	    workflow.WithStepTimeout(2*time.Minute),
//	    workflow.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := engine.Run(ctx, "summarize this thread")
//	if err != nil {
//	    var stepErr *workflow.StepError
//	    if errors.As(err, &stepErr) {
//	        log.Printf("step %s failed", stepErr.Step)
//	    }
//	    return err
//	}
//	fmt.Println(res.Decision, res.Output)
//
// # Observability
//
// [WithObserver] receives run, step and routing hooks, and [WithEvents]
// streams the same lifecycle as [event.Event] values on a channel. Events are
// sent without blocking and dropped when the channel is full.
//
// An [Engine] is immutable once built and safe for concurrent Run calls; each
// run owns its State.
package workflow
