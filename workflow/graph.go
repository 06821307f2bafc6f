package workflow

import (
	"context"
	"fmt"
)

// stepFunc transforms the state for one node.
type stepFunc func(ctx context.Context, s *State) error

type step struct {
	run stepFunc

	// external marks steps that call a port and therefore get a deadline.
	external bool

	// bestEffort steps run even after ctx is done. They must not fail the
	// run on cancellation; the port sees the cancelled ctx and records it.
	bestEffort bool
}

// edge is either a fixed successor or a routing function whose decision is
// looked up in branches.
type edge struct {
	next     Node
	route    func(*State) (Decision, error)
	branches map[Decision]Node
}

func fixed(n Node) edge { return edge{next: n} }

func routed(fn func(*State) (Decision, error), branches map[Decision]Node) edge {
	return edge{route: fn, branches: branches}
}

type graph struct {
	steps map[Node]step
	edges map[Node]edge
}

// validate checks that every node with a step has an outgoing edge and
// every edge target is End or a node with a step.
func (g *graph) validate() error {
	if _, ok := g.steps[Start]; !ok {
		return fmt.Errorf("%w: start node %q has no step", ErrUnknownNode, Start)
	}
	for n := range g.steps {
		e, ok := g.edges[n]
		if !ok {
			return fmt.Errorf("%w: node %q has no outgoing edge", ErrUnknownNode, n)
		}
		for _, target := range e.targets() {
			if target == End {
				continue
			}
			if _, ok := g.steps[target]; !ok {
				return fmt.Errorf("%w: %q -> %q", ErrUnknownNode, n, target)
			}
		}
	}
	for n := range g.edges {
		if _, ok := g.steps[n]; !ok {
			return fmt.Errorf("%w: edge from %q which has no step", ErrUnknownNode, n)
		}
	}
	return nil
}

func (e edge) targets() []Node {
	if e.route == nil {
		return []Node{e.next}
	}
	out := make([]Node, 0, len(e.branches))
	for _, n := range e.branches {
		out = append(out, n)
	}
	return out
}

// transition returns the successor of n. When the edge is conditional the
// chosen decision is returned with ok set.
func (g *graph) transition(n Node, s *State) (next Node, d Decision, ok bool, err error) {
	e, found := g.edges[n]
	if !found {
		return "", "", false, fmt.Errorf("%w: no edge from %q", ErrUnknownNode, n)
	}
	if e.route == nil {
		return e.next, "", false, nil
	}

	d, err = e.route(s)
	if err != nil {
		return "", "", false, err
	}
	next, found = e.branches[d]
	if !found {
		return "", "", false, &RoutingError{Decision: d, Present: true}
	}
	return next, d, true, nil
}
