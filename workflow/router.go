package workflow

// Route is the branch function for the classification node. It is pure:
// it reads the decision and nothing else. An absent or undefined decision
// is a RoutingError; there is no default branch.
func Route(s *State) (Decision, error) {
	d, ok := s.Decision()
	if !ok {
		return "", &RoutingError{}
	}
	if !d.Valid() {
		return "", &RoutingError{Decision: d, Present: true}
	}
	return d, nil
}
