package workflow

import "fmt"

// State is the record threaded through one run.
// Every field except the user input starts absent and may be written once.
// Absence is tracked separately from the value because a model may
// legitimately return an empty string.
type State struct {
	userInput string

	decision    Decision
	hasDecision bool

	emailContent    string
	hasEmailContent bool

	output    string
	hasOutput bool
}

// NewState creates the state for a run.
func NewState(userInput string) *State {
	return &State{userInput: userInput}
}

// UserInput returns the request that started the run.
func (s *State) UserInput() string { return s.userInput }

// Decision returns the classifier's label, if set.
func (s *State) Decision() (Decision, bool) { return s.decision, s.hasDecision }

// EmailContent returns the fetched email content, if set.
func (s *State) EmailContent() (string, bool) { return s.emailContent, s.hasEmailContent }

// Output returns the final output, if set.
func (s *State) Output() (string, bool) { return s.output, s.hasOutput }

// SetDecision records the classifier's label.
func (s *State) SetDecision(d Decision) error {
	if s.hasDecision {
		return fmt.Errorf("%w: decision", ErrAlreadySet)
	}
	s.decision, s.hasDecision = d, true
	return nil
}

// SetEmailContent records the fetched email content.
func (s *State) SetEmailContent(content string) error {
	if s.hasEmailContent {
		return fmt.Errorf("%w: email_content", ErrAlreadySet)
	}
	s.emailContent, s.hasEmailContent = content, true
	return nil
}

// SetOutput records the final output.
func (s *State) SetOutput(output string) error {
	if s.hasOutput {
		return fmt.Errorf("%w: output", ErrAlreadySet)
	}
	s.output, s.hasOutput = output, true
	return nil
}
