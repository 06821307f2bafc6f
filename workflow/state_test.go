package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStartsAbsent(t *testing.T) {
	s := NewState("hello")

	assert.Equal(t, "hello", s.UserInput())
	_, ok := s.Decision()
	assert.False(t, ok)
	_, ok = s.EmailContent()
	assert.False(t, ok)
	_, ok = s.Output()
	assert.False(t, ok)
}

func TestStateWriteOnce(t *testing.T) {
	s := NewState("x")

	require.NoError(t, s.SetDecision(DecisionGeneral))
	assert.ErrorIs(t, s.SetDecision(DecisionSummarize), ErrAlreadySet)
	d, _ := s.Decision()
	assert.Equal(t, DecisionGeneral, d)

	require.NoError(t, s.SetEmailContent(""))
	assert.ErrorIs(t, s.SetEmailContent("again"), ErrAlreadySet)
	content, ok := s.EmailContent()
	assert.True(t, ok, "empty content is still present")
	assert.Empty(t, content)

	require.NoError(t, s.SetOutput("done"))
	assert.ErrorIs(t, s.SetOutput("other"), ErrAlreadySet)
	out, _ := s.Output()
	assert.Equal(t, "done", out)
}

func TestSummarizeRequiresEmailContent(t *testing.T) {
	e := newEngine(t, &stubGenerator{}, &recordingNotifier{})

	err := e.summarize(context.Background(), NewState("x"))
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestNotifyRequiresOutput(t *testing.T) {
	sink := &recordingNotifier{}
	e := newEngine(t, &stubGenerator{}, sink)

	err := e.notify(context.Background(), NewState("x"))
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Empty(t, sink.payloads)
}

func TestGeneralStepIsConstant(t *testing.T) {
	s := NewState("anything")
	require.NoError(t, general(context.Background(), s))
	out, _ := s.Output()
	assert.Equal(t, GeneralResponse, out)

	assert.ErrorIs(t, general(context.Background(), s), ErrAlreadySet)
}

func TestRoute(t *testing.T) {
	t.Run("summarize", func(t *testing.T) {
		s := NewState("x")
		require.NoError(t, s.SetDecision(DecisionSummarize))
		d, err := Route(s)
		require.NoError(t, err)
		assert.Equal(t, DecisionSummarize, d)
	})

	t.Run("general", func(t *testing.T) {
		s := NewState("x")
		require.NoError(t, s.SetDecision(DecisionGeneral))
		d, err := Route(s)
		require.NoError(t, err)
		assert.Equal(t, DecisionGeneral, d)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := Route(NewState("x"))
		var re *RoutingError
		require.ErrorAs(t, err, &re)
		assert.False(t, re.Present)
		assert.Equal(t, "workflow: no decision to route on", err.Error())
	})

	t.Run("undefined", func(t *testing.T) {
		s := NewState("x")
		require.NoError(t, s.SetDecision("SUMMARIZE"))
		_, err := Route(s)
		var re *RoutingError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, `workflow: undefined decision "SUMMARIZE"`, err.Error())
	})
}

func TestPrompts(t *testing.T) {
	assert.Contains(t, ClassifyPrompt("summarize this thread"), "The user input is: summarize this thread\n")
	assert.Contains(t, ClassifyPrompt("x"), "Your decision should be one of the following: summarize, general")
	assert.Contains(t, FetchContentPrompt("find the email"), "The user input is: find the email\n")
	assert.Contains(t, SummarizePrompt("Hello"), "The email content is: Hello\n")
	assert.NotContains(t, SummarizePrompt("Hello"), "{email_content}")
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"summarize", "general"}, Labels())
	assert.True(t, DecisionSummarize.Valid())
	assert.False(t, Decision("").Valid())
}

func TestStepErrorMessage(t *testing.T) {
	err := &StepError{Step: NodeSummarize, Err: ErrPrecondition}
	assert.Equal(t, `workflow: step "summarize" failed: workflow: precondition failed`, err.Error())
	assert.ErrorIs(t, err, ErrPrecondition)
}
