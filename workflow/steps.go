package workflow

import (
	"context"
	"fmt"
)

func (e *Engine) classify(ctx context.Context, s *State) error {
	label, err := e.gen.Choose(ctx, ClassifyPrompt(s.UserInput()), Labels())
	if err != nil {
		return err
	}
	return s.SetDecision(Decision(label))
}

func (e *Engine) fetchContent(ctx context.Context, s *State) error {
	content, err := e.gen.Generate(ctx, FetchContentPrompt(s.UserInput()))
	if err != nil {
		return err
	}
	return s.SetEmailContent(content)
}

func (e *Engine) summarize(ctx context.Context, s *State) error {
	content, ok := s.EmailContent()
	if !ok {
		return fmt.Errorf("%w: email_content must be set before summarize", ErrPrecondition)
	}
	summary, err := e.gen.Generate(ctx, SummarizePrompt(content))
	if err != nil {
		return err
	}
	return s.SetOutput(summary)
}

func general(_ context.Context, s *State) error {
	return s.SetOutput(GeneralResponse)
}

func (e *Engine) notify(ctx context.Context, s *State) error {
	out, ok := s.Output()
	if !ok {
		return fmt.Errorf("%w: output must be set before notification", ErrPrecondition)
	}
	e.sink.Notify(ctx, SummaryPayload{Summary: out})
	return nil
}
