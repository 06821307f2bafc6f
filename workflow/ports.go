package workflow

import "context"

// Generator is the text generation port.
type Generator interface {
	// Generate returns free text for prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Choose returns exactly one of labels, or an error if the model's
	// answer does not conform.
	Choose(ctx context.Context, prompt string, labels []string) (string, error)
}

// Notifier is the notification sink. Notify never fails the caller;
// implementations record delivery problems themselves.
type Notifier interface {
	Notify(ctx context.Context, payload any)
}

// SummaryPayload is the body handed to the Notifier on the summarize branch.
type SummaryPayload struct {
	Summary string `json:"summary"`
}
