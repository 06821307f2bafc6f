package anthropic

// ChatModel represents an Anthropic Claude model.
type ChatModel string

const (
	ClaudeSonnet45 ChatModel = "claude-sonnet-4-5"
	ClaudeHaiku45  ChatModel = "claude-haiku-4-5"
	ClaudeOpus45   ChatModel = "claude-opus-4-5"

	// DefaultChatModel is used when no model is configured.
	DefaultChatModel ChatModel = ClaudeHaiku45
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
