package google

// ChatModel represents a Google Gemini chat model.
type ChatModel string

const (
	Gemini20Flash001  ChatModel = "gemini-2.0-flash-001"
	Gemini20FlashLite ChatModel = "gemini-2.0-flash-lite"
	Gemini25Flash     ChatModel = "gemini-2.5-flash"
	Gemini25Pro       ChatModel = "gemini-2.5-pro"

	// DefaultChatModel is used when no model is configured.
	DefaultChatModel ChatModel = Gemini20Flash001
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
