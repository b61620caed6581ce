package constant

const (
	// Watermill topic carrying activity records to the consumer
	ActivityTopic = "ACTIVITY_RECORDED"

	// NATS subject prefix, the action type is appended
	ActivityEventPrefix = "activity."
)

const (
	ActionSamplesUploaded  = "samples_uploaded"
	ActionPersonaRetrained = "persona_retrained"
	ActionReplyGenerated   = "reply_generated"
	ActionMessageSent      = "message_sent"
)

const (
	RecentActivityLimit = 20
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
	MaxIngestFiles      = 10
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	ChatFromEmail = "user"
	ChatSubject   = "Chat"

	AssistantSystemPrompt = "You are a helpful AI assistant. Provide clear, accurate, and helpful responses."
	AssistantRationale    = "General AI assistant response"
	AssistantMaxTokens    = 500
	AssistantTemperature  = 0.7
)
