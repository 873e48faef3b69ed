package entity

// ConversationWithStats is the listing projection: a conversation plus the
// aggregate columns (non-deleted message count, latest message content) the
// sidebar renders without fetching message bodies.
type ConversationWithStats struct {
	Conversation
	MessageCount int64
	LastMessage  *string
}
