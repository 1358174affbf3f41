package domain

// ConversationStatus of an inbox thread.
type ConversationStatus string

const (
	ConversationOpen    ConversationStatus = "open"
	ConversationPending ConversationStatus = "pending"
	ConversationClosed  ConversationStatus = "closed"
)

// Channel a message travelled over.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Direction of a message relative to the workspace.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// MessagePreview is the latest-message summary on a conversation row.
type MessagePreview struct {
	Body      string    `json:"body"`
	Direction Direction `json:"direction"`
	CreatedAt string    `json:"createdAt"`
}

// Conversation is one inbox thread with a contact.
type Conversation struct {
	ID            string             `json:"id"`
	Status        ConversationStatus `json:"status"`
	Channel       Channel            `json:"channel"`
	LastMessageAt string             `json:"lastMessageAt"`
	Contact       *Contact           `json:"contact,omitempty"`
	LatestMessage *MessagePreview    `json:"latestMessage,omitempty"`
}

// Message is a single inbound or outbound message in a thread.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Direction      Direction `json:"direction"`
	Channel        Channel   `json:"channel"`
	Body           string    `json:"body"`
	CreatedAt      string    `json:"createdAt"`
}

// ConversationMessages pairs a thread with its message history.
type ConversationMessages struct {
	Conversation Conversation `json:"conversation"`
	Data         []Message    `json:"data"`
}
