package console

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

// InboxState is the conversations view model.
type InboxState struct {
	Loading                bool
	ErrorMessage           string
	Conversations          []domain.Conversation
	SelectedConversationID string
	Messages               []domain.Message
	Draft                  string
	Sending                bool
	AIAssistEnabled        bool
	AIProviderConfigured   bool
	DraftingWithAI         bool
}

// SelectedConversation returns the conversation the view is focused on.
func (s InboxState) SelectedConversation() *domain.Conversation {
	for i := range s.Conversations {
		if s.Conversations[i].ID == s.SelectedConversationID {
			return &s.Conversations[i]
		}
	}
	return nil
}

// Inbox drives the shared conversation view. Outbound sends append an
// optimistic local message that the follow-up refetch replaces.
type Inbox struct {
	client *api.Client

	mu    sync.Mutex
	state InboxState
}

func NewInbox(client *api.Client) *Inbox {
	return &Inbox{client: client, state: InboxState{Loading: true}}
}

func (i *Inbox) State() InboxState {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.state
	out.Conversations = append([]domain.Conversation(nil), i.state.Conversations...)
	out.Messages = append([]domain.Message(nil), i.state.Messages...)
	return out
}

// Refresh loads conversations plus the AI assist config and selects the
// first conversation. A failed config fetch only disables the assist.
func (i *Inbox) Refresh(ctx context.Context, showLoading bool) {
	if showLoading {
		i.mu.Lock()
		i.state.Loading = true
		i.state.ErrorMessage = ""
		i.mu.Unlock()
	}

	var (
		wg            sync.WaitGroup
		conversations []domain.Conversation
		aiStatus      *domain.AIConfigStatus
		listErr       error
	)
	wg.Add(2)
	go func() { defer wg.Done(); conversations, listErr = i.client.Conversations(ctx, "") }()
	go func() { defer wg.Done(); aiStatus, _ = i.client.WorkspaceAIConfig(ctx) }()
	wg.Wait()

	if listErr != nil {
		i.mu.Lock()
		defer i.mu.Unlock()
		i.state.Loading = false
		i.state.Conversations = nil
		i.state.SelectedConversationID = ""
		i.state.Messages = nil
		i.state.ErrorMessage = "Unable to load inbox conversations."
		return
	}

	firstID := ""
	if len(conversations) > 0 {
		firstID = conversations[0].ID
	}
	var messages []domain.Message
	if firstID != "" {
		if response, err := i.client.ConversationMessages(ctx, firstID); err == nil {
			messages = response.Data
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.state.Loading = false
	i.state.Conversations = conversations
	i.state.SelectedConversationID = firstID
	i.state.Messages = messages
	if aiStatus != nil {
		i.state.AIAssistEnabled = aiStatus.AIConfig.InboxReplyAssistEnabled
		i.state.AIProviderConfigured = aiStatus.GroqConfigured
	} else {
		i.state.AIAssistEnabled = false
		i.state.AIProviderConfigured = false
	}
}

// SelectConversation switches focus and loads that thread.
func (i *Inbox) SelectConversation(ctx context.Context, conversationID string) {
	i.mu.Lock()
	i.state.SelectedConversationID = conversationID
	i.mu.Unlock()

	response, err := i.client.ConversationMessages(ctx, conversationID)

	i.mu.Lock()
	defer i.mu.Unlock()
	if err != nil {
		i.state.Messages = nil
		i.state.ErrorMessage = "Unable to load conversation messages."
		return
	}
	i.state.Messages = response.Data
	i.state.ErrorMessage = ""
}

// SetDraft replaces the reply draft.
func (i *Inbox) SetDraft(value string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state.Draft = value
}

// Send posts the draft. The message appears immediately with a local id
// and is replaced by the server copy on refetch; a failed send leaves
// the optimistic message in place until the next load.
func (i *Inbox) Send(ctx context.Context) {
	i.mu.Lock()
	conversationID := i.state.SelectedConversationID
	body := strings.TrimSpace(i.state.Draft)
	if conversationID == "" || body == "" {
		i.mu.Unlock()
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	i.state.Sending = true
	i.state.Draft = ""
	i.state.Messages = append(i.state.Messages, domain.Message{
		ID:             "local-" + now,
		ConversationID: conversationID,
		Direction:      domain.DirectionOutbound,
		Channel:        domain.ChannelEmail,
		Body:           body,
		CreatedAt:      now,
	})
	i.mu.Unlock()

	err := i.client.SendConversationMessage(ctx, conversationID, body)
	var messages []domain.Message
	if err == nil {
		if response, refetchErr := i.client.ConversationMessages(ctx, conversationID); refetchErr == nil {
			messages = response.Data
		} else {
			err = refetchErr
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.state.Sending = false
	if err == nil {
		i.state.Messages = messages
	}
}

// GenerateAIDraft asks the backend for a suggested reply, seeding it
// with the current draft as an instruction when present.
func (i *Inbox) GenerateAIDraft(ctx context.Context) {
	i.mu.Lock()
	conversationID := i.state.SelectedConversationID
	enabled := i.state.AIAssistEnabled
	instruction := strings.TrimSpace(i.state.Draft)
	if conversationID == "" || !enabled {
		i.mu.Unlock()
		return
	}
	i.state.DraftingWithAI = true
	i.state.ErrorMessage = ""
	i.mu.Unlock()

	draft, err := i.client.ConversationAIDraft(ctx, conversationID, instruction)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.state.DraftingWithAI = false
	if err != nil {
		i.state.ErrorMessage = "Unable to generate AI draft right now."
		return
	}
	i.state.Draft = draft
}
