package mock

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

func (s *Source) ListConversations(ctx context.Context, f query.ConversationFilter) ([]model.Conversation, error) {
	const op = "messaging.list_conversations"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	return query.FilterConversations(s.conversations.List(ctx), f), nil
}

// ListMessages returns the conversation's messages, oldest first.
func (s *Source) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	const op = "messaging.list_messages"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		return nil, fault.Wrap(op, err)
	}
	var out []model.Message
	for _, m := range s.messages.List(ctx) {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Message) int { return a.SentAt.Compare(b.SentAt) })
	return out, nil
}

func (s *Source) SendMessage(ctx context.Context, conversationID, messageID, body string) (model.Message, error) {
	const op = "messaging.send"
	if err := s.wait(ctx, op); err != nil {
		return model.Message{}, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return model.Message{}, fault.Validation(op, "message body is required")
	}
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		return model.Message{}, fault.Wrap(op, err)
	}

	if messageID == "" {
		messageID = uuid.NewString()
	}
	existing, err := s.messages.Get(ctx, messageID)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, fault.ErrNotFound):
		return model.Message{}, fault.Wrap(op, err)
	}

	msg := model.Message{
		ID:             messageID,
		ConversationID: conversationID,
		Sender:         model.SenderStudent,
		Body:           body,
		SentAt:         s.now(),
		Status:         model.MessageSent,
	}
	if s.sendHook != nil {
		if err := s.sendHook(ctx, msg); err != nil {
			return model.Message{}, fault.WrapKind(op, fault.ErrOperationFailed, err)
		}
	}
	if err := s.messages.Upsert(ctx, msg); err != nil {
		return model.Message{}, fault.Wrap(op, err)
	}
	_, err = s.conversations.Update(ctx, conversationID, func(c *model.Conversation) error {
		c.LastMessage = msg.Body
		c.LastMessageAt = msg.SentAt
		return nil
	})
	return msg, fault.Wrap(op, err)
}

func (s *Source) MarkConversationRead(ctx context.Context, conversationID string) (model.Conversation, error) {
	const op = "messaging.mark_read"
	if err := s.wait(ctx, op); err != nil {
		return model.Conversation{}, err
	}
	c, err := s.conversations.Update(ctx, conversationID, func(c *model.Conversation) error {
		c.Unread = 0
		return nil
	})
	return c, fault.Wrap(op, err)
}
