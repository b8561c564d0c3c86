package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
	"github.com/okian/placement/pkg/logger"
	"github.com/okian/placement/pkg/metrics"
)

// outboxEntry is a message that has not reached the data source yet.
type outboxEntry struct {
	model.Message
	Attempts int
}

func (e outboxEntry) Key() string { return e.ID }

func (e outboxEntry) Clone() outboxEntry { return e }

func (s *Service) ListConversations(ctx context.Context, f query.ConversationFilter) ([]model.Conversation, error) {
	return call(ctx, s, featureMessaging, "list_conversations", func(ctx context.Context) ([]model.Conversation, error) {
		return s.source.ListConversations(ctx, f)
	})
}

// ListMessages returns the persisted messages of a conversation followed by
// its pending and failed outbox entries, ordered by send time.
func (s *Service) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	return call(ctx, s, featureMessaging, "list_messages", func(ctx context.Context) ([]model.Message, error) {
		persisted, err := s.source.ListMessages(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(persisted))
		for _, m := range persisted {
			seen[m.ID] = true
		}
		out := slices.Clone(persisted)
		for _, e := range s.outbox.List(ctx) {
			if e.ConversationID == conversationID && !seen[e.ID] {
				out = append(out, e.Message)
			}
		}
		slices.SortStableFunc(out, func(a, b model.Message) int { return a.SentAt.Compare(b.SentAt) })
		return out, nil
	})
}

// SendMessage checks the conversation exists, records a pending message in
// the outbox and queues its delivery. The returned message is provisional; it is replaced by the
// persisted copy once delivered, or marked failed.
func (s *Service) SendMessage(ctx context.Context, conversationID, body string) (model.Message, error) {
	const op = "messaging.send"
	return call(ctx, s, featureMessaging, "send", func(ctx context.Context) (model.Message, error) {
		body = strings.TrimSpace(body)
		if body == "" {
			return model.Message{}, fault.Validation(op, "message body is required")
		}
		if strings.TrimSpace(conversationID) == "" {
			return model.Message{}, fault.Validation(op, "conversation is required")
		}
		if _, err := s.source.ListMessages(ctx, conversationID); err != nil {
			return model.Message{}, fault.Wrap(op, err)
		}

		e := outboxEntry{
			Message: model.Message{
				ID:             uuid.NewString(),
				ConversationID: conversationID,
				Sender:         model.SenderStudent,
				Body:           body,
				SentAt:         s.now(),
				Status:         model.MessagePending,
			},
			Attempts: 1,
		}
		if err := s.outbox.Upsert(ctx, e); err != nil {
			return model.Message{}, fault.Wrap(op, err)
		}
		if err := s.enqueue(ctx, e); err != nil {
			_ = s.outbox.Delete(ctx, e.ID)
			metrics.UpdateOutboxSize(s.outbox.Count(ctx))
			return model.Message{}, fault.Wrap(op, err)
		}
		metrics.UpdateOutboxSize(s.outbox.Count(ctx))
		return e.Message, nil
	})
}

// RetryMessage queues a failed message again.
func (s *Service) RetryMessage(ctx context.Context, id string) (model.Message, error) {
	const op = "messaging.retry"
	return mutate(ctx, s, featureMessaging, "retry", id, func(ctx context.Context) (model.Message, error) {
		e, err := s.outbox.Update(ctx, id, func(e *outboxEntry) error {
			if e.Status != model.MessageFailed {
				return errNotFailed
			}
			e.Status = model.MessagePending
			e.Error = ""
			e.Attempts++
			return nil
		})
		if err != nil {
			return model.Message{}, fault.Wrap(op, err)
		}
		if err := s.enqueue(ctx, e); err != nil {
			s.markFailed(ctx, id, err.Error())
			return model.Message{}, fault.Wrap(op, err)
		}
		return e.Message, nil
	})
}

// DiscardMessage drops a failed message from the outbox.
func (s *Service) DiscardMessage(ctx context.Context, id string) error {
	const op = "messaging.discard"
	_, err := mutate(ctx, s, featureMessaging, "discard", id, func(ctx context.Context) (struct{}, error) {
		e, err := s.outbox.Get(ctx, id)
		if err != nil {
			return struct{}{}, fault.Wrap(op, err)
		}
		if e.Status == model.MessagePending {
			return struct{}{}, fault.Wrap(op, errStillSending)
		}
		if err := s.outbox.Delete(ctx, id); err != nil {
			return struct{}{}, fault.Wrap(op, err)
		}
		metrics.UpdateOutboxSize(s.outbox.Count(ctx))
		return struct{}{}, nil
	})
	return err
}

func (s *Service) MarkConversationRead(ctx context.Context, conversationID string) (model.Conversation, error) {
	return mutate(ctx, s, featureMessaging, "mark_read", conversationID, func(ctx context.Context) (model.Conversation, error) {
		return s.source.MarkConversationRead(ctx, conversationID)
	})
}

func (s *Service) enqueue(ctx context.Context, e outboxEntry) error {
	err := s.deliveries.Enqueue(ctx, model.Delivery{
		MessageID:      e.ID,
		ConversationID: e.ConversationID,
		Body:           e.Body,
		Attempt:        e.Attempts,
	})
	if err != nil {
		metrics.RecordQueueEnqueueError()
		return err
	}
	metrics.RecordQueueEnqueue()
	metrics.UpdateQueueSize(s.deliveries.Len(ctx))
	return nil
}

// deliver is the second phase of a send, run by the delivery workers.
func (s *Service) deliver(ctx context.Context, d model.Delivery) error {
	metrics.RecordQueueDequeue()
	start := time.Now()

	_, err := s.source.SendMessage(ctx, d.ConversationID, d.MessageID, d.Body)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		s.markFailed(ctx, d.MessageID, err.Error())
	} else {
		if derr := s.outbox.Delete(ctx, d.MessageID); derr != nil && !errors.Is(derr, fault.ErrNotFound) {
			s.logger.Warn(ctx, "outbox cleanup failed", logger.String("messageID", d.MessageID), logger.Error(derr))
		}
		s.invalidate()
	}
	metrics.RecordOperation(featureMessaging, "deliver", outcome, float64(time.Since(start).Microseconds())/1000)
	metrics.UpdateOutboxSize(s.outbox.Count(ctx))
	return err
}

// markFailed flags an outbox entry; a discarded entry is left alone.
func (s *Service) markFailed(ctx context.Context, id, reason string) {
	_, err := s.outbox.Update(ctx, id, func(e *outboxEntry) error {
		e.Status = model.MessageFailed
		e.Error = reason
		return nil
	})
	if err != nil && !errors.Is(err, fault.ErrNotFound) {
		s.logger.Warn(ctx, "outbox update failed", logger.String("messageID", id), logger.Error(err))
	}
}
