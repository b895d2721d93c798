package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// BankEventHandler processes one decoded bank event
type BankEventHandler func(ctx context.Context, event *BankEvent) error

// DecodeBankEvent unmarshals a watermill message payload into a BankEvent
func DecodeBankEvent(msg *message.Message) (*BankEvent, error) {
	var event BankEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode bank event %s: %w", msg.UUID, err)
	}
	return &event, nil
}

// ConsumeBankEvents feeds messages to handle until ctx is done or the channel
// closes. Undecodable messages are acked and dropped; handler failures nack.
func ConsumeBankEvents(ctx context.Context, messages <-chan *message.Message, handle BankEventHandler, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			event, err := DecodeBankEvent(msg)
			if err != nil {
				logger.Warn("Dropping malformed bank event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}

			if err := handle(msg.Context(), event); err != nil {
				logger.Error("Bank event handler failed",
					"event_id", event.ID,
					"event_type", event.Type,
					"error", err)
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}
}

// LogBankEvent is a BankEventHandler that records events in the service log
func LogBankEvent(logger *slog.Logger) BankEventHandler {
	return func(ctx context.Context, event *BankEvent) error {
		logger.InfoContext(ctx, "Bank event received",
			"event_id", event.ID,
			"event_type", event.Type,
			"file_id", event.Data.FileID,
			"name", event.Data.Name,
			"questions", event.Data.QuestionCount)
		return nil
	}
}
