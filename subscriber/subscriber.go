// Package subscriber provides the SNS handler that consumes item events.
package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vinicius-dias23/roteiro3/item"
)

// Notification is one decoded SNS record.
type Notification struct {
	Event item.Event

	TopicARN  string
	Subject   string
	MessageID string

	// ReceivedAt is the SNS publish timestamp.
	ReceivedAt time.Time
}

// Observer reacts to a decoded notification. Observers run in registration
// order; the first error aborts the batch.
type Observer interface {
	Observe(ctx context.Context, n Notification) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, n Notification) error

func (f ObserverFunc) Observe(ctx context.Context, n Notification) error { return f(ctx, n) }

// Result is returned to the invoker after a batch is processed.
type Result struct {
	Message          string `json:"message"`
	ProcessedRecords int    `json:"processedRecords"`
}

// Handler processes SNS events carrying item notifications.
type Handler struct {
	logger    *slog.Logger
	observers []Observer
	now       func() time.Time
}

// NewHandler creates a new subscriber handler.
func NewHandler(logger *slog.Logger, observers ...Observer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger.With("component", "subscriber"),
		observers: observers,
		now:       time.Now,
	}
}

// Handle processes every record of an SNS event.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) Handle(ctx context.Context, event events.SNSEvent) (Result, error) {
	h.logger.InfoContext(ctx, "notification batch received", "records", len(event.Records))

	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.ErrorContext(ctx, "failed to process record",
				"messageId", record.SNS.MessageID,
				"error", err,
			)
			return Result{}, err // SNS applies its redelivery policy
		}
	}

	return Result{
		Message:          "Notifications processed successfully",
		ProcessedRecords: len(event.Records),
	}, nil
}

// processRecord decodes and logs a single SNS record, then hands it to the observers.
func (h *Handler) processRecord(ctx context.Context, record events.SNSEventRecord) error {
	msg := record.SNS
	// Records from other sources in a mixed batch carry no SNS payload.
	if msg.Message == "" && msg.TopicArn == "" {
		h.logger.DebugContext(ctx, "skipping record without SNS payload",
			"eventSource", record.EventSource,
		)
		return nil
	}

	var ev item.Event
	if err := json.Unmarshal([]byte(msg.Message), &ev); err != nil {
		return fmt.Errorf("decode message %s: %w", msg.MessageID, err)
	}

	n := Notification{
		Event:      ev,
		TopicARN:   msg.TopicArn,
		Subject:    msg.Subject,
		MessageID:  msg.MessageID,
		ReceivedAt: msg.Timestamp,
	}

	h.logger.InfoContext(ctx, "notification received",
		"topicArn", n.TopicARN,
		"subject", n.Subject,
		"eventType", ev.Event,
		"eventTimestamp", ev.Timestamp,
		"itemId", ev.ItemID,
		"itemName", ev.ItemName,
		"receivedAt", n.ReceivedAt.UTC().Format(item.TimeLayout),
		"processedAt", item.FormatTime(h.now()),
	)

	for _, o := range h.observers {
		if err := o.Observe(ctx, n); err != nil {
			return fmt.Errorf("observe %s %s: %w", ev.Event, ev.ItemID, err)
		}
	}
	return nil
}
