package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/vinicius-dias23/roteiro3/item"
)

// SNSAPI is the subset of the SNS client used by the Publisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ SNSAPI = (*sns.Client)(nil)

// Publisher publishes item events to a single resolved topic.
type Publisher struct {
	client SNSAPI
	topic  TopicARN
	logger *slog.Logger
}

// NewPublisher creates a Publisher for topic.
func NewPublisher(client SNSAPI, topic TopicARN, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client: client,
		topic:  topic,
		logger: logger,
	}
}

// Topic returns the topic the publisher targets.
func (p *Publisher) Topic() TopicARN {
	return p.topic
}

// Publish sends ev as a JSON message with the event's subject. It fails with
// ErrTopicUnset when the publisher has no topic. Retries are left to the SNS
// client.
func (p *Publisher) Publish(ctx context.Context, ev item.Event) error {
	if p.topic == "" {
		return fmt.Errorf("publish %s: %w", ev.Event, ErrTopicUnset)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topic.String()),
		Message:  aws.String(string(body)),
		Subject:  aws.String(ev.Subject()),
	})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", ev.Event, p.topic, err)
	}

	p.logger.InfoContext(ctx, "event published",
		"eventType", ev.Event,
		"itemId", ev.ItemID,
		"topicArn", p.topic.String(),
		"messageId", aws.ToString(out.MessageId),
	)
	return nil
}
