// Package app wires configuration, AWS clients and handlers together. It is
// called once per process, before the Lambda runtime starts.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/vinicius-dias23/roteiro3/api"
	"github.com/vinicius-dias23/roteiro3/internal/config"
	"github.com/vinicius-dias23/roteiro3/internal/log"
	"github.com/vinicius-dias23/roteiro3/notify"
	"github.com/vinicius-dias23/roteiro3/store"
	"github.com/vinicius-dias23/roteiro3/subscriber"
)

// ErrTableUnset is returned when an API function starts without ITEMS_TABLE.
var ErrTableUnset = errors.New("app: ITEMS_TABLE is not configured")

// Config is the configuration of every binary in the repository.
type Config struct {
	Log  config.Log
	AWS  config.AWS
	HTTP config.HTTP
}

// Setup loads the configuration and installs the logger.
func Setup() (Config, *slog.Logger, error) {
	time.Local = time.UTC

	cfg, err := config.New[Config]()
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, log.NewSlogLogger(cfg.Log), nil
}

// AWSConfig builds the SDK configuration. Local mode targets the LocalStack
// endpoint with static test credentials; deployed mode uses the default
// credential chain.
func AWSConfig(ctx context.Context, c config.AWS) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}
	if c.Local() {
		opts = append(opts,
			awsconfig.WithBaseEndpoint(c.Endpoint()),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
		)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewAPI builds the item handlers from cfg. The topic is resolved here, once.
func NewAPI(ctx context.Context, cfg Config, logger *slog.Logger) (*api.Handler, error) {
	if cfg.AWS.ItemsTable == "" {
		return nil, ErrTableUnset
	}

	// Read-only functions never publish, so a missing topic only fails
	// create and update, at publish time.
	topic, err := notify.ResolveTopic(cfg.AWS.Topic())
	switch {
	case errors.Is(err, notify.ErrTopicUnset):
		logger.WarnContext(ctx, "topic ARN is not configured, publishing will fail")
	case err != nil:
		return nil, fmt.Errorf("resolve topic: %w", err)
	case !cfg.AWS.Local() && notify.IsPlaceholder(topic.String()):
		logger.WarnContext(ctx, "configured topic ARN looks unresolved", "topicArn", topic.String())
	}

	awsCfg, err := AWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "api configured",
		"stage", cfg.AWS.StageName(),
		"local", cfg.AWS.Local(),
		"table", cfg.AWS.ItemsTable,
		"topicArn", topic.String(),
	)

	s := store.New(dynamodb.NewFromConfig(awsCfg), store.Config{TableName: cfg.AWS.ItemsTable})
	p := notify.NewPublisher(sns.NewFromConfig(awsCfg), topic, logger)
	return api.NewHandler(s, p, logger), nil
}

// NewSubscriber builds the notification consumer.
func NewSubscriber(logger *slog.Logger) *subscriber.Handler {
	return subscriber.NewHandler(logger)
}
