package config

import (
	"fmt"

	"github.com/vinicius-dias23/roteiro3/notify"
)

// AWS describes the environment the functions run in and how to reach the
// table and the topic.
type AWS struct {
	Stage     string `env:"STAGE"`
	IsOffline bool   `env:"IS_OFFLINE"`
	Region    string `env:"AWS_REGION" envDefault:"us-east-1"`

	EndpointURL    string `env:"AWS_ENDPOINT_URL"`
	LocalstackHost string `env:"LOCALSTACK_HOSTNAME" envDefault:"localhost"`
	EdgePort       string `env:"EDGE_PORT" envDefault:"4566"`

	ItemsTable  string `env:"ITEMS_TABLE"`
	TopicARN    string `env:"SNS_TOPIC_ARN"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"roteiro3-crud-serverless"`
}

// Local reports whether the process runs against LocalStack or offline.
func (c AWS) Local() bool {
	return c.Stage == "local" || c.IsOffline
}

// Endpoint returns the LocalStack endpoint, or "" when deployed.
func (c AWS) Endpoint() string {
	if !c.Local() {
		return ""
	}
	if c.EndpointURL != "" {
		return c.EndpointURL
	}
	return fmt.Sprintf("http://%s:%s", c.LocalstackHost, c.EdgePort)
}

// StageName returns the stage, falling back to "local" offline and "dev"
// when deployed.
func (c AWS) StageName() string {
	switch {
	case c.Stage != "":
		return c.Stage
	case c.Local():
		return "local"
	default:
		return "dev"
	}
}

// Topic returns the input to topic resolution.
func (c AWS) Topic() notify.TopicConfig {
	return notify.TopicConfig{
		ConfiguredARN: c.TopicARN,
		Local:         c.Local(),
		Service:       c.ServiceName,
		Stage:         c.StageName(),
		Region:        c.Region,
	}
}
