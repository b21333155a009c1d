// Package notify resolves the items topic and publishes item events to it.
package notify

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// LocalAccountID is the account segment LocalStack uses for every ARN.
	LocalAccountID = "000000000000"

	// TopicResource is the resource segment of the topic naming convention.
	TopicResource = "items-topic"

	arnPrefix = "arn:aws:sns:"
)

// ErrTopicUnset is returned when a deployed environment has no topic ARN configured.
var ErrTopicUnset = errors.New("notify: topic ARN is not configured")

// TopicARN is a resolved SNS topic address.
type TopicARN string

func (a TopicARN) String() string { return string(a) }

// TopicConfig is the environment input to topic resolution.
type TopicConfig struct {
	// ConfiguredARN is the topic ARN handed over by the deployment.
	ConfiguredARN string

	// Local is true when running against LocalStack or offline.
	Local bool

	Service string
	Stage   string
	Region  string
}

// ResolveTopic returns the topic to publish to.
//
// Deployed, the configured ARN is returned verbatim. Local, the ARN is
// always synthesized as
//
//	arn:aws:sns:{region}:000000000000:{service}-items-topic-{stage}
//
// because the local environment cannot resolve cross-stack references and
// may hand over placeholders such as an unresolved Fn::Ref.
func ResolveTopic(cfg TopicConfig) (TopicARN, error) {
	if !cfg.Local {
		arn := strings.TrimSpace(cfg.ConfiguredARN)
		if arn == "" {
			return "", ErrTopicUnset
		}
		return TopicARN(arn), nil
	}

	return LocalTopicARN(cfg.Service, cfg.Stage, cfg.Region), nil
}

// LocalTopicARN synthesizes the LocalStack topic ARN from the naming convention.
func LocalTopicARN(service, stage, region string) TopicARN {
	if stage == "" {
		stage = "local"
	}
	if region == "" {
		region = "us-east-1"
	}
	name := fmt.Sprintf("%s-%s-%s", service, TopicResource, stage)
	return TopicARN(arnPrefix + region + ":" + LocalAccountID + ":" + name)
}

// IsPlaceholder reports whether arn is an unresolved reference rather than a
// concrete SNS topic address.
func IsPlaceholder(arn string) bool {
	return !strings.HasPrefix(arn, arnPrefix) ||
		strings.Contains(arn, "Fn::") ||
		strings.Contains(arn, "${") ||
		strings.Contains(arn, "ItemsTopic")
}
