package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-verification-nosql/internal/config"
	"github.com/go-verification-nosql/internal/domain"
	"github.com/go-verification-nosql/internal/pkg/id"
)

// EventVerificationRequested is the event_type attribute on published messages.
const EventVerificationRequested = "verification.requested"

// PublishAPI is the subset of the SNS client the publisher uses.
type PublishAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// VerificationEvent is the message body consumed by the mail service.
// The link already carries the raw token, so it is not repeated.
type VerificationEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Identifier string    `json:"identifier"`
	URL        string    `json:"url"`
	BaseURL    string    `json:"base_url"`
	Provider   string    `json:"provider,omitempty"`
	Expires    time.Time `json:"expires"`
}

// Publisher hands verification links to an SNS topic. Its
// SendVerificationRequest method is used as the delivery callback.
type Publisher struct {
	client   PublishAPI
	topicARN string
	now      func() time.Time
}

func NewClient(ctx context.Context, cfg *config.Config) (*sns.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SNSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for SNS: %w", err)
	}
	var clientOpts []func(*sns.Options)
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return sns.NewFromConfig(awsCfg, clientOpts...), nil
}

func NewPublisher(client PublishAPI, topicARN string) *Publisher {
	return &Publisher{client: client, topicARN: topicARN, now: time.Now}
}

func (p *Publisher) SendVerificationRequest(ctx context.Context, params domain.VerificationParams) error {
	ev := VerificationEvent{
		ID:         id.NewAt(p.now()),
		Type:       EventVerificationRequested,
		Identifier: params.Identifier,
		URL:        params.URL,
		BaseURL:    params.BaseURL,
		Provider:   params.ProviderID,
		Expires:    params.Expires,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal verification event: %w", err)
	}
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(EventVerificationRequested)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish verification event: %w", err)
	}
	return nil
}
