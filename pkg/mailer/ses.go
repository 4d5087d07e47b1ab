package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// Message is a rendered email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// SESConfig holds Amazon SES settings.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	FromAddress     string
	FromName        string
}

// SES sends email through Amazon SES v2. A sender built without a from
// address is disabled and drops every message.
type SES struct {
	client  *sesv2.Client
	from    string
	enabled bool
	logger  *zap.Logger
}

// NewSES creates an SES sender. Static credentials are used when both keys are
// set, otherwise the default AWS credential chain.
func NewSES(ctx context.Context, cfg SESConfig, logger *zap.Logger) (*SES, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FromAddress == "" {
		logger.Warn("email disabled: SES_FROM_EMAIL not configured")
		return &SES{logger: logger}, nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	logger.Info("email enabled", zap.String("from", cfg.FromAddress), zap.String("region", cfg.Region))
	return &SES{
		client:  sesv2.NewFromConfig(awsCfg),
		from:    from,
		enabled: true,
		logger:  logger,
	}, nil
}

// Enabled reports whether messages are actually sent.
func (s *SES) Enabled() bool {
	return s.enabled
}

// Send delivers msg, or logs and drops it when the sender is disabled.
func (s *SES) Send(ctx context.Context, msg Message) error {
	if !s.enabled {
		s.logger.Info("email skipped", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return nil
	}
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	s.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}
