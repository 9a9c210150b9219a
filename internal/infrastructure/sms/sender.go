package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/domain/shared"
	"github.com/tradelink/backend/internal/infrastructure/config"
)

// Sender delivers SMS notifications. Delivery is best-effort: callers
// must treat failures as non-fatal.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// NewSender picks an implementation from configuration. Without
// credentials, messages are logged and dropped instead of sent, so
// deployments can run without an SMS provider.
func NewSender(cfg config.SMSConfig, logger *zap.Logger) Sender {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		logger.Info("sms credentials not configured, notifications will be logged only")
		return NewNoopSender(logger)
	}
	return NewTwilioSender(cfg, logger)
}

// TwilioSender sends messages through the Twilio REST API
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

func NewTwilioSender(cfg config.SMSConfig, logger *zap.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{
		client: client,
		from:   cfg.FromNumber,
		logger: logger,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return shared.NewValidationError("recipient phone number is required")
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: sms delivery failed: %v", shared.ErrDependencyUnavailable, err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	s.logger.Info("sms sent",
		zap.String("to", to),
		zap.String("message_sid", sid),
	)
	return nil
}

// NoopSender logs messages instead of delivering them
type NoopSender struct {
	logger *zap.Logger
}

func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) Send(_ context.Context, to, body string) error {
	s.logger.Debug("sms suppressed, no provider configured",
		zap.String("to", to),
		zap.String("body", body),
	)
	return nil
}

var (
	_ Sender = (*TwilioSender)(nil)
	_ Sender = (*NoopSender)(nil)
)
