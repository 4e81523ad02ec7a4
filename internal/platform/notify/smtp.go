// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the relay settings for [SMTPSender].
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// NewSMTPSender builds a sender. No connection is opened until the first send.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("notify: smtp host is required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("notify: sender address is required")
	}

	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Send implements [Sender].
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	msg := mail.NewMsg()
	if err := msg.From(sender.from); err != nil {
		return fmt.Errorf("notify: from address: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("notify: to address: %w", err)
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.Body)

	if err := sender.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("notify: smtp send: %w", err)
	}
	return nil
}
