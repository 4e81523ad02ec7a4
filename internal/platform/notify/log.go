// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the log instead of delivering them.
// It is used when no SMTP relay is configured.
type LogSender struct {
	Logger *slog.Logger
}

// Send implements [Sender].
func (sender LogSender) Send(ctx context.Context, message Message) error {
	sender.Logger.InfoContext(ctx, "notification_logged",
		slog.String("kind", string(message.Kind)),
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)
	return nil
}
