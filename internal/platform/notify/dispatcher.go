// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultQueueSize is used when a non-positive size is configured.
	DefaultQueueSize = 256

	// DefaultSendTimeout bounds a single delivery attempt.
	DefaultSendTimeout = 10 * time.Second
)

// Dispatcher is an in-process queue in front of a [Sender].
type Dispatcher struct {
	sender      Sender
	logger      *slog.Logger
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Message

	done chan struct{}
}

// NewDispatcher starts a dispatcher with a single delivery worker.
// Call [Dispatcher.Close] on shutdown to drain the queue.
func NewDispatcher(sender Sender, logger *slog.Logger, queueSize int, sendTimeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}

	dispatcher := &Dispatcher{
		sender:      sender,
		logger:      logger,
		sendTimeout: sendTimeout,
		queue:       make(chan Message, queueSize),
		done:        make(chan struct{}),
	}

	go dispatcher.run()

	return dispatcher
}

// Publish enqueues message without blocking.
// Messages published after Close, or while the queue is full, are dropped.
func (dispatcher *Dispatcher) Publish(message Message) {
	dispatcher.mu.RLock()
	defer dispatcher.mu.RUnlock()

	if dispatcher.closed {
		dispatcher.logger.Warn("notification_dropped",
			slog.String("kind", string(message.Kind)),
			slog.String("reason", "dispatcher_closed"),
		)
		return
	}

	select {
	case dispatcher.queue <- message:
	default:
		dispatcher.logger.Warn("notification_dropped",
			slog.String("kind", string(message.Kind)),
			slog.String("reason", "queue_full"),
		)
	}
}

// Close stops accepting messages and waits for queued ones to be delivered,
// or for ctx to expire.
func (dispatcher *Dispatcher) Close(ctx context.Context) error {
	dispatcher.mu.Lock()
	if !dispatcher.closed {
		dispatcher.closed = true
		close(dispatcher.queue)
	}
	dispatcher.mu.Unlock()

	select {
	case <-dispatcher.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (dispatcher *Dispatcher) run() {
	defer close(dispatcher.done)

	for message := range dispatcher.queue {
		dispatcher.deliver(message)
	}
}

func (dispatcher *Dispatcher) deliver(message Message) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatcher.sendTimeout)
	defer cancel()

	// A panicking sender must not kill the worker.
	defer func() {
		if recovered := recover(); recovered != nil {
			dispatcher.logger.Error("notification_failed",
				slog.String("kind", string(message.Kind)),
				slog.Any("panic", recovered),
			)
		}
	}()

	if err := dispatcher.sender.Send(ctx, message); err != nil {
		dispatcher.logger.Error("notification_failed",
			slog.String("kind", string(message.Kind)),
			slog.String("to", message.To),
			slog.Any("error", err),
		)
		return
	}

	dispatcher.logger.Debug("notification_sent",
		slog.String("kind", string(message.Kind)),
		slog.String("to", message.To),
	)
}
