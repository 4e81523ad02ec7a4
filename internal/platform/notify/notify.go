// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify is the best-effort outbound notification channel.

Domain services publish a [Message] after their state change has committed.
A [Dispatcher] queues it in memory and a background worker hands it to a
[Sender]. Publishing never blocks and never fails the caller: a full queue
drops the message and a delivery error is only logged.
*/
package notify

import "context"

// Kind names the domain event that produced a message.
type Kind string

const (
	KindRequestSubmitted Kind = "request_submitted"
	KindRequestAccepted  Kind = "request_accepted"
	KindRequestRejected  Kind = "request_rejected"
)

// Message is a single plain-text notification.
type Message struct {
	Kind    Kind
	To      string
	Subject string
	Body    string
}

// Publisher accepts messages for asynchronous delivery.
type Publisher interface {
	Publish(message Message)
}

// Sender performs the actual delivery of one message.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// Discard is a [Publisher] that drops every message.
type Discard struct{}

// Publish implements [Publisher].
func (Discard) Publish(Message) {}
