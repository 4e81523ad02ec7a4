// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/platform/notify"
)

type recordingSender struct {
	mu       sync.Mutex
	sent     []notify.Message
	fail     bool
	blocking chan struct{}
}

func (sender *recordingSender) Send(ctx context.Context, message notify.Message) error {
	if sender.blocking != nil {
		<-sender.blocking
	}
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.sent = append(sender.sent, message)
	if sender.fail {
		return errors.New("relay refused")
	}
	return nil
}

func (sender *recordingSender) count() int {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	return len(sender.sent)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestDispatcher_DeliversAndDrains verifies queued messages are delivered before Close returns.
*/
func TestDispatcher_DeliversAndDrains(t *testing.T) {
	sender := &recordingSender{}
	dispatcher := notify.NewDispatcher(sender, discardLogger(), 8, time.Second)

	for i := 0; i < 5; i++ {
		dispatcher.Publish(notify.Message{Kind: notify.KindRequestSubmitted, To: "root@quillpad.app"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, dispatcher.Close(ctx))

	assert.Equal(t, 5, sender.count())
}

/*
TestDispatcher_FailureIsSwallowed ensures delivery errors never reach the publisher.
*/
func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{fail: true}
	dispatcher := notify.NewDispatcher(sender, discardLogger(), 1, time.Second)

	assert.NotPanics(t, func() {
		dispatcher.Publish(notify.Message{Kind: notify.KindRequestAccepted, To: "ann@x.com"})
	})

	require.NoError(t, dispatcher.Close(context.Background()))
	assert.Equal(t, 1, sender.count())
}

/*
TestDispatcher_FullQueueDrops verifies Publish never blocks on a stalled sender.
*/
func TestDispatcher_FullQueueDrops(t *testing.T) {
	release := make(chan struct{})
	sender := &recordingSender{blocking: release}
	dispatcher := notify.NewDispatcher(sender, discardLogger(), 1, time.Second)

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			dispatcher.Publish(notify.Message{Kind: notify.KindRequestRejected})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}

	close(release)
	require.NoError(t, dispatcher.Close(context.Background()))

	// One in flight plus one queued at most.
	assert.LessOrEqual(t, sender.count(), 2)
	assert.GreaterOrEqual(t, sender.count(), 1)
}

/*
TestDispatcher_PublishAfterClose is a silent no-op.
*/
func TestDispatcher_PublishAfterClose(t *testing.T) {
	sender := &recordingSender{}
	dispatcher := notify.NewDispatcher(sender, discardLogger(), 1, time.Second)
	require.NoError(t, dispatcher.Close(context.Background()))
	require.NoError(t, dispatcher.Close(context.Background()))

	assert.NotPanics(t, func() { dispatcher.Publish(notify.Message{}) })
	assert.Equal(t, 0, sender.count())
}

/*
TestNewSMTPSender_RequiresHost rejects an empty relay configuration.
*/
func TestNewSMTPSender_RequiresHost(t *testing.T) {
	_, err := notify.NewSMTPSender(notify.SMTPConfig{From: "no-reply@quillpad.app"})
	assert.Error(t, err)

	_, err = notify.NewSMTPSender(notify.SMTPConfig{Host: "smtp.quillpad.app", Port: 587})
	assert.Error(t, err)
}
