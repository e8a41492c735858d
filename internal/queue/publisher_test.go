package queue

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// silentBroker accepts TCP connections and never answers the AMQP handshake.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	t.Cleanup(func() {
		close(done)
		_ = ln.Close()
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				<-done
				_ = conn.Close()
			}()
		}
	}()
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestAMQPPublisher_GivesUpAtContextDeadline(t *testing.T) {
	p := NewAMQPPublisher(silentBroker(t), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.PublishContactReceived(ctx, ContactReceivedEvent{MessageID: 1})
	require.Error(t, err)
	require.Less(t, time.Since(start), 3*time.Second)
}

func TestNopPublisher(t *testing.T) {
	require.NoError(t, NopPublisher{}.PublishContactReceived(context.Background(), ContactReceivedEvent{}))
}
