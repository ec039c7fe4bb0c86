package telnet

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/testutil"
)

// echoHandler echoes lines back until "quit".
type echoHandler struct {
	sessionCount atomic.Int32
}

func (h *echoHandler) HandleSession(_ context.Context, conn *Conn) error {
	h.sessionCount.Add(1)
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return err
		}
		if line == "quit" {
			_ = conn.WriteLine("bye")
			return nil
		}
		_ = conn.WriteLine("echo: " + line)
	}
}

func startAcceptor(t *testing.T, handler SessionHandler) (*Acceptor, <-chan error) {
	t.Helper()
	cfg := config.TelnetConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	acc := NewAcceptor(cfg, handler, zaptest.NewLogger(t))
	errCh := make(chan error, 1)
	go func() { errCh <- acc.ListenAndServe() }()
	select {
	case <-acc.Ready():
	case err := <-errCh:
		t.Fatalf("acceptor failed to start: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("acceptor did not start in time")
	}
	return acc, errCh
}

func TestAcceptorStartAndStop(t *testing.T) {
	handler := &echoHandler{}
	acc, errCh := startAcceptor(t, handler)
	assert.True(t, acc.IsRunning())

	client := testutil.NewTelnetClient(t, acc.Addr())
	client.Send("hello")
	assert.Equal(t, "echo: hello\r\n", client.ReadUntil("\r\n", 2*time.Second))
	client.Send("quit")
	assert.Equal(t, "bye\r\n", client.ReadUntil("\r\n", 2*time.Second))

	acc.Stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("acceptor did not stop in time")
	}
	assert.False(t, acc.IsRunning())
	assert.Equal(t, int32(1), handler.sessionCount.Load())
}

func TestAcceptorMultipleClients(t *testing.T) {
	handler := &echoHandler{}
	acc, _ := startAcceptor(t, handler)

	const numClients = 3
	for i := 0; i < numClients; i++ {
		client := testutil.NewTelnetClient(t, acc.Addr())
		client.Send("quit")
		assert.Equal(t, "bye\r\n", client.ReadUntil("\r\n", 2*time.Second))
		client.Close()
	}

	acc.Stop()
	assert.Equal(t, int32(numClients), handler.sessionCount.Load())
}

func TestAcceptorStopEndsBlockedSessions(t *testing.T) {
	ended := make(chan error, 1)
	handler := SessionHandlerFunc(func(ctx context.Context, conn *Conn) error {
		_, err := conn.ReadLine()
		ended <- err
		return err
	})
	acc, _ := startAcceptor(t, handler)

	testutil.NewTelnetClient(t, acc.Addr())

	stopped := make(chan struct{})
	go func() {
		acc.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return while a session was blocked reading")
	}
	assert.Error(t, <-ended)
}

func TestAcceptorListenError(t *testing.T) {
	cfg := config.TelnetConfig{Host: "256.0.0.1", Port: 1}
	acc := NewAcceptor(cfg, &echoHandler{}, zaptest.NewLogger(t))
	assert.Error(t, acc.ListenAndServe())
}
