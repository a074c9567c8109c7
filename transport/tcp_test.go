package transport_test

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/eliseuv/sternhamla-server/coord"
	"github.com/eliseuv/sternhamla-server/harness"
	"github.com/eliseuv/sternhamla-server/transport"
)

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestTCPListenerAcceptsAndServesAConnection(t *testing.T) {
	const addr = "127.0.0.1:18453"
	session := coord.NewSession(0, 2*time.Second, discardLogger(), discardLogger())
	go session.Run()

	listener := &transport.TCPListener{
		Addr:    addr,
		Session: session,
		Log:     discardLogger(),
		Debug:   discardLogger(),
	}
	go listener.Start()
	defer listener.Shutdown()

	c1 := dialTCPWhenReady(t, addr)
	defer c1.Close()
	c2, err := harness.DialTCP(addr)
	if err != nil {
		t.Fatalf("dial second client: %v", err)
	}
	defer c2.Close()

	candidates, err := c1.NextTurn()
	if err != nil {
		t.Fatalf("first client's turn: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("got zero candidate moves for the opening turn")
	}
	if c1.SessionID == c2.SessionID {
		t.Fatalf("both clients got the same session id")
	}
}

// dialTCPWhenReady retries DialTCP until Start has finished binding the
// listener, since Start runs in its own goroutine with no explicit
// "ready" signal.
func dialTCPWhenReady(t *testing.T, addr string) *harness.Client {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		c, err := harness.DialTCP(addr)
		if err == nil {
			return c
		}
		lastErr = err
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("listener never became reachable: %v", lastErr)
	return nil
}
