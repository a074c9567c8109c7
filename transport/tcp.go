// Package transport provides the two listener implementations (raw
// length-prefixed TCP and WebSocket) that accept connections and hand them
// to a coord.Session's per-connection actor.
package transport

import (
	"fmt"
	"log"
	"net"

	"github.com/eliseuv/sternhamla-server/coord"
)

// TCPListener accepts raw TCP connections and serves each with the
// session's Connection-task logic. It implements conf.Manager.
type TCPListener struct {
	Addr    string
	Session *coord.Session
	Log     *log.Logger
	Debug   *log.Logger

	ln net.Listener
}

// String identifies this manager for log/debug output.
func (t *TCPListener) String() string { return fmt.Sprintf("tcp(%s)", t.Addr) }

// Start binds Addr and accepts connections until Shutdown closes the
// listener. Each accepted connection runs Session.Serve in its own
// goroutine.
func (t *TCPListener) Start() {
	ln, err := net.Listen("tcp", t.Addr)
	if err != nil {
		t.Log.Printf("tcp: listen %s: %v", t.Addr, err)
		return
	}
	t.ln = ln
	t.Debug.Printf("tcp: listening on %s", t.Addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			t.Debug.Printf("tcp: accept loop ending: %v", err)
			return
		}
		t.Debug.Printf("tcp: new connection from %s", conn.RemoteAddr())
		go t.Session.Serve(conn)
	}
}

// Shutdown closes the listener, which unblocks Accept and ends Start.
func (t *TCPListener) Shutdown() {
	if t.ln != nil {
		t.ln.Close()
	}
}
