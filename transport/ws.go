package transport

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	ws "nhooyr.io/websocket"

	"github.com/eliseuv/sternhamla-server/coord"
)

// WSListener exposes a single "/ws" upgrade endpoint that accepts binary
// WebSocket frames, one CBOR-encoded message per frame. Unlike
// TCPListener there is no length prefix: the WebSocket layer already
// delimits each message (spec.md §4.6). It implements conf.Manager.
type WSListener struct {
	Addr    string
	Session *coord.Session
	Log     *log.Logger
	Debug   *log.Logger

	srv *http.Server
}

// String identifies this manager for log/debug output.
func (w *WSListener) String() string { return fmt.Sprintf("ws(%s)", w.Addr) }

// Start binds Addr and serves the /ws upgrade endpoint until Shutdown.
func (w *WSListener) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", w.upgrade)
	w.srv = &http.Server{Addr: w.Addr, Handler: mux}

	w.Debug.Printf("ws: listening on %s", w.Addr)
	if err := w.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		w.Log.Printf("ws: serve %s: %v", w.Addr, err)
	}
}

// Shutdown gracefully closes the HTTP server, ending any pending
// ListenAndServe call in Start.
func (w *WSListener) Shutdown() {
	if w.srv != nil {
		w.srv.Shutdown(context.Background())
	}
}

// upgrade accepts one WebSocket connection and hands it to the session's
// connection-task logic as a Framer: one ReadFrame/WriteFrame call per
// binary message, no length prefix.
func (w *WSListener) upgrade(rw http.ResponseWriter, r *http.Request) {
	c, err := ws.Accept(rw, r, nil)
	if err != nil {
		http.Error(rw, "failed to establish websocket connection", http.StatusBadRequest)
		return
	}

	w.Debug.Printf("ws: new connection from %s", r.RemoteAddr)
	w.Session.ServeFramer(wsCloser{c}, wsFramer{ctx: context.Background(), conn: c})
}

// wsFramer implements proto.Framer directly over a *websocket.Conn: one
// binary message is one frame, since the WebSocket layer supplies the
// length the length-prefixed TCP codec would otherwise need to add.
type wsFramer struct {
	ctx  context.Context
	conn *ws.Conn
}

func (f wsFramer) ReadFrame() ([]byte, error) {
	typ, data, err := f.conn.Read(f.ctx)
	if err != nil {
		return nil, err
	}
	if typ != ws.MessageBinary {
		return nil, fmt.Errorf("transport: unexpected websocket message type %v", typ)
	}
	return data, nil
}

func (f wsFramer) WriteFrame(payload []byte) error {
	return f.conn.Write(f.ctx, ws.MessageBinary, payload)
}

// wsCloser adapts *websocket.Conn's Close(code, reason) to io.Closer, as
// required by Session.ServeFramer.
type wsCloser struct{ conn *ws.Conn }

func (c wsCloser) Close() error { return c.conn.Close(ws.StatusNormalClosure, "") }
