package harness

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/eliseuv/sternhamla-server/proto"
)

// wsFramer implements proto.Framer directly over a *websocket.Conn: one
// binary message is one frame, matching transport.WSListener's server
// side and spec.md §4.6 (no length prefix over WebSocket).
type wsFramer struct {
	conn *websocket.Conn
}

func (f wsFramer) ReadFrame() ([]byte, error) {
	for {
		kind, data, err := f.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind == websocket.BinaryMessage {
			return data, nil
		}
	}
}

func (f wsFramer) WriteFrame(payload []byte) error {
	return f.conn.WriteMessage(websocket.BinaryMessage, payload)
}

// DialWS connects to a running WebSocket listener (e.g.
// transport.WSListener) and wires up a Client exactly like Dial does for
// the in-memory transport, exercising the real WebSocket framing end to
// end: one CBOR message per binary frame, no length prefix.
func DialWS(serverURL string) (*Client, error) {
	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("harness: dial %s: %w", url, err)
	}
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	return handshakeCodec(conn, proto.NewClientCodecFramer(wsFramer{conn: conn}), proto.Hello())
}
