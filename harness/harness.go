// Package harness drives a coord.Session the way a real client would,
// without necessarily opening a real socket: Dial wires an in-memory
// net.Pipe to Session.Serve, DialTCP/DialWS speak the same protocol over a
// real listener. It exists for tests; production code never imports it.
package harness

import (
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"

	sternhalma "github.com/eliseuv/sternhamla-server"
	"github.com/eliseuv/sternhamla-server/coord"
	"github.com/eliseuv/sternhamla-server/proto"
)

// Client is the test-side half of one connection: a ClientCodec over a
// net.Pipe half or a TCP socket (length-prefixed), or over a WebSocket
// connection through a Framer (one binary message per frame), plus the
// session id handed back by Welcome.
type Client struct {
	codec     *proto.ClientCodec
	conn      io.Closer
	SessionID uuid.UUID
}

// handshake sends hello over rwc and waits for Welcome, wrapping rwc as a
// Client on success. Dial, Reconnect and DialTCP share this once the
// transport is connected; DialWS calls handshakeCodec directly.
func handshake(rwc io.ReadWriteCloser, hello proto.ClientMessage) (*Client, error) {
	return handshakeCodec(rwc, proto.NewClientCodec(rwc), hello)
}

// handshakeCodec is handshake's transport-agnostic core: closer ends the
// connection on failure, codec already speaks whatever framing the
// transport needs (length-prefixed for TCP/pipe, one WebSocket frame per
// message for DialWS).
func handshakeCodec(closer io.Closer, codec *proto.ClientCodec, hello proto.ClientMessage) (*Client, error) {
	c := &Client{codec: codec, conn: closer}
	if err := c.codec.WriteMessage(hello); err != nil {
		c.Close()
		return nil, fmt.Errorf("harness: send %s: %w", hello.Type, err)
	}
	welcome, err := c.codec.ReadMessage()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("harness: read welcome: %w", err)
	}
	if welcome.Type != proto.TypeWelcome {
		c.Close()
		return nil, fmt.Errorf("harness: handshake rejected: %s", welcome.Reason)
	}
	c.SessionID = welcome.SessionID
	return c, nil
}

// Dial connects a new client to session over an in-memory pipe and runs
// the handshake, sending Hello. The coordinator's half of the pipe is
// handed to Session.Serve in its own goroutine, exactly as
// transport.TCPListener does for real sockets.
func Dial(session *coord.Session) (*Client, error) {
	serverSide, clientSide := net.Pipe()
	go session.Serve(serverSide)
	return handshake(clientSide, proto.Hello())
}

// Reconnect resumes sessionID against session over a fresh pipe.
func Reconnect(session *coord.Session, sessionID uuid.UUID) (*Client, error) {
	serverSide, clientSide := net.Pipe()
	go session.Serve(serverSide)
	return handshake(clientSide, proto.Reconnect(sessionID))
}

// DialTCP connects to a real TCP address (e.g. one bound by a running
// transport.TCPListener) and runs the Hello handshake over it.
func DialTCP(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("harness: dial %s: %w", addr, err)
	}
	return handshake(conn, proto.Hello())
}

// Choice sends the index-th candidate of the most recent Turn.
func (c *Client) Choice(index int) error {
	return c.codec.WriteMessage(proto.Choice(index))
}

// Next reads the next ServerMessage, blocking until one arrives.
func (c *Client) Next() (proto.ServerMessage, error) {
	return c.codec.ReadMessage()
}

// NextTurn reads ServerMessages until it sees a Turn addressed to this
// client, returning the candidate movements it offers.
func (c *Client) NextTurn() ([]proto.MovementIndices, error) {
	for {
		msg, err := c.Next()
		if err != nil {
			return nil, err
		}
		if msg.Type == proto.TypeTurn {
			return msg.Movements, nil
		}
	}
}

// Close closes the underlying connection, simulating a dropped client.
func (c *Client) Close() error { return c.conn.Close() }

// Player returns msg's Player field exactly as received, i.e. already
// transformed into the receiving client's perspective frame.
func Player(msg proto.ServerMessage) sternhalma.Player { return msg.Player }
