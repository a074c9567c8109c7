package proto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Errors returned by ReadFrame/WriteFrame.
var (
	ErrZeroLengthFrame = errors.New("proto: frame announces zero length")
	ErrOversizeFrame   = errors.New("proto: frame exceeds maximum size")
)

// ReadFrame reads one length-prefixed frame from r: a big-endian uint32
// length L followed by L payload bytes. It rejects L == 0 and L >
// MaxFrameBytes without consuming the (unbounded) payload.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	switch {
	case length == 0:
		return nil, ErrZeroLengthFrame
	case length > MaxFrameBytes:
		return nil, ErrOversizeFrame
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes payload as one length-prefixed frame to w.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) == 0 {
		return ErrZeroLengthFrame
	}
	if len(payload) > MaxFrameBytes {
		return ErrOversizeFrame
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// Framer reads and writes one whole message payload at a time. TCP
// sockets and the in-memory test pipe are byte streams with no message
// boundaries of their own, so lengthPrefixedFramer supplies one with the
// 4-byte length prefix below; a WebSocket connection needs none of that,
// since the WebSocket framing already delimits one message per binary
// frame (spec.md §4.6) — transport/ws.go implements Framer directly over
// it instead of going through a length prefix.
type Framer interface {
	ReadFrame() ([]byte, error)
	WriteFrame(payload []byte) error
}

// lengthPrefixedFramer implements Framer over a byte-stream
// io.ReadWriter using ReadFrame/WriteFrame.
type lengthPrefixedFramer struct {
	rw io.ReadWriter
}

func (f lengthPrefixedFramer) ReadFrame() ([]byte, error) { return ReadFrame(f.rw) }

func (f lengthPrefixedFramer) WriteFrame(payload []byte) error { return WriteFrame(f.rw, payload) }

// ServerCodec reads ClientMessages and writes ServerMessages over a single
// connection; one instance is owned by exactly one Connection task.
type ServerCodec struct {
	framer Framer
}

// NewServerCodec wraps rwc for server-side use over a length-prefixed
// byte stream (TCP, net.Pipe).
func NewServerCodec(rwc io.ReadWriter) *ServerCodec {
	return &ServerCodec{framer: lengthPrefixedFramer{rwc}}
}

// NewServerCodecFramer wraps an arbitrary Framer for server-side use,
// e.g. one frame per WebSocket binary message.
func NewServerCodecFramer(f Framer) *ServerCodec { return &ServerCodec{framer: f} }

// ReadMessage decodes the next ClientMessage from the connection.
func (c *ServerCodec) ReadMessage() (ClientMessage, error) {
	payload, err := c.framer.ReadFrame()
	if err != nil {
		return ClientMessage{}, err
	}
	var msg ClientMessage
	if err := cbor.Unmarshal(payload, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("proto: decode client message: %w", err)
	}
	return msg, nil
}

// WriteMessage encodes and frames a ServerMessage onto the connection.
func (c *ServerCodec) WriteMessage(msg ServerMessage) error {
	payload, err := cbor.Marshal(msg)
	if err != nil {
		return fmt.Errorf("proto: encode server message: %w", err)
	}
	return c.framer.WriteFrame(payload)
}

// ClientCodec is the mirror image of ServerCodec, used by the test harness
// and any offline tooling that plays the client side of the protocol.
type ClientCodec struct {
	framer Framer
}

// NewClientCodec wraps rwc for client-side use over a length-prefixed
// byte stream (TCP, net.Pipe).
func NewClientCodec(rwc io.ReadWriter) *ClientCodec {
	return &ClientCodec{framer: lengthPrefixedFramer{rwc}}
}

// NewClientCodecFramer wraps an arbitrary Framer for client-side use,
// e.g. one frame per WebSocket binary message.
func NewClientCodecFramer(f Framer) *ClientCodec { return &ClientCodec{framer: f} }

// ReadMessage decodes the next ServerMessage from the connection.
func (c *ClientCodec) ReadMessage() (ServerMessage, error) {
	payload, err := c.framer.ReadFrame()
	if err != nil {
		return ServerMessage{}, err
	}
	var msg ServerMessage
	if err := cbor.Unmarshal(payload, &msg); err != nil {
		return ServerMessage{}, fmt.Errorf("proto: decode server message: %w", err)
	}
	return msg, nil
}

// WriteMessage encodes and frames a ClientMessage onto the connection.
func (c *ClientCodec) WriteMessage(msg ClientMessage) error {
	payload, err := cbor.Marshal(msg)
	if err != nil {
		return fmt.Errorf("proto: encode client message: %w", err)
	}
	return c.framer.WriteFrame(payload)
}
