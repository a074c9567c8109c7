package proto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []byte("hello frame")
	if err := WriteFrame(&buf, want); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteFrameRejectsZeroLength(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, nil); !errors.Is(err, ErrZeroLengthFrame) {
		t.Errorf("got %v, want ErrZeroLengthFrame", err)
	}
}

func TestWriteFrameRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, make([]byte, MaxFrameBytes+1)); !errors.Is(err, ErrOversizeFrame) {
		t.Errorf("got %v, want ErrOversizeFrame", err)
	}
}

func TestReadFrameRejectsZeroLengthAnnouncement(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0})
	if _, err := ReadFrame(buf); !errors.Is(err, ErrZeroLengthFrame) {
		t.Errorf("got %v, want ErrZeroLengthFrame", err)
	}
}

func TestReadFrameRejectsOversizeAnnouncement(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	if _, err := ReadFrame(buf); !errors.Is(err, ErrOversizeFrame) {
		t.Errorf("got %v, want ErrOversizeFrame", err)
	}
}

func TestServerCodecRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sc := NewServerCodec(&buf)
	cc := NewClientCodec(&buf)

	want := Choice(3)
	if err := cc.WriteMessage(want); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	got, err := sc.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClientCodecRoundTripWelcome(t *testing.T) {
	var buf bytes.Buffer
	sc := NewServerCodec(&buf)
	cc := NewClientCodec(&buf)

	id := uuid.New()
	if err := sc.WriteMessage(Welcome(id)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	got, err := cc.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got.Type != TypeWelcome || got.SessionID != id {
		t.Errorf("got %+v, want welcome with session %s", got, id)
	}
}

func TestChoiceZeroIndexSurvivesEncoding(t *testing.T) {
	var buf bytes.Buffer
	sc := NewServerCodec(&buf)
	cc := NewClientCodec(&buf)

	if err := cc.WriteMessage(Choice(0)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	got, err := sc.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got.MovementIndex != 0 {
		t.Errorf("got movement index %d, want 0", got.MovementIndex)
	}
}
