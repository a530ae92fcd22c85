package lspframe

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	req := Request{Jsonrpc: "2.0", ID: "1", Method: "initialize"}
	if err := WriteMessage(&buf, req); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	r := NewReader(&buf, 0)
	env, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if env.Method != "initialize" {
		t.Fatalf("Method = %q, want initialize", env.Method)
	}
	if !env.IsRequest() {
		t.Fatalf("expected IsRequest() true for a request envelope")
	}
}

func TestReadMessageRejectsMissingContentLength(t *testing.T) {
	r := NewReader(bytes.NewBufferString("\r\n{}"), 0)
	if _, err := r.ReadMessage(); err == nil {
		t.Fatalf("expected error for missing Content-Length")
	}
}

func TestReadMessageRejectsNegativeContentLength(t *testing.T) {
	msg := "Content-Length: -5\r\n\r\n{}"
	r := NewReader(bytes.NewBufferString(msg), 0)
	_, err := r.ReadMessage()
	if err == nil {
		t.Fatalf("expected error for negative Content-Length")
	}
	if kind, ok := bridgeerr.Of(err); !ok || kind != bridgeerr.Malformed {
		t.Fatalf("got kind %v, want Malformed", kind)
	}
	if !strings.Contains(err.Error(), "negative") {
		t.Fatalf("error %q should distinguish a negative length from a missing header", err.Error())
	}
}

func TestReadMessageRejectsOversizedFrame(t *testing.T) {
	msg := "Content-Length: 100\r\n\r\n{}"
	r := NewReader(bytes.NewBufferString(msg), 10)
	if _, err := r.ReadMessage(); err == nil {
		t.Fatalf("expected error for frame exceeding cap")
	}
}

func TestReadMessageIgnoresUnknownHeaders(t *testing.T) {
	body := `{"jsonrpc":"2.0","method":"foo"}`
	msg := "X-Custom: 1\r\nContent-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	r := NewReader(bytes.NewBufferString(msg), 0)
	env, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !env.IsNotification() {
		t.Fatalf("expected IsNotification() true")
	}
}
