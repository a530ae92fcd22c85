package transport

import (
	"io"
	"testing"
	"time"
)

// fakeProcess simulates a child process' Wait/Kill for tests that don't
// want to spawn a real clangd.
type fakeProcess struct {
	exit chan struct{}
	kill chan struct{}
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{exit: make(chan struct{}), kill: make(chan struct{}, 1)}
}

func (p *fakeProcess) Wait() error {
	<-p.exit
	return nil
}

func (p *fakeProcess) Kill() error {
	select {
	case p.kill <- struct{}{}:
	default:
	}
	close(p.exit)
	return nil
}

func TestReadMessageDecodesFrameFromChild(t *testing.T) {
	serverStdin, clientStdin := io.Pipe()
	clientStdout, serverStdout := io.Pipe()
	_ = serverStdin
	_ = serverStdout

	proc := newFakeProcess()
	tp := FromPipes(clientStdin, clientStdout, proc)
	defer proc.Kill()

	done := make(chan error, 1)
	go func() {
		_, err := tp.ReadMessage()
		done <- err
	}()

	go func() {
		lspframeWriteNotification(serverStdout)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ReadMessage")
	}
}

func TestKillMarksDead(t *testing.T) {
	_, clientStdin := io.Pipe()
	clientStdout, _ := io.Pipe()

	proc := newFakeProcess()
	tp := FromPipes(clientStdin, clientStdout, proc)

	proc.Kill()

	select {
	case <-tp.Wait():
	case <-time.After(2 * time.Second):
		t.Fatal("expected Wait() channel to close after Kill")
	}

	if err := tp.WriteMessage(map[string]string{"x": "y"}); err == nil {
		t.Fatalf("expected WriteMessage to fail after process death")
	}
}

func lspframeWriteNotification(w io.Writer) {
	body := `{"jsonrpc":"2.0","method":"window/logMessage","params":{}}`
	header := "Content-Length: " + itoa(len(body)) + "\r\n\r\n"
	io.WriteString(w, header)
	io.WriteString(w, body)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
