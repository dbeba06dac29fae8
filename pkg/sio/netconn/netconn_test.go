package netconn

import (
	"errors"
	"net"
	"testing"
	"time"

	"siocat/pkg/sio"
)

func wrappedPipe(t *testing.T, timeout time.Duration) (*Transport, net.Conn) {
	t.Helper()

	client, server := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})

	return Wrap(client, true, timeout), server
}

func TestRecv_NotReadyOnSilentPeer(t *testing.T) {
	t.Parallel()

	tr, _ := wrappedPipe(t, 20*time.Millisecond)

	if _, err := tr.Recv(make([]byte, 4)); !errors.Is(err, sio.ErrNotReady) {
		t.Errorf("Recv() error = %v, want ErrNotReady", err)
	}
}

func TestRecv_Data(t *testing.T) {
	t.Parallel()

	tr, server := wrappedPipe(t, time.Second)

	go server.Write([]byte("ping"))

	buf := make([]byte, 16)
	n, err := tr.Recv(buf)
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if n != 4 || string(buf[:n]) != "ping" {
		t.Errorf("Recv() = (%d, %q), want ping", n, buf[:n])
	}
}

func TestRecv_PeerClosed(t *testing.T) {
	t.Parallel()

	tr, server := wrappedPipe(t, time.Second)
	server.Close()

	n, err := tr.Recv(make([]byte, 4))
	if err != nil || n != 0 {
		t.Errorf("Recv() after peer close = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSend_NotReadyOnStuckPeer(t *testing.T) {
	t.Parallel()

	// net.Pipe is unbuffered: a write blocks until the peer reads, so a
	// non-reading peer models a full send buffer.
	tr, _ := wrappedPipe(t, 20*time.Millisecond)

	if _, err := tr.Send([]byte("data")); !errors.Is(err, sio.ErrNotReady) {
		t.Errorf("Send() error = %v, want ErrNotReady", err)
	}
}

func TestSend_Data(t *testing.T) {
	t.Parallel()

	tr, server := wrappedPipe(t, time.Second)

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 16)
		n, _ := server.Read(buf)
		done <- buf[:n]
	}()

	n, err := tr.Send([]byte("pong"))
	if err != nil || n != 4 {
		t.Fatalf("Send() = (%d, %v), want (4, nil)", n, err)
	}
	if got := <-done; string(got) != "pong" {
		t.Errorf("peer read %q, want pong", got)
	}
}

func TestWait_ReturnsImmediately(t *testing.T) {
	t.Parallel()

	tr, _ := wrappedPipe(t, time.Second)

	start := time.Now()
	ready, err := tr.Wait(sio.Receive, time.Hour)
	if err != nil || !ready {
		t.Fatalf("Wait() = (%v, %v), want (true, nil)", ready, err)
	}
	if time.Since(start) > time.Second {
		t.Error("Wait() blocked; the wait budget lives in the I/O deadline")
	}
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	tr, _ := wrappedPipe(t, time.Second)

	if err := tr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestConnect_NoDialFunc(t *testing.T) {
	t.Parallel()

	tr := New(nil, true, time.Second)
	if err := tr.Connect("localhost", 1234); err == nil {
		t.Error("Connect() without dial function succeeded")
	}
}

func TestConnect_Dials(t *testing.T) {
	t.Parallel()

	client, server := net.Pipe()
	defer server.Close()

	dialed := ""
	tr := New(func(addr string) (net.Conn, error) {
		dialed = addr
		return client, nil
	}, true, time.Second)

	if err := tr.Connect("example.com", 80); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if dialed != "example.com:80" {
		t.Errorf("dialed %q, want example.com:80", dialed)
	}
	if err := tr.PendingError(); err != nil {
		t.Errorf("PendingError() = %v, want nil", err)
	}
}

func TestBudgetExceededOverPipe(t *testing.T) {
	t.Parallel()

	tr, _ := wrappedPipe(t, 10*time.Millisecond)

	conn, err := sio.Configure(tr, sio.Options{
		Mode:     sio.NonBlocking,
		Timeout:  10 * time.Millisecond,
		MaxFails: 2,
	})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	if err := conn.Establish("ignored", 1); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}

	if _, err := conn.ReceiveAll(1); !errors.Is(err, sio.ErrBudgetExceeded) {
		t.Errorf("ReceiveAll() error = %v, want ErrBudgetExceeded", err)
	}
}

func TestFullTransferOverPipe(t *testing.T) {
	t.Parallel()

	tr, server := wrappedPipe(t, time.Second)

	conn, err := sio.Configure(tr, sio.Options{
		Mode:     sio.NonBlocking,
		Timeout:  time.Second,
		MaxFails: 5,
	})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	if err := conn.Establish("ignored", 1); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}

	// Peer trickles the payload in small chunks to force several
	// transfer-loop iterations.
	payload := []byte("trickled payload for the transfer loop")
	go func() {
		for i := 0; i < len(payload); i += 5 {
			end := i + 5
			if end > len(payload) {
				end = len(payload)
			}
			server.Write(payload[i:end])
		}
	}()

	data, err := conn.ReceiveAll(len(payload))
	if err != nil {
		t.Fatalf("ReceiveAll() error = %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("ReceiveAll() = %q, want %q", data, payload)
	}
}
