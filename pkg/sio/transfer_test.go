package sio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestSendAll_PartialWritesAddUp(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("abc"), 100) // 300 bytes
	ft := &fakeTransport{
		sendSteps: []step{{n: 7}, {n: 1}, {n: 120}, {n: 50}, {n: 300}},
	}
	c := connected(t, ft, 3)

	if err := c.SendAll(payload); err != nil {
		t.Fatalf("SendAll() error = %v", err)
	}

	sum := 0
	for _, n := range ft.sentChunks {
		sum += n
	}
	if sum != len(payload) {
		t.Errorf("partial writes sum to %d, want %d", sum, len(payload))
	}
	// The last scripted step accepts 300 bytes but only 122 remain; no
	// byte may be counted twice.
	if last := ft.sentChunks[len(ft.sentChunks)-1]; last != 122 {
		t.Errorf("final chunk = %d, want 122", last)
	}
}

func TestSendAll_BudgetExceeded(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{
		waitReady: true,
		sendSteps: []step{{err: ErrNotReady}, {err: ErrNotReady}, {err: ErrNotReady}},
	}
	c := connected(t, ft, 3)

	if err := c.SendAll([]byte("hello")); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("SendAll() error = %v, want ErrBudgetExceeded", err)
	}
	// Budget exhausted on the third consecutive failure: two waits, then
	// the counter hits the maximum and no further wait happens.
	if len(ft.waits) != 2 {
		t.Errorf("waited %d times, want 2", len(ft.waits))
	}
	for _, d := range ft.waits {
		if d != Send {
			t.Errorf("waited in %s direction, want send", d)
		}
	}
}

func TestSendAll_ProgressResetsCounter(t *testing.T) {
	t.Parallel()

	// Budget is 3. Two failures, one byte of progress, then three more
	// failure/progress pairs: cumulative failures far exceed the budget,
	// but never three in a row, so the transfer must succeed.
	ft := &fakeTransport{
		waitReady: true,
		sendSteps: []step{
			{err: ErrNotReady}, {err: ErrNotReady}, {n: 1},
			{err: ErrNotReady}, {err: ErrNotReady}, {n: 1},
			{err: ErrNotReady}, {err: ErrNotReady}, {n: 1},
			{err: ErrNotReady}, {err: ErrNotReady}, {n: 1},
		},
	}
	c := connected(t, ft, 3)

	if err := c.SendAll([]byte("abcd")); err != nil {
		t.Fatalf("SendAll() error = %v", err)
	}
}

func TestSendAll_FatalErrorSkipsBudget(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	ft := &fakeTransport{
		waitReady: true,
		sendSteps: []step{{n: 2}, {err: cause}},
	}
	c := connected(t, ft, 100)

	err := c.SendAll([]byte("hello"))
	if !errors.Is(err, cause) {
		t.Fatalf("SendAll() error = %v, want wrapped %v", err, cause)
	}
	if len(ft.waits) != 0 {
		t.Errorf("waited %d times on a fatal error, want 0", len(ft.waits))
	}
}

func TestReceiveAll_Full(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{
		waitReady: true,
		recvByte:  'x',
		recvSteps: []step{{n: 3}, {err: ErrNotReady}, {n: 4}, {n: 3}},
	}
	c := connected(t, ft, 3)

	data, err := c.ReceiveAll(10)
	if err != nil {
		t.Fatalf("ReceiveAll() error = %v", err)
	}
	if !bytes.Equal(data, bytes.Repeat([]byte("x"), 10)) {
		t.Errorf("ReceiveAll() = %q, want 10 x's", data)
	}
}

func TestReceiveAll_PeerClosedOnFirstAttempt(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{
		waitReady: true,
		recvSteps: []step{{n: 0}},
	}
	// A huge failure budget must not delay the peer-closed verdict.
	c := connected(t, ft, 1000000)

	if _, err := c.ReceiveAll(10); !errors.Is(err, ErrPeerClosed) {
		t.Fatalf("ReceiveAll() error = %v, want ErrPeerClosed", err)
	}
	if len(ft.waits) != 0 {
		t.Errorf("waited %d times after peer close, want 0", len(ft.waits))
	}
}

func TestReceiveAll_PeerClosedMidway(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{
		waitReady: true,
		recvByte:  'x',
		recvSteps: []step{{n: 4}, {n: 0}},
	}
	c := connected(t, ft, 3)

	if _, err := c.ReceiveAll(10); !errors.Is(err, ErrPeerClosed) {
		t.Fatalf("ReceiveAll() error = %v, want ErrPeerClosed", err)
	}
}

func TestReceiveAll_BudgetExceeded(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{
		waitReady: true,
		recvSteps: []step{{err: ErrNotReady}, {err: ErrNotReady}},
	}
	c := connected(t, ft, 2)

	if _, err := c.ReceiveAll(10); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("ReceiveAll() error = %v, want ErrBudgetExceeded", err)
	}
	for _, d := range ft.waits {
		if d != Receive {
			t.Errorf("waited in %s direction, want receive", d)
		}
	}
}

func TestReceiveAll_ZeroLength(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{}
	c := connected(t, ft, 3)

	data, err := c.ReceiveAll(0)
	if err != nil {
		t.Fatalf("ReceiveAll(0) error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("ReceiveAll(0) = %d bytes, want 0", len(data))
	}
}

func TestReceiveAll_NegativeLength(t *testing.T) {
	t.Parallel()

	c := connected(t, &fakeTransport{}, 3)

	if _, err := c.ReceiveAll(-1); err == nil {
		t.Error("ReceiveAll(-1) succeeded, want error")
	}
}

func TestSendAll_TimedOutWaitCountsAgainstBudget(t *testing.T) {
	t.Parallel()

	// Waits report not-ready; each retry fails again. The loop must fold
	// the timed-out wait into the failure counting instead of erroring
	// out of band.
	ft := &fakeTransport{
		waitReady: false,
		sendSteps: []step{{err: ErrNotReady}, {err: ErrNotReady}, {err: ErrNotReady}},
	}
	c := connected(t, ft, 3)

	if err := c.SendAll([]byte("hi")); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("SendAll() error = %v, want ErrBudgetExceeded", err)
	}
}

func TestStream_ReadWrite(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{
		waitReady: true,
		recvByte:  'z',
		recvSteps: []step{{err: ErrNotReady}, {n: 4}, {n: 0}},
	}
	c := connected(t, ft, 3)
	s := c.Stream()

	if n, err := s.Write([]byte("ping")); err != nil || n != 4 {
		t.Fatalf("Write() = (%d, %v), want (4, nil)", n, err)
	}

	buf := make([]byte, 16)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 4 || !bytes.Equal(buf[:n], []byte("zzzz")) {
		t.Errorf("Read() = (%d, %q), want 4 z's", n, buf[:n])
	}

	if _, err := s.Read(buf); err != io.EOF {
		t.Errorf("Read() after peer close: error = %v, want io.EOF", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if c.State() != StateClosed {
		t.Errorf("state = %s after stream close, want closed", c.State())
	}
}
