package sender

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func newTestDispatcher(retries int) *Dispatcher {
	return NewDispatcher(Options{
		QueueSize:    4,
		Workers:      1,
		MaxRetries:   retries,
		RetryBackoff: time.Millisecond,
		MaxDuration:  time.Second,
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestEnqueueRunsJob(t *testing.T) {
	d := newTestDispatcher(0)
	defer d.Close()

	var ran atomic.Bool
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		ran.Store(true)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	waitFor(t, ran.Load)
}

func TestRetryOnTransientError(t *testing.T) {
	d := newTestDispatcher(2)
	defer d.Close()

	var calls atomic.Int32
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		if calls.Add(1) < 3 {
			return timeoutErr{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	waitFor(t, func() bool { return calls.Load() == 3 })
	if got := d.ErrorCount(); got != 0 {
		t.Errorf("error count = %d, want 0", got)
	}
}

func TestNoRetryOnPermanentError(t *testing.T) {
	d := newTestDispatcher(3)
	defer d.Close()

	var calls atomic.Int32
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		calls.Add(1)
		return errors.New("telegram: bad request (400)")
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	waitFor(t, func() bool { return d.ErrorCount() == 1 })
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", got)
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	d := newTestDispatcher(0)
	d.Close()

	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Errorf("err = %v, want ErrQueueClosed", err)
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New("Post https://api.telegram.org/bot123456:AAE-abc_def/sendMessage: EOF")
	got := sanitizeErrorMessage(err)
	want := "Post https://api.telegram.org/bot<redacted>/sendMessage: EOF"
	if got != want {
		t.Errorf("sanitizeErrorMessage = %q, want %q", got, want)
	}
}
