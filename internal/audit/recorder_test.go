package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-checkin-web/internal/backend"
	"device-checkin-web/internal/model"
)

// mockPoster captures posted audit payloads.
type mockPoster struct {
	mu       sync.Mutex
	payloads []backend.AuditPayload
	err      error
}

func (m *mockPoster) PostAuditEvent(ctx context.Context, payload backend.AuditPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = append(m.payloads, payload)
	return m.err
}

func (m *mockPoster) posted() []backend.AuditPayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]backend.AuditPayload(nil), m.payloads...)
}

func testDevice() model.Device {
	return model.Device{
		ID:        "comp-1",
		Kind:      model.KindComputer,
		Brand:     "Dell",
		Model:     "XPS",
		OwnerName: "Maria Lopez",
		OwnerID:   "10203040",
	}
}

func TestRecorderPostsExactlyOneEvent(t *testing.T) {
	poster := &mockPoster{}
	rec := NewRecorder(poster, DefaultConfig(), nil)

	rec.Record(ActionCreate, testDevice())
	rec.Close()

	posted := poster.posted()
	require.Len(t, posted, 1)

	p := posted[0]
	assert.Equal(t, "CREATE", p.Action)
	assert.Equal(t, "computer", p.Kind)
	assert.Equal(t, "comp-1", p.DeviceID)
	assert.Equal(t, "Dell", p.Brand)
	assert.Equal(t, "Maria Lopez", p.UserName)
	assert.Equal(t, "10203040", p.UserID)

	// Client-generated RFC 3339 timestamp
	_, err := time.Parse(time.RFC3339, p.Timestamp)
	assert.NoError(t, err)
}

func TestRecorderSwallowsPostFailures(t *testing.T) {
	poster := &mockPoster{err: errors.New("backend down")}
	rec := NewRecorder(poster, DefaultConfig(), nil)

	// Must not panic, block, or surface the error anywhere
	rec.Record(ActionDelete, testDevice())
	rec.Close()

	require.Len(t, poster.posted(), 1)
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	poster := &blockingPoster{release: block}
	rec := NewRecorder(poster, Config{QueueSize: 1, PostTimeout: time.Second}, nil)

	// First event occupies the worker, second fills the queue, third drops.
	// None of the calls may block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			rec.Record(ActionUpdate, testDevice())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	close(block)
	rec.Close()
	assert.LessOrEqual(t, poster.count(), 2)
}

type blockingPoster struct {
	mu      sync.Mutex
	n       int
	release chan struct{}
}

func (b *blockingPoster) PostAuditEvent(ctx context.Context, payload backend.AuditPayload) error {
	<-b.release
	b.mu.Lock()
	b.n++
	b.mu.Unlock()
	return nil
}

func (b *blockingPoster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

func TestRecorderCloseIsIdempotent(t *testing.T) {
	rec := NewRecorder(&mockPoster{}, DefaultConfig(), nil)
	rec.Close()
	rec.Close()
}
