// Package audit emits best-effort audit events after create/update/delete
// actions. The contract: recording never blocks the primary action, never
// rolls it back, and failures go to the log sink only.
package audit

import (
	"context"
	"log"
	"sync"
	"time"

	"device-checkin-web/internal/backend"
	"device-checkin-web/internal/model"
)

// Action is the audited operation.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Poster sends one audit payload to the backend.
type Poster interface {
	PostAuditEvent(ctx context.Context, payload backend.AuditPayload) error
}

// Config holds configuration for the audit recorder
type Config struct {
	QueueSize   int
	PostTimeout time.Duration
}

// DefaultConfig returns a default configuration for the audit recorder
func DefaultConfig() Config {
	return Config{
		QueueSize:   64,
		PostTimeout: 5 * time.Second,
	}
}

// Recorder is a non-blocking task queue decoupled from the request/response
// cycle: one worker goroutine drains the queue and posts each event.
type Recorder struct {
	config Config
	poster Poster
	logger *log.Logger

	queue chan backend.AuditPayload
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewRecorder creates a Recorder and starts its worker.
func NewRecorder(poster Poster, config Config, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}
	if config.PostTimeout <= 0 {
		config.PostTimeout = DefaultConfig().PostTimeout
	}

	r := &Recorder{
		config: config,
		poster: poster,
		logger: logger,
		queue:  make(chan backend.AuditPayload, config.QueueSize),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// Record enqueues one audit event for a device action. The timestamp is
// client-generated in RFC 3339. Never blocks: a full queue drops the event
// with a log line.
func (r *Recorder) Record(action Action, d model.Device) {
	payload := backend.AuditPayload{
		Action:    string(action),
		Kind:      string(d.Kind),
		DeviceID:  d.ID,
		Brand:     d.Brand,
		Model:     d.Model,
		UserName:  d.OwnerName,
		UserID:    d.OwnerID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	select {
	case r.queue <- payload:
	default:
		r.logger.Printf("audit queue full, dropping %s event for %s %s", action, d.Kind, d.ID)
	}
}

// worker drains the queue. Post failures are logged and swallowed; audit
// logging is not transactional with the mutation it follows.
func (r *Recorder) worker() {
	defer r.wg.Done()
	for payload := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.PostTimeout)
		if err := r.poster.PostAuditEvent(ctx, payload); err != nil {
			r.logger.Printf("audit event %s %s %s not recorded: %v", payload.Action, payload.Kind, payload.DeviceID, err)
		}
		cancel()
	}
}

// Close stops accepting events and waits for the queue to drain.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.queue)
	})
	r.wg.Wait()
}
