package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/igreja360/tesouraria-backend/pkg/db/models"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	"github.com/igreja360/tesouraria-backend/pkg/logger"
	"github.com/igreja360/tesouraria-backend/pkg/metrics"
)

// Actor identifies who performed an operation and from where. A nil ID means
// the entry was produced by the system itself (e.g. pipeline errors before
// authentication).
type Actor struct {
	ID uuid.UUID
	IP string
}

// Entry is one audit trail record before persistence.
type Entry struct {
	Actor       Actor
	Action      enums.AuditAction
	Level       enums.AuditLevel
	Description string
	Details     any
}

// Recorder appends audit entries best-effort. Record never blocks the caller
// and never returns an error; append failures surface only through logs and
// the audit metrics.
type Recorder interface {
	Record(entry Entry)
}

// Options tunes the async recorder queue.
type Options struct {
	QueueSize    int
	WriteTimeout time.Duration
}

// AsyncRecorder implements Recorder with a buffered queue and one writer.
type AsyncRecorder struct {
	repo    Repository
	logg    *logger.Logger
	metrics *metrics.AuditMetrics
	timeout time.Duration

	queue chan models.AuditLog
	wg    sync.WaitGroup
	once  sync.Once
}

// NewRecorder starts the audit side-channel: a buffered queue drained by a
// single writer goroutine. Close drains the queue before returning.
func NewRecorder(repo Repository, logg *logger.Logger, m *metrics.AuditMetrics, opts Options) *AsyncRecorder {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	r := &AsyncRecorder{
		repo:    repo,
		logg:    logg,
		metrics: m,
		timeout: opts.WriteTimeout,
		queue:   make(chan models.AuditLog, opts.QueueSize),
	}

	r.wg.Add(1)
	go r.drain()

	return r
}

func (r *AsyncRecorder) Record(entry Entry) {
	row := toModel(entry)

	select {
	case r.queue <- row:
	default:
		// The queue is full. The primary operation already succeeded, so the
		// entry is dropped rather than blocking the request.
		r.metrics.IncDropped()
		if r.logg != nil {
			r.logg.Warn(context.Background(), "audit.queue_full_entry_dropped")
		}
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (r *AsyncRecorder) Close() {
	r.once.Do(func() {
		close(r.queue)
	})
	r.wg.Wait()
}

func (r *AsyncRecorder) drain() {
	defer r.wg.Done()
	for row := range r.queue {
		r.write(row)
	}
}

func (r *AsyncRecorder) write(row models.AuditLog) {
	// Requests finish independently of the audit append; the write gets its
	// own deadline instead of the (likely finished) request context.
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.repo.Create(ctx, &row); err != nil {
		r.metrics.IncFailed()
		if r.logg != nil {
			r.logg.Error(ctx, "audit.append_failed", err)
		}
		return
	}
	r.metrics.IncAppended(string(row.Action))
}

func toModel(entry Entry) models.AuditLog {
	if entry.Level == "" {
		entry.Level = enums.AuditLevelInfo
	}

	row := models.AuditLog{
		Action:      entry.Action,
		Level:       entry.Level,
		Description: entry.Description,
		OriginIP:    entry.Actor.IP,
	}
	if entry.Actor.ID != uuid.Nil {
		id := entry.Actor.ID
		row.ActorID = &id
	}
	if entry.Details != nil {
		if raw, err := json.Marshal(entry.Details); err == nil {
			row.Details = raw
		}
	}
	return row
}
