package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/igreja360/tesouraria-backend/pkg/db/models"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	"github.com/igreja360/tesouraria-backend/pkg/metrics"
)

type captureRepo struct {
	mu      sync.Mutex
	rows    []models.AuditLog
	err     error
	blocked chan struct{}
}

func (r *captureRepo) Create(_ context.Context, row *models.AuditLog) error {
	if r.blocked != nil {
		<-r.blocked
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, *row)
	return nil
}

func (r *captureRepo) snapshot() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditLog, len(r.rows))
	copy(out, r.rows)
	return out
}

func TestRecorderPersistsEntry(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, nil, metrics.NewAuditMetrics(nil), Options{QueueSize: 8})

	actorID := uuid.New()
	rec.Record(Entry{
		Actor:       Actor{ID: actorID, IP: "10.0.0.1"},
		Action:      enums.AuditActionCreate,
		Description: "transaction created",
		Details:     map[string]any{"valor": "100"},
	})
	rec.Close()

	rows := repo.snapshot()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Action != enums.AuditActionCreate {
		t.Fatalf("unexpected action %s", row.Action)
	}
	if row.Level != enums.AuditLevelInfo {
		t.Fatalf("expected default level info, got %s", row.Level)
	}
	if row.ActorID == nil || *row.ActorID != actorID {
		t.Fatalf("unexpected actor id %v", row.ActorID)
	}
	if row.OriginIP != "10.0.0.1" {
		t.Fatalf("unexpected origin %s", row.OriginIP)
	}

	var details map[string]string
	if err := json.Unmarshal(row.Details, &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if details["valor"] != "100" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestRecorderNilActorStoredAsSystem(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, nil, metrics.NewAuditMetrics(nil), Options{QueueSize: 8})

	rec.Record(Entry{
		Action:      enums.AuditActionError,
		Level:       enums.AuditLevelError,
		Description: "pipeline failure",
	})
	rec.Close()

	rows := repo.snapshot()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ActorID != nil {
		t.Fatalf("expected nil actor, got %v", rows[0].ActorID)
	}
	if rows[0].Level != enums.AuditLevelError {
		t.Fatalf("expected error level, got %s", rows[0].Level)
	}
}

func TestRecorderCloseDrainsQueue(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, nil, metrics.NewAuditMetrics(nil), Options{QueueSize: 64})

	for i := 0; i < 20; i++ {
		rec.Record(Entry{Action: enums.AuditActionView, Description: "view"})
	}
	rec.Close()

	if got := len(repo.snapshot()); got != 20 {
		t.Fatalf("expected 20 rows after close, got %d", got)
	}
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	blocked := make(chan struct{})
	repo := &captureRepo{blocked: blocked}
	rec := NewRecorder(repo, nil, metrics.NewAuditMetrics(nil), Options{QueueSize: 1})

	// First entry occupies the writer, second fills the queue, third must be
	// dropped without blocking.
	done := make(chan struct{})
	go func() {
		rec.Record(Entry{Action: enums.AuditActionView, Description: "first"})
		rec.Record(Entry{Action: enums.AuditActionView, Description: "second"})
		rec.Record(Entry{Action: enums.AuditActionView, Description: "third"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	close(blocked)
	rec.Close()

	if got := len(repo.snapshot()); got > 2 {
		t.Fatalf("expected at most 2 persisted rows, got %d", got)
	}
}

func TestRecorderSurvivesRepoFailure(t *testing.T) {
	repo := &captureRepo{err: errors.New("db down")}
	rec := NewRecorder(repo, nil, metrics.NewAuditMetrics(nil), Options{QueueSize: 8})

	rec.Record(Entry{Action: enums.AuditActionCreate, Description: "x"})
	rec.Close()

	if got := len(repo.snapshot()); got != 0 {
		t.Fatalf("expected no rows, got %d", got)
	}
}

func TestRecorderCloseIsIdempotent(t *testing.T) {
	rec := NewRecorder(&captureRepo{}, nil, metrics.NewAuditMetrics(nil), Options{})
	rec.Close()
	rec.Close()
}
