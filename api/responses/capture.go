package responses

import (
	"context"
	"sync"

	pkgerrors "github.com/igreja360/tesouraria-backend/pkg/errors"
)

// Capture collects the dump of an internal failure during a request so the
// error-audit middleware can persist it after the handler returns.
type Capture struct {
	mu   sync.Mutex
	dump *pkgerrors.ErrorDump
}

type captureKey struct{}

// WithCapture seeds the context with a fresh capture slot.
func WithCapture(ctx context.Context) (context.Context, *Capture) {
	c := &Capture{}
	return context.WithValue(ctx, captureKey{}, c), c
}

// Dump returns the captured internal error detail, or nil when the request
// produced none.
func (c *Capture) Dump() *pkgerrors.ErrorDump {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dump
}

func (c *Capture) set(dump pkgerrors.ErrorDump) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dump = &dump
}

func captureInternalError(ctx context.Context, dump pkgerrors.ErrorDump) {
	if ctx == nil {
		return
	}
	if c, ok := ctx.Value(captureKey{}).(*Capture); ok {
		c.set(dump)
	}
}
