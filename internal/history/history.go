package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/awamegit/spotrm-api-go/internal/logger"
	"github.com/awamegit/spotrm-api-go/pkg/spotrm"
)

// Package history keeps a write-only journal of API exchanges. It is never
// read back to answer requests.

// Store records completed exchanges.
type Store interface {
	Close() error
	Record(ex spotrm.Exchange) error
	Recent(n int) ([]spotrm.Exchange, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured history backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt history requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported history type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                          { return nil }
func (noopStore) Record(spotrm.Exchange) error          { return nil }
func (noopStore) Recent(int) ([]spotrm.Exchange, error) { return nil, nil }

// Observer adapts a Store to spotrm.Observer. Record errors are logged and
// never affect the API call.
type Observer struct {
	store Store
	log   logger.Logger
}

// NewObserver wraps store for use as a client observer.
func NewObserver(store Store, log logger.Logger) *Observer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Observer{store: store, log: log}
}

// ObserveExchange implements spotrm.Observer.
func (o *Observer) ObserveExchange(_ context.Context, ex spotrm.Exchange) {
	if o == nil || o.store == nil {
		return
	}
	if err := o.store.Record(ex); err != nil {
		o.log.WarnObj("history record failed", "history_error", map[string]any{
			"path":  ex.Path,
			"error": err.Error(),
		})
	}
}
