package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/awamegit/spotrm-api-go/internal/config"
	"github.com/awamegit/spotrm-api-go/internal/history"
	"github.com/awamegit/spotrm-api-go/internal/logger"
	"github.com/awamegit/spotrm-api-go/internal/report"
	"github.com/awamegit/spotrm-api-go/pkg/httpclient"
	"github.com/awamegit/spotrm-api-go/pkg/publishers"
	"github.com/awamegit/spotrm-api-go/pkg/spotrm"
)

// ErrStepFailed marks a run in which the API answered at least one call with
// a failure. The failure itself has already been printed.
var ErrStepFailed = errors.New("example step failed")

// Runner wires the API client to the console report and executes the example
// scenarios. The Basic credential is built once from config and passed
// explicitly to every call.
type Runner struct {
	cfg     *config.Config
	client  *spotrm.Client
	cred    spotrm.Basic
	history history.Store
	fanout  *publishers.Fanout
	printer *report.Printer
	log     logger.Logger
	now     func() time.Time
}

// NewRunner builds a runner from config. Output goes to out (stdout when nil).
func NewRunner(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = os.Stdout
	}

	scheme, ok := spotrm.ParseTokenScheme(cfg.TokenScheme)
	if !ok {
		return nil, fmt.Errorf("unsupported token scheme %q", cfg.TokenScheme)
	}

	store, err := history.NewStore(cfg.HistoryType, cfg.HistoryPath, history.Options{
		EntryTTL:        cfg.HistoryTTL,
		CleanupInterval: cfg.HistoryCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init history: %w", err)
	}
	log.InfoObj("history initialized", "history_config", map[string]any{
		"type": cfg.HistoryType,
		"path": cfg.HistoryPath,
	})

	fanout, err := publishers.LoadFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		store.Close()
		return nil, err
	}
	if fanout.Size() > 0 {
		log.InfoObj("publishers loaded", "publishers_meta", map[string]any{
			"count": fanout.Size(),
			"file":  cfg.PublishersFile,
		})
	}

	client := spotrm.NewClient(cfg.BaseURL, httpclient.NewRestyClient(cfg.HTTPTimeout), spotrm.Options{
		TokenScheme: scheme,
		Observer:    history.NewObserver(store, log),
		Logger:      log,
	})

	return &Runner{
		cfg:     cfg,
		client:  client,
		cred:    spotrm.Basic{Username: cfg.Username, Password: cfg.Password},
		history: store,
		fanout:  fanout,
		printer: report.NewPrinter(out, cfg.OutputFormat),
		log:     log,
		now:     time.Now,
	}, nil
}

// Close releases the history store and publishers.
func (r *Runner) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if err := r.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if r.history != nil {
		if err := r.history.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history: %w", err))
		}
	}
	return errors.Join(errs...)
}

// check prints and logs an API failure and converts it to ErrStepFailed.
// Transport faults are returned unchanged.
func (r *Runner) check(step string, err error) error {
	if err == nil {
		return nil
	}
	var failure *spotrm.Failure
	if !errors.As(err, &failure) {
		r.log.ErrorObj("example step aborted", "step_error", map[string]any{
			"step":  step,
			"error": err.Error(),
		})
		return fmt.Errorf("%s: %w", step, err)
	}
	r.printer.Failure(failure)
	r.log.WarnObj("example step failed", "step_failure", map[string]any{
		"step":    step,
		"status":  failure.StatusCode,
		"kind":    failure.Kind,
		"message": failure.Message,
	})
	return fmt.Errorf("%s: %w: %w", step, ErrStepFailed, failure)
}
