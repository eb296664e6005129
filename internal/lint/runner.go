package lint

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sublint/internal/logging"
	"sublint/internal/services"
)

// Runner executes checks over a Context. A failing check is logged and
// skipped; it never aborts the run.
type Runner struct {
	entries []Entry
	logger  *slog.Logger
}

// NewRunner orders entries so event checks precede document checks,
// otherwise preserving registry order.
func NewRunner(entries []Entry, logger *slog.Logger) *Runner {
	ordered := make([]Entry, 0, len(entries))
	for _, kind := range []Kind{KindEvent, KindDocument} {
		for _, entry := range entries {
			if entry.Kind() == kind {
				ordered = append(ordered, entry)
			}
		}
	}
	return &Runner{entries: ordered, logger: logging.NewComponentLogger(logger, "runner")}
}

// Entries returns the checks in execution order.
func (r *Runner) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Violations lazily yields results check by check, events in document
// order. Iteration stops early when ctx is cancelled or the consumer breaks.
func (r *Runner) Violations(ctx context.Context, lc *Context) iter.Seq[Violation] {
	return func(yield func(Violation) bool) {
		if _, ok := services.RunIDFromContext(ctx); !ok {
			ctx = services.WithRunID(ctx, uuid.NewString())
		}
		if lc.Document != nil && lc.Document.Path != "" {
			ctx = services.WithDocument(ctx, lc.Document.Path)
		}
		logger := logging.WithContext(ctx, r.logger)
		logger.Debug("lint run started", logging.Int("checks", len(r.entries)))

		for _, entry := range r.entries {
			if ctx.Err() != nil {
				logger.Info("lint run cancelled", logging.Error(ctx.Err()))
				return
			}
			if !r.runEntry(services.WithCheck(ctx, entry.Name), lc, entry, yield) {
				return
			}
		}
	}
}

// Run drains Violations into the context sink and tallies severities.
func (r *Runner) Run(ctx context.Context, lc *Context) Summary {
	var summary Summary
	for v := range r.Violations(ctx, lc) {
		summary.add(v)
		lc.Sink.Log(v.Severity, v.String())
	}
	return summary
}

// runEntry reports false when the consumer stopped iteration.
func (r *Runner) runEntry(ctx context.Context, lc *Context, entry Entry, yield func(Violation) bool) (keepGoing bool) {
	logger := logging.WithContext(ctx, r.logger)
	start := time.Now()
	inYield := false
	keepGoing = true

	defer func() {
		if rec := recover(); rec != nil {
			if inYield {
				panic(rec)
			}
			logging.WarnWithContext(logger, "check failed", "check_failed",
				logging.String("error", fmt.Sprint(rec)),
				logging.String(logging.FieldImpact, "remaining checks still run"),
			)
			keepGoing = ctx.Err() == nil
		}
		logger.Debug("benchmark", logging.Duration("elapsed", time.Since(start)))
	}()

	emit := func(v Violation) bool {
		v.Check = entry.Name
		inYield = true
		ok := yield(v)
		inYield = false
		return ok
	}

	seq, err := r.open(ctx, lc, entry)
	if err != nil {
		if services.IsUnavailable(err) {
			logger.Info("check disabled", logging.Error(err))
		} else {
			logging.WarnWithContext(logger, "check failed to start", "check_construct_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "remaining checks still run"),
			)
		}
		return true
	}

	for v := range seq {
		if !emit(v) {
			return false
		}
	}
	return ctx.Err() == nil
}

func (r *Runner) open(ctx context.Context, lc *Context, entry Entry) (iter.Seq[Violation], error) {
	if entry.Kind() == KindDocument {
		check, err := entry.NewDocument(lc)
		if err != nil {
			return nil, err
		}
		return check.Run(ctx), nil
	}
	check, err := entry.NewEvent(lc)
	if err != nil {
		return nil, err
	}
	return func(yield func(Violation) bool) {
		for _, ev := range lc.Document.Events {
			if ctx.Err() != nil {
				return
			}
			for v := range check.RunForEvent(ctx, ev) {
				if !yield(v) {
					return
				}
			}
		}
	}, nil
}

// Summary counts results by severity.
type Summary struct {
	Debug    int
	Info     int
	Warnings int
	Errors   int
	ByCheck  map[string]int
}

func (s *Summary) add(v Violation) {
	switch v.Severity {
	case SeverityDebug:
		s.Debug++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	default:
		s.Errors++
	}
	if s.ByCheck == nil {
		s.ByCheck = make(map[string]int)
	}
	s.ByCheck[v.Check]++
}

// Tally builds a Summary from already collected results.
func Tally(violations []Violation) Summary {
	var s Summary
	for _, v := range violations {
		s.add(v)
	}
	return s
}
