// Package iobatch builds models for many spectra concurrently and saves
// them to a store.
// This is an impure I/O package that reads spectra files.
package iobatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/theskyentist/gelato/internal/iometrics"
	"github.com/theskyentist/gelato/internal/iospec"
	gelato "github.com/theskyentist/gelato/pkg"
	"github.com/theskyentist/gelato/pkg/config"
	"github.com/theskyentist/gelato/pkg/emission"
	"github.com/theskyentist/gelato/pkg/model"
	"github.com/theskyentist/gelato/pkg/schema"
	"github.com/theskyentist/gelato/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Batch builds and saves models of a list of spectra.
type Batch struct {
	cfg     *config.Config
	store   store.Store
	metrics *iometrics.Metrics
	// quiet disables the progress bar.
	quiet bool
}

// Option changes settings of a Batch.
type Option func(*Batch)

// OptMetrics sets where batch statistics are collected.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(b *Batch) {
		b.metrics = m
	}
}

// OptQuiet disables the progress bar.
func OptQuiet(q bool) Option {
	return func(b *Batch) {
		b.quiet = q
	}
}

// Report summarizes a finished batch.
type Report struct {
	RunID    string
	Total    int
	Built    int
	Failed   int
	Duration time.Duration
}

// New creates a Batch that saves results to st. The store must be
// initialized.
func New(cfg *config.Config, st store.Store, opts ...Option) *Batch {
	res := &Batch{cfg: cfg, store: st}
	for _, opt := range opts {
		opt(res)
	}
	if res.metrics == nil {
		res.metrics = iometrics.New()
	}
	return res
}

// outcome is the result of processing one spectrum.
type outcome struct {
	item    Item
	reason  string
	err     error
	nParams int
	elapsed time.Duration
}

// Run builds models of all items with emission groups of the hierarchy.
// Failures of single spectra are logged and skipped, an error is
// returned only if the batch was cancelled, the run could not be saved
// or every spectrum failed.
func (b *Batch) Run(
	ctx context.Context,
	h *emission.Hierarchy,
	paramsPath string,
	items []Item,
) (*Report, error) {
	startTime := time.Now()
	run := &schema.Run{
		ID:            uuid.NewString(),
		Version:       gelato.Version,
		ParamsPath:    paramsPath,
		ParamsVersion: h.Version,
		LineRegion:    b.cfg.Model.LineRegion,
		StartedAt:     startTime.UTC(),
	}
	if err := b.store.SaveRun(ctx, run); err != nil {
		return nil, err
	}
	slog.Info("Starting batch",
		"run_id", run.ID,
		"spectra", len(items),
		"jobs", b.jobs(),
	)

	chIn := make(chan Item)
	chOut := make(chan outcome)
	rep := &Report{RunID: run.ID, Total: len(items)}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, it := range items {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- it:
			}
		}
		return nil
	})

	workers, wCtx := errgroup.WithContext(gCtx)
	for range b.jobs() {
		workers.Go(func() error {
			return b.worker(wCtx, run.ID, h.Groups, chIn, chOut)
		})
	}
	g.Go(func() error {
		defer close(chOut)
		return workers.Wait()
	})

	g.Go(func() error {
		b.collect(chOut, rep)
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return rep, CancelledError(err)
		}
		return rep, err
	}
	rep.Duration = time.Since(startTime)

	b.summary(rep)
	if b.cfg.MetricsFile != "" {
		if err := b.metrics.WriteTextfile(b.cfg.MetricsFile); err != nil {
			gn.PrintErrorMessage(err)
		}
	}

	if rep.Total > 0 && rep.Built == 0 {
		return rep, AllSpectraFailedError(rep.Failed)
	}
	return rep, nil
}

func (b *Batch) jobs() int {
	return max(b.cfg.JobsNumber, 1)
}

func (b *Batch) worker(
	ctx context.Context,
	runID string,
	groups []emission.Group,
	chIn <-chan Item,
	chOut chan<- outcome,
) error {
	for it := range chIn {
		res := b.process(ctx, runID, groups, it)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- res:
		}
	}
	return nil
}

// process reads one spectrum, builds its model and saves it.
func (b *Batch) process(
	ctx context.Context,
	runID string,
	groups []emission.Group,
	it Item,
) outcome {
	start := time.Now()
	res := outcome{item: it}

	spec, err := iospec.Read(it.Path, it.Redshift, groups, b.cfg.Model.LineRegion)
	if err != nil {
		res.reason, res.err = "read", err
		return res
	}

	m, err := model.Build(spec)
	if err != nil {
		res.reason, res.err = "model", err
		return res
	}

	err = b.store.Save(ctx, schema.NewResult(runID, it.Path, spec, m))
	if err != nil {
		res.reason, res.err = "save", err
		return res
	}
	res.nParams = m.NParams()
	res.elapsed = time.Since(start)
	return res
}

func (b *Batch) collect(chOut <-chan outcome, rep *Report) {
	var bar *pb.ProgressBar
	if !b.quiet {
		bar = pb.Full.Start(rep.Total)
		bar.Set("prefix", "Building models: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for o := range chOut {
		if bar != nil {
			bar.Increment()
		}
		if o.err != nil {
			rep.Failed++
			b.metrics.Failed(o.reason)
			slog.Error("Cannot build model",
				"path", o.item.Path,
				"stage", o.reason,
				"error", o.err,
			)
			continue
		}
		rep.Built++
		b.metrics.Built(o.elapsed, o.nParams)
		slog.Debug("Model built",
			"path", o.item.Path,
			"params", o.nParams,
			"duration", gnfmt.TimeString(o.elapsed.Seconds()),
		)
	}
}

func (b *Batch) summary(rep *Report) {
	slog.Info("Batch complete",
		"run_id", rep.RunID,
		"built", rep.Built,
		"failed", rep.Failed,
		"total", rep.Total,
		"duration", gnfmt.TimeString(rep.Duration.Seconds()),
	)
	gn.Info(`Batch complete
Models built: %s, failed: %s, total: %s.
		Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(rep.Built)),
		humanize.Comma(int64(rep.Failed)),
		humanize.Comma(int64(rep.Total)),
		gnfmt.TimeString(rep.Duration.Seconds()),
	)

	if rep.Failed > 0 && rep.Built > 0 {
		slog.Warn("Some spectra failed to process",
			"failed", rep.Failed,
			"succeeded", rep.Built)
	}
}
