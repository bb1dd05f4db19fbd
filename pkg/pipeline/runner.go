package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/adroutes/pkg/cache"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/observability"
	"github.com/matzehuels/adroutes/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. It doesn't
// store pipeline results, so one Runner can serve several runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // artifact lifetime, cache.TTLArtifact by default
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Classify runs the load → select → classify stages.
// The returned Result has no artifacts.
func (r *Runner) Classify(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	var in *Input
	loadStart := time.Now()
	err := runStage(ctx, observability.StageLoad, func() (err error) {
		in, err = Load(ctx, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Input = in
	result.Source = in.Source
	result.InputHash = in.Hash
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded network",
		"source", in.Source,
		"waypoints", in.Table().Len(),
		"markers", len(in.Doc.Markers),
		"duration", result.Stats.LoadTime)

	// Stage 2: Select
	err = runStage(ctx, observability.StageSelect, func() (err error) {
		result.Selection, result.Dropped, err = Select(in, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if len(result.Dropped) > 0 {
		r.Logger.Warn("selection names unknown waypoints",
			"dropped", network.NewSelection(result.Dropped...).String())
	}
	r.Logger.Debug("resolved selection", "selection", result.Selection.String(), "size", result.Selection.Len())

	// Stage 3: Classify
	var g *network.Graph
	classifyStart := time.Now()
	err = runStage(ctx, observability.StageClassify, func() (err error) {
		if g, err = network.Build(in.Table(), result.Selection); err != nil {
			return err
		}
		result.Classification, err = network.Classify(g)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	result.Geometry = network.ComputeStats(result.Classification)
	result.Stats.ClassifyTime = time.Since(classifyStart)

	if n := g.Stats().SelfLoops; n > 0 {
		r.Logger.Warn("dropped self-loops", "count", n)
	}
	counts := result.Classification.Counts()
	named := make(map[string]int, len(counts))
	for class, n := range counts {
		named[class.String()] = n
	}
	observability.Pipeline().OnClassified(ctx, named)
	r.Logger.Info("classified connections",
		"edges", g.Len(),
		"bidirectional", counts[network.ClassBidirectional],
		"priority", counts[network.ClassPriority],
		"subpriority", counts[network.ClassSubPriority],
		"backwards", counts[network.ClassBackwards],
		"duration", result.Stats.ClassifyTime)

	return result, nil
}

// Execute runs the complete load → select → classify → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result, err := r.Classify(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 4: Render
	var (
		artifacts map[string][]byte
		hit       bool
	)
	renderStart := time.Now()
	err = runStage(ctx, observability.StageRender, func() (err error) {
		artifacts, hit, err = r.RenderWithCacheInfo(ctx, result, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"type", opts.Type,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// runStage wraps fn in the registered pipeline hooks.
func runStage(ctx context.Context, stage string, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage)
	start := time.Now()
	err := fn()
	hooks.OnStageComplete(ctx, stage, time.Since(start), err)
	return err
}

// RenderWithCacheInfo renders the artifacts of a classified result and
// reports whether all of them came from the cache. JSON output carries the
// run id and is never cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if format == render.FormatJSON || opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts(format, result.Selection))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, format)
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, result.Classification, result.Input.Doc.Markers, result.RunID, renderOpts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if format == render.FormatJSON {
			continue
		}
		key := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts(format, result.Selection))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
