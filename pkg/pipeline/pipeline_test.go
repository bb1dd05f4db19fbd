package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/adroutes/pkg/cache"
	"github.com/matzehuels/adroutes/pkg/errors"
	adio "github.com/matzehuels/adroutes/pkg/io"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/observability"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.ErrorLevel})
}

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(c, nil, quietLogger())
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// writeSample exports the built-in network as an AutoDrive file.
func writeSample(t *testing.T, markers ...waypoint.Marker) string {
	t.Helper()
	tbl, err := waypoint.Parse(waypoint.Sample())
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	doc := &adio.Document{
		Meta:    adio.Meta{ConfigVersion: "3.0.0.1", MapName: "Sample"},
		Table:   tbl,
		Markers: markers,
	}
	path := filepath.Join(t.TempDir(), "AutoDrive_config.xml")
	if err := adio.ExportAutoDrive(doc, path); err != nil {
		t.Fatalf("export: %v", err)
	}
	return path
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Type != DefaultType {
		t.Errorf("Type = %q, want %q", opts.Type, DefaultType)
	}
	if !slices.Equal(opts.Formats, DefaultFormats) {
		t.Errorf("Formats = %v, want %v", opts.Formats, DefaultFormats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %vx%v", opts.Width, opts.Height)
	}
	if opts.Palette.Priority == "" {
		t.Error("palette not merged with defaults")
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeUnsupported},
		{"bad type", Options{Type: "tower"}, errors.ErrCodeUnsupported},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"bad color", Options{}, errors.ErrCodeInvalidStyle},
		{"bad path", Options{Input: "a\x00b"}, errors.ErrCodeInvalidPath},
		{"canvas too narrow", Options{Width: 50}, errors.ErrCodeInvalidInput},
		{"canvas too short", Options{Height: 150}, errors.ErrCodeInvalidInput},
	}
	tests[3].opts.Palette.Priority = "#12"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecuteSample(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{
		Formats: []string{"svg", "dot", "json"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Source != SourceSample {
		t.Errorf("Source = %q", res.Source)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
	if got := res.Selection.String(); got != "23-36" {
		t.Errorf("Selection = %q, want 23-36", got)
	}

	wantBackwards := []network.Edge{{From: 23, To: 30}, {From: 30, To: 31}, {From: 31, To: 32}}
	if !slices.Equal(res.Classification.Backwards, wantBackwards) {
		t.Errorf("Backwards = %v, want %v", res.Classification.Backwards, wantBackwards)
	}
	if got := res.Geometry.Waypoints; got != 14 {
		t.Errorf("Geometry.Waypoints = %d, want 14", got)
	}

	for _, f := range []string{"svg", "dot", "json"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg")
	}
	if !strings.Contains(string(res.Artifacts["dot"]), "digraph") {
		t.Error("dot artifact is not a digraph")
	}

	var doc struct {
		RunID string `json:"run_id"`
	}
	if err := json.Unmarshal(res.Artifacts["json"], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.RunID != res.RunID {
		t.Errorf("json run_id = %q, want %q", doc.RunID, res.RunID)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := newTestRunner(t, fc)
	ctx := context.Background()
	opts := Options{Selection: "23-30", Formats: []string{"svg", "dot"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run reported a cache hit")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Title = "Other"
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("changed title hit the cache")
	}

	opts.Title = ""
	opts.Refresh = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if fourth.CacheInfo.RenderHit {
		t.Error("refresh hit the cache")
	}
}

func TestExecuteJSONNotCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := newTestRunner(t, fc)
	opts := Options{Formats: []string{"json"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.CacheInfo.RenderHit {
		t.Error("json output came from the cache")
	}
	if first.RunID == second.RunID {
		t.Error("two runs share a run id")
	}
}

func TestClassifyFile(t *testing.T) {
	path := writeSample(t, waypoint.Marker{ID: 23, Name: "Yard", Group: "All"})
	r := newTestRunner(t, nil)

	res, err := r.Classify(context.Background(), Options{Input: path, Selection: "23-36"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Source != path {
		t.Errorf("Source = %q", res.Source)
	}
	if len(res.Artifacts) != 0 {
		t.Errorf("Classify rendered %d artifacts", len(res.Artifacts))
	}
	if len(res.Input.Doc.Markers) != 1 {
		t.Errorf("markers = %v", res.Input.Doc.Markers)
	}

	sample, err := r.Classify(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Classify sample: %v", err)
	}
	for _, class := range network.Classes {
		got, want := res.Classification.Counts()[class], sample.Classification.Counts()[class]
		if got != want {
			t.Errorf("%s: file has %d edges, sample has %d", class, got, want)
		}
	}
}

func TestClassifyFileDefaultsToAll(t *testing.T) {
	path := writeSample(t)
	res, err := newTestRunner(t, nil).Classify(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := res.Selection.Len(); got != 36 {
		t.Errorf("selection size = %d, want 36", got)
	}
}

func TestSelect(t *testing.T) {
	in, err := Load(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name    string
		opts    Options
		want    string
		dropped []waypoint.ID
	}{
		{"sample default", Options{}, "23-36", nil},
		{"explicit", Options{Selection: "1-3,5"}, "1-3,5", nil},
		{"clipped", Options{Selection: "35-40"}, "35-36", []waypoint.ID{37, 38, 39, 40}},
		{"region only", Options{Region: "-1e9,-1e9,1e9,1e9"}, "1-36", nil},
		{"region with selection", Options{Selection: "23-26", Region: "-1e9,-1e9,1e9,1e9"}, "23-26", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, dropped, err := Select(in, tt.opts)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if got := sel.String(); got != tt.want {
				t.Errorf("selection = %q, want %q", got, tt.want)
			}
			if !slices.Equal(dropped, tt.dropped) {
				t.Errorf("dropped = %v, want %v", dropped, tt.dropped)
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	r := newTestRunner(t, nil)
	tests := []struct {
		name   string
		opts   Options
		code   errors.Code
		prefix string
	}{
		{"missing file", Options{Input: filepath.Join(t.TempDir(), "nope.xml")}, errors.ErrCodeFileNotFound, "load: "},
		{"empty selection", Options{Selection: "900-901"}, errors.ErrCodeInvalidSelection, "select: "},
		{"bad selection", Options{Selection: "a-b"}, errors.ErrCodeInvalidSelection, "select: "},
		{"empty region", Options{Region: "0,0,1,1"}, errors.ErrCodeInvalidSelection, "select: "},
		{"bad region", Options{Region: "1,2,3"}, errors.ErrCodeInvalidSelection, "select: "},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeUnsupported, "invalid options: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("err = %q, want prefix %q", err, tt.prefix)
			}
		})
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, Options{}); err == nil {
		t.Error("Load succeeded on a canceled context")
	}
}

func TestInputHashStable(t *testing.T) {
	a, err := Load(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash == "" || a.Hash != b.Hash {
		t.Errorf("hashes %q and %q", a.Hash, b.Hash)
	}
}

type hookRecorder struct {
	stages []string
	failed []string
	counts map[string]int
	hits   int
	misses int
	sets   int
}

func (h *hookRecorder) OnStageStart(context.Context, string) {}
func (h *hookRecorder) OnStageComplete(_ context.Context, stage string, _ time.Duration, err error) {
	h.stages = append(h.stages, stage)
	if err != nil {
		h.failed = append(h.failed, stage)
	}
}
func (h *hookRecorder) OnClassified(_ context.Context, counts map[string]int) { h.counts = counts }
func (h *hookRecorder) OnCacheHit(context.Context, string)                    { h.hits++ }
func (h *hookRecorder) OnCacheMiss(context.Context, string)                   { h.misses++ }
func (h *hookRecorder) OnCacheSet(context.Context, string, int)               { h.sets++ }

func TestExecuteHooks(t *testing.T) {
	rec := &hookRecorder{}
	observability.SetPipelineHooks(rec)
	observability.SetCacheHooks(rec)
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, fc)
	opts := Options{Formats: []string{"svg", "json"}}
	for range 2 {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	want := []string{
		observability.StageLoad, observability.StageSelect, observability.StageClassify, observability.StageRender,
		observability.StageLoad, observability.StageSelect, observability.StageClassify, observability.StageRender,
	}
	if !slices.Equal(rec.stages, want) {
		t.Errorf("stages = %v, want %v", rec.stages, want)
	}
	if len(rec.failed) != 0 {
		t.Errorf("failed stages = %v", rec.failed)
	}
	if rec.counts["backwards"] != 3 || rec.counts["priority"] != 2 {
		t.Errorf("counts = %v", rec.counts)
	}
	// svg misses then hits; json is never looked up.
	if rec.misses != 1 || rec.hits != 1 || rec.sets != 1 {
		t.Errorf("cache events: %d misses, %d hits, %d sets", rec.misses, rec.hits, rec.sets)
	}

	rec.stages, rec.failed = nil, nil
	if _, err := r.Execute(context.Background(), Options{Selection: "900"}); err == nil {
		t.Fatal("empty selection should fail")
	}
	if !slices.Equal(rec.failed, []string{observability.StageSelect}) {
		t.Errorf("failed = %v, want [select]", rec.failed)
	}
}
