// Package pipeline provides the load → select → classify → render pipeline
// shared by every adroutes command.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: decode an AutoDrive XML file, or the built-in sample network
//  2. Select: resolve the id window and region into a [network.Selection]
//  3. Classify: build the edge set and partition it into classes
//  4. Render: produce SVG, PNG, PDF, DOT or JSON output
//
// Any stage failure aborts the run with an error naming the stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Selection: "23-36",
//	    Formats:   []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Classify without rendering:
//
//	result, err := runner.Classify(ctx, opts)
//	fmt.Println(result.Classification.Backwards)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/render"
	"github.com/matzehuels/adroutes/pkg/render/diagram"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = diagram.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = diagram.DefaultHeight

	// DefaultType is the default diagram type.
	DefaultType = render.TypeDiagram

	// DefaultPNGScale is the rasterization factor for PNG output.
	DefaultPNGScale = 2.0
)

// DefaultFormats is the output used when none is requested.
var DefaultFormats = []string{render.FormatSVG}

// SampleSelection is the window applied to the built-in sample when no
// selection is given.
var SampleSelection = [2]waypoint.ID{waypoint.SampleFirst, waypoint.SampleLast}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Input string // AutoDrive XML path; empty loads the sample network

	// Select options
	Selection string // "23-36,40"; empty means the sample window or every waypoint
	Region    string // "minX,minZ,maxX,maxZ"; intersected with Selection when both are set

	// Render options
	Type        string
	Formats     []string
	Title       string
	Width       float64
	Height      float64
	Palette     render.Palette
	HideLabels  bool
	HideLegend  bool
	HideMarkers bool
	Refresh     bool // ignore cached artifacts

	// Runtime options
	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and JSON output.
	RunID string

	// Source names the input: a file path or "sample".
	Source string

	// InputHash is the content hash of the decoded input.
	InputHash string

	// Input is the loaded network.
	Input *Input

	// Selection is the effective selection after clipping.
	Selection network.Selection

	// Dropped lists selected ids that do not exist in the input.
	Dropped []waypoint.ID

	// Classification holds the classified edge sets.
	Classification *network.Classification

	// Geometry holds lengths and bounds per class.
	Geometry network.Stats

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime     time.Duration
	ClassifyTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // every requested artifact came from the cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input != "" {
		if err := errors.ValidatePath(o.Input); err != nil {
			return err
		}
	}
	if o.Type == "" {
		o.Type = DefaultType
	}
	if err := render.ValidateType(o.Type); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must not be negative")
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := diagram.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	o.Palette = o.Palette.Merge(render.DefaultPalette())
	if err := o.Palette.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	o.validated = true
	return nil
}

// IsNodelink reports whether the Graphviz renderer is selected.
func (o *Options) IsNodelink() bool { return o.Type == render.TypeNodelink }
