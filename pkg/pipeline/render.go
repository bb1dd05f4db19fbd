package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/adroutes/pkg/cache"
	"github.com/matzehuels/adroutes/pkg/graph"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/render"
	"github.com/matzehuels/adroutes/pkg/render/diagram"
	"github.com/matzehuels/adroutes/pkg/render/nodelink"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// Render generates output artifacts in the requested formats.
// The json format embeds runID.
func Render(ctx context.Context, c *network.Classification, markers []waypoint.Marker, runID string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.HideMarkers {
		markers = nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var (
		svg []byte
		dot string
	)
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		if opts.IsNodelink() {
			if dot, err = needDOT(c, markers, opts, dot); err != nil {
				return nil, err
			}
			svg, err = nodelink.RenderSVG(ctx, dot)
		} else {
			svg, err = diagram.RenderSVG(c, diagramOptions(markers, opts)...)
		}
		return svg, err
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case render.FormatSVG:
			data, err = needSVG()
		case render.FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, DefaultPNGScale)
			}
		case render.FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case render.FormatDOT:
			if dot, err = needDOT(c, markers, opts, dot); err == nil {
				data = []byte(dot)
			}
		case render.FormatJSON:
			d := graph.FromClassification(c,
				graph.WithRunID(runID),
				graph.WithTitle(opts.Title),
				graph.WithMarkers(markers))
			data, err = graph.MarshalDiagram(d)
		default:
			err = render.ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func needDOT(c *network.Classification, markers []waypoint.Marker, opts Options, dot string) (string, error) {
	if dot != "" {
		return dot, nil
	}
	return nodelink.ToDOT(c, nodelink.Options{
		Palette:    opts.Palette,
		Markers:    markers,
		Title:      opts.Title,
		HideLegend: opts.HideLegend,
	})
}

func diagramOptions(markers []waypoint.Marker, opts Options) []diagram.Option {
	return []diagram.Option{
		diagram.WithTitle(opts.Title),
		diagram.WithSize(opts.Width, opts.Height),
		diagram.WithPalette(opts.Palette),
		diagram.WithMarkers(markers),
		diagram.WithLabels(!opts.HideLabels),
		diagram.WithLegend(!opts.HideLegend),
	}
}

// ArtifactKeyOpts returns the cache key options of one output format.
func (o *Options) ArtifactKeyOpts(format string, sel network.Selection) cache.ArtifactKeyOpts {
	markers := 1
	if o.HideMarkers {
		markers = 0
	}
	return cache.ArtifactKeyOpts{
		Format:    format,
		Type:      o.Type,
		Selection: sel.String(),
		Title:     o.Title,
		Width:     o.Width,
		Height:    o.Height,
		Palette:   fmt.Sprintf("%v", o.Palette),
		Labels:    !o.HideLabels,
		Legend:    !o.HideLegend,
		Markers:   markers,
	}
}
