package pipeline

import (
	"context"
	"strings"

	"github.com/matzehuels/adroutes/pkg/cache"
	"github.com/matzehuels/adroutes/pkg/errors"
	adio "github.com/matzehuels/adroutes/pkg/io"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// SourceSample is the Source of the built-in network.
const SourceSample = "sample"

var sampleMeta = adio.Meta{Version: 3, ConfigVersion: "3.0.0.0", MapName: "Sample"}

// Input is a loaded network.
type Input struct {
	Source  string
	Doc     *adio.Document
	Hash    string
	Spatial *network.SpatialIndex
}

// Table returns the waypoint table of the input.
func (in *Input) Table() *waypoint.Table { return in.Doc.Table }

// IsSample reports whether the input is the built-in sample.
func (in *Input) IsSample() bool { return in.Source == SourceSample }

// Load reads the input named by opts.Input, or the sample when it is empty.
func Load(ctx context.Context, opts Options) (*Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		doc *adio.Document
		src = opts.Input
		err error
	)
	if src == "" {
		src = SourceSample
		raw := waypoint.Sample()
		tbl, perr := waypoint.Parse(raw)
		if perr != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, perr, "sample network")
		}
		doc = &adio.Document{Meta: sampleMeta, Raw: raw, Table: tbl}
	} else if doc, err = adio.ImportAutoDrive(src); err != nil {
		return nil, err
	}

	return &Input{
		Source:  src,
		Doc:     doc,
		Hash:    hashRaw(doc),
		Spatial: network.NewSpatialIndex(doc.Table),
	}, nil
}

func hashRaw(doc *adio.Document) string {
	r := doc.Raw
	var b strings.Builder
	for _, f := range []string{r.IDs, r.X, r.Y, r.Z, r.Out, r.Incoming, r.Flags} {
		b.WriteString(f)
		b.WriteByte(0)
	}
	for _, m := range doc.Markers {
		b.WriteString(m.ID.String())
		b.WriteByte(':')
		b.WriteString(m.Name)
		b.WriteByte(0)
	}
	return cache.Hash([]byte(b.String()))
}

// Select resolves the selection of opts against in. Ids that do not exist in
// the input are clipped and returned separately. An empty result is an
// INVALID_SELECTION error.
func Select(in *Input, opts Options) (network.Selection, []waypoint.ID, error) {
	var (
		sel network.Selection
		err error
	)
	switch {
	case opts.Selection != "":
		if sel, err = network.ParseSelection(opts.Selection); err != nil {
			return network.Selection{}, nil, err
		}
	case in.IsSample() && opts.Region == "":
		if sel, err = network.Range(SampleSelection[0], SampleSelection[1]); err != nil {
			return network.Selection{}, nil, err
		}
	default:
		sel = network.All(in.Table())
	}

	if opts.Region != "" {
		minX, minZ, maxX, maxZ, err := network.ParseRegion(opts.Region)
		if err != nil {
			return network.Selection{}, nil, err
		}
		region, err := in.Spatial.InRegion(minX, minZ, maxX, maxZ)
		if err != nil {
			return network.Selection{}, nil, err
		}
		sel = sel.Intersect(region)
	}

	clipped, dropped := sel.Clip(in.Table())
	if clipped.Len() == 0 {
		return network.Selection{}, dropped, errors.New(errors.ErrCodeInvalidSelection,
			"selection matches no waypoint of %s", in.Source)
	}
	return clipped, dropped, nil
}
