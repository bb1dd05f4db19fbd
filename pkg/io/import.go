package io

import (
	"encoding/xml"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// Default marker attributes for <mmN> entries that omit them.
const (
	DefaultMarkerName  = "Unnamed"
	DefaultMarkerGroup = "All"
)

// Document is a decoded AutoDrive config.
type Document struct {
	Meta    Meta
	Raw     waypoint.Raw
	Table   *waypoint.Table
	Markers []waypoint.Marker
}

// Meta holds the non-waypoint content of a config.
type Meta struct {
	Version       int    // major version
	ConfigVersion string // version text as written
	MapName       string
	RouteVersion  string
	RouteAuthor   string
	Options       []Option
}

// Option is a top-level element kept verbatim.
type Option struct {
	Key   string
	Value string
}

type xmlDocument struct {
	XMLName      xml.Name      `xml:"AutoDrive"`
	VersionAttr  string        `xml:"version,attr"`
	Version      *string       `xml:"version"`
	MapName      string        `xml:"MapName"`
	RouteVersion string        `xml:"ADRouteVersion"`
	RouteAuthor  string        `xml:"ADRouteAuthor"`
	Waypoints    *xmlWaypoints `xml:"waypoints"`
	MapMarker    xmlMapMarker  `xml:"mapmarker"`
	Options      []xmlOption   `xml:",any"`
}

type xmlWaypoints struct {
	ID       *string `xml:"id"`
	X        *string `xml:"x"`
	Y        *string `xml:"y"`
	Z        *string `xml:"z"`
	Out      *string `xml:"out"`
	Incoming *string `xml:"incoming"`
	Flags    *string `xml:"flags"`
}

type xmlMapMarker struct {
	Markers []xmlMarker `xml:",any"`
}

type xmlMarker struct {
	XMLName xml.Name
	ID      *string `xml:"id"`
	Name    *string `xml:"name"`
	Group   *string `xml:"group"`
}

type xmlOption struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
	Inner   []byte `xml:",innerxml"`
}

// ImportAutoDrive reads the AutoDrive config at path.
func ImportAutoDrive(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadAutoDrive(f)
}

// ReadAutoDrive decodes an AutoDrive config from r. It does not close r.
func ReadAutoDrive(r io.Reader) (*Document, error) {
	var x xmlDocument
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode AutoDrive XML")
	}

	doc := &Document{
		Meta: Meta{
			MapName:      strings.TrimSpace(x.MapName),
			RouteVersion: strings.TrimSpace(x.RouteVersion),
			RouteAuthor:  strings.TrimSpace(x.RouteAuthor),
		},
	}

	versionText := strings.TrimSpace(x.VersionAttr)
	if x.Version != nil {
		doc.Meta.ConfigVersion = strings.TrimSpace(*x.Version)
		if versionText == "" {
			versionText = doc.Meta.ConfigVersion
		}
	}
	if doc.Meta.ConfigVersion == "" {
		doc.Meta.ConfigVersion = versionText
	}
	v, err := parseVersion(versionText)
	if err != nil {
		return nil, err
	}
	doc.Meta.Version = v

	for _, o := range x.Options {
		if !isLeaf(o.Inner) {
			continue
		}
		doc.Meta.Options = append(doc.Meta.Options, Option{Key: o.XMLName.Local, Value: strings.TrimSpace(o.Value)})
	}

	raw, err := rawFromXML(x.Waypoints)
	if err != nil {
		return nil, err
	}
	doc.Raw = raw
	if doc.Table, err = waypoint.Parse(raw); err != nil {
		return nil, err
	}

	for i, m := range x.MapMarker.Markers {
		tag := m.XMLName.Local
		if !strings.HasPrefix(tag, "mm") {
			continue
		}
		if m.ID == nil {
			// Markers without an id cannot be attached to a waypoint.
			continue
		}
		id, err := ParseMarkerID(*m.ID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "marker %s (entry %d)", tag, i+1)
		}
		doc.Markers = append(doc.Markers, waypoint.Marker{
			ID:    id,
			Name:  textOr(m.Name, DefaultMarkerName),
			Group: textOr(m.Group, DefaultMarkerGroup),
		})
	}
	return doc, nil
}

func rawFromXML(w *xmlWaypoints) (waypoint.Raw, error) {
	if w == nil {
		return waypoint.Raw{}, errors.New(errors.ErrCodeInvalidManifest, "missing <waypoints> block")
	}
	required := []struct {
		name string
		val  *string
	}{
		{"id", w.ID},
		{"x", w.X},
		{"z", w.Z},
		{"out", w.Out},
		{"incoming", w.Incoming},
		{"flags", w.Flags},
	}
	var missing []string
	for _, f := range required {
		if f.val == nil {
			missing = append(missing, "<"+f.name+">")
		}
	}
	if len(missing) > 0 {
		return waypoint.Raw{}, errors.New(errors.ErrCodeInvalidManifest, "<waypoints> is missing %s", strings.Join(missing, ", "))
	}
	if strings.TrimSpace(*w.ID) == "" {
		return waypoint.Raw{}, errors.New(errors.ErrCodeInvalidManifest, "<waypoints> has an empty <id> list")
	}

	raw := waypoint.Raw{
		IDs:      strings.TrimSpace(*w.ID),
		X:        strings.TrimSpace(*w.X),
		Z:        strings.TrimSpace(*w.Z),
		Out:      strings.TrimSpace(*w.Out),
		Incoming: strings.TrimSpace(*w.Incoming),
		Flags:    strings.TrimSpace(*w.Flags),
	}
	if w.Y != nil {
		raw.Y = strings.TrimSpace(*w.Y)
	}
	return raw, nil
}

// ParseMarkerID parses a float-encoded marker id such as "42.000000".
func ParseMarkerID(text string) (waypoint.ID, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "marker id %q is not a number", errors.Truncate(text, 40))
	}
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, errors.New(errors.ErrCodeInvalidFormat, "marker id %q must be finite", text)
	case v < 0:
		return 0, errors.New(errors.ErrCodeInvalidFormat, "marker id %q must not be negative", text)
	case v != math.Trunc(v):
		return 0, errors.New(errors.ErrCodeInvalidFormat, "marker id %q must be a whole number", text)
	case v > math.MaxInt64/2:
		return 0, errors.New(errors.ErrCodeInvalidFormat, "marker id %q is out of range", errors.Truncate(text, 40))
	}
	return waypoint.ID(v), nil
}

func parseVersion(text string) (int, error) {
	if text == "" {
		return 0, errors.New(errors.ErrCodeInvalidManifest, "no version found in AutoDrive XML")
	}
	major, _, _ := strings.Cut(text, ".")
	v, err := strconv.Atoi(strings.TrimSpace(major))
	if err != nil || v < 0 {
		return 0, errors.New(errors.ErrCodeInvalidManifest, "version %q could not be read", errors.Truncate(text, 40))
	}
	return v, nil
}

func textOr(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return strings.TrimSpace(*s)
}

func isLeaf(inner []byte) bool {
	return !strings.Contains(string(inner), "<")
}
