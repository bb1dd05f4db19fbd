package io

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8" standalone="no"?>` + "\n"

type xmlOutDocument struct {
	XMLName      xml.Name          `xml:"AutoDrive"`
	Version      string            `xml:"version,omitempty"`
	MapName      string            `xml:"MapName,omitempty"`
	RouteVersion string            `xml:"ADRouteVersion,omitempty"`
	RouteAuthor  string            `xml:"ADRouteAuthor,omitempty"`
	Options      []xmlOutElement
	Waypoints    xmlOutWaypoints   `xml:"waypoints"`
	MapMarker    []xmlOutMarker    `xml:"mapmarker>marker"`
}

type xmlOutElement struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlOutWaypoints struct {
	ID       string `xml:"id"`
	X        string `xml:"x"`
	Y        string `xml:"y"`
	Z        string `xml:"z"`
	Out      string `xml:"out"`
	Incoming string `xml:"incoming"`
	Flags    string `xml:"flags"`
}

type xmlOutMarker struct {
	XMLName xml.Name
	ID      string `xml:"id"`
	Name    string `xml:"name"`
	Group   string `xml:"group"`
}

// Extract returns a document restricted to the waypoints for which keep
// returns true. Connections and markers pointing outside the kept set are
// dropped. Ids are left as they are; [WriteAutoDrive] renumbers them.
func Extract(doc *Document, keep func(waypoint.ID) bool) (*Document, error) {
	var wps []waypoint.Waypoint
	for _, w := range doc.Table.Waypoints() {
		if !keep(w.ID) {
			continue
		}
		w.Out = slices.DeleteFunc(w.Out, func(id waypoint.ID) bool { return !keep(id) })
		w.Incoming = slices.DeleteFunc(w.Incoming, func(id waypoint.ID) bool { return !keep(id) })
		wps = append(wps, w)
	}
	if len(wps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSelection, "selection keeps no waypoints")
	}
	tbl, err := waypoint.NewTable(wps)
	if err != nil {
		return nil, err
	}
	out := &Document{Meta: doc.Meta, Table: tbl}
	out.Meta.Options = slices.Clone(doc.Meta.Options)
	for _, m := range doc.Markers {
		if keep(m.ID) && tbl.Has(m.ID) {
			out.Markers = append(out.Markers, m)
		}
	}
	return out, nil
}

// WriteAutoDrive encodes doc as an AutoDrive config. Waypoints are written in
// ascending id order and renumbered to 1..n, with connections and markers
// remapped accordingly. Coordinates use three decimals; y is written as 0
// when the table carries no heights.
func WriteAutoDrive(doc *Document, w io.Writer) error {
	if doc == nil || doc.Table == nil {
		return errors.New(errors.ErrCodeInvalidInput, "document has no waypoints")
	}
	ids := doc.Table.IDs()
	slices.Sort(ids)
	remap := make(map[waypoint.ID]waypoint.ID, len(ids))
	for i, id := range ids {
		remap[id] = waypoint.ID(i + 1)
	}

	n := len(ids)
	idText, xs, ys, zs := make([]string, n), make([]string, n), make([]string, n), make([]string, n)
	flags, outs, ins := make([]string, n), make([]string, n), make([]string, n)
	for i, id := range ids {
		wp, _ := doc.Table.Get(id)
		idText[i] = remap[id].String()
		xs[i] = formatFloat(wp.X)
		ys[i] = formatFloat(wp.Y)
		zs[i] = formatFloat(wp.Z)
		flags[i] = strconv.Itoa(int(wp.Flag))
		outs[i] = joinRemapped(wp.Out, remap)
		ins[i] = joinRemapped(wp.Incoming, remap)
	}

	x := xmlOutDocument{
		Version:      doc.Meta.ConfigVersion,
		MapName:      doc.Meta.MapName,
		RouteVersion: doc.Meta.RouteVersion,
		RouteAuthor:  doc.Meta.RouteAuthor,
		Waypoints: xmlOutWaypoints{
			ID:       strings.Join(idText, ","),
			X:        strings.Join(xs, ","),
			Y:        strings.Join(ys, ","),
			Z:        strings.Join(zs, ","),
			Out:      strings.Join(outs, ";"),
			Incoming: strings.Join(ins, ";"),
			Flags:    strings.Join(flags, ","),
		},
	}
	for _, o := range doc.Meta.Options {
		x.Options = append(x.Options, xmlOutElement{XMLName: xml.Name{Local: o.Key}, Value: o.Value})
	}
	for i, m := range doc.Markers {
		id, ok := remap[m.ID]
		if !ok {
			id = m.ID
		}
		x.MapMarker = append(x.MapMarker, xmlOutMarker{
			XMLName: xml.Name{Local: fmt.Sprintf("mm%d", i+1)},
			ID:      strconv.FormatFloat(float64(id), 'f', 6, 64),
			Name:    m.Name,
			Group:   m.Group,
		})
	}

	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(x); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportAutoDrive writes doc to an AutoDrive config file at path.
func ExportAutoDrive(doc *Document, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return writeAndClose(f, path, func(w io.Writer) error { return WriteAutoDrive(doc, w) })
}

// writeAndClose runs write against wc and closes it. A close failure is
// reported when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, path string, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

// joinRemapped writes an id group, using the sentinel for an empty one.
func joinRemapped(ids []waypoint.ID, remap map[waypoint.ID]waypoint.ID) string {
	var parts []string
	for _, id := range ids {
		if r, ok := remap[id]; ok {
			parts = append(parts, r.String())
		}
	}
	if len(parts) == 0 {
		return waypoint.Sentinel.String()
	}
	return strings.Join(parts, ",")
}
