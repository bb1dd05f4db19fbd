// Package io provides AutoDrive XML import and export.
//
// # Overview
//
// AutoDrive stores its route network in a single XML config. This package
// decodes that file into a [Document] holding the metadata, the validated
// [waypoint.Table] and the map markers, and writes documents back in the same
// layout so that a selection can be extracted into a smaller config.
//
// # XML Format
//
// Only the <waypoints> block is required:
//
//	<AutoDrive version="3">
//	  <MapName>Felsbrunn</MapName>
//	  <waypoints>
//	    <id>1,2,3</id>
//	    <x>0,10,20</x>
//	    <y>0,0,0</y>
//	    <z>0,0,0</z>
//	    <out>2;1,3;-1</out>
//	    <incoming>2;1;2</incoming>
//	    <flags>0,0,0</flags>
//	  </waypoints>
//	  <mapmarker>
//	    <mm1><id>3.000000</id><name>Silo</name><group>All</group></mm1>
//	  </mapmarker>
//	</AutoDrive>
//
// The version is taken from the version attribute of the root element, or
// from a <version> child when the attribute is absent ("1.1.0.0" reads as 1).
// Marker ids are stored as floats and must be finite, non-negative integers.
// Other top-level elements are kept as [Option] entries in document order.
//
// # Errors
//
// A missing root version or missing waypoint field is INVALID_MANIFEST.
// List and flag errors keep the codes returned by [waypoint.Parse].
package io
