// Package waypoint decodes AutoDrive waypoint tables.
//
// # Overview
//
// AutoDrive stores its navigation graph as a handful of parallel, delimited
// strings inside the <waypoints> block of its XML config:
//
//	<id>1,2,3</id>
//	<x>4.560,-7.727,-10.710</x>
//	<z>-1679.041,-1668.809,-1668.346</z>
//	<out>-1;3;4</out>
//	<incoming>-1;-1;2</incoming>
//	<flags>0,0,0</flags>
//
// Scalar fields are separated by ",". The out and incoming fields use ";"
// between waypoints and "," between multiple targets of one waypoint. The
// sentinel -1 marks "no connection" and never reaches the [Table].
//
// # Parsing
//
// [Parse] turns a [Raw] into an id-keyed [Table]. Every token must convert;
// a single malformed value fails the whole parse with an INVALID_FORMAT
// error that names the field. Flags other than 0 and 1 fail with
// INVALID_FLAG.
//
//	tbl, err := waypoint.Parse(waypoint.Sample())
//	if err != nil {
//	    return err
//	}
//	wp, _ := tbl.Get(23)
//	fmt.Println(wp.Out) // [24 26 30]
//
// # Immutability
//
// A [Table] is built once and never mutated. Accessors return copies of the
// neighbor lists, so callers cannot change the table through them.
package waypoint
