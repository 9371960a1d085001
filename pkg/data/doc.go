// Package data defines the typed records that charts bind to visual elements.
//
// A [Dataset] is an ordered sequence of [Record] values plus a schema. Every
// field value is a [Value] that has already been coerced once at load time
// (see package load), so charts never re-parse strings while drawing.
//
// # Accessors
//
// Charts read fields only through an [Accessor]. An accessor is the single
// place where a missing field is detected; it fails with an
// errors.ErrCodeMissingField error instead of yielding a silent zero.
//
//	acc := data.Get("population")
//	v, err := acc(rec)
//	if err != nil {
//	    return err // MISSING_FIELD
//	}
//
// # Graphs
//
// Network charts consume a [Graph] attached to the dataset. Nodes and links
// are plain structs; the record slice may be empty for graph-only input.
package data
