// Package diagram reads and writes vnav diagram files.
//
// A diagram file is a JSON array of drawing objects. Files use the .vnav
// or .json extension and are written pretty-printed with drawings sorted by
// ID.
//
// # Parsing
//
// [Parse] turns raw file text into a [Result]. Only a document that is not
// well-formed JSON, or whose top level is not an array, is fatal: the result
// then carries a single error and a nil drawing map. Every other problem is
// itemized:
//
//   - Elements failing schema validation are dropped with an error naming
//     their index.
//   - Later elements replace earlier ones with the same ID, silently.
//   - The surviving map is passed through [repair.Repair] and its
//     diagnostics are appended.
//
// A non-empty error list alongside a usable map is the normal outcome for a
// slightly damaged file.
//
// # Editing
//
// [Document] holds an open diagram and keeps it consistent under edits:
// drawings are validated before they enter the map and deletions cascade to
// dependent lines.
package diagram
