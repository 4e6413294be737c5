// Package pkg holds the libraries behind vnav, a checker for flight
// navigation diagrams.
//
// # Overview
//
// A diagram is a JSON array of drawings: point anchors (Above, At, Below),
// Between markers, PathLines and CurvedLines whose ends float or attach to
// other drawings, grid lines, planes and text. Loading a diagram validates
// every element, drops the invalid ones, and then removes lines whose
// anchors cannot be satisfied together with everything anchored to them.
//
//	file text
//	    ↓
//	[schema]    validate each element, collecting every violation
//	    ↓
//	[drawing]   decode into typed drawings keyed by id
//	    ↓
//	[repair]    remove unsatisfiable anchors, cascading to dependents
//	    ↓
//	[diagram]   drawings plus a list of human-readable errors
//
// # Packages
//
// [drawing] defines the drawing and end point types, the JSON codec, and the
// resolver that turns an end point into a canvas coordinate.
//
// [schema] is the registry of structural schemas and the all-errors
// validator.
//
// [repair] is the referential integrity pass.
//
// [diagram] parses and writes whole diagrams and offers [diagram.Document]
// for validated editing.
//
// [pipeline] runs parses through a [cache] and the [observability] hooks;
// the CLI and [server] share it.
//
// [config] loads user settings from TOML. [errors] defines coded errors.
// [render] draws the anchor graph.
//
// # Quick Start
//
//	res, err := diagram.Open("approach.vnav")
//	if err != nil {
//	    return err
//	}
//	for _, msg := range res.Errors {
//	    fmt.Println(msg)
//	}
//	p, err := drawing.Resolve(drawing.Connected{AnchorID: "fix"}, res.Drawings)
//
// [drawing]: github.com/matzehuels/vnav/pkg/drawing
// [schema]: github.com/matzehuels/vnav/pkg/schema
// [repair]: github.com/matzehuels/vnav/pkg/repair
// [diagram]: github.com/matzehuels/vnav/pkg/diagram
// [diagram.Document]: github.com/matzehuels/vnav/pkg/diagram.Document
// [pipeline]: github.com/matzehuels/vnav/pkg/pipeline
// [cache]: github.com/matzehuels/vnav/pkg/cache
// [observability]: github.com/matzehuels/vnav/pkg/observability
// [server]: github.com/matzehuels/vnav/pkg/server
// [config]: github.com/matzehuels/vnav/pkg/config
// [errors]: github.com/matzehuels/vnav/pkg/errors
// [render]: github.com/matzehuels/vnav/pkg/render
package pkg
