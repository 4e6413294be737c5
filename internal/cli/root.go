// Package cli implements the vnav command-line interface.
//
// # Commands
//
//   - check: validate a diagram and list its problems
//   - fmt: repair a diagram and rewrite it sorted and indented
//   - resolve: print where a drawing's ends or anchor points lie
//   - graph: draw the anchor graph as DOT, SVG or JSON
//   - new, rm: add a drawing to a diagram or remove one with its dependents
//   - serve: run the HTTP API
//   - config, cache: manage settings and the parse cache
//
// # Logging
//
// --verbose (-v) switches the logger from info to debug level. The root
// command attaches the logger to the command context, where subcommands
// find it with loggerFromContext.
package cli

import (
	"context"
	"os"
)

// Execute builds the command tree and runs it with os.Args.
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
