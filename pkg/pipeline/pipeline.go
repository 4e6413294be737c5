// Package pipeline runs diagram parsing for the CLI and the HTTP API.
//
// The pipeline has two stages:
//
//  1. Parse: validate every element, build the drawing map and repair it
//     (see [diagram.Parser]).
//  2. Render: export the repaired map as JSON or as an anchor graph in
//     DOT or SVG form.
//
// Parse results are cached by content hash and options, so re-checking an
// unchanged file is a single cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Parse(ctx, raw, pipeline.Options{Source: path})
//	if err != nil {
//	    return err
//	}
//	for _, msg := range res.Errors {
//	    fmt.Println(msg)
//	}
package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vnav/pkg/diagram"
	"github.com/matzehuels/vnav/pkg/repair"
	"github.com/matzehuels/vnav/pkg/schema"
)

// DefaultTTL is how long parse results stay cached when Options.TTL is zero.
const DefaultTTL = 7 * 24 * time.Hour

// Output formats accepted by [Render].
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// Options configures one parse.
type Options struct {
	// Source names the document in logs and hooks.
	Source string `json:"source,omitempty"`
	// StrictColor rejects colors with trailing characters.
	StrictColor bool `json:"strict_color,omitempty"`
	// Repair selects the repair checks.
	Repair repair.Options `json:"repair"`
	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`
	// TTL overrides DefaultTTL for the stored result.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns options with every repair check enabled.
func DefaultOptions() Options {
	return Options{Repair: repair.DefaultOptions()}
}

var strictRegistry = sync.OnceValue(func() *schema.Registry {
	return schema.NewRegistry(schema.Options{StrictColor: true})
})

// Parser returns the diagram parser described by o.
func (o Options) Parser() *diagram.Parser {
	reg := schema.Default()
	if o.StrictColor {
		reg = strictRegistry()
	}
	return diagram.NewParser(reg, o.Repair)
}

func (o Options) source() string {
	if o.Source == "" {
		return "input"
	}
	return o.Source
}

func (o Options) ttl() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return DefaultTTL
}

// Result is a parse result with run statistics.
type Result struct {
	*diagram.Result

	// ContentHash is the SHA-256 of the parsed text.
	ContentHash string `json:"content_hash"`
	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"cache_hit"`
	// Elapsed is the wall time of the run, including cache access.
	Elapsed time.Duration `json:"-"`
}
