package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vnav/pkg/cache"
	"github.com/matzehuels/vnav/pkg/diagram"
	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
	"github.com/matzehuels/vnav/pkg/observability"
	"github.com/matzehuels/vnav/pkg/render/nodelink"
	"github.com/matzehuels/vnav/pkg/repair"
)

const keyTypeParse = "parse"

// Runner parses diagrams through a cache.
//
// The Runner holds no per-parse state, so multiple goroutines can share
// one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects [cache.DefaultKeyer] and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Parse parses raw. Problems with the document are reported in the result;
// the error is non-nil only when ctx is done.
func (r *Runner) Parse(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	start := time.Now()
	source := opts.source()

	observability.Pipeline().OnParseStart(ctx, source, len(raw))

	hash := cache.Hash(raw)
	key := r.Keyer.ParseKey(hash, cache.ParseKeyOpts{
		StrictColor:      opts.StrictColor,
		CheckCycles:      opts.Repair.CheckCycles,
		CheckCurvedLines: opts.Repair.CheckCurvedLines,
		CheckAnchorKinds: opts.Repair.CheckAnchorKinds,
	})

	res := &Result{ContentHash: hash}
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, logger); ok {
			res.Result = cached
			res.CacheHit = true
		}
	}
	if res.Result == nil {
		res.Result = opts.Parser().Parse(raw)
		r.store(ctx, key, res.Result, opts.ttl(), logger)
	}
	res.Elapsed = time.Since(start)

	observability.Pipeline().OnParseComplete(ctx, source, len(res.Drawings), len(res.Errors), res.Elapsed)
	logger.Debug("parsed diagram",
		"source", source,
		"drawings", len(res.Drawings),
		"problems", len(res.Errors),
		"cached", res.CacheHit,
		"duration", res.Elapsed)
	return res, nil
}

// Open reads the diagram at path and parses it. Source defaults to path.
func (r *Runner) Open(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := errors.ValidateDiagramPath(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	if opts.Source == "" {
		opts.Source = path
	}
	return r.Parse(ctx, raw, opts)
}

// Render encodes m in format. graph applies to the dot and svg formats.
func Render(ctx context.Context, m drawing.Map, format string, graph nodelink.Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatDOT:
		return []byte(nodelink.ToDOT(m, graph)), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(m, graph))
	default:
		var buf bytes.Buffer
		if err := diagram.Write(&buf, m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// entry is the cached form of a diagram.Result.
type entry struct {
	Fatal       bool                `json:"fatal"`
	Drawings    []json.RawMessage   `json:"drawings"`
	Errors      []string            `json:"errors"`
	Diagnostics []repair.Diagnostic `json:"diagnostics"`
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*diagram.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeParse)
		return nil, false
	}

	res, err := decodeEntry(data)
	if err != nil {
		logger.Debug("discarding cache entry", "err", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeParse)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeParse)
	return res, true
}

func (r *Runner) store(ctx context.Context, key string, res *diagram.Result, ttl time.Duration, logger *log.Logger) {
	data, err := encodeEntry(res)
	if err != nil {
		logger.Debug("cannot encode cache entry", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeParse, len(data))
}

func encodeEntry(res *diagram.Result) ([]byte, error) {
	e := entry{Fatal: res.Fatal(), Errors: res.Errors, Diagnostics: res.Diagnostics}
	for _, d := range res.Drawings.Sorted() {
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		e.Drawings = append(e.Drawings, raw)
	}
	return json.Marshal(e)
}

func decodeEntry(data []byte) (*diagram.Result, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	res := &diagram.Result{Errors: e.Errors, Diagnostics: e.Diagnostics}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if e.Fatal {
		return res, nil
	}
	res.Drawings = make(drawing.Map, len(e.Drawings))
	for i, raw := range e.Drawings {
		d, err := drawing.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("drawing %d: %w", i, err)
		}
		res.Drawings.Put(d)
	}
	return res, nil
}
