package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "approach.vnav", 2048)
	p.OnParseComplete(ctx, "approach.vnav", 12, 1, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "parse")
	c.OnCacheMiss(ctx, "parse")
	c.OnCacheSet(ctx, "parse", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/parse")
	h.OnResponse(ctx, "POST", "/v1/parse", 200, time.Millisecond)
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)

	pipeline, cache, http := &testPipelineHooks{}, &testCacheHooks{}, &testHTTPHooks{}
	tests := []struct {
		name string
		set  func()
		get  func() any
		want any
	}{
		{"pipeline", func() { SetPipelineHooks(pipeline) }, func() any { return Pipeline() }, pipeline},
		{"cache", func() { SetCacheHooks(cache) }, func() any { return Cache() }, cache},
		{"http", func() { SetHTTPHooks(http) }, func() any { return HTTP() }, http},
		{"nil pipeline ignored", func() { SetPipelineHooks(nil) }, func() any { return Pipeline() }, pipeline},
		{"nil cache ignored", func() { SetCacheHooks(nil) }, func() any { return Cache() }, cache},
		{"nil http ignored", func() { SetHTTPHooks(nil) }, func() any { return HTTP() }, http},
	}
	Reset()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			if got := tt.get(); got != tt.want {
				t.Errorf("got %T %p, want %p", got, got, tt.want)
			}
		})
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() after Reset = %T", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() after Reset = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() after Reset = %T", HTTP())
	}
}

func TestSettersKeepOtherHooks(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	cache := &testCacheHooks{}
	SetCacheHooks(cache)
	SetPipelineHooks(&testPipelineHooks{})
	if Cache() != cache {
		t.Error("SetPipelineHooks replaced the cache hooks")
	}
}

// The id fields keep the pointers distinct.
type testPipelineHooks struct {
	NoopPipelineHooks
	id int
}

type testCacheHooks struct {
	NoopCacheHooks
	id int
}

type testHTTPHooks struct {
	NoopHTTPHooks
	id int
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnParseStart(ctx, "approach.vnav", 10)
	h.OnParseComplete(ctx, "approach.vnav", 3, 1, time.Millisecond)
	h.OnCacheHit(ctx, "parse")
	h.OnResponse(ctx, "POST", "/v1/parse", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"parse started", "drawings=3", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
