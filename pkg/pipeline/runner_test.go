package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/gridgen/pkg/cache"
	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/grid"
	"github.com/matzehuels/gridgen/pkg/observability"
)

// memCache is an in-memory cache.Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func TestExecuteModes(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name          string
		opts          Options
		wantMode      string
		wantSelectors int
	}{
		{"query", Options{Query: "body/aside,article,article/footer"}, ModeQuery, 4},
		{"layout", Options{Layout: "holy-grail"}, ModeLayout, 5},
		{"dimensions", Options{Columns: 3, Rows: 2}, ModeDimensions, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Execute(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if res.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", res.Mode, tt.wantMode)
			}
			if res.Stats.Selectors != tt.wantSelectors {
				t.Errorf("Selectors = %d, want %d", res.Stats.Selectors, tt.wantSelectors)
			}
			if res.ID == "" {
				t.Error("missing result ID")
			}
			if res.Output.Markup == "" || res.Output.Stylesheet == "" {
				t.Error("empty output")
			}
		})
	}
}

func TestExecuteMultiLineQuery(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	ctx := context.Background()

	flat, err := r.Execute(ctx, Options{Query: "header/nav,main/footer"})
	if err != nil {
		t.Fatal(err)
	}
	wrapped, err := r.Execute(ctx, Options{Query: "header/\n\tnav, main\r\n/footer"})
	if err != nil {
		t.Fatalf("multi-line query rejected: %v", err)
	}
	if wrapped.Output.Markup != flat.Output.Markup || wrapped.Output.Stylesheet != flat.Output.Stylesheet {
		t.Errorf("multi-line output differs:\n%s\n%s", wrapped.Output.Markup, wrapped.Output.Stylesheet)
	}
}

func TestExecuteCaching(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, nil, nil)
	ctx := context.Background()
	opts := Options{Query: "header/nav,main", Spacing: true}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should miss")
	}
	if mc.sets != 1 {
		t.Errorf("sets = %d, want 1", mc.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run should hit")
	}
	if second.Output.Markup != first.Output.Markup || second.Output.Stylesheet != first.Output.Stylesheet {
		t.Error("cached output differs from compiled output")
	}
	if len(second.Output.Placements) != 3 {
		t.Errorf("cached placements = %d, want 3", len(second.Output.Placements))
	}
	if second.ID == first.ID {
		t.Error("each run should get its own ID")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hit {
		t.Error("refresh should bypass the cache")
	}

	other, err := r.Execute(ctx, Options{Query: "header/nav,main", Spacing: true, Highlight: true})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheInfo.Hit {
		t.Error("different flags should not share a cache entry")
	}
}

func TestExecuteCorruptCacheEntry(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, nil, nil)
	ctx := context.Background()
	opts := Options{Columns: 2, Rows: 2}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	for k := range mc.data {
		mc.data[k] = []byte{0xc1}
	}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.Hit {
		t.Error("corrupt entry should count as a miss")
	}
}

func TestExecuteOutputSelection(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil, nil)
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{Query: "a,b", OnlyMarkup: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Output.Stylesheet != "" || res.Output.Markup == "" {
		t.Errorf("OnlyMarkup output = %+v", res.Output)
	}

	// Served from the cache populated above; selection still applies.
	res, err = r.Execute(ctx, Options{Query: "a,b", OnlyStylesheet: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.Hit {
		t.Error("output selection should not change the cache key")
	}
	if res.Output.Markup != "" || res.Output.Stylesheet == "" {
		t.Errorf("OnlyStylesheet output = %+v", res.Output)
	}
}

func TestExecuteVerify(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Layout: "holy-grail", Verify: true})
	if err != nil {
		t.Fatalf("verify failed on valid output: %v", err)
	}
	if res.Stats.Selectors != 5 {
		t.Errorf("Selectors = %d, want 5", res.Stats.Selectors)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty segment", Options{Query: "a//b"}, errors.ErrCodeGrammar},
		{"repeat", Options{Query: "a/b*2"}, errors.ErrCodeUnsupported},
		{"unknown layout", Options{Layout: "9-col"}, errors.ErrCodeUnknownLayout},
		{"bad selector", Options{Query: "a/1b"}, errors.ErrCodeInvalidSelector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			if !IsUserError(err) {
				t.Errorf("IsUserError(%v) = false", err)
			}
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil, nil).Execute(ctx, Options{Query: "a"})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestExecuteConfiguredCompiler(t *testing.T) {
	cat, err := grid.DefaultCatalogue().With(grid.Layout{Name: "holy-grail", Columns: 2, Rows: 2, Spacing: true})
	if err != nil {
		t.Fatal(err)
	}
	mc := newMemCache()
	ctx := context.Background()

	if _, err := NewRunner(mc, nil, nil, nil).Execute(ctx, Options{Layout: "holy-grail"}); err != nil {
		t.Fatal(err)
	}

	custom := NewRunner(mc, nil, grid.NewCompiler(grid.WithCatalogue(cat), grid.WithTheme(grid.Theme{Gap: "3px"})), nil)
	res, err := custom.Execute(ctx, Options{Layout: "holy-grail"})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.Hit {
		t.Error("an overridden layout must not reuse the built-in entry")
	}
	if !strings.Contains(res.Output.Stylesheet, "grid-gap: 3px;") || res.Stats.Selectors != 4 {
		t.Errorf("custom compiler not used: %+v", res)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu                   sync.Mutex
	starts, hits, misses int
	sets                 int
}

func (h *countingHooks) OnCompileStart(context.Context, string, string) {
	h.mu.Lock()
	h.starts++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	h.sets++
	h.mu.Unlock()
}

func TestExecuteHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := NewRunner(cache.NewNullCache(), nil, nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), Options{Query: "a"}); err != nil {
			t.Fatal(err)
		}
	}
	if h.starts != 2 || h.misses != 2 || h.hits != 0 || h.sets != 2 {
		t.Errorf("starts=%d misses=%d hits=%d sets=%d", h.starts, h.misses, h.hits, h.sets)
	}
}
