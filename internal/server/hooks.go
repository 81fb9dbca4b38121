package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridgen/pkg/observability"
)

// LogHooks reports pipeline and cache events to a logger at debug level.
// Failed compiles are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnCompileStart(_ context.Context, mode, input string) {
	h.Logger.Debug("compile start", "mode", mode, "input", input)
}

func (h LogHooks) OnCompileComplete(_ context.Context, mode string, selectors int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("compile failed", "mode", mode, "error", err, "duration", d)
		return
	}
	h.Logger.Debug("compile done", "mode", mode, "selectors", selectors, "duration", d)
}

func (h LogHooks) OnVerify(_ context.Context, err error) {
	if err != nil {
		h.Logger.Error("verification failed", "error", err)
		return
	}
	h.Logger.Debug("verified")
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// Register installs h as the process-wide pipeline and cache hooks.
func (h LogHooks) Register() {
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

var (
	_ observability.PipelineHooks = LogHooks{}
	_ observability.CacheHooks    = LogHooks{}
)
