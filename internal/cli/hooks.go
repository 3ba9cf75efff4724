package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/observability"
)

// logHooks reports library events to the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

// RegisterLogHooks routes analysis, history and cache events to the CLI's
// logger. Called once by main.
func (c *CLI) RegisterLogHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetAnalysisHooks(h)
	observability.SetHistoryHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnAnalyzeStart(_ context.Context, repo string, manifests int) {
	h.logger.Debug("analysis started", "repo", repo, "manifests", manifests)
}

func (h logHooks) OnAnalyzeComplete(_ context.Context, repo string, stats observability.AnalysisStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("analysis interrupted", "repo", repo, "error", err, "duration", d)
		return
	}
	h.logger.Debug("analysis finished", "repo", repo, "adopt", stats.Adopt, "remove", stats.Remove, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnWalkStart(context.Context, string) {}

func (h logHooks) OnWalkComplete(_ context.Context, path string, stats observability.WalkStats, d time.Duration, err error) {
	h.logger.Debug("history walked",
		"path", path,
		"logged", stats.Logged,
		"available", stats.Available,
		"snapshots", stats.Snapshots,
		"duration", d.Round(time.Millisecond),
		"error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
