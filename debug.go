package arbor

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// warnf prints a warning to stderr.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: "+format+"\n", args...)
}

var (
	warnOnceMu   sync.Mutex
	warnOnceSeen = make(map[string]bool)
)

// warnOnce prints a warning at most once per key. Render passes use it so
// a missing camera or shader does not flood stderr at frame rate.
func warnOnce(key, format string, args ...any) {
	warnOnceMu.Lock()
	seen := warnOnceSeen[key]
	warnOnceSeen[key] = true
	warnOnceMu.Unlock()
	if !seen {
		warnf(format, args...)
	}
}

// fatalf prints an error to stderr and exits.
func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[arbor] fatal: "+format+"\n", args...)
	os.Exit(1)
}

// debugStats holds per-frame timing and draw metrics.
// Only populated when Engine.Debug is true.
type debugStats struct {
	shadowTime      time.Duration
	cubeShadowTime  time.Duration
	mainTime        time.Duration
	uiTime          time.Duration
	modelCount      int
	dirLightCount   int
	pointLightCount int
}

// debugLog prints frame timing and pass stats to stderr.
func debugLog(stats debugStats) {
	total := stats.shadowTime + stats.cubeShadowTime + stats.mainTime + stats.uiTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] shadow: %v | cube: %v | main: %v | ui: %v | total: %v\n",
		stats.shadowTime, stats.cubeShadowTime, stats.mainTime, stats.uiTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] models: %d | direct lights: %d | point lights: %d\n",
		stats.modelCount, stats.dirLightCount, stats.pointLightCount)
}
