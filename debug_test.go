package arbor

import (
	"testing"
)

func TestWarnOnceSuppressesRepeats(t *testing.T) {
	warnOnceMu.Lock()
	warnOnceSeen = make(map[string]bool)
	warnOnceMu.Unlock()

	warnOnce("camera/main", "camera %q not found", "main")
	warnOnceMu.Lock()
	if !warnOnceSeen["camera/main"] {
		warnOnceMu.Unlock()
		t.Fatal("key not recorded after first warning")
	}
	warnOnceMu.Unlock()

	// A second call with the same key must not reset anything; the map
	// entry stays true and distinct keys still work.
	warnOnce("camera/main", "camera %q not found", "main")
	warnOnce("shader/default", "no shader bound")

	warnOnceMu.Lock()
	defer warnOnceMu.Unlock()
	if len(warnOnceSeen) != 2 {
		t.Fatalf("seen map has %d entries, want 2", len(warnOnceSeen))
	}
}
