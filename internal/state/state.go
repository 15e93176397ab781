// Package state holds the summary of the most recent poll run. The serve loop writes it
// after every pass; the /status handler and the Prometheus collector read it.
package state

import (
	"sync"

	"farmhub-client/internal/poller"
)

var (
	mu     sync.RWMutex
	latest poller.Summary
)

// Update replaces the stored summary with the result of a finished poll run.
func Update(summary poller.Summary) {
	mu.Lock()
	defer mu.Unlock()
	latest = summary
}

// Get returns the summary of the last poll run, or the zero Summary before the first one.
// A zero StartTime is how readers tell the two apart.
func Get() poller.Summary {
	mu.RLock()
	defer mu.RUnlock()
	return latest
}

// Reset forgets the last poll run so readers see the pre-first-poll state again. The
// store is process-global, so tests call it to isolate themselves from one another.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	latest = poller.Summary{}
}
