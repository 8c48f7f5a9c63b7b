package app

import (
	"os"
	"time"
)

// BoardWatcher watches the open board file for changes made outside the
// application (another instance, a sync client) and triggers a callback
// when a newer version is detected, so the UI can offer to reload.
type BoardWatcher struct {
	path          string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onChanged     func(path string)
}

// NewBoardWatcher creates a watcher for the given board file. Returns nil
// if the file cannot be stat'd.
func NewBoardWatcher(path string, checkInterval time.Duration) *BoardWatcher {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	return &BoardWatcher{
		path:          path,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
		stopCh:        make(chan struct{}),
	}
}

// OnChanged sets the callback to invoke when an external change is
// detected. The callback is called from a background goroutine.
func (w *BoardWatcher) OnChanged(callback func(path string)) {
	w.onChanged = callback
}

// Start begins watching in a background goroutine.
func (w *BoardWatcher) Start() {
	// Create a fresh stop channel in case we're restarting
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop stops the watcher goroutine.
func (w *BoardWatcher) Stop() {
	close(w.stopCh)
}

// watchLoop periodically checks if the board file has been modified.
func (w *BoardWatcher) watchLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.checkForUpdate() && w.onChanged != nil {
				w.onChanged(w.path)
				// Only trigger once - stop watching after detection
				return
			}
		}
	}
}

// checkForUpdate returns true if the file has been modified since the baseline.
func (w *BoardWatcher) checkForUpdate() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(w.baseline)
}

// Path returns the watched board file path.
func (w *BoardWatcher) Path() string {
	return w.path
}

// ResetBaseline updates the baseline timestamp to the file's current mod
// time. Call this after the application itself saves, or when the user
// declines a reload, to avoid repeated notifications.
func (w *BoardWatcher) ResetBaseline() {
	if info, err := os.Stat(w.path); err == nil {
		w.baseline = info.ModTime()
	}
}
