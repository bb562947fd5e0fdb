// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"sync"
	"time"
)

// SaveState is the autosave indicator shown next to the editor toolbar.
type SaveState string

const (
	SaveIdle    SaveState = "idle"
	SavePending SaveState = "saving"
	SaveDone    SaveState = "saved"
)

// Autosaver debounces edits into a "saved" indicator. Nothing is
// persisted: the indicator only reports that edits have settled.
type Autosaver struct {
	mu      sync.Mutex
	delay   time.Duration
	state   SaveState
	timer   *time.Timer
	gen     uint64
	savedAt time.Time
	stopped bool
}

// NewAutosaver creates an idle autosaver that settles delay after the
// last edit.
func NewAutosaver(delay time.Duration) *Autosaver {
	return &Autosaver{delay: max(delay, 0), state: SaveIdle}
}

// Touch records an edit and restarts the debounce timer.
func (a *Autosaver) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	a.state = SavePending
	a.gen++
	gen := a.gen
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		// A later Touch owns the indicator.
		if a.gen == gen && !a.stopped {
			a.state = SaveDone
			a.savedAt = time.Now()
		}
	})
}

// State returns the current indicator and the time of the last settle.
func (a *Autosaver) State() (SaveState, time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.savedAt
}

// Stop cancels any pending timer. Further Touch calls are ignored.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
	}
}
