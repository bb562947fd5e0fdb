// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"errors"
	"sync/atomic"
)

// ErrExportInProgress is returned when an export is requested while
// another one is still running for the same guard.
var ErrExportInProgress = errors.New("export: already in progress")

// Guard tracks the in-progress state of exports and admits one at a time.
// The zero value is ready to use.
type Guard struct {
	busy atomic.Bool
}

// Begin marks an export as running. The returned func clears the state and
// must be called exactly once, whatever the outcome.
func (g *Guard) Begin() (done func(), err error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	return func() { g.busy.Store(false) }, nil
}

// Running reports whether an export is in progress.
func (g *Guard) Running() bool {
	return g.busy.Load()
}
