/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package history implements a linear undo/redo log of full snapshots.
// The log is append-only behind a movable cursor: Push discards any redo branch,
// Undo/Redo only move the cursor. Snapshots are never merged or rewritten.
package history

import "sync"

// Config controls optional depth capping.
type Config struct {
	// MaxEntries caps the log length (0 means unlimited). When exceeded the
	// oldest entries are dropped and the cursor shifts with them.
	MaxEntries int
}

// Engine is a cursor over an ordered sequence of snapshots of type T.
// It does not know how snapshots are produced; callers must treat pushed
// values as owned by the engine and never mutate them afterwards.
// It is safe for concurrent use, although the editor drives it from one goroutine.
type Engine[T any] struct {
	cfg    Config
	mu     sync.Mutex
	log    []T
	cursor int
}

// New returns an engine whose log holds only initial, with the cursor on it.
func New[T any](initial T, cfg Config) *Engine[T] {
	if cfg.MaxEntries < 0 {
		cfg.MaxEntries = 0
	}
	return &Engine[T]{cfg: cfg, log: []T{initial}}
}

// Push truncates the log after the cursor, appends s and moves the cursor onto it.
func (e *Engine[T]) Push(s T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// Any new checkpoint invalidates the redo branch
	e.log = append(e.log[:e.cursor+1:e.cursor+1], s)
	e.cursor = len(e.log) - 1
	e.enforceCapLocked()
}

// Undo moves the cursor back and returns the snapshot now under it.
// At the start of the log it returns false and changes nothing.
func (e *Engine[T]) Undo() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor == 0 {
		var zero T
		return zero, false
	}
	e.cursor--
	return e.log[e.cursor], true
}

// Redo moves the cursor forward and returns the snapshot now under it.
// At the end of the log it returns false and changes nothing.
func (e *Engine[T]) Redo() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor >= len(e.log)-1 {
		var zero T
		return zero, false
	}
	e.cursor++
	return e.log[e.cursor], true
}

// Current returns the snapshot under the cursor.
func (e *Engine[T]) Current() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log[e.cursor]
}

func (e *Engine[T]) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor > 0
}

func (e *Engine[T]) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor < len(e.log)-1
}

// Reset replaces the whole log with a single initial snapshot.
func (e *Engine[T]) Reset(initial T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = []T{initial}
	e.cursor = 0
}

// Stats returns the log length and cursor position for diagnostics.
func (e *Engine[T]) Stats() (entries int, cursor int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.log), e.cursor
}

func (e *Engine[T]) enforceCapLocked() {
	if e.cfg.MaxEntries <= 0 || len(e.log) <= e.cfg.MaxEntries {
		return
	}
	// drop the oldest extras
	toDrop := len(e.log) - e.cfg.MaxEntries
	if toDrop > e.cursor {
		toDrop = e.cursor
	}
	var zero T
	for i := 0; i < toDrop; i++ {
		e.log[i] = zero
	}
	e.log = append([]T{}, e.log[toDrop:]...)
	e.cursor -= toDrop
}
