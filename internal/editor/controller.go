/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package editor is the interaction controller: it turns gestures and form edits
// into document store transitions and decides when to checkpoint history.
//
// Checkpoint policy:
//   - every mutation outside a batch pushes exactly one snapshot, taken after it settles;
//   - mutations between Begin and the outermost Commit push one snapshot in total;
//   - transitions that leave the elements unchanged (unknown ids, selection only) push nothing.
package editor

import (
	"errors"
	"log/slog"

	"pagesmith/internal/document"
	"pagesmith/internal/domain"
	"pagesmith/internal/export"
	"pagesmith/internal/geom"
	"pagesmith/internal/history"
	applog "pagesmith/internal/log"
)

// ErrEmptyDrop is returned for a drop event naming neither an element nor a library item.
var ErrEmptyDrop = errors.New("drop event names neither an element nor a library item")

// DropEvent is produced by the drag layer when something is released over the canvas.
// Exactly one of ElementID (repositioning) or Kind (new item from the library) is set.
type DropEvent struct {
	ElementID string
	Kind      domain.Kind
	X, Y      int
}

// Options configures a Controller. Zero values are usable; the zero Snap
// disables snapping.
type Options struct {
	History history.Config
	Export  export.Options
	Snap    geom.SnapOptions
	Logger  *slog.Logger
}

// Controller owns the current document and the history log for one editing session.
// It is meant to be driven from a single goroutine (the UI event loop).
type Controller struct {
	store      *document.Store
	history    *history.Engine[domain.Document]
	doc        domain.Document
	depth      int
	exportOpts export.Options
	snap       geom.SnapOptions
	log        *slog.Logger
}

// New starts a session on an empty document.
func New(store *document.Store, opts Options) *Controller {
	if store == nil {
		store = document.NewStore(nil)
	}
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("editor")
	}
	doc := domain.EmptyDocument()
	return &Controller{
		store:      store,
		history:    history.New(doc, opts.History),
		doc:        doc,
		exportOpts: opts.Export,
		snap:       opts.Snap,
		log:        l,
	}
}

// Document returns a copy of the current document for rendering.
func (c *Controller) Document() domain.Document { return c.doc.Clone() }

// Create places a new element and returns its id.
func (c *Controller) Create(kind domain.Kind, pos domain.Position) (string, error) {
	next, err := c.store.Create(c.doc, kind, pos)
	if err != nil {
		c.log.Warn("create rejected", slog.String("kind", string(kind)), slog.Any("err", err))
		return "", err
	}
	c.apply("create", next)
	return next.SelectedElementID, nil
}

// Update merges a patch into an element.
func (c *Controller) Update(id string, p document.Patch) {
	c.apply("update", c.store.Update(c.doc, id, p))
}

// Move repositions an element.
func (c *Controller) Move(id string, pos domain.Position) {
	c.apply("move", c.store.MoveTo(c.doc, id, pos))
}

func (c *Controller) Delete(id string) {
	c.apply("delete", c.store.Delete(c.doc, id))
}

// Duplicate clones an element and returns the clone's id.
func (c *Controller) Duplicate(id string) (string, bool) {
	next := c.store.Duplicate(c.doc, id)
	if len(next.Elements) == len(c.doc.Elements) {
		return "", false
	}
	c.apply("duplicate", next)
	return next.SelectedElementID, true
}

func (c *Controller) BringToFront(id string) {
	c.apply("front", c.store.BringToFront(c.doc, id))
}

func (c *Controller) SendToBack(id string) {
	c.apply("back", c.store.SendToBack(c.doc, id))
}

// Select changes the selection without creating a history entry.
func (c *Controller) Select(id string) {
	c.doc = c.store.Select(c.doc, id)
}

// SelectAt selects the topmost visible element under the point, or clears the
// selection when the point hits empty canvas. It returns the selected id.
func (c *Controller) SelectAt(x, y int) string {
	el, _ := geom.Hit(c.doc, x, y)
	c.Select(el.ID)
	return el.ID
}

// SnapPreview returns where a drag of element id to pos would land and the
// guides to draw. Nothing is changed; Drop applies the same rule.
func (c *Controller) SnapPreview(id string, pos domain.Position) (domain.Position, []geom.Guide) {
	el, ok := c.doc.Find(id)
	if !ok {
		return pos, nil
	}
	return c.snapRect(id, pos, el.Size)
}

// Drop handles a drag-and-drop release. Both moves and library drops snap to
// the other elements. It returns the id of the created or moved element.
func (c *Controller) Drop(ev DropEvent) (string, error) {
	pos := domain.Position{X: ev.X, Y: ev.Y}
	switch {
	case ev.ElementID != "":
		pos, _ = c.SnapPreview(ev.ElementID, pos)
		c.Move(ev.ElementID, pos)
		return ev.ElementID, nil
	case ev.Kind != "":
		if ev.Kind.Valid() {
			pos, _ = c.snapRect("", pos, domain.DefaultSize(ev.Kind))
		}
		return c.Create(ev.Kind, pos)
	default:
		return "", ErrEmptyDrop
	}
}

func (c *Controller) snapRect(id string, pos domain.Position, size domain.Size) (domain.Position, []geom.Guide) {
	moving := geom.R(pos.X, pos.Y, size.Width, size.Height)
	snapped, guides := geom.Snap(moving, geom.Anchors(c.doc, id), c.snap)
	return domain.Position{X: snapped.X, Y: snapped.Y}, guides
}

// Begin opens a batch; batches nest.
func (c *Controller) Begin() { c.depth++ }

// Commit closes a batch. Closing the outermost batch checkpoints the accumulated
// edits as one entry; it reports whether an entry was pushed.
func (c *Controller) Commit() bool {
	if c.depth == 0 {
		return false
	}
	c.depth--
	if c.depth > 0 {
		return false
	}
	return c.checkpoint("batch")
}

// Discard abandons every open batch and restores the last checkpoint.
func (c *Controller) Discard() {
	if c.depth == 0 {
		return
	}
	c.depth = 0
	c.doc = c.history.Current()
	c.log.Debug("batch discarded")
}

// InBatch reports whether a batch is open.
func (c *Controller) InBatch() bool { return c.depth > 0 }

// Undo steps back one checkpoint. Pending batched edits are committed first.
func (c *Controller) Undo() bool {
	c.flush()
	snap, ok := c.history.Undo()
	if !ok {
		return false
	}
	c.doc = snap
	c.log.Debug("undo", c.stats()...)
	return true
}

// Redo steps forward one checkpoint.
func (c *Controller) Redo() bool {
	c.flush()
	snap, ok := c.history.Redo()
	if !ok {
		return false
	}
	c.doc = snap
	c.log.Debug("redo", c.stats()...)
	return true
}

func (c *Controller) CanUndo() bool { return c.depth > 0 || c.history.CanUndo() }

func (c *Controller) CanRedo() bool { return c.depth == 0 && c.history.CanRedo() }

// HistoryStats returns the history log length and cursor.
func (c *Controller) HistoryStats() (entries, cursor int) { return c.history.Stats() }

// Export renders the current document.
func (c *Controller) Export() string { return export.Markup(c.doc, c.exportOpts) }

// ExportTo renders the current document and writes it to path.
func (c *Controller) ExportTo(path string) error {
	if err := export.WriteFile(path, c.Export()); err != nil {
		c.log.Error("export failed", slog.String("path", path), slog.Any("err", err))
		return err
	}
	c.log.Info("exported", slog.String("path", path), slog.Int("elements", len(c.doc.Elements)))
	return nil
}

func (c *Controller) apply(op string, next domain.Document) {
	c.doc = next
	if c.depth > 0 {
		return
	}
	c.checkpoint(op)
}

func (c *Controller) flush() {
	if c.depth > 0 {
		c.depth = 0
		c.checkpoint("batch")
	}
}

// checkpoint pushes the current document unless its elements match the last
// checkpoint; selection alone is not worth an entry.
func (c *Controller) checkpoint(op string) bool {
	if sameElements(c.history.Current(), c.doc) {
		return false
	}
	c.history.Push(c.doc)
	applog.WithOperation(c.log, op).Debug("checkpoint", c.stats()...)
	return true
}

func (c *Controller) stats() []any {
	n, cur := c.history.Stats()
	return []any{slog.Int("entries", n), slog.Int("cursor", cur)}
}

func sameElements(a, b domain.Document) bool {
	return domain.Document{Elements: a.Elements}.Equal(domain.Document{Elements: b.Elements})
}
