/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

import "sort"

// This file defines the element and document records the editor core operates on.
// Documents are treated as immutable values: every transition produces a new one.

// Position is a canvas-local offset from the top-left corner, in pixels.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is advisory; only the exporter applies it, and only where the style
// does not already set width/height.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Element is one placed unit on the canvas.
type Element struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Content  string   `json:"content,omitempty"`
	Style    Style    `json:"style,omitempty"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	// Locked and Visible only affect the editor; both are exported unchanged.
	Locked  bool `json:"locked"`
	Visible bool `json:"visible"`
	ZIndex  int  `json:"zIndex"`
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	c := e
	c.Style = e.Style.Clone()
	return c
}

func (e Element) Equal(o Element) bool {
	return e.ID == o.ID &&
		e.Kind == o.Kind &&
		e.Content == o.Content &&
		e.Style.Equal(o.Style) &&
		e.Position == o.Position &&
		e.Size == o.Size &&
		e.Locked == o.Locked &&
		e.Visible == o.Visible &&
		e.ZIndex == o.ZIndex
}

// Document is the full editable state at one point in time. Elements are kept in
// insertion order; paint order is derived from ZIndex with insertion order breaking ties.
// An empty SelectedElementID means nothing is selected.
type Document struct {
	Elements          []Element `json:"elements"`
	SelectedElementID string    `json:"selectedElementId,omitempty"`
}

// EmptyDocument is the initial state of a session.
func EmptyDocument() Document {
	return Document{Elements: []Element{}}
}

// Clone returns a deep copy that shares no memory with d.
func (d Document) Clone() Document {
	els := make([]Element, len(d.Elements))
	for i, e := range d.Elements {
		els[i] = e.Clone()
	}
	return Document{Elements: els, SelectedElementID: d.SelectedElementID}
}

func (d Document) Equal(o Document) bool {
	if d.SelectedElementID != o.SelectedElementID || len(d.Elements) != len(o.Elements) {
		return false
	}
	for i := range d.Elements {
		if !d.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Index returns the slice index of the element with id, or -1.
func (d Document) Index(id string) int {
	if id == "" {
		return -1
	}
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

func (d Document) Has(id string) bool { return d.Index(id) >= 0 }

// Find returns a copy of the element with id.
func (d Document) Find(id string) (Element, bool) {
	i := d.Index(id)
	if i < 0 {
		return Element{}, false
	}
	return d.Elements[i].Clone(), true
}

// Selected returns the currently selected element, if any.
func (d Document) Selected() (Element, bool) {
	return d.Find(d.SelectedElementID)
}

// PaintOrder returns the elements sorted by ascending ZIndex; elements with equal
// ZIndex keep their insertion order.
func (d Document) PaintOrder() []Element {
	out := make([]Element, len(d.Elements))
	copy(out, d.Elements)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}
