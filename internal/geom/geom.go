/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package geom is canvas geometry for the editor: element bounds, hit testing
// and alignment guides for dragging. Coordinates are integer pixels relative
// to the canvas origin.
package geom

import "pagesmith/internal/domain"

// Rect is an axis-aligned rectangle defined by its top-left corner and size.
type Rect struct {
	X, Y int
	W, H int
}

func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Right() int   { return r.X + r.W }
func (r Rect) Bottom() int  { return r.Y + r.H }
func (r Rect) CenterX() int { return r.X + r.W/2 }
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x <= r.Right() && y <= r.Bottom()
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.Right(), o.Right())
	maxY := max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Bounds is the canvas rectangle of el.
func Bounds(el domain.Element) Rect {
	return Rect{X: el.Position.X, Y: el.Position.Y, W: el.Size.Width, H: el.Size.Height}
}

// Hit returns the topmost visible element under the point. Locked elements
// are hit like any other so they can still be selected and unlocked.
func Hit(doc domain.Document, x, y int) (domain.Element, bool) {
	order := doc.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		el := order[i]
		if el.Visible && Bounds(el).Contains(x, y) {
			return el, true
		}
	}
	return domain.Element{}, false
}

// Anchors returns the bounds of the visible elements other than exclude, in
// paint order.
func Anchors(doc domain.Document, exclude string) []Rect {
	var out []Rect
	for _, el := range doc.PaintOrder() {
		if el.ID == exclude || !el.Visible {
			continue
		}
		out = append(out, Bounds(el))
	}
	return out
}
