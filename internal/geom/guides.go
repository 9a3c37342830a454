/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package geom

// Snapping for drag gestures. The functions are pure so that any frontend can
// render the same guides the controller applied.

// SnapOptions controls which guide candidates are considered and the threshold.
type SnapOptions struct {
	// Threshold is the maximum distance in pixels at which snapping occurs.
	// Zero disables snapping.
	Threshold int
	// Snap to edges (left, right, top, bottom)
	Edges bool
	// Snap to centers
	Centers bool
}

// DefaultSnapOptions returns the usual interactive settings.
func DefaultSnapOptions() SnapOptions {
	return SnapOptions{Threshold: 6, Edges: true, Centers: true}
}

func (o SnapOptions) enabled() bool { return o.Threshold > 0 && (o.Edges || o.Centers) }

type Axis string

const (
	Vertical   Axis = "vertical"
	Horizontal Axis = "horizontal"
)

type GuideKind string

const (
	Edge   GuideKind = "edge"
	Center GuideKind = "center"
)

// Guide is a line to draw while dragging. Pos is the x of a vertical guide or
// the y of a horizontal one; From and To are its extent along the other axis,
// spanning the snapped rect and the anchor it aligned with.
type Guide struct {
	Axis Axis
	Kind GuideKind
	Pos  int
	From int
	To   int
}

type candidate struct {
	ok     bool
	delta  int
	dist   int
	pos    int
	kind   GuideKind
	anchor Rect
}

// consider keeps the closest candidate within threshold. On equal distance the
// earlier one wins, which makes results depend only on anchor order.
func (c *candidate) consider(delta, threshold, pos int, kind GuideKind, anchor Rect) {
	d := delta
	if d < 0 {
		d = -d
	}
	if d > threshold || (c.ok && d >= c.dist) {
		return
	}
	*c = candidate{ok: true, delta: delta, dist: d, pos: pos, kind: kind, anchor: anchor}
}

// Snap moves the rectangle onto the nearest edge or center of the anchors,
// independently in X and Y, and returns the guides that explain the result.
func Snap(moving Rect, anchors []Rect, opts SnapOptions) (Rect, []Guide) {
	if !opts.enabled() {
		return moving, nil
	}
	t := opts.Threshold
	var bx, by candidate
	for _, a := range anchors {
		if opts.Edges {
			// left-to-left, right-to-right, then abutting
			bx.consider(moving.X-a.X, t, a.X, Edge, a)
			bx.consider(moving.Right()-a.Right(), t, a.Right(), Edge, a)
			bx.consider(moving.X-a.Right(), t, a.Right(), Edge, a)
			bx.consider(moving.Right()-a.X, t, a.X, Edge, a)

			by.consider(moving.Y-a.Y, t, a.Y, Edge, a)
			by.consider(moving.Bottom()-a.Bottom(), t, a.Bottom(), Edge, a)
			by.consider(moving.Y-a.Bottom(), t, a.Bottom(), Edge, a)
			by.consider(moving.Bottom()-a.Y, t, a.Y, Edge, a)
		}
		if opts.Centers {
			bx.consider(moving.CenterX()-a.CenterX(), t, a.CenterX(), Center, a)
			by.consider(moving.CenterY()-a.CenterY(), t, a.CenterY(), Center, a)
		}
	}

	snapped := moving
	if bx.ok {
		snapped.X -= bx.delta
	}
	if by.ok {
		snapped.Y -= by.delta
	}
	// Extents are computed after both axes settle.
	var guides []Guide
	if bx.ok {
		u := snapped.Union(bx.anchor)
		guides = append(guides, Guide{Axis: Vertical, Kind: bx.kind, Pos: bx.pos, From: u.Y, To: u.Bottom()})
	}
	if by.ok {
		u := snapped.Union(by.anchor)
		guides = append(guides, Guide{Axis: Horizontal, Kind: by.kind, Pos: by.pos, From: u.X, To: u.Right()})
	}
	return snapped, guides
}
