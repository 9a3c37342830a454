/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package document implements the document store: pure transitions from one
// domain.Document to the next. No operation mutates its input; each returns a
// new Document. Operations on unknown ids are no-ops, never errors.
package document

import (
	"fmt"

	"pagesmith/internal/domain"
)

// DuplicateOffset is added to both axes of a duplicated element's position.
const DuplicateOffset = 20

// maxIDAttempts bounds re-draws when a generated id is already taken.
const maxIDAttempts = 16

// Patch carries the fields to merge into an element. Nil fields are left
// untouched. Style is merged key by key; an empty value removes the key.
type Patch struct {
	Content  *string
	Style    domain.Style
	Position *domain.Position
	Size     *domain.Size
	Locked   *bool
	Visible  *bool
	ZIndex   *int
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }

// Empty reports whether applying p would change nothing.
func (p Patch) Empty() bool {
	return p.Content == nil && len(p.Style) == 0 && p.Position == nil && p.Size == nil &&
		p.Locked == nil && p.Visible == nil && p.ZIndex == nil
}

// Store applies document transitions. The only state it holds is the id generator.
type Store struct {
	newID Generator
}

// NewStore returns a store using gen for element ids; nil selects NanoID(16).
func NewStore(gen Generator) *Store {
	if gen == nil {
		gen = NanoID(16)
	}
	return &Store{newID: gen}
}

// Create appends a new element of kind at pos with the kind's defaults and selects it.
// The new id is the returned document's SelectedElementID.
func (s *Store) Create(doc domain.Document, kind domain.Kind, pos domain.Position) (domain.Document, error) {
	if !kind.Valid() {
		return doc, fmt.Errorf("create: %w: %q", domain.ErrUnknownKind, kind)
	}
	def := domain.DefaultsFor(kind)
	el := domain.Element{
		ID:       s.uniqueID(doc),
		Kind:     kind,
		Content:  def.Content,
		Style:    def.Style,
		Position: pos,
		Size:     def.Size,
		Locked:   false,
		Visible:  true,
		ZIndex:   len(doc.Elements),
	}
	out := doc.Clone()
	out.Elements = append(out.Elements, el)
	out.SelectedElementID = el.ID
	return out, nil
}

// Update merges p into the element with id. A locked element only accepts
// changes to Locked and Visible. Content is ignored for kinds that render none.
func (s *Store) Update(doc domain.Document, id string, p Patch) domain.Document {
	out := doc.Clone()
	i := out.Index(id)
	if i < 0 {
		return out
	}
	el := &out.Elements[i]
	if el.Locked {
		p = Patch{Locked: p.Locked, Visible: p.Visible}
	}
	if p.Content != nil && el.Kind.HasContent() {
		el.Content = *p.Content
	}
	if len(p.Style) > 0 {
		el.Style = el.Style.Merge(p.Style)
	}
	if p.Position != nil {
		el.Position = *p.Position
	}
	if p.Size != nil {
		el.Size = *p.Size
	}
	if p.Locked != nil {
		el.Locked = *p.Locked
	}
	if p.Visible != nil {
		el.Visible = *p.Visible
	}
	if p.ZIndex != nil {
		el.ZIndex = *p.ZIndex
	}
	return out
}

// MoveTo repositions an element; used by drag-drop.
func (s *Store) MoveTo(doc domain.Document, id string, pos domain.Position) domain.Document {
	return s.Update(doc, id, Patch{Position: &pos})
}

// Delete removes the element with id and clears the selection if it pointed there.
func (s *Store) Delete(doc domain.Document, id string) domain.Document {
	out := doc.Clone()
	i := out.Index(id)
	if i < 0 {
		return out
	}
	out.Elements = append(out.Elements[:i], out.Elements[i+1:]...)
	if out.SelectedElementID == id {
		out.SelectedElementID = ""
	}
	return out
}

// Duplicate clones the element with id under a fresh id, offset by DuplicateOffset
// on both axes and stacked at the end of the list. The clone becomes selected.
func (s *Store) Duplicate(doc domain.Document, id string) domain.Document {
	out := doc.Clone()
	i := out.Index(id)
	if i < 0 {
		return out
	}
	c := out.Elements[i].Clone()
	c.ID = s.uniqueID(out)
	c.Position = domain.Position{X: c.Position.X + DuplicateOffset, Y: c.Position.Y + DuplicateOffset}
	c.ZIndex = len(out.Elements)
	out.Elements = append(out.Elements, c)
	out.SelectedElementID = c.ID
	return out
}

// Select changes the selection only. An empty id clears it; an unknown id is ignored.
func (s *Store) Select(doc domain.Document, id string) domain.Document {
	out := doc.Clone()
	if id != "" && !out.Has(id) {
		return out
	}
	out.SelectedElementID = id
	return out
}

// BringToFront raises the element above every other element.
func (s *Store) BringToFront(doc domain.Document, id string) domain.Document {
	return s.restack(doc, id, true)
}

// SendToBack lowers the element below every other element.
func (s *Store) SendToBack(doc domain.Document, id string) domain.Document {
	return s.restack(doc, id, false)
}

// restack moves id to one end of the paint order and renumbers every zIndex to
// 0..n-1 in the resulting order, so the count rule of Create and Duplicate keeps
// landing new elements on top.
func (s *Store) restack(doc domain.Document, id string, front bool) domain.Document {
	out := doc.Clone()
	i := out.Index(id)
	if i < 0 || out.Elements[i].Locked {
		return out
	}
	ids := make([]string, 0, len(out.Elements))
	if !front {
		ids = append(ids, id)
	}
	for _, el := range out.PaintOrder() {
		if el.ID != id {
			ids = append(ids, el.ID)
		}
	}
	if front {
		ids = append(ids, id)
	}
	for z, eid := range ids {
		out.Elements[out.Index(eid)].ZIndex = z
	}
	return out
}

func (s *Store) uniqueID(doc domain.Document) string {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && !doc.Has(id) {
			return id
		}
	}
	panic("document: id generator keeps producing taken ids")
}
