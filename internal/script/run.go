/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"pagesmith/internal/document"
	"pagesmith/internal/domain"
	"pagesmith/internal/editor"
	applog "pagesmith/internal/log"
)

// Run replays s against ctl. It stops at the first failing operation; when the
// failure happens inside a batch, the open batches are discarded so ctl is left
// at its last checkpoint.
func Run(ctx context.Context, ctl *editor.Controller, s Script) (Result, error) {
	r := &runner{
		ctx:  ctx,
		ctl:  ctl,
		refs: map[string]string{},
		log:  applog.WithComponent("script"),
	}
	err := r.run(s.Ops, "")
	if err != nil && ctl.InBatch() {
		ctl.Discard()
	}
	if err != nil {
		r.log.ErrorContext(ctx, "script failed", slog.Int("applied", r.applied), slog.Any("err", err))
	} else {
		r.log.InfoContext(ctx, "script replayed", slog.Int("applied", r.applied), slog.Int("elements", len(ctl.Document().Elements)))
	}
	return Result{Applied: r.applied, Refs: r.refs}, err
}

type runner struct {
	ctx     context.Context
	ctl     *editor.Controller
	refs    map[string]string
	log     *slog.Logger
	applied int
}

func (r *runner) run(ops []Op, prefix string) error {
	for i, op := range ops {
		path := strconv.Itoa(i)
		if prefix != "" {
			path = prefix + "." + path
		}
		if err := r.ctx.Err(); err != nil {
			return &Error{Path: path, Message: "cancelled", Err: err}
		}
		if err := r.step(op, path); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) step(op Op, path string) error {
	fail := func(msg string, err error) error {
		return &Error{Path: path, Message: string(op.Op) + ": " + msg, Err: err}
	}
	ctl := r.ctl
	switch op.Op {
	case OpCreate:
		kind, err := domain.ParseKind(op.Kind)
		if err != nil {
			return fail("kind", err)
		}
		patch, err := patchFor(op, domain.DefaultSize(kind))
		if err != nil {
			return fail("style", err)
		}
		ctl.Begin()
		id, err := ctl.Create(kind, position(op))
		if err != nil {
			ctl.Discard()
			return fail("create", err)
		}
		if !patch.Empty() {
			ctl.Update(id, patch)
		}
		ctl.Commit()
		r.bind(op.Ref, id)
	case OpUpdate:
		id := r.resolve(op.Target, path)
		el, _ := ctl.Document().Find(id)
		patch, err := patchFor(op, el.Size)
		if err != nil {
			return fail("style", err)
		}
		ctl.Update(id, patch)
	case OpMove:
		ctl.Move(r.resolve(op.Target, path), position(op))
	case OpDuplicate:
		id, ok := ctl.Duplicate(r.resolve(op.Target, path))
		if ok {
			r.bind(op.Ref, id)
		}
	case OpDelete:
		ctl.Delete(r.resolve(op.Target, path))
	case OpSelect:
		switch {
		case op.Target != "":
			ctl.Select(r.resolve(op.Target, path))
		case op.X != nil && op.Y != nil:
			ctl.SelectAt(*op.X, *op.Y)
		default:
			ctl.Select("")
		}
	case OpFront:
		ctl.BringToFront(r.resolve(op.Target, path))
	case OpBack:
		ctl.SendToBack(r.resolve(op.Target, path))
	case OpDrop:
		ev := editor.DropEvent{X: deref(op.X), Y: deref(op.Y)}
		if op.Target != "" {
			ev.ElementID = r.resolve(op.Target, path)
		} else {
			kind, err := domain.ParseKind(op.Kind)
			if err != nil {
				return fail("kind", err)
			}
			ev.Kind = kind
		}
		id, err := ctl.Drop(ev)
		if err != nil {
			return fail("drop", err)
		}
		if ev.Kind != "" {
			r.bind(op.Ref, id)
		}
	case OpUndo:
		if !ctl.Undo() {
			r.log.DebugContext(r.ctx, "nothing to undo", slog.String("path", path))
		}
	case OpRedo:
		if !ctl.Redo() {
			r.log.DebugContext(r.ctx, "nothing to redo", slog.String("path", path))
		}
	case OpBatch:
		ctl.Begin()
		if err := r.run(op.Ops, path); err != nil {
			return err
		}
		ctl.Commit()
		return nil
	default:
		return fail("unknown operation", errUnknownOp)
	}
	r.applied++
	return nil
}

var errUnknownOp = errors.New("unknown operation")

func (r *runner) bind(ref, id string) {
	if ref == "" {
		return
	}
	r.refs[ref] = id
}

// resolve maps a ref to its element id. Unknown names are passed through as raw
// ids; the store ignores ids that do not exist, so only a warning is logged.
func (r *runner) resolve(target, path string) string {
	if id, ok := r.refs[target]; ok {
		return id
	}
	if !r.ctl.Document().Has(target) {
		r.log.WarnContext(r.ctx, "unknown target", slog.String("target", target), slog.String("path", path))
	}
	return target
}

// patchFor builds the field patch of op. A size given with only one dimension
// keeps the other from base.
func patchFor(op Op, base domain.Size) (document.Patch, error) {
	var p document.Patch
	p.Content = op.Content
	if len(op.Style) > 0 {
		st, err := domain.ParseStyle(op.Style)
		if err != nil {
			return p, err
		}
		p.Style = st
	}
	if op.Width != nil || op.Height != nil {
		size := base
		if op.Width != nil {
			size.Width = *op.Width
		}
		if op.Height != nil {
			size.Height = *op.Height
		}
		p.Size = &size
	}
	p.Locked = op.Locked
	p.Visible = op.Visible
	return p, nil
}

func position(op Op) domain.Position {
	return domain.Position{X: deref(op.X), Y: deref(op.Y)}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
