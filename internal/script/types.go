/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package script replays recorded editing sessions written in YAML.
package script

// Script is a list of operations replayed through the editor controller,
// followed by an export.
//
// Elements are addressed by "ref" names chosen in the script; a target that is
// not a known ref is used as a raw element id.
type Script struct {
	Title string `yaml:"title"`
	Ops   []Op   `yaml:"ops"`
}

// OpType names one operation.
type OpType string

const (
	OpCreate    OpType = "create"
	OpUpdate    OpType = "update"
	OpMove      OpType = "move"
	OpDuplicate OpType = "duplicate"
	OpDelete    OpType = "delete"
	OpSelect    OpType = "select"
	OpFront     OpType = "front"
	OpBack      OpType = "back"
	OpDrop      OpType = "drop"
	OpUndo      OpType = "undo"
	OpRedo      OpType = "redo"
	OpBatch     OpType = "batch"
)

// Op is one step. Which fields matter depends on Op; the embedded schema
// enforces the required ones.
type Op struct {
	Op      OpType            `yaml:"op"`
	Kind    string            `yaml:"kind,omitempty"`
	Target  string            `yaml:"target,omitempty"`
	Ref     string            `yaml:"ref,omitempty"`
	X       *int              `yaml:"x,omitempty"`
	Y       *int              `yaml:"y,omitempty"`
	Content *string           `yaml:"content,omitempty"`
	Style   map[string]string `yaml:"style,omitempty"`
	Width   *int              `yaml:"width,omitempty"`
	Height  *int              `yaml:"height,omitempty"`
	Locked  *bool             `yaml:"locked,omitempty"`
	Visible *bool             `yaml:"visible,omitempty"`
	Ops     []Op              `yaml:"ops,omitempty"`
}

// Result summarizes a replay.
type Result struct {
	Applied int               // operations executed, batches count their children
	Refs    map[string]string // ref name -> element id
}

// Error reports a script problem with its position. Path is the op index
// chain, e.g. "3.1" for the second op inside the fourth (a batch).
type Error struct {
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := "script: "
	if e.Path != "" {
		msg += "op " + e.Path + ": "
	}
	msg += e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
