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

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of element variants that can be placed on the canvas.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindButton    Kind = "button"
	KindImage     Kind = "image"
	KindContainer Kind = "container"
	KindDivider   Kind = "divider"
)

// ErrUnknownKind is returned when a kind outside the recognized variants is requested.
var ErrUnknownKind = errors.New("unknown element kind")

var kinds = []Kind{KindHeading, KindParagraph, KindButton, KindImage, KindContainer, KindDivider}

// Kinds returns all recognized kinds in library order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Valid reports whether k is one of the recognized variants.
func (k Kind) Valid() bool {
	for _, v := range kinds {
		if k == v {
			return true
		}
	}
	return false
}

// HasContent reports whether the content field means anything for this kind.
// Containers and dividers ignore it.
func (k Kind) HasContent() bool {
	switch k {
	case KindHeading, KindParagraph, KindButton, KindImage:
		return true
	default:
		return false
	}
}

// ParseKind converts user/library input into a Kind. Matching is case-insensitive
// and "text" is accepted as an alias for paragraph.
func ParseKind(s string) (Kind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "text" {
		return KindParagraph, nil
	}
	k := Kind(v)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}
