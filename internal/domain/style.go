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
	"maps"
	"sort"
	"strings"
	"unicode"

	"github.com/aymerick/douceur/parser"
)

// StyleKey names one of the recognized style properties. Keys are camel-case;
// CSSProperty gives the hyphenated stylesheet form.
type StyleKey string

const (
	StyleBackgroundColor StyleKey = "backgroundColor"
	StyleColor           StyleKey = "color"
	StyleFontSize        StyleKey = "fontSize"
	StyleFontWeight      StyleKey = "fontWeight"
	StylePadding         StyleKey = "padding"
	StyleMargin          StyleKey = "margin"
	StyleBorderRadius    StyleKey = "borderRadius"
	StyleBorder          StyleKey = "border"
	StyleWidth           StyleKey = "width"
	StyleHeight          StyleKey = "height"
	StyleTextAlign       StyleKey = "textAlign"
)

var (
	ErrUnknownStyleKey   = errors.New("unknown style key")
	ErrInvalidStyleValue = errors.New("invalid style value")
)

// styleKeys is the canonical declaration order used when emitting styles.
var styleKeys = []StyleKey{
	StyleBackgroundColor,
	StyleColor,
	StyleFontSize,
	StyleFontWeight,
	StylePadding,
	StyleMargin,
	StyleBorderRadius,
	StyleBorder,
	StyleWidth,
	StyleHeight,
	StyleTextAlign,
}

// StyleKeys returns the recognized keys in canonical order.
func StyleKeys() []StyleKey {
	return append([]StyleKey(nil), styleKeys...)
}

func (k StyleKey) Valid() bool {
	for _, v := range styleKeys {
		if k == v {
			return true
		}
	}
	return false
}

// CSSProperty converts the camel-case key into its hyphenated form,
// e.g. backgroundColor -> background-color.
func (k StyleKey) CSSProperty() string {
	var b strings.Builder
	b.Grow(len(k) + 4)
	for i, r := range string(k) {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseStyleKey accepts either the camel-case key or its hyphenated CSS form.
func ParseStyleKey(s string) (StyleKey, error) {
	v := strings.TrimSpace(s)
	for _, k := range styleKeys {
		if v == string(k) || v == k.CSSProperty() {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyleKey, s)
}

// Style maps recognized keys to raw CSS values. An absent key means the
// kind's default applies.
type Style map[StyleKey]string

// Clone returns an independent copy; a nil style clones to an empty one.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	maps.Copy(out, s)
	return out
}

// Merge returns a new style with patch applied key by key. An empty value in
// the patch removes the key.
func (s Style) Merge(patch Style) Style {
	out := s.Clone()
	for k, v := range patch {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

func (s Style) Equal(o Style) bool { return maps.Equal(s, o) }

// Declarations lists the recognized keys present in s, in canonical order.
func (s Style) Declarations() []StyleKey {
	var out []StyleKey
	for _, k := range styleKeys {
		if _, ok := s[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// ParseStyle validates an open key/value mapping coming from outside the core
// (form fields, scripts) and closes it to the recognized keys. Unknown keys and
// values that do not parse as a single CSS declaration are rejected. Empty values
// are kept so that a patch can remove keys.
func ParseStyle(raw map[string]string) (Style, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(Style, len(raw))
	for _, name := range names {
		k, err := ParseStyleKey(name)
		if err != nil {
			return nil, err
		}
		v := strings.TrimSpace(raw[name])
		if v != "" {
			if err := ValidateStyleValue(k, v); err != nil {
				return nil, err
			}
		}
		out[k] = v
	}
	return out, nil
}

// ValidateStyleValue checks that value is a single well-formed declaration value
// for key, so it cannot break out of the emitted rule.
func ValidateStyleValue(key StyleKey, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidStyleValue, key)
	}
	for _, r := range v {
		if r < 0x20 || strings.ContainsRune("{};<>\\", r) {
			return fmt.Errorf("%w: %s contains %q", ErrInvalidStyleValue, key, r)
		}
	}
	prop := key.CSSProperty()
	decls, err := parser.ParseDeclarations(prop + ": " + v + ";")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidStyleValue, key, err)
	}
	if len(decls) != 1 || decls[0].Property != prop || decls[0].Value != v || decls[0].Important {
		return fmt.Errorf("%w: %s: %q is not a single value", ErrInvalidStyleValue, key, v)
	}
	return nil
}
