/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"strconv"

	"github.com/aymerick/douceur/css"

	"pagesmith/internal/domain"
)

// stylesheet builds the page rules followed by one rule per element, in paint order.
func stylesheet(els []domain.Element, opts Options) *css.Stylesheet {
	sheet := css.NewStylesheet()
	sheet.Rules = append(sheet.Rules,
		rule("body", decl("margin", "0")),
		rule("."+opts.RootClass,
			decl("position", "relative"),
			decl("width", "100%"),
			decl("min-height", "100vh"),
		),
	)
	for _, el := range els {
		sheet.Rules = append(sheet.Rules, elementRule(el, opts))
	}
	return sheet
}

func elementRule(el domain.Element, opts Options) *css.Rule {
	decls := []*css.Declaration{
		decl("position", "absolute"),
		decl("left", px(el.Position.X)),
		decl("top", px(el.Position.Y)),
		decl("z-index", strconv.Itoa(el.ZIndex)),
	}
	for _, k := range el.Style.Declarations() {
		v := el.Style[k]
		// Values that would escape the rule are dropped rather than emitted.
		if domain.ValidateStyleValue(k, v) != nil {
			continue
		}
		decls = append(decls, decl(k.CSSProperty(), v))
	}
	if _, ok := el.Style[domain.StyleWidth]; !ok && el.Size.Width > 0 {
		decls = append(decls, decl("width", px(el.Size.Width)))
	}
	if _, ok := el.Style[domain.StyleHeight]; !ok && el.Size.Height > 0 {
		decls = append(decls, decl("height", px(el.Size.Height)))
	}
	if el.Kind == domain.KindImage {
		decls = append(decls, decl("object-fit", "cover"))
	}
	return rule("."+opts.ClassPrefix+className(el.ID), decls...)
}

func rule(selector string, decls ...*css.Declaration) *css.Rule {
	r := css.NewRule(css.QualifiedRule)
	r.Prelude = selector
	r.Selectors = []string{selector}
	r.Declarations = decls
	return r
}

func decl(property, value string) *css.Declaration {
	return &css.Declaration{Property: property, Value: value}
}
