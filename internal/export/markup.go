/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export projects a document snapshot into a standalone HTML page with
// an inline stylesheet. Projection is pure and deterministic: equal documents
// produce byte-identical output, and every well-formed document exports.
package export

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pagesmith/internal/domain"
)

// Options controls the page shell. Zero values fall back to DefaultOptions.
type Options struct {
	Title       string
	Lang        string
	ClassPrefix string // prepended to each element's id to form its class
	RootClass   string // class of the positioned root container
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Title: "Untitled page", Lang: "en", ClassPrefix: "el-", RootClass: "page-root"}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if strings.TrimSpace(o.Title) == "" {
		o.Title = def.Title
	}
	if strings.TrimSpace(o.Lang) == "" {
		o.Lang = def.Lang
	}
	if o.ClassPrefix == "" {
		o.ClassPrefix = def.ClassPrefix
	}
	if o.RootClass == "" {
		o.RootClass = def.RootClass
	}
	o.ClassPrefix = leadingIdent(className(o.ClassPrefix))
	o.RootClass = leadingIdent(className(o.RootClass))
	return o
}

// ElementClass returns the class an element is exported under.
func ElementClass(o Options, id string) string {
	return o.withDefaults().ClassPrefix + className(id)
}

// Markup renders doc as a complete HTML page. Locked and Visible are editor-only
// flags and do not influence the output.
func Markup(doc domain.Document, opts Options) string {
	opts = opts.withDefaults()
	els := doc.PaintOrder()

	root := element(atom.Div, attr("class", opts.RootClass))
	for _, el := range els {
		appendChildren(root, text("\n"), elementNode(el, opts))
	}
	if len(els) > 0 {
		root.AppendChild(text("\n"))
	}

	style := element(atom.Style)
	style.AppendChild(text("\n" + stylesheet(els, opts).String() + "\n"))

	title := element(atom.Title)
	title.AppendChild(text(opts.Title))

	head := element(atom.Head)
	appendChildren(head,
		text("\n"), element(atom.Meta, attr("charset", "utf-8")),
		text("\n"), element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")),
		text("\n"), title,
		text("\n"), style,
		text("\n"),
	)

	body := element(atom.Body)
	appendChildren(body, text("\n"), root, text("\n"))

	page := element(atom.Html, attr("lang", opts.Lang))
	appendChildren(page, text("\n"), head, text("\n"), body, text("\n"))

	d := &html.Node{Type: html.DocumentNode}
	appendChildren(d, &html.Node{Type: html.DoctypeNode, Data: "html"}, text("\n"), page)

	var buf bytes.Buffer
	// Rendering into a bytes.Buffer cannot fail for a tree built here.
	_ = html.Render(&buf, d)
	buf.WriteByte('\n')
	return buf.String()
}

// elementNode maps a kind to its tag. Unknown kinds degrade to an empty block.
func elementNode(el domain.Element, opts Options) *html.Node {
	class := attr("class", opts.ClassPrefix+className(el.ID))
	switch el.Kind {
	case domain.KindHeading:
		return withText(element(atom.H1, class), el.Content)
	case domain.KindParagraph:
		return withText(element(atom.P, class), el.Content)
	case domain.KindButton:
		return withText(element(atom.Button, class, attr("type", "button")), el.Content)
	case domain.KindImage:
		return element(atom.Img, class, attr("src", el.Content), attr("alt", ""))
	case domain.KindDivider:
		return element(atom.Hr, class)
	default:
		return element(atom.Div, class)
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute { return html.Attribute{Key: key, Val: val} }

func text(s string) *html.Node { return &html.Node{Type: html.TextNode, Data: s} }

func withText(n *html.Node, s string) *html.Node {
	if s != "" {
		n.AppendChild(text(s))
	}
	return n
}

func appendChildren(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		parent.AppendChild(c)
	}
}

// className maps arbitrary ids onto the CSS identifier alphabet. The mapping is
// injective: '_' is doubled and every other byte outside [A-Za-z0-9-] becomes
// '_' plus two hex digits.
func className(s string) string {
	const hex = "0123456789abcdef"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		case c == '_':
			b.WriteString("__")
		default:
			b.WriteByte('_')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}

// leadingIdent makes a class usable as the start of a selector: an identifier
// cannot begin with a digit or with a hyphen followed by a digit.
func leadingIdent(s string) string {
	switch {
	case s == "", s == "-":
		return "_" + s
	case s[0] >= '0' && s[0] <= '9':
		return "_" + s
	case s[0] == '-' && (s[1] == '-' || (s[1] >= '0' && s[1] <= '9')):
		return "_" + s
	}
	return s
}

func px(n int) string { return strconv.Itoa(n) + "px" }
